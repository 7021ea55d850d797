package pet

import (
	"context"

	"github.com/google/uuid"
)

// PetRepository defines persistence operations for pets.
// FindByOwnerID and FindAll return active pets only, newest first.
type PetRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Pet, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*Pet, error)
	FindAll(ctx context.Context, limit int) ([]*Pet, error)
	Save(ctx context.Context, pet *Pet) error
	Update(ctx context.Context, pet *Pet) error
}
