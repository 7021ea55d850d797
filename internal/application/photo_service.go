package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/petfriends/internal/domain"
	petDomain "github.com/Kilat-Pet-Delivery/petfriends/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/domain/photo"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/events"
)

// PhotoService handles pet photo use cases.
type PhotoService struct {
	pets   *PetService
	repo   petDomain.PetRepository
	logger *zap.Logger
}

// NewPhotoService creates a new PhotoService sharing the pet service's repository and publisher.
func NewPhotoService(pets *PetService, logger *zap.Logger) *PhotoService {
	return &PhotoService{pets: pets, repo: pets.repo, logger: logger}
}

// SetPhoto replaces the photo of an owned pet.
func (s *PhotoService) SetPhoto(ctx context.Context, ownerID, petID uuid.UUID, data []byte) (*PetDTO, error) {
	ph, err := photo.NewPhoto(data)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	pet, err := s.pets.findOwned(ctx, ownerID, petID)
	if err != nil {
		return nil, err
	}

	pet.SetPhoto(ph)
	if err := s.repo.Update(ctx, pet); err != nil {
		s.logger.Error("failed to set pet photo", zap.Error(err))
		return nil, fmt.Errorf("failed to set pet photo: %w", err)
	}

	s.logger.Info("pet photo set",
		zap.String("pet_id", petID.String()),
		zap.String("content_type", ph.ContentType()),
		zap.Int("size", len(data)),
	)
	s.pets.publish(ctx, events.PetPhotoSet, pet)

	result := toPetDTO(pet)
	return &result, nil
}
