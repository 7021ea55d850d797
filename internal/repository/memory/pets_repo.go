// Package memory provides map-backed repositories for tests and local runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Kilat-Pet-Delivery/petfriends/internal/domain"
	petDomain "github.com/Kilat-Pet-Delivery/petfriends/internal/domain/pet"
)

// PetRepo stores snapshots of pets so callers never share state with the store.
type PetRepo struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*petDomain.Pet
}

func NewPetRepo() *PetRepo {
	return &PetRepo{byID: make(map[uuid.UUID]*petDomain.Pet)}
}

func (r *PetRepo) FindByID(ctx context.Context, id uuid.UUID) (*petDomain.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("Pet", id.String())
	}
	return clonePet(p), nil
}

func (r *PetRepo) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*petDomain.Pet, error) {
	return r.list(func(p *petDomain.Pet) bool { return p.IsOwnedBy(ownerID) }, 0), nil
}

func (r *PetRepo) FindAll(ctx context.Context, limit int) ([]*petDomain.Pet, error) {
	return r.list(func(*petDomain.Pet) bool { return true }, limit), nil
}

func (r *PetRepo) Save(ctx context.Context, p *petDomain.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID()]; exists {
		return domain.NewConflictError("pet already exists")
	}
	r.byID[p.ID()] = clonePet(p)
	return nil
}

func (r *PetRepo) Update(ctx context.Context, p *petDomain.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[p.ID()]
	if !ok {
		return domain.NewNotFoundError("Pet", p.ID().String())
	}
	if stored.Version() != p.Version()-1 {
		return domain.NewConflictError("pet was modified by another transaction")
	}
	r.byID[p.ID()] = clonePet(p)
	return nil
}

// list returns active pets matching keep, newest first.
func (r *PetRepo) list(keep func(*petDomain.Pet) bool, limit int) []*petDomain.Pet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*petDomain.Pet, 0)
	for _, p := range r.byID {
		if p.IsActive() && keep(p) {
			out = append(out, clonePet(p))
		}
	}

	// Newest first; equal timestamps fall back to id so the order is deterministic.
	sort.Slice(out, func(i, j int) bool {
		ci, cj := out[i].CreatedAt(), out[j].CreatedAt()
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return out[i].ID().String() < out[j].ID().String()
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func clonePet(p *petDomain.Pet) *petDomain.Pet {
	return petDomain.Reconstruct(
		p.ID(), p.OwnerID(),
		p.Name(), p.AnimalType(), p.Age(),
		p.Photo(),
		p.Status(),
		p.Version(),
		p.CreatedAt(), p.UpdatedAt(),
	)
}
