package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/petfriends/internal/domain"
	petDomain "github.com/Kilat-Pet-Delivery/petfriends/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/domain/photo"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/events"
)

// EventSource identifies this service in published events.
const EventSource = "petfriends-api"

// ListLimit caps the "all pets" listing.
const ListLimit = 100

// PetRequest carries the text fields of a create or update call.
type PetRequest struct {
	Name       string `form:"name"`
	AnimalType string `form:"animal_type"`
	Age        string `form:"age"`
}

// PetDTO is the API representation of a pet.
type PetDTO struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	AnimalType string    `json:"animal_type"`
	Age        string    `json:"age"`
	PetPhoto   string    `json:"pet_photo"`
	UserID     uuid.UUID `json:"user_id"`
	CreatedAt  string    `json:"created_at"`
}

// PetListDTO wraps a listing.
type PetListDTO struct {
	Pets []PetDTO `json:"pets"`
}

// PetService implements use cases for pet management.
type PetService struct {
	repo      petDomain.PetRepository
	publisher events.Publisher
	logger    *zap.Logger
}

// NewPetService creates a new PetService.
func NewPetService(repo petDomain.PetRepository, publisher events.Publisher, logger *zap.Logger) *PetService {
	return &PetService{repo: repo, publisher: publisher, logger: logger}
}

// CreatePet creates a pet for the given owner. photoData may be nil.
// Text fields are not validated.
func (s *PetService) CreatePet(ctx context.Context, ownerID uuid.UUID, req PetRequest, photoData []byte) (*PetDTO, error) {
	var ph *photo.Photo
	if photoData != nil {
		p, err := photo.NewPhoto(photoData)
		if err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		ph = p
	}

	pet := petDomain.NewPet(ownerID, req.Name, req.AnimalType, req.Age, ph)
	if err := s.repo.Save(ctx, pet); err != nil {
		s.logger.Error("failed to create pet", zap.Error(err))
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	s.logger.Info("pet created",
		zap.String("pet_id", pet.ID().String()),
		zap.String("owner_id", ownerID.String()),
		zap.Bool("with_photo", ph != nil),
	)
	s.publish(ctx, events.PetCreated, pet)

	result := toPetDTO(pet)
	return &result, nil
}

// ListPets returns every active pet, or only the owner's for FilterMyPets.
func (s *PetService) ListPets(ctx context.Context, ownerID uuid.UUID, filter petDomain.Filter) (*PetListDTO, error) {
	var (
		pets []*petDomain.Pet
		err  error
	)
	switch filter {
	case petDomain.FilterMyPets:
		pets, err = s.repo.FindByOwnerID(ctx, ownerID)
	default:
		pets, err = s.repo.FindAll(ctx, ListLimit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}

	dtos := make([]PetDTO, len(pets))
	for i, p := range pets {
		dtos[i] = toPetDTO(p)
	}
	return &PetListDTO{Pets: dtos}, nil
}

// UpdatePet replaces name, type and age of an owned pet.
func (s *PetService) UpdatePet(ctx context.Context, ownerID, petID uuid.UUID, req PetRequest) (*PetDTO, error) {
	pet, err := s.findOwned(ctx, ownerID, petID)
	if err != nil {
		return nil, err
	}

	pet.Update(req.Name, req.AnimalType, req.Age)
	if err := s.repo.Update(ctx, pet); err != nil {
		s.logger.Error("failed to update pet", zap.Error(err))
		return nil, fmt.Errorf("failed to update pet: %w", err)
	}

	s.logger.Info("pet updated", zap.String("pet_id", petID.String()))
	s.publish(ctx, events.PetUpdated, pet)

	result := toPetDTO(pet)
	return &result, nil
}

// DeletePet archives an owned pet.
func (s *PetService) DeletePet(ctx context.Context, ownerID, petID uuid.UUID) error {
	pet, err := s.findOwned(ctx, ownerID, petID)
	if err != nil {
		return err
	}

	pet.Archive()
	if err := s.repo.Update(ctx, pet); err != nil {
		s.logger.Error("failed to archive pet", zap.Error(err))
		return fmt.Errorf("failed to archive pet: %w", err)
	}

	s.logger.Info("pet deleted", zap.String("pet_id", petID.String()))
	s.publish(ctx, events.PetDeleted, pet)
	return nil
}

// findOwned loads an active pet and checks ownership.
func (s *PetService) findOwned(ctx context.Context, ownerID, petID uuid.UUID) (*petDomain.Pet, error) {
	pet, err := s.repo.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if !pet.IsActive() {
		return nil, domain.NewNotFoundError("Pet", petID.String())
	}
	if !pet.IsOwnedBy(ownerID) {
		return nil, domain.NewForbiddenError("you do not own this pet")
	}
	return pet, nil
}

// publish emits an event. Failures are logged; the API call has already succeeded.
func (s *PetService) publish(ctx context.Context, eventType string, p *petDomain.Pet) {
	evt, err := events.NewPetEvent(EventSource, eventType, events.PetEventData{
		PetID:      p.ID(),
		OwnerID:    p.OwnerID(),
		Name:       p.Name(),
		AnimalType: p.AnimalType(),
		Age:        p.Age(),
		HasPhoto:   p.Photo() != nil,
	})
	if err != nil {
		s.logger.Error("failed to build pet event", zap.String("type", eventType), zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("pet event not published", zap.String("type", eventType), zap.Error(err))
	}
}

func toPetDTO(p *petDomain.Pet) PetDTO {
	dto := PetDTO{
		ID:         p.ID(),
		Name:       p.Name(),
		AnimalType: p.AnimalType(),
		Age:        p.Age(),
		UserID:     p.OwnerID(),
		CreatedAt:  p.CreatedAt().Format(time.RFC3339Nano),
	}
	if ph := p.Photo(); ph != nil {
		dto.PetPhoto = ph.DataURI()
	}
	return dto
}
