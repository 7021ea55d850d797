package pet

import (
	"time"

	"github.com/google/uuid"

	"github.com/Kilat-Pet-Delivery/petfriends/internal/domain/photo"
)

// PetStatus represents the lifecycle state of a pet.
type PetStatus string

const (
	PetStatusActive   PetStatus = "active"
	PetStatusArchived PetStatus = "archived"
)

// Pet is the aggregate root for a pet card.
type Pet struct {
	id         uuid.UUID
	ownerID    uuid.UUID
	name       string
	animalType string
	age        string
	photo      *photo.Photo
	status     PetStatus
	version    int64
	createdAt  time.Time
	updatedAt  time.Time
}

// NewPet creates a new active pet. Fields are stored verbatim, empty strings included.
func NewPet(ownerID uuid.UUID, name, animalType, age string, ph *photo.Photo) *Pet {
	now := time.Now().UTC()
	return &Pet{
		id:         uuid.New(),
		ownerID:    ownerID,
		name:       name,
		animalType: animalType,
		age:        age,
		photo:      ph,
		status:     PetStatusActive,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}
}

// Reconstruct rebuilds a Pet from persistence data (no validation).
func Reconstruct(
	id, ownerID uuid.UUID,
	name, animalType, age string,
	ph *photo.Photo,
	status PetStatus,
	version int64,
	createdAt, updatedAt time.Time,
) *Pet {
	return &Pet{
		id:         id,
		ownerID:    ownerID,
		name:       name,
		animalType: animalType,
		age:        age,
		photo:      ph,
		status:     status,
		version:    version,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// --- Getters ---

func (p *Pet) ID() uuid.UUID        { return p.id }
func (p *Pet) OwnerID() uuid.UUID   { return p.ownerID }
func (p *Pet) Name() string         { return p.name }
func (p *Pet) AnimalType() string   { return p.animalType }
func (p *Pet) Age() string          { return p.age }
func (p *Pet) Photo() *photo.Photo  { return p.photo }
func (p *Pet) Status() PetStatus    { return p.status }
func (p *Pet) Version() int64       { return p.version }
func (p *Pet) CreatedAt() time.Time { return p.createdAt }
func (p *Pet) UpdatedAt() time.Time { return p.updatedAt }

// --- Behavior ---

// IsOwnedBy checks if the pet belongs to the given owner.
func (p *Pet) IsOwnedBy(ownerID uuid.UUID) bool {
	return p.ownerID == ownerID
}

// Update replaces name, type and age.
func (p *Pet) Update(name, animalType, age string) {
	p.name = name
	p.animalType = animalType
	p.age = age
	p.touch()
}

// SetPhoto replaces the pet's photo.
func (p *Pet) SetPhoto(ph *photo.Photo) {
	p.photo = ph
	p.touch()
}

// Archive marks the pet as deleted. Archived pets are hidden from every listing.
func (p *Pet) Archive() {
	p.status = PetStatusArchived
	p.touch()
}

// IsActive returns true if the pet has not been deleted.
func (p *Pet) IsActive() bool {
	return p.status == PetStatusActive
}

func (p *Pet) touch() {
	p.version++
	p.updatedAt = time.Now().UTC()
}
