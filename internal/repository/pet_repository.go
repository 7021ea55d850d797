package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Kilat-Pet-Delivery/petfriends/internal/domain"
	petDomain "github.com/Kilat-Pet-Delivery/petfriends/internal/domain/pet"
)

// PetModel is the GORM model for the pets table.
type PetModel struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey"`
	OwnerID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	Name       string      `gorm:"type:text;not null"`
	AnimalType string      `gorm:"type:text;not null"`
	Age        string      `gorm:"type:varchar(50);not null"`
	Status     string      `gorm:"type:varchar(20);not null;default:'active';index"`
	Version    int64       `gorm:"not null;default:1"`
	CreatedAt  time.Time   `gorm:"type:timestamptz;not null"`
	UpdatedAt  time.Time   `gorm:"type:timestamptz;not null"`
	Photo      *PhotoModel `gorm:"foreignKey:PetID;constraint:OnDelete:CASCADE"`
}

func (PetModel) TableName() string { return "pets" }

// GormPetRepository implements PetRepository using GORM.
type GormPetRepository struct {
	db *gorm.DB
}

func NewGormPetRepository(db *gorm.DB) *GormPetRepository {
	return &GormPetRepository{db: db}
}

func (r *GormPetRepository) FindByID(ctx context.Context, id uuid.UUID) (*petDomain.Pet, error) {
	var model PetModel
	if err := r.db.WithContext(ctx).Preload("Photo").Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Pet", id.String())
		}
		return nil, err
	}
	return toPetDomain(&model), nil
}

func (r *GormPetRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*petDomain.Pet, error) {
	var models []PetModel
	if err := r.db.WithContext(ctx).
		Preload("Photo").
		Where("owner_id = ? AND status = ?", ownerID, string(petDomain.PetStatusActive)).
		Order("created_at DESC, id").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return toPetDomains(models), nil
}

func (r *GormPetRepository) FindAll(ctx context.Context, limit int) ([]*petDomain.Pet, error) {
	var models []PetModel
	q := r.db.WithContext(ctx).
		Preload("Photo").
		Where("status = ?", string(petDomain.PetStatusActive)).
		Order("created_at DESC, id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	return toPetDomains(models), nil
}

func (r *GormPetRepository) Save(ctx context.Context, pet *petDomain.Pet) error {
	model := toPetModel(pet)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
			return err
		}
		return upsertPhoto(tx, model.Photo)
	})
}

// Update writes every mutable column, empty strings included, guarded by the
// previous version.
func (r *GormPetRepository) Update(ctx context.Context, pet *petDomain.Pet) error {
	model := toPetModel(pet)
	previousVersion := pet.Version() - 1

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&PetModel{}).
			Where("id = ? AND version = ?", model.ID, previousVersion).
			Updates(map[string]any{
				"name":        model.Name,
				"animal_type": model.AnimalType,
				"age":         model.Age,
				"status":      model.Status,
				"version":     model.Version,
				"updated_at":  model.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.NewConflictError("pet was modified by another transaction")
		}
		return upsertPhoto(tx, model.Photo)
	})
}

// --- Conversions ---

func toPetModel(p *petDomain.Pet) *PetModel {
	return &PetModel{
		ID:         p.ID(),
		OwnerID:    p.OwnerID(),
		Name:       p.Name(),
		AnimalType: p.AnimalType(),
		Age:        p.Age(),
		Status:     string(p.Status()),
		Version:    p.Version(),
		CreatedAt:  p.CreatedAt(),
		UpdatedAt:  p.UpdatedAt(),
		Photo:      toPhotoModel(p.ID(), p.Photo(), p.UpdatedAt()),
	}
}

func toPetDomain(m *PetModel) *petDomain.Pet {
	return petDomain.Reconstruct(
		m.ID, m.OwnerID,
		m.Name, m.AnimalType, m.Age,
		toPhotoDomain(m.Photo),
		petDomain.PetStatus(m.Status),
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}

func toPetDomains(models []PetModel) []*petDomain.Pet {
	pets := make([]*petDomain.Pet, len(models))
	for i := range models {
		pets[i] = toPetDomain(&models[i])
	}
	return pets
}
