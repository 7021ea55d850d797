package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Kilat-Pet-Delivery/petfriends/internal/domain/photo"
)

// PhotoModel is the GORM model for the pet_photos table. One row per pet.
type PhotoModel struct {
	PetID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContentType string    `gorm:"type:varchar(100);not null"`
	Data        []byte    `gorm:"type:bytea;not null"`
	UpdatedAt   time.Time `gorm:"type:timestamptz;not null"`
}

// TableName sets the table name.
func (PhotoModel) TableName() string { return "pet_photos" }

// upsertPhoto inserts or replaces the photo row of a pet. A nil model is a no-op.
func upsertPhoto(tx *gorm.DB, m *PhotoModel) error {
	if m == nil {
		return nil
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pet_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"content_type", "data", "updated_at"}),
	}).Create(m).Error
}

func toPhotoModel(petID uuid.UUID, p *photo.Photo, at time.Time) *PhotoModel {
	if p == nil {
		return nil
	}
	return &PhotoModel{
		PetID:       petID,
		ContentType: p.ContentType(),
		Data:        p.Data(),
		UpdatedAt:   at,
	}
}

func toPhotoDomain(m *PhotoModel) *photo.Photo {
	if m == nil {
		return nil
	}
	return photo.Reconstruct(m.ContentType, m.Data)
}
