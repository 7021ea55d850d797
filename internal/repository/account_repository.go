package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Kilat-Pet-Delivery/petfriends/internal/domain"
	accountDomain "github.com/Kilat-Pet-Delivery/petfriends/internal/domain/account"
)

// AccountModel is the GORM model for the accounts table.
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(100);not null"`
	APIKey       string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	CreatedAt    time.Time `gorm:"type:timestamptz;not null"`
}

func (AccountModel) TableName() string { return "accounts" }

// GormAccountRepository implements AccountRepository using GORM.
type GormAccountRepository struct {
	db *gorm.DB
}

func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

func (r *GormAccountRepository) FindByEmail(ctx context.Context, email string) (*accountDomain.Account, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *GormAccountRepository) FindByAPIKey(ctx context.Context, key string) (*accountDomain.Account, error) {
	return r.findOne(ctx, "api_key = ?", key)
}

func (r *GormAccountRepository) Save(ctx context.Context, acc *accountDomain.Account) error {
	model := AccountModel{
		ID:           acc.ID(),
		Email:        acc.Email(),
		PasswordHash: acc.PasswordHash(),
		APIKey:       acc.APIKey(),
		CreatedAt:    acc.CreatedAt(),
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *GormAccountRepository) findOne(ctx context.Context, query string, arg string) (*accountDomain.Account, error) {
	var m AccountModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Account", "")
		}
		return nil, err
	}
	return accountDomain.Reconstruct(m.ID, m.Email, m.PasswordHash, m.APIKey, m.CreatedAt), nil
}

// Models lists every table managed by this package, for AutoMigrate.
func Models() []any {
	return []any{&AccountModel{}, &PetModel{}, &PhotoModel{}}
}
