package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/petfriends/internal/cache"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/domain"
	accountDomain "github.com/Kilat-Pet-Delivery/petfriends/internal/domain/account"
)

// APIKeyDTO is the body of a successful key request.
type APIKeyDTO struct {
	Key string `json:"key"`
}

// AuthService issues and resolves API keys.
type AuthService struct {
	repo   accountDomain.AccountRepository
	keys   *cache.KeyCache
	logger *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo accountDomain.AccountRepository, keys *cache.KeyCache, logger *zap.Logger) *AuthService {
	return &AuthService{repo: repo, keys: keys, logger: logger}
}

// Register creates an account. Used to seed users.
func (s *AuthService) Register(ctx context.Context, email, password string) (*accountDomain.Account, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, domain.NewConflictError(fmt.Sprintf("account %s already exists", email))
	}
	var nf *domain.NotFoundError
	if err != nil && !errors.As(err, &nf) {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	acc, err := accountDomain.NewAccount(email, password)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	if err := s.repo.Save(ctx, acc); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.logger.Info("account registered", zap.String("account_id", acc.ID().String()))
	return acc, nil
}

// GetAPIKey returns the key of the account matching the credentials.
func (s *AuthService) GetAPIKey(ctx context.Context, email, password string) (*APIKeyDTO, error) {
	if email == "" || password == "" {
		return nil, domain.NewForbiddenError("This user wasn't found in database")
	}

	acc, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			return nil, domain.NewForbiddenError("This user wasn't found in database")
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if !acc.CheckPassword(password) {
		s.logger.Info("rejected api key request", zap.String("account_id", acc.ID().String()))
		return nil, domain.NewForbiddenError("This user wasn't found in database")
	}

	s.keys.Store(acc.APIKey(), acc.ID())
	return &APIKeyDTO{Key: acc.APIKey()}, nil
}

// Authenticate resolves an API key to its account id.
func (s *AuthService) Authenticate(ctx context.Context, key string) (uuid.UUID, error) {
	if key == "" {
		return uuid.Nil, domain.NewForbiddenError("Please provide 'auth_key' Header")
	}
	if id, ok := s.keys.Get(key); ok {
		return id, nil
	}

	acc, err := s.repo.FindByAPIKey(ctx, key)
	if err != nil {
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			return uuid.Nil, domain.NewForbiddenError("Please provide 'auth_key' Header")
		}
		return uuid.Nil, fmt.Errorf("failed to resolve api key: %w", err)
	}

	s.keys.Store(key, acc.ID())
	return acc.ID(), nil
}
