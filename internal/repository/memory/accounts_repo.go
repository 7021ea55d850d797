package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Kilat-Pet-Delivery/petfriends/internal/domain"
	accountDomain "github.com/Kilat-Pet-Delivery/petfriends/internal/domain/account"
)

type AccountRepo struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*accountDomain.Account
	byEmail map[string]uuid.UUID
	byKey   map[string]uuid.UUID
}

func NewAccountRepo() *AccountRepo {
	return &AccountRepo{
		byID:    make(map[uuid.UUID]*accountDomain.Account),
		byEmail: make(map[string]uuid.UUID),
		byKey:   make(map[string]uuid.UUID),
	}
}

func (r *AccountRepo) FindByEmail(ctx context.Context, email string) (*accountDomain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.NewNotFoundError("Account", "")
	}
	return r.byID[id], nil
}

func (r *AccountRepo) FindByAPIKey(ctx context.Context, key string) (*accountDomain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byKey[key]
	if !ok {
		return nil, domain.NewNotFoundError("Account", "")
	}
	return r.byID[id], nil
}

func (r *AccountRepo) Save(ctx context.Context, acc *accountDomain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[acc.Email()]; exists {
		return domain.NewConflictError("account already exists")
	}
	r.byID[acc.ID()] = acc
	r.byEmail[acc.Email()] = acc.ID()
	r.byKey[acc.APIKey()] = acc.ID()
	return nil
}
