package account

import "context"

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByAPIKey(ctx context.Context, key string) (*Account, error)
	Save(ctx context.Context, account *Account) error
}
