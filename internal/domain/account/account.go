package account

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// apiKeyBytes yields a 56 character hex key.
const apiKeyBytes = 28

// Account is a registered API user.
type Account struct {
	id           uuid.UUID
	email        string
	passwordHash string
	apiKey       string
	createdAt    time.Time
}

// NewAccount hashes the password and issues an API key.
func NewAccount(email, password string) (*Account, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	key, err := newAPIKey()
	if err != nil {
		return nil, err
	}

	return &Account{
		id:           uuid.New(),
		email:        email,
		passwordHash: string(hash),
		apiKey:       key,
		createdAt:    time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds an Account from persistence.
func Reconstruct(id uuid.UUID, email, passwordHash, apiKey string, createdAt time.Time) *Account {
	return &Account{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		apiKey:       apiKey,
		createdAt:    createdAt,
	}
}

func (a *Account) ID() uuid.UUID        { return a.id }
func (a *Account) Email() string        { return a.email }
func (a *Account) PasswordHash() string { return a.passwordHash }
func (a *Account) APIKey() string       { return a.apiKey }
func (a *Account) CreatedAt() time.Time { return a.createdAt }

// CheckPassword reports whether password matches the stored hash.
func (a *Account) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password)) == nil
}

func newAPIKey() (string, error) {
	b := make([]byte, apiKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating api key: %w", err)
	}
	return hex.EncodeToString(b), nil
}
