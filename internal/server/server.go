// Package server wires storage, cache, events and the router into a runnable
// PetFriends API. cmd/server and the end-to-end suite both build on it.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/petfriends/internal/application"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/cache"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/config"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/database"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/domain"
	accountDomain "github.com/Kilat-Pet-Delivery/petfriends/internal/domain/account"
	petDomain "github.com/Kilat-Pet-Delivery/petfriends/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/events"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/repository"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/repository/memory"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/router"
)

// Deps are the collaborators a Server is built from.
type Deps struct {
	Accounts    accountDomain.AccountRepository
	Pets        petDomain.PetRepository
	Publisher   events.Publisher
	KeyCacheTTL time.Duration
	HealthCheck func() error
	Logger      *zap.Logger
}

// Server is an assembled API.
type Server struct {
	Router       *gin.Engine
	AuthService  *application.AuthService
	PetService   *application.PetService
	PhotoService *application.PhotoService

	keys      *cache.KeyCache
	publisher events.Publisher
	logger    *zap.Logger
}

// New assembles services and the router from deps.
func New(deps Deps) (*Server, error) {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	publisher := deps.Publisher
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	ttl := deps.KeyCacheTTL
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}

	keys, err := cache.NewKeyCache(ttl, log)
	if err != nil {
		return nil, fmt.Errorf("creating key cache: %w", err)
	}

	authService := application.NewAuthService(deps.Accounts, keys, log)
	petService := application.NewPetService(deps.Pets, publisher, log)
	photoService := application.NewPhotoService(petService, log)

	r := router.New(router.Options{
		AuthService:  authService,
		PetService:   petService,
		PhotoService: photoService,
		Logger:       log,
		HealthCheck:  deps.HealthCheck,
	})

	return &Server{
		Router:       r,
		AuthService:  authService,
		PetService:   petService,
		PhotoService: photoService,
		keys:         keys,
		publisher:    publisher,
		logger:       log,
	}, nil
}

// NewInMemory builds a Server on the in-memory repositories with no event publishing.
func NewInMemory(log *zap.Logger) (*Server, error) {
	return New(Deps{
		Accounts: memory.NewAccountRepo(),
		Pets:     memory.NewPetRepo(),
		Logger:   log,
	})
}

// FromConfig builds a Server for the configured storage backend and Kafka brokers.
func FromConfig(cfg *config.ServiceConfig, log *zap.Logger) (*Server, error) {
	deps := Deps{KeyCacheTTL: cfg.KeyCacheTTL, Logger: log}

	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := database.Connect(cfg.DBConfig, log)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db, repository.Models(), log); err != nil {
			return nil, err
		}
		deps.Accounts = repository.NewGormAccountRepository(db)
		deps.Pets = repository.NewGormPetRepository(db)
		deps.HealthCheck = func() error { return database.Ping(db) }
	default:
		deps.Accounts = memory.NewAccountRepo()
		deps.Pets = memory.NewPetRepo()
	}

	if len(cfg.KafkaConfig.Brokers) > 0 {
		deps.Publisher = events.NewKafkaPublisher(cfg.KafkaConfig.Brokers, cfg.KafkaConfig.Topic, log)
		log.Info("publishing pet events",
			zap.Strings("brokers", cfg.KafkaConfig.Brokers),
			zap.String("topic", cfg.KafkaConfig.Topic),
		)
	}

	srv, err := New(deps)
	if err != nil {
		if deps.Publisher != nil {
			_ = deps.Publisher.Close()
		}
		return nil, err
	}
	return srv, nil
}

// Seed registers the given accounts. Accounts that already exist are kept.
func (s *Server) Seed(ctx context.Context, users []config.Credentials) error {
	for _, u := range users {
		_, err := s.AuthService.Register(ctx, u.Email, u.Password)
		var conflict *domain.ConflictError
		switch {
		case err == nil:
			s.logger.Info("seeded account", zap.String("email", u.Email))
		case errors.As(err, &conflict):
			s.logger.Debug("account already seeded", zap.String("email", u.Email))
		default:
			return fmt.Errorf("seeding %s: %w", u.Email, err)
		}
	}
	return nil
}

// Close releases the key cache and the event publisher.
func (s *Server) Close() error {
	s.keys.Close()
	return s.publisher.Close()
}
