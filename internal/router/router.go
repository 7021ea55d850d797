// Package router assembles the PetFriends gin engine.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/petfriends/internal/application"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/handler"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/middleware"
)

// ServiceName is reported by the health endpoints.
const ServiceName = "petfriends-api"

// Options carries the services the router wires into handlers.
type Options struct {
	AuthService  *application.AuthService
	PetService   *application.PetService
	PhotoService *application.PhotoService
	Logger       *zap.Logger
	// HealthCheck backs /ready. Nil means always ready.
	HealthCheck func() error
}

// New builds the engine with global middleware and every API route.
func New(opts Options) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r.Use(middleware.RecoveryMiddleware(log))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware(log))
	r.NoRoute(middleware.NoRoute())

	handler.NewHealthHandler(ServiceName, opts.HealthCheck).RegisterRoutes(r)

	handler.NewAuthHandler(opts.AuthService).RegisterRoutes(&r.RouterGroup)
	handler.NewPetHandler(opts.PetService).RegisterRoutes(&r.RouterGroup, opts.AuthService)
	handler.NewPhotoHandler(opts.PhotoService).RegisterRoutes(&r.RouterGroup, opts.AuthService)

	return r
}
