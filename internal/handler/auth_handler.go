package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/petfriends/internal/application"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/response"
)

// Credential headers read by GET /api/key.
const (
	EmailHeader    = "email"
	PasswordHeader = "password"
)

// AuthHandler issues API keys.
type AuthHandler struct {
	service *application.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *application.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterRoutes registers the key route. It is not behind auth.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/api/key", h.GetAPIKey)
}

// GetAPIKey handles GET /api/key.
func (h *AuthHandler) GetAPIKey(c *gin.Context) {
	result, err := h.service.GetAPIKey(c.Request.Context(), c.GetHeader(EmailHeader), c.GetHeader(PasswordHeader))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
