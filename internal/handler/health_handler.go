package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	service string
	check   func() error
}

// NewHealthHandler creates a HealthHandler. check may be nil when there is no
// backing store to probe.
func NewHealthHandler(service string, check func() error) *HealthHandler {
	return &HealthHandler{service: service, check: check}
}

// RegisterRoutes registers /health and /ready.
func (h *HealthHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": h.service})
}

// Ready handles GET /ready.
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.check != nil {
		if err := h.check(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unavailable",
				"service": h.service,
				"error":   err.Error(),
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "service": h.service})
}
