package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/petfriends/internal/application"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/middleware"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/response"
)

// PhotoHandler handles HTTP requests for pet photo operations.
type PhotoHandler struct {
	service *application.PhotoService
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(service *application.PhotoService) *PhotoHandler {
	return &PhotoHandler{service: service}
}

// RegisterRoutes registers all photo routes.
func (h *PhotoHandler) RegisterRoutes(r *gin.RouterGroup, auth middleware.KeyAuthenticator) {
	photos := r.Group("/api/pets")
	photos.Use(middleware.AuthMiddleware(auth))
	{
		photos.POST("/set_photo/:id", h.SetPhoto)
	}
}

// SetPhoto handles POST /api/pets/set_photo/:id.
func (h *PhotoHandler) SetPhoto(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Page(c, http.StatusForbidden, "Please provide 'auth_key' Header")
		return
	}

	petID, ok := parsePetID(c)
	if !ok {
		return
	}

	data, err := readPhoto(c)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			response.BadRequest(c, "The browser (or proxy) sent a request that this server could not understand.")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SetPhoto(c.Request.Context(), ownerID, petID, data)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
