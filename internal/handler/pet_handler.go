package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Kilat-Pet-Delivery/petfriends/internal/application"
	petDomain "github.com/Kilat-Pet-Delivery/petfriends/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/domain/photo"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/middleware"
	"github.com/Kilat-Pet-Delivery/petfriends/internal/response"
)

// photoField is the multipart field carrying the image.
const photoField = "pet_photo"

// PetHandler handles HTTP requests for pet operations.
type PetHandler struct {
	service *application.PetService
}

// NewPetHandler creates a new PetHandler.
func NewPetHandler(service *application.PetService) *PetHandler {
	return &PetHandler{service: service}
}

// RegisterRoutes registers all pet routes behind the auth_key middleware.
func (h *PetHandler) RegisterRoutes(r *gin.RouterGroup, auth middleware.KeyAuthenticator) {
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(auth))
	{
		api.GET("/pets", h.ListPets)
		api.POST("/pets", h.CreatePet)
		api.POST("/create_pet_simple", h.CreatePetSimple)
		api.PUT("/pets/:id", h.UpdatePet)
		api.DELETE("/pets/:id", h.DeletePet)
	}
}

// ListPets handles GET /api/pets?filter=.
func (h *PetHandler) ListPets(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Page(c, http.StatusForbidden, "Please provide 'auth_key' Header")
		return
	}

	filter, err := petDomain.ParseFilter(c.Query("filter"))
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.ListPets(c.Request.Context(), ownerID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreatePet handles POST /api/pets (multipart, photo optional).
func (h *PetHandler) CreatePet(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Page(c, http.StatusForbidden, "Please provide 'auth_key' Header")
		return
	}

	var req application.PetRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	data, err := readPhoto(c)
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreatePet(c.Request.Context(), ownerID, req, data)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreatePetSimple handles POST /api/create_pet_simple.
func (h *PetHandler) CreatePetSimple(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Page(c, http.StatusForbidden, "Please provide 'auth_key' Header")
		return
	}

	var req application.PetRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreatePet(c.Request.Context(), ownerID, req, nil)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdatePet handles PUT /api/pets/:id.
func (h *PetHandler) UpdatePet(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Page(c, http.StatusForbidden, "Please provide 'auth_key' Header")
		return
	}

	petID, ok := parsePetID(c)
	if !ok {
		return
	}

	var req application.PetRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdatePet(c.Request.Context(), ownerID, petID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeletePet handles DELETE /api/pets/:id.
func (h *PetHandler) DeletePet(c *gin.Context) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Page(c, http.StatusForbidden, "Please provide 'auth_key' Header")
		return
	}

	petID, ok := parsePetID(c)
	if !ok {
		return
	}

	if err := h.service.DeletePet(c.Request.Context(), ownerID, petID); err != nil {
		response.Error(c, err)
		return
	}

	response.Empty(c)
}

// parsePetID writes the 404 page for ids that cannot name a pet.
func parsePetID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Page(c, http.StatusNotFound, "Pet with this id wasn't found!")
		return uuid.Nil, false
	}
	return id, true
}

// readPhoto returns the bytes of the pet_photo part, or http.ErrMissingFile.
func readPhoto(c *gin.Context) ([]byte, error) {
	fh, err := c.FormFile(photoField)
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", photoField, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, photo.MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", photoField, err)
	}
	return data, nil
}
