package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pdbstore/internal/responses"
	"pdbstore/internal/services"
)

type CoordinateHandler struct {
	service *services.CoordinateService
}

func NewCoordinateHandler(service *services.CoordinateService) *CoordinateHandler {
	return &CoordinateHandler{service: service}
}

// Create handles POST /api/v1/coordinates
func (h *CoordinateHandler) Create(c *gin.Context) {
	var req services.CreateCoordinateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	rec, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, err, "Failed to create coordinate")
		return
	}

	responses.Success(c, http.StatusCreated, rec, "Coordinate created successfully")
}

// Get handles GET /api/v1/coordinates/:id
func (h *CoordinateHandler) Get(c *gin.Context) {
	rec, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "Failed to retrieve coordinate")
		return
	}

	responses.Success(c, http.StatusOK, rec, "Coordinate retrieved successfully")
}

// List handles GET /api/v1/coordinates?pdb=&limit=
func (h *CoordinateHandler) List(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid limit")
		return
	}

	records, err := h.service.List(c.Request.Context(), c.Query("pdb"), limit)
	if err != nil {
		fail(c, err, "Failed to list coordinates")
		return
	}

	responses.Success(c, http.StatusOK, records, "Coordinates retrieved successfully")
}
