package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pdbstore/internal/responses"
	"pdbstore/internal/services"
)

type CorrespondenceHandler struct {
	service *services.CorrespondenceService
}

func NewCorrespondenceHandler(service *services.CorrespondenceService) *CorrespondenceHandler {
	return &CorrespondenceHandler{service: service}
}

// Create handles POST /api/v1/correspondences
func (h *CorrespondenceHandler) Create(c *gin.Context) {
	var req services.CreateCorrespondenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	rec, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, err, "Failed to create correspondence")
		return
	}

	responses.Success(c, http.StatusCreated, rec, "Correspondence created successfully")
}

// Get handles GET /api/v1/correspondences/:id
func (h *CorrespondenceHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid correspondence ID")
		return
	}

	rec, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "Failed to retrieve correspondence")
		return
	}

	responses.Success(c, http.StatusOK, rec, "Correspondence retrieved successfully")
}

// List handles GET /api/v1/correspondences?pdb=&pdb_file=&limit=
func (h *CorrespondenceHandler) List(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid limit")
		return
	}

	records, err := h.service.List(c.Request.Context(), c.Query("pdb"), c.Query("pdb_file"), limit)
	if err != nil {
		fail(c, err, "Failed to list correspondences")
		return
	}

	responses.Success(c, http.StatusOK, records, "Correspondences retrieved successfully")
}

func queryLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
