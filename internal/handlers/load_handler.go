package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pdbstore/internal/responses"
	"pdbstore/internal/services"
)

type LoadHandler struct {
	loader *services.LoaderService
}

func NewLoadHandler(loader *services.LoaderService) *LoadHandler {
	return &LoadHandler{loader: loader}
}

// Load handles POST /api/v1/load/:table?replace=true with a CSV body.
func (h *LoadHandler) Load(c *gin.Context) {
	replace := false
	if raw := c.Query("replace"); raw != "" {
		var err error
		if replace, err = strconv.ParseBool(raw); err != nil {
			responses.Fail(c, http.StatusBadRequest, err, "Invalid replace flag")
			return
		}
	}

	result, err := h.loader.LoadCSV(c.Request.Context(), c.Param("table"), c.Request.Body, replace)
	if err != nil {
		fail(c, err, "Failed to load CSV")
		return
	}

	responses.Success(c, http.StatusOK, result, "CSV loaded successfully")
}

// Counts handles GET /api/v1/counts
func (h *LoadHandler) Counts(c *gin.Context) {
	counts, err := h.loader.Counts(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to count rows")
		return
	}

	responses.Success(c, http.StatusOK, counts, "Row counts retrieved successfully")
}
