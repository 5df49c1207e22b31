package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pdbstore/internal/responses"
	"pdbstore/internal/services"
)

type ComponentHandler struct {
	service *services.ComponentService
}

func NewComponentHandler(service *services.ComponentService) *ComponentHandler {
	return &ComponentHandler{service: service}
}

// Lookup handles POST /api/v1/components/lookup
func (h *ComponentHandler) Lookup(c *gin.Context) {
	var req services.LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	motifs, err := h.service.LoadMotifs(c.Request.Context(), req.PDB, req.PDBFile, req.Motifs)
	if err != nil {
		fail(c, err, "Failed to look up components")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{
		"pdb":      req.PDB,
		"pdb_file": req.PDBFile,
		"motifs":   motifs,
	}, "Components retrieved successfully")
}
