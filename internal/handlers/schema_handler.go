package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pdbstore/internal/responses"
	"pdbstore/internal/services"
)

type SchemaHandler struct {
	schemaService *services.SchemaService
}

func NewSchemaHandler(schemaService *services.SchemaService) *SchemaHandler {
	return &SchemaHandler{
		schemaService: schemaService,
	}
}

// Definitions handles GET /api/v1/schema
func (h *SchemaHandler) Definitions(c *gin.Context) {
	responses.Success(c, http.StatusOK, h.schemaService.Definitions(), "Schema retrieved successfully")
}

// Verify handles GET /api/v1/schema/verify
func (h *SchemaHandler) Verify(c *gin.Context) {
	report, err := h.schemaService.Verify(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to verify schema")
		return
	}

	responses.Success(c, http.StatusOK, report, "Schema verified")
}

// Diagram handles GET /api/v1/schema/diagram
func (h *SchemaHandler) Diagram(c *gin.Context) {
	responses.Success(c, http.StatusOK, gin.H{
		"mermaid": h.schemaService.Diagram(),
	}, "Schema visualization generated successfully")
}
