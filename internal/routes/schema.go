package routes

import (
	"github.com/gin-gonic/gin"

	"pdbstore/internal/handlers"
)

type SchemaRoutes struct {
	handler *handlers.SchemaHandler
}

func NewSchemaRoutes(handler *handlers.SchemaHandler) *SchemaRoutes {
	return &SchemaRoutes{handler: handler}
}

func (r *SchemaRoutes) RegisterRoutes(router *gin.RouterGroup) {
	schema := router.Group("/schema")
	{
		schema.GET("", r.handler.Definitions)
		schema.GET("/verify", r.handler.Verify)
		schema.GET("/diagram", r.handler.Diagram)
	}
}
