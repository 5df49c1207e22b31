package routes

import (
	"github.com/gin-gonic/gin"

	"pdbstore/internal/handlers"
)

type ComponentRoutes struct {
	handler *handlers.ComponentHandler
}

func NewComponentRoutes(handler *handlers.ComponentHandler) *ComponentRoutes {
	return &ComponentRoutes{handler: handler}
}

func (r *ComponentRoutes) RegisterRoutes(router *gin.RouterGroup) {
	components := router.Group("/components")
	{
		components.POST("/lookup", r.handler.Lookup)
	}
}
