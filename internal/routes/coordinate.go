package routes

import (
	"github.com/gin-gonic/gin"

	"pdbstore/internal/handlers"
)

type CoordinateRoutes struct {
	handler *handlers.CoordinateHandler
	write   gin.HandlersChain
}

func NewCoordinateRoutes(handler *handlers.CoordinateHandler, write ...gin.HandlerFunc) *CoordinateRoutes {
	return &CoordinateRoutes{handler: handler, write: write}
}

func (r *CoordinateRoutes) RegisterRoutes(router *gin.RouterGroup) {
	coordinates := router.Group("/coordinates")
	{
		coordinates.GET("", r.handler.List)
		coordinates.GET("/:id", r.handler.Get)
	}

	writes := coordinates.Group("", r.write...)
	{
		writes.POST("", r.handler.Create)
	}
}
