package routes

import (
	"github.com/gin-gonic/gin"

	"pdbstore/internal/handlers"
)

type LoadRoutes struct {
	handler *handlers.LoadHandler
	write   gin.HandlersChain
}

func NewLoadRoutes(handler *handlers.LoadHandler, write ...gin.HandlerFunc) *LoadRoutes {
	return &LoadRoutes{handler: handler, write: write}
}

func (r *LoadRoutes) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/counts", r.handler.Counts)

	load := router.Group("/load", r.write...)
	{
		load.POST("/:table", r.handler.Load)
	}
}
