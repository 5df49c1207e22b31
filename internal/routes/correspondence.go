package routes

import (
	"github.com/gin-gonic/gin"

	"pdbstore/internal/handlers"
)

type CorrespondenceRoutes struct {
	handler *handlers.CorrespondenceHandler
	write   gin.HandlersChain
}

func NewCorrespondenceRoutes(handler *handlers.CorrespondenceHandler, write ...gin.HandlerFunc) *CorrespondenceRoutes {
	return &CorrespondenceRoutes{handler: handler, write: write}
}

func (r *CorrespondenceRoutes) RegisterRoutes(router *gin.RouterGroup) {
	correspondences := router.Group("/correspondences")
	{
		correspondences.GET("", r.handler.List)
		correspondences.GET("/:id", r.handler.Get)
	}

	writes := correspondences.Group("", r.write...)
	{
		writes.POST("", r.handler.Create)
	}
}
