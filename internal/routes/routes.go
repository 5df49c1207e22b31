package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pdbstore/internal/handlers"
	"pdbstore/internal/middlewares"
)

// Handlers bundles everything RegisterRoutes mounts.
type Handlers struct {
	Schema         *handlers.SchemaHandler
	Correspondence *handlers.CorrespondenceHandler
	Coordinate     *handlers.CoordinateHandler
	Load           *handlers.LoadHandler
	Component      *handlers.ComponentHandler
	TokenSecret    []byte
	WriteRateLimit int
	WriteRateBurst int
}

func RegisterRoutes(router *gin.Engine, h Handlers) {
	api := router.Group("/api/v1")
	// Write routes are rate limited before the token is checked.
	write := []gin.HandlerFunc{
		middlewares.RateLimiter(h.WriteRateLimit, h.WriteRateBurst),
		middlewares.Authenticate(h.TokenSecret),
	}

	NewSchemaRoutes(h.Schema).RegisterRoutes(api)
	NewCorrespondenceRoutes(h.Correspondence, write...).RegisterRoutes(api)
	NewCoordinateRoutes(h.Coordinate, write...).RegisterRoutes(api)
	NewLoadRoutes(h.Load, write...).RegisterRoutes(api)
	NewComponentRoutes(h.Component).RegisterRoutes(api)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
