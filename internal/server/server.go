package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"pdbstore/internal/config"
	"pdbstore/internal/handlers"
	"pdbstore/internal/middlewares"
	"pdbstore/internal/repositories"
	"pdbstore/internal/routes"
	"pdbstore/internal/services"
)

const (
	readHeaderTimeout = 10 * time.Second
	// bodyTimeout bounds reading a request and writing its response; it
	// covers bulk CSV uploads to /load.
	bodyTimeout = 5 * time.Minute
)

// Stores are the storage dependencies behind the HTTP API.
type Stores struct {
	Correspondences services.CorrespondenceStore
	Coordinates     services.CoordinateStore
	Components      services.ComponentFinder
	Schema          services.SchemaReader
}

// PostgresStores builds the pgx backed repositories on pool.
func PostgresStores(pool *pgxpool.Pool) Stores {
	return Stores{
		Correspondences: repositories.NewCorrespondenceRepository(pool),
		Coordinates:     repositories.NewCoordinateRepository(pool),
		Components:      repositories.NewComponentRepository(pool),
		Schema:          repositories.NewSchemaRepository(pool),
	}
}

func NewServer(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) *http.Server {
	router := NewRouter(cfg, logger, PostgresStores(pool))

	// Create and configure the HTTP server
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       bodyTimeout,
		WriteTimeout:      bodyTimeout,
	}
}

// NewRouter wires services, handlers and routes onto a gin engine.
func NewRouter(cfg *config.Config, logger *slog.Logger, stores Stores) *gin.Engine {
	// Dependency injection
	correspondenceService := services.NewCorrespondenceService(stores.Correspondences)
	coordinateService := services.NewCoordinateService(stores.Coordinates)
	loaderService := services.NewLoaderService(stores.Correspondences, stores.Coordinates)
	componentService := services.NewComponentService(stores.Components)
	schemaService := services.NewSchemaService(stores.Schema, "")

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestLogger(logger))
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	routes.RegisterRoutes(router, routes.Handlers{
		Schema:         handlers.NewSchemaHandler(schemaService),
		Correspondence: handlers.NewCorrespondenceHandler(correspondenceService),
		Coordinate:     handlers.NewCoordinateHandler(coordinateService),
		Load:           handlers.NewLoadHandler(loaderService),
		Component:      handlers.NewComponentHandler(componentService),
		TokenSecret:    cfg.AccessTokenSecret,
		WriteRateLimit: cfg.WriteRateLimit,
		WriteRateBurst: cfg.WriteRateBurst,
	})

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middlewares.RequestIDHeader},
		ExposeHeaders: []string{middlewares.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
