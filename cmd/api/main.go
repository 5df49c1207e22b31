package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"pdbstore/internal/config"
	"pdbstore/internal/database"
	"pdbstore/internal/logging"
	"pdbstore/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, flush := logging.SetupLogger(cfg.SeqURL, cfg.LogLevel)
	defer flush()
	slog.SetDefault(logger)

	if logging.ParseLevel(cfg.LogLevel) > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	if err := database.EnsureDatabaseExists(ctx, cfg); err != nil {
		slog.Error("failed to ensure database exists", "error", err)
		os.Exit(1)
	}

	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		slog.Error("failed to connect to database", "dsn", cfg.RedactedDSN(), "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.ApplySchema(ctx, pool); err != nil {
		slog.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	srv := server.NewServer(cfg, logger, pool)

	go func() {
		slog.Info("server listening", "addr", srv.Addr, "auth", cfg.AuthEnabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown", "error", err)
	}
	slog.Info("server exiting")
}
