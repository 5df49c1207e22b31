package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pdbstore/internal/config"
)

// EnsureDatabaseExists creates the configured database through the admin
// connection when it is missing. Without admin credentials it does nothing.
func EnsureDatabaseExists(ctx context.Context, cfg *config.Config) error {
	dsn, ok := cfg.AdminDSN()
	if !ok {
		slog.Debug("DB_ADMIN_USER not set, skipping database existence check")
		return nil
	}

	slog.Info("checking if database exists", "database", cfg.DBDatabase)

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer conn.Close(ctx)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)"
	if err := conn.QueryRow(ctx, query, cfg.DBDatabase).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}

	if exists {
		slog.Info("database already exists", "database", cfg.DBDatabase)
		return nil
	}

	// CREATE DATABASE cannot run inside a transaction block
	quotedDBName := pgx.Identifier{cfg.DBDatabase}.Sanitize()
	if _, err := conn.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", quotedDBName)); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	slog.Info("database created", "database", cfg.DBDatabase)

	return nil
}

// Connect opens the application pool described by cfg and pings it.
func Connect(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	slog.Info("connecting to database", "dsn", cfg.RedactedDSN())

	pool, err := ConnectDSN(ctx, cfg.DSN(), cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, err
	}

	slog.Info("database connection pool established")
	return pool, nil
}

// ConnectDSN opens a pool for an arbitrary connection string.
func ConnectDSN(ctx context.Context, dsn string, maxConns, minConns int32) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string (check your .env file): %w", err)
	}

	if maxConns > 0 {
		poolConfig.MaxConns = maxConns
	}
	if minConns >= 0 && minConns <= poolConfig.MaxConns {
		poolConfig.MinConns = minConns
	}
	poolConfig.MaxConnLifetime = 5 * time.Minute
	poolConfig.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}
