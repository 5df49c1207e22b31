// Package testutil holds shared test fixtures: a throwaway PostgreSQL
// container and in-memory stores with the same key constraints.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"pdbstore/internal/database"
)

const postgresImage = "postgres:16-alpine"

// NewPostgres starts a PostgreSQL container with the schema applied and
// returns a pool on it. The test is skipped in -short mode or when no
// container runtime is available.
func NewPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ctr, err := tcpostgres.Run(ctx, postgresImage,
		tcpostgres.WithDatabase("pdbstore"),
		tcpostgres.WithUsername("pdbstore"),
		tcpostgres.WithPassword("pdbstore"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := database.ConnectDSN(ctx, dsn, 4, 1)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.ApplySchema(ctx, pool))
	return pool
}
