package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"pdbstore/internal/models"
)

const createCorrespondenceIndexes = `
CREATE INDEX IF NOT EXISTS idx_pdb_unit_id_correspondence_old_id ON pdb_unit_id_correspondence(old_id);
CREATE INDEX IF NOT EXISTS idx_pdb_unit_id_correspondence_pdb_file ON pdb_unit_id_correspondence(pdb, pdb_file);
`

const createCoordinateIndexes = `
CREATE INDEX IF NOT EXISTS idx_pdb_coordinates_pdb_index ON pdb_coordinates(pdb, "index");
`

// Statements returns the DDL that ApplySchema executes, in order.
func Statements() []string {
	return []string{
		models.CorrespondenceTable.DDL(),
		createCorrespondenceIndexes,
		models.CoordinateTable.DDL(),
		createCoordinateIndexes,
	}
}

// ApplySchema creates both tables and their lookup indexes. Every statement
// is idempotent so it runs on every start.
func ApplySchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := Statements()

	for i, stmt := range statements {
		slog.Debug("applying schema statement", "step", i+1, "total", len(statements))
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d failed: %w", i+1, err)
		}
	}

	slog.Info("schema applied", "tables", len(models.Tables()))
	return nil
}

// DropSchema removes both tables and everything in them. Row reloads go
// through Load with replace; this is for rebuilding the tables themselves.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, t := range models.Tables() {
		if _, err := pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS \"%s\"", t.Name)); err != nil {
			return fmt.Errorf("failed to drop %s: %w", t.Name, err)
		}
	}
	return nil
}
