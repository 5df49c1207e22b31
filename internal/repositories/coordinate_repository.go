package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pdbstore/internal/models"
)

type CoordinateRepository struct {
	pool *pgxpool.Pool
}

func NewCoordinateRepository(pool *pgxpool.Pool) *CoordinateRepository {
	return &CoordinateRepository{pool: pool}
}

var coordinateTable = models.CoordinateTable

func (r *CoordinateRepository) Create(ctx context.Context, rec *models.PdbCoordinate) error {
	query := fmt.Sprintf(`
		INSERT INTO pdb_coordinates (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, coordinateTable.QuotedColumns())

	if _, err := r.pool.Exec(ctx, query, rec.Values()...); err != nil {
		return translateError(coordinateTable.Name, rec.ID, err)
	}
	return nil
}

func (r *CoordinateRepository) GetByID(ctx context.Context, id string) (*models.PdbCoordinate, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM pdb_coordinates WHERE id = $1
	`, coordinateTable.QuotedColumns())

	var rec models.PdbCoordinate
	if err := r.pool.QueryRow(ctx, query, id).Scan(rec.ScanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &rec, nil
}

// List returns the coordinates of one structure in index order.
func (r *CoordinateRepository) List(ctx context.Context, pdb string, limit int) ([]models.PdbCoordinate, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM pdb_coordinates
		WHERE pdb = $1
		ORDER BY model, "index" NULLS LAST, id
	`, coordinateTable.QuotedColumns())

	args := []any{pdb}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.PdbCoordinate{}
	for rows.Next() {
		var rec models.PdbCoordinate
		if err := rows.Scan(rec.ScanTargets()...); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *CoordinateRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM pdb_coordinates").Scan(&n)
	return n, err
}

// Load bulk copies records inside one transaction, truncating first when
// replace is set.
func (r *CoordinateRepository) Load(ctx context.Context, records []models.PdbCoordinate, replace bool) (int64, error) {
	var copied int64
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if replace {
			if _, err := tx.Exec(ctx, "TRUNCATE TABLE pdb_coordinates"); err != nil {
				return fmt.Errorf("failed to truncate: %w", err)
			}
		}

		n, err := tx.CopyFrom(ctx,
			pgx.Identifier{coordinateTable.Name},
			coordinateTable.ColumnNames(),
			pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
				return records[i].Values(), nil
			}),
		)
		copied = n
		return err
	})
	if err != nil {
		return 0, translateError(coordinateTable.Name, nil, err)
	}

	return copied, nil
}
