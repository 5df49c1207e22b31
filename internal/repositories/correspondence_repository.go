package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pdbstore/internal/models"
)

type CorrespondenceRepository struct {
	pool *pgxpool.Pool
}

func NewCorrespondenceRepository(pool *pgxpool.Pool) *CorrespondenceRepository {
	return &CorrespondenceRepository{pool: pool}
}

var correspondenceTable = models.CorrespondenceTable

func (r *CorrespondenceRepository) Create(ctx context.Context, rec *models.PdbUnitIdCorrespondence) error {
	query := fmt.Sprintf(`
		INSERT INTO pdb_unit_id_correspondence (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, correspondenceTable.QuotedColumns())

	if _, err := r.pool.Exec(ctx, query, rec.Values()...); err != nil {
		return translateError(correspondenceTable.Name, rec.ID, err)
	}
	return nil
}

func (r *CorrespondenceRepository) GetByID(ctx context.Context, id int64) (*models.PdbUnitIdCorrespondence, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM pdb_unit_id_correspondence WHERE id = $1
	`, correspondenceTable.QuotedColumns())

	var rec models.PdbUnitIdCorrespondence
	if err := r.pool.QueryRow(ctx, query, id).Scan(rec.ScanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &rec, nil
}

// List returns rows for a structure ordered by id. An empty pdbFile
// matches every source file; limit <= 0 means no limit.
func (r *CorrespondenceRepository) List(ctx context.Context, pdb, pdbFile string, limit int) ([]models.PdbUnitIdCorrespondence, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM pdb_unit_id_correspondence
		WHERE pdb = $1 AND ($2 = '' OR pdb_file = $2)
		ORDER BY id
	`, correspondenceTable.QuotedColumns())

	args := []any{pdb, pdbFile}
	if limit > 0 {
		query += " LIMIT $3"
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.PdbUnitIdCorrespondence{}
	for rows.Next() {
		var rec models.PdbUnitIdCorrespondence
		if err := rows.Scan(rec.ScanTargets()...); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *CorrespondenceRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM pdb_unit_id_correspondence").Scan(&n)
	return n, err
}

// Load bulk copies records inside one transaction. With replace set the
// table is truncated first, so a failed reload leaves the old data intact.
func (r *CorrespondenceRepository) Load(ctx context.Context, records []models.PdbUnitIdCorrespondence, replace bool) (int64, error) {
	var copied int64
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if replace {
			if _, err := tx.Exec(ctx, "TRUNCATE TABLE pdb_unit_id_correspondence"); err != nil {
				return fmt.Errorf("failed to truncate: %w", err)
			}
		}

		n, err := tx.CopyFrom(ctx,
			pgx.Identifier{correspondenceTable.Name},
			correspondenceTable.ColumnNames(),
			pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
				return records[i].Values(), nil
			}),
		)
		copied = n
		return err
	})
	if err != nil {
		return 0, translateError(correspondenceTable.Name, nil, err)
	}

	return copied, nil
}
