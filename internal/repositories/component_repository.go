package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"pdbstore/internal/models"
	"pdbstore/internal/utils"
)

type ComponentRepository struct {
	pool *pgxpool.Pool
}

func NewComponentRepository(pool *pgxpool.Pool) *ComponentRepository {
	return &ComponentRepository{pool: pool}
}

// pdb_coordinates.id holds the legacy nucleotide id, which is what
// pdb_unit_id_correspondence.old_id refers to.
const componentQuery = `
	SELECT
		COALESCE(U.pdb, ''),
		COALESCE(U.model, 0),
		COALESCE(U.chain, ''),
		COALESCE(U.seq_id, 0),
		COALESCE(U.comp_id, ''),
		C."index",
		COALESCE(U.sym_op, ''),
		COALESCE(U.ins_code, ''),
		COALESCE(U.alt_id, ''),
		COALESCE(U.atom, '')
	FROM pdb_coordinates AS C
	JOIN pdb_unit_id_correspondence AS U
		ON C.id = U.old_id
	WHERE C.pdb = $1
		AND U.pdb_file = $2
		AND C."index" = ANY($3)
	ORDER BY C."index", U.id
`

// Lookup returns one component per distinct unit found at the requested
// indexes, in index order, with the atom names of its correspondence rows.
func (r *ComponentRepository) Lookup(ctx context.Context, pdb, pdbFile string, indexes []int) ([]models.Component, error) {
	if len(indexes) == 0 {
		return []models.Component{}, nil
	}

	rows, err := r.pool.Query(ctx, componentQuery, pdb, pdbFile, indexes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scanned []ComponentRow
	for rows.Next() {
		var row ComponentRow
		if err := rows.Scan(
			&row.Component.PDB,
			&row.Component.Model,
			&row.Component.Chain,
			&row.Component.Number,
			&row.Component.Sequence,
			&row.Component.Index,
			&row.Component.Symmetry,
			&row.Component.InsCode,
			&row.Component.AltID,
			&row.Atom,
		); err != nil {
			return nil, err
		}
		scanned = append(scanned, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return GroupComponents(scanned), nil
}

// ComponentRow is one joined row: a unit plus the atom it names, if any.
type ComponentRow struct {
	Component models.Component
	Atom      string
}

// GroupComponents folds joined rows into components. Rows describing the
// same unit at the same index are merged and their atom names collected.
func GroupComponents(rows []ComponentRow) []models.Component {
	components := []models.Component{}
	for _, row := range rows {
		pos := -1
		for i := len(components) - 1; i >= 0 && components[i].Index == row.Component.Index; i-- {
			if components[i].SameUnit(row.Component) {
				pos = i
				break
			}
		}

		if pos < 0 {
			c := row.Component
			c.Atoms = nil
			components = append(components, c)
			pos = len(components) - 1
		}

		if row.Atom != "" && !utils.Contains(components[pos].Atoms, row.Atom) {
			components[pos].Atoms = append(components[pos].Atoms, row.Atom)
		}
	}
	return components
}
