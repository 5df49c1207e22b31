package repositories_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdbstore/internal/models"
	"pdbstore/internal/repositories"
	"pdbstore/internal/testutil"
	"pdbstore/internal/utils"
)

func truncate(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), "TRUNCATE pdb_unit_id_correspondence, pdb_coordinates")
	require.NoError(t, err)
}

func fullCorrespondence(id int64) models.PdbUnitIdCorrespondence {
	return models.PdbUnitIdCorrespondence{
		ID:      id,
		OldID:   utils.Ptr("1S72_AU_1_0_55_U_"),
		UnitID:  utils.Ptr("1S72|1|0|U|55|P|B|A|2_555"),
		PDB:     utils.Ptr("1S72"),
		Model:   utils.Ptr(1),
		Chain:   utils.Ptr("0"),
		SeqID:   utils.Ptr(55),
		CompID:  utils.Ptr("U"),
		Atom:    utils.Ptr("P"),
		AltID:   utils.Ptr("B"),
		InsCode: utils.Ptr("A"),
		SymOp:   utils.Ptr("2_555"),
		PDBFile: utils.Ptr("1S72.cif"),
	}
}

func TestPostgres(t *testing.T) {
	pool := testutil.NewPostgres(t)
	ctx := context.Background()

	correspondences := repositories.NewCorrespondenceRepository(pool)
	coordinates := repositories.NewCoordinateRepository(pool)

	t.Run("correspondence round trip", func(t *testing.T) {
		truncate(t, pool)
		rec := fullCorrespondence(42)
		require.NoError(t, correspondences.Create(ctx, &rec))

		got, err := correspondences.GetByID(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, rec, *got)
	})

	t.Run("null and empty text stay distinct", func(t *testing.T) {
		truncate(t, pool)
		rec := models.PdbUnitIdCorrespondence{ID: 7, PDB: utils.Ptr("2AVY"), InsCode: utils.Ptr("")}
		require.NoError(t, correspondences.Create(ctx, &rec))

		got, err := correspondences.GetByID(ctx, 7)
		require.NoError(t, err)
		require.NotNil(t, got.InsCode)
		assert.Equal(t, "", *got.InsCode)
		assert.Nil(t, got.AltID)
		assert.Nil(t, got.Model)
	})

	t.Run("whitespace is stored as given", func(t *testing.T) {
		truncate(t, pool)
		rec := models.PdbCoordinate{ID: " X", Chain: utils.Ptr(" "), Unit: utils.Ptr(" CA ")}
		require.NoError(t, coordinates.Create(ctx, &rec))

		got, err := coordinates.GetByID(ctx, " X")
		require.NoError(t, err)
		assert.Equal(t, rec, *got)

		_, err = coordinates.GetByID(ctx, "X")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("integer overflow raises numeric out of range", func(t *testing.T) {
		truncate(t, pool)
		_, err := pool.Exec(ctx, `INSERT INTO pdb_coordinates (id, model) VALUES ('X1', 2147483647)`)
		require.NoError(t, err)

		_, err = pool.Exec(ctx, `UPDATE pdb_coordinates SET model = model + 1 WHERE id = 'X1'`)
		var pgErr *pgconn.PgError
		require.ErrorAs(t, err, &pgErr)
		assert.Equal(t, "22003", pgErr.Code)
	})

	t.Run("coordinate scenario", func(t *testing.T) {
		truncate(t, pool)
		rec := models.PdbCoordinate{
			ID:      "101M_1_A_1",
			PDB:     utils.Ptr("101M"),
			PDBType: utils.Ptr("ATOM"),
			Model:   utils.Ptr(1),
			Chain:   utils.Ptr("A"),
			Number:  utils.Ptr(1),
			Unit:    utils.Ptr("MET"),
			InsCode: utils.Ptr(""),
			Index:   utils.Ptr(0),
		}
		require.NoError(t, coordinates.Create(ctx, &rec))

		got, err := coordinates.GetByID(ctx, "101M_1_A_1")
		require.NoError(t, err)
		assert.Equal(t, rec, *got)
	})

	t.Run("duplicate correspondence id", func(t *testing.T) {
		truncate(t, pool)
		first := fullCorrespondence(1)
		second := fullCorrespondence(2)
		require.NoError(t, correspondences.Create(ctx, &first))
		require.NoError(t, correspondences.Create(ctx, &second))

		again := fullCorrespondence(1)
		again.PDB = utils.Ptr("2AVY")
		err := correspondences.Create(ctx, &again)
		require.ErrorIs(t, err, repositories.ErrUniquenessViolation)

		got1, err := correspondences.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "1S72", *got1.PDB)
		_, err = correspondences.GetByID(ctx, 2)
		require.NoError(t, err)

		n, err := correspondences.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("duplicate coordinate id", func(t *testing.T) {
		truncate(t, pool)
		rec := models.PdbCoordinate{ID: "1S72_AU_1_0_55_U_"}
		require.NoError(t, coordinates.Create(ctx, &rec))
		assert.ErrorIs(t, coordinates.Create(ctx, &rec), repositories.ErrUniquenessViolation)
	})

	t.Run("null id is rejected by the database", func(t *testing.T) {
		for _, table := range models.Tables() {
			_, err := pool.Exec(ctx, "INSERT INTO "+table.Name+" (id, pdb) VALUES (NULL, '101M')")
			var pgErr *pgconn.PgError
			require.True(t, errors.As(err, &pgErr), "table %s", table.Name)
			assert.Equal(t, "23502", pgErr.Code)
		}
	})

	t.Run("missing row", func(t *testing.T) {
		truncate(t, pool)
		_, err := correspondences.GetByID(ctx, 999)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		_, err = coordinates.GetByID(ctx, "nope")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("bulk load is atomic", func(t *testing.T) {
		truncate(t, pool)
		n, err := correspondences.Load(ctx, []models.PdbUnitIdCorrespondence{fullCorrespondence(1), fullCorrespondence(2)}, false)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		_, err = correspondences.Load(ctx, []models.PdbUnitIdCorrespondence{fullCorrespondence(3), fullCorrespondence(1)}, false)
		require.ErrorIs(t, err, repositories.ErrUniquenessViolation)

		count, err := correspondences.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		n, err = correspondences.Load(ctx, []models.PdbUnitIdCorrespondence{fullCorrespondence(1)}, true)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		count, err = correspondences.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("list filters and orders", func(t *testing.T) {
		truncate(t, pool)
		other := fullCorrespondence(5)
		other.PDBFile = utils.Ptr("1S72.pdb")
		_, err := correspondences.Load(ctx, []models.PdbUnitIdCorrespondence{fullCorrespondence(9), other, fullCorrespondence(3)}, false)
		require.NoError(t, err)

		all, err := correspondences.List(ctx, "1S72", "", 0)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []int64{3, 5, 9}, []int64{all[0].ID, all[1].ID, all[2].ID})

		cif, err := correspondences.List(ctx, "1S72", "1S72.cif", 1)
		require.NoError(t, err)
		require.Len(t, cif, 1)
		assert.Equal(t, int64(3), cif[0].ID)
	})

	t.Run("component lookup joins on old id", func(t *testing.T) {
		truncate(t, pool)
		_, err := coordinates.Load(ctx, []models.PdbCoordinate{
			{ID: "1GID_AU_1_A_103_G_", PDB: utils.Ptr("1GID"), Index: utils.Ptr(0)},
			{ID: "1GID_AU_1_A_104_A_", PDB: utils.Ptr("1GID"), Index: utils.Ptr(1)},
		}, false)
		require.NoError(t, err)

		g := func(id int64, atom string) models.PdbUnitIdCorrespondence {
			return models.PdbUnitIdCorrespondence{
				ID: id, OldID: utils.Ptr("1GID_AU_1_A_103_G_"), PDB: utils.Ptr("1GID"), Model: utils.Ptr(1),
				Chain: utils.Ptr("A"), SeqID: utils.Ptr(103), CompID: utils.Ptr("G"), Atom: utils.Ptr(atom),
				PDBFile: utils.Ptr("1GID.cif"),
			}
		}
		_, err = correspondences.Load(ctx, []models.PdbUnitIdCorrespondence{g(1, "P"), g(2, "OP1")}, false)
		require.NoError(t, err)

		components, err := repositories.NewComponentRepository(pool).Lookup(ctx, "1GID", "1GID.cif", []int{0, 1})
		require.NoError(t, err)
		require.Len(t, components, 1)
		assert.Equal(t, 103, components[0].Number)
		assert.Equal(t, "G", components[0].Sequence)
		assert.Equal(t, []string{"P", "OP1"}, components[0].Atoms)
	})
}
