package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"pdbstore/internal/models"
	"pdbstore/internal/repositories"
)

// ErrInvalidRequest marks caller mistakes (bad parameters, malformed input)
// as opposed to storage failures.
var ErrInvalidRequest = errors.New("invalid request")

const (
	defaultListLimit = 100
	maxListLimit     = 10000
)

type CorrespondenceStore interface {
	Create(ctx context.Context, rec *models.PdbUnitIdCorrespondence) error
	GetByID(ctx context.Context, id int64) (*models.PdbUnitIdCorrespondence, error)
	List(ctx context.Context, pdb, pdbFile string, limit int) ([]models.PdbUnitIdCorrespondence, error)
	Count(ctx context.Context) (int64, error)
	Load(ctx context.Context, records []models.PdbUnitIdCorrespondence, replace bool) (int64, error)
}

type CoordinateStore interface {
	Create(ctx context.Context, rec *models.PdbCoordinate) error
	GetByID(ctx context.Context, id string) (*models.PdbCoordinate, error)
	List(ctx context.Context, pdb string, limit int) ([]models.PdbCoordinate, error)
	Count(ctx context.Context) (int64, error)
	Load(ctx context.Context, records []models.PdbCoordinate, replace bool) (int64, error)
}

type ComponentFinder interface {
	Lookup(ctx context.Context, pdb, pdbFile string, indexes []int) ([]models.Component, error)
}

type SchemaReader interface {
	GetTables(ctx context.Context, schema string, names ...string) ([]string, error)
	GetColumns(ctx context.Context, schema, table string) ([]models.Column, error)
	GetPrimaryKeys(ctx context.Context, schema, table string) ([]string, error)
	GetForeignKeys(ctx context.Context, schema, table string) ([]models.ForeignKey, error)
}

var (
	_ CorrespondenceStore = (*repositories.CorrespondenceRepository)(nil)
	_ CoordinateStore     = (*repositories.CoordinateRepository)(nil)
	_ ComponentFinder     = (*repositories.ComponentRepository)(nil)
	_ SchemaReader        = (*repositories.SchemaRepository)(nil)
)

// clampLimit applies the list defaults: zero or negative means the default
// page size and anything above the maximum is capped.
func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

// intField names a nullable value bound for an INTEGER column.
type intField struct {
	column string
	value  *int
}

// checkInt32 rejects values that PostgreSQL INTEGER columns cannot hold.
func checkInt32(column string, v int64) error {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return fmt.Errorf("%w: %s %d is out of range for integer", ErrInvalidRequest, column, v)
	}
	return nil
}

func checkInt32Fields(fields ...intField) error {
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if err := checkInt32(f.column, int64(*f.value)); err != nil {
			return err
		}
	}
	return nil
}
