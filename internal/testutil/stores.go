package testutil

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"pdbstore/internal/models"
	"pdbstore/internal/repositories"
)

// CorrespondenceStore is an in-memory pdb_unit_id_correspondence.
type CorrespondenceStore struct {
	mu   sync.Mutex
	rows map[int64]models.PdbUnitIdCorrespondence
	Err  error // returned by every call when set
}

func NewCorrespondenceStore() *CorrespondenceStore {
	return &CorrespondenceStore{rows: make(map[int64]models.PdbUnitIdCorrespondence)}
}

func (s *CorrespondenceStore) Create(_ context.Context, rec *models.PdbUnitIdCorrespondence) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, dup := s.rows[rec.ID]; dup {
		return repositories.NewUniqueViolation(models.CorrespondenceTable.Name, "id", rec.ID, nil)
	}
	s.rows[rec.ID] = *rec
	return nil
}

func (s *CorrespondenceStore) GetByID(_ context.Context, id int64) (*models.PdbUnitIdCorrespondence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	rec, ok := s.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &rec, nil
}

func (s *CorrespondenceStore) List(_ context.Context, pdb, pdbFile string, limit int) ([]models.PdbUnitIdCorrespondence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	records := []models.PdbUnitIdCorrespondence{}
	for _, rec := range s.rows {
		if rec.PDB == nil || *rec.PDB != pdb {
			continue
		}
		if pdbFile != "" && (rec.PDBFile == nil || *rec.PDBFile != pdbFile) {
			continue
		}
		records = append(records, rec)
	}
	slices.SortFunc(records, func(a, b models.PdbUnitIdCorrespondence) int { return cmp.Compare(a.ID, b.ID) })
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *CorrespondenceStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.rows)), s.Err
}

// Load is all or nothing, like the transactional repository.
func (s *CorrespondenceStore) Load(_ context.Context, records []models.PdbUnitIdCorrespondence, replace bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}

	next := make(map[int64]models.PdbUnitIdCorrespondence)
	if !replace {
		for id, rec := range s.rows {
			next[id] = rec
		}
	}
	for _, rec := range records {
		if _, dup := next[rec.ID]; dup {
			return 0, repositories.NewUniqueViolation(models.CorrespondenceTable.Name, "id", rec.ID, nil)
		}
		next[rec.ID] = rec
	}
	s.rows = next
	return int64(len(records)), nil
}

// CoordinateStore is an in-memory pdb_coordinates.
type CoordinateStore struct {
	mu   sync.Mutex
	rows map[string]models.PdbCoordinate
	Err  error
}

func NewCoordinateStore() *CoordinateStore {
	return &CoordinateStore{rows: make(map[string]models.PdbCoordinate)}
}

func (s *CoordinateStore) Create(_ context.Context, rec *models.PdbCoordinate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if rec.ID == "" {
		return repositories.NewNullPrimaryKey(models.CoordinateTable.Name, "id", nil)
	}
	if _, dup := s.rows[rec.ID]; dup {
		return repositories.NewUniqueViolation(models.CoordinateTable.Name, "id", rec.ID, nil)
	}
	s.rows[rec.ID] = *rec
	return nil
}

func (s *CoordinateStore) GetByID(_ context.Context, id string) (*models.PdbCoordinate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	rec, ok := s.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &rec, nil
}

func (s *CoordinateStore) List(_ context.Context, pdb string, limit int) ([]models.PdbCoordinate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	records := []models.PdbCoordinate{}
	for _, rec := range s.rows {
		if rec.PDB != nil && *rec.PDB == pdb {
			records = append(records, rec)
		}
	}
	slices.SortFunc(records, func(a, b models.PdbCoordinate) int { return cmp.Compare(a.ID, b.ID) })
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *CoordinateStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.rows)), s.Err
}

func (s *CoordinateStore) Load(_ context.Context, records []models.PdbCoordinate, replace bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}

	next := make(map[string]models.PdbCoordinate)
	if !replace {
		for id, rec := range s.rows {
			next[id] = rec
		}
	}
	for _, rec := range records {
		if _, dup := next[rec.ID]; dup {
			return 0, repositories.NewUniqueViolation(models.CoordinateTable.Name, "id", rec.ID, nil)
		}
		next[rec.ID] = rec
	}
	s.rows = next
	return int64(len(records)), nil
}

// ComponentFinder returns canned components filtered by index.
type ComponentFinder struct {
	Components []models.Component
	Err        error
	Calls      [][]int
}

func (f *ComponentFinder) Lookup(_ context.Context, _, _ string, indexes []int) ([]models.Component, error) {
	f.Calls = append(f.Calls, indexes)
	if f.Err != nil {
		return nil, f.Err
	}

	found := []models.Component{}
	for _, c := range f.Components {
		if slices.Contains(indexes, c.Index) {
			found = append(found, c)
		}
	}
	return found, nil
}

// SchemaReader serves a fixed catalog.
type SchemaReader struct {
	Tables      []string
	Columns     map[string][]models.Column
	PrimaryKeys map[string][]string
	ForeignKeys map[string][]models.ForeignKey
	Err         error
	Requested   []string
}

// HealthySchema returns a catalog identical to the declared tables.
func HealthySchema() *SchemaReader {
	r := &SchemaReader{
		Columns:     make(map[string][]models.Column),
		PrimaryKeys: make(map[string][]string),
		ForeignKeys: make(map[string][]models.ForeignKey),
	}
	for _, t := range models.Tables() {
		r.Tables = append(r.Tables, t.Name)
		r.Columns[t.Name] = slices.Clone(t.Columns)
		r.PrimaryKeys[t.Name] = slices.Clone(t.PrimaryKeys)
	}
	return r
}

// GetTables filters Tables by names like the catalog query does and
// records the names it was asked for.
func (r *SchemaReader) GetTables(_ context.Context, _ string, names ...string) ([]string, error) {
	r.Requested = names
	if len(names) == 0 {
		return r.Tables, r.Err
	}
	var tables []string
	for _, t := range r.Tables {
		if slices.Contains(names, t) {
			tables = append(tables, t)
		}
	}
	return tables, r.Err
}

func (r *SchemaReader) GetColumns(_ context.Context, _, table string) ([]models.Column, error) {
	return r.Columns[table], r.Err
}

func (r *SchemaReader) GetPrimaryKeys(_ context.Context, _, table string) ([]string, error) {
	return r.PrimaryKeys[table], r.Err
}

func (r *SchemaReader) GetForeignKeys(_ context.Context, _, table string) ([]models.ForeignKey, error) {
	return r.ForeignKeys[table], r.Err
}
