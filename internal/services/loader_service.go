package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"pdbstore/internal/models"
	"pdbstore/internal/repositories"
)

// NullMarker is the CSV cell spelling of NULL, as written by
// mysqldump and PostgreSQL COPY.
const NullMarker = `\N`

type LoadResult struct {
	Table      string `json:"table"`
	Rows       int64  `json:"rows"`
	Replaced   bool   `json:"replaced"`
	DurationMS int64  `json:"duration_ms"`
}

// LoaderService bulk loads CSV exports into the two tables. Loads are
// serialized: there is a single writer per process.
type LoaderService struct {
	correspondences CorrespondenceStore
	coordinates     CoordinateStore
	mu              sync.Mutex
}

func NewLoaderService(correspondences CorrespondenceStore, coordinates CoordinateStore) *LoaderService {
	return &LoaderService{
		correspondences: correspondences,
		coordinates:     coordinates,
	}
}

// Counts returns the number of rows in each table, keyed by table name.
func (s *LoaderService) Counts(ctx context.Context) (map[string]int64, error) {
	correspondences, err := s.correspondences.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", models.CorrespondenceTable.Name, err)
	}
	coordinates, err := s.coordinates.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", models.CoordinateTable.Name, err)
	}
	return map[string]int64{
		models.CorrespondenceTable.Name: correspondences,
		models.CoordinateTable.Name:     coordinates,
	}, nil
}

// LoadCSV parses the whole input before touching the database, so a
// malformed file never produces a partial load.
func (s *LoaderService) LoadCSV(ctx context.Context, table string, r io.Reader, replace bool) (*LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	var (
		n   int64
		err error
	)

	switch table {
	case models.CorrespondenceTable.Name:
		var records []models.PdbUnitIdCorrespondence
		records, err = ParseCorrespondenceCSV(r)
		if err != nil {
			return nil, err
		}
		n, err = s.correspondences.Load(ctx, records, replace)
	case models.CoordinateTable.Name:
		var records []models.PdbCoordinate
		records, err = ParseCoordinateCSV(r)
		if err != nil {
			return nil, err
		}
		n, err = s.coordinates.Load(ctx, records, replace)
	default:
		return nil, fmt.Errorf("%w: unknown table %q", ErrInvalidRequest, table)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", table, err)
	}

	elapsed := time.Since(start)
	result := &LoadResult{
		Table:      table,
		Rows:       n,
		Replaced:   replace,
		DurationMS: elapsed.Milliseconds(),
	}
	slog.InfoContext(ctx, "bulk load finished",
		"table", table,
		"rows", n,
		"replaced", replace,
		"duration", elapsed,
	)

	return result, nil
}

type cellSetter[T any] func(rec *T, cell string) error

var correspondenceSetters = map[string]cellSetter[models.PdbUnitIdCorrespondence]{
	"id": func(rec *models.PdbUnitIdCorrespondence, cell string) error {
		n, err := strconv.ParseInt(strings.TrimSpace(cell), 10, 32)
		rec.ID = n
		return err
	},
	"old_id":   func(rec *models.PdbUnitIdCorrespondence, cell string) error { rec.OldID = textCell(cell); return nil },
	"unit_id":  func(rec *models.PdbUnitIdCorrespondence, cell string) error { rec.UnitID = textCell(cell); return nil },
	"pdb":      func(rec *models.PdbUnitIdCorrespondence, cell string) error { rec.PDB = textCell(cell); return nil },
	"model":    func(rec *models.PdbUnitIdCorrespondence, cell string) (err error) { rec.Model, err = intCell(cell); return },
	"chain":    func(rec *models.PdbUnitIdCorrespondence, cell string) error { rec.Chain = textCell(cell); return nil },
	"seq_id":   func(rec *models.PdbUnitIdCorrespondence, cell string) (err error) { rec.SeqID, err = intCell(cell); return },
	"comp_id":  func(rec *models.PdbUnitIdCorrespondence, cell string) error { rec.CompID = textCell(cell); return nil },
	"atom":     func(rec *models.PdbUnitIdCorrespondence, cell string) error { rec.Atom = textCell(cell); return nil },
	"alt_id":   func(rec *models.PdbUnitIdCorrespondence, cell string) error { rec.AltID = textCell(cell); return nil },
	"ins_code": func(rec *models.PdbUnitIdCorrespondence, cell string) error { rec.InsCode = textCell(cell); return nil },
	"sym_op":   func(rec *models.PdbUnitIdCorrespondence, cell string) error { rec.SymOp = textCell(cell); return nil },
	"pdb_file": func(rec *models.PdbUnitIdCorrespondence, cell string) error { rec.PDBFile = textCell(cell); return nil },
}

var coordinateSetters = map[string]cellSetter[models.PdbCoordinate]{
	"id":       func(rec *models.PdbCoordinate, cell string) error { rec.ID = cell; return nil },
	"pdb":      func(rec *models.PdbCoordinate, cell string) error { rec.PDB = textCell(cell); return nil },
	"pdb_type": func(rec *models.PdbCoordinate, cell string) error { rec.PDBType = textCell(cell); return nil },
	"model":    func(rec *models.PdbCoordinate, cell string) (err error) { rec.Model, err = intCell(cell); return },
	"chain":    func(rec *models.PdbCoordinate, cell string) error { rec.Chain = textCell(cell); return nil },
	"number":   func(rec *models.PdbCoordinate, cell string) (err error) { rec.Number, err = intCell(cell); return },
	"unit":     func(rec *models.PdbCoordinate, cell string) error { rec.Unit = textCell(cell); return nil },
	"ins_code": func(rec *models.PdbCoordinate, cell string) error { rec.InsCode = textCell(cell); return nil },
	"index":    func(rec *models.PdbCoordinate, cell string) (err error) { rec.Index, err = intCell(cell); return },
}

func ParseCorrespondenceCSV(r io.Reader) ([]models.PdbUnitIdCorrespondence, error) {
	return parseCSV(r, models.CorrespondenceTable, correspondenceSetters,
		func(rec *models.PdbUnitIdCorrespondence) any { return rec.ID })
}

func ParseCoordinateCSV(r io.Reader) ([]models.PdbCoordinate, error) {
	return parseCSV(r, models.CoordinateTable, coordinateSetters,
		func(rec *models.PdbCoordinate) any { return rec.ID })
}

// parseCSV reads a header row naming table columns verbatim, in any order,
// followed by data rows. Every row must carry a non-null id and ids must
// be unique within the file.
func parseCSV[T any](r io.Reader, table models.Table, setters map[string]cellSetter[T], key func(*T) any) ([]T, error) {
	reader := csv.NewReader(skipBOM(r))

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: empty input, a header row is required", ErrInvalidRequest, table.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRequest, table.Name, err)
	}

	columns, idPos, err := resolveHeader(header, table)
	if err != nil {
		return nil, err
	}
	nullKey := isNullText
	if keyCol, _ := table.Column(columns[idPos]); keyCol.DataType == "integer" {
		nullKey = isNullCell
	}

	var (
		records []T
		seen    = make(map[any]int)
	)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRequest, table.Name, err)
		}
		line, _ := reader.FieldPos(0)

		if nullKey(row[idPos]) {
			return nil, repositories.NewNullPrimaryKey(table.Name, "id", []int{line})
		}

		var rec T
		for i, cell := range row {
			if err := setters[columns[i]](&rec, cell); err != nil {
				return nil, fmt.Errorf("%w: %s line %d column %s: %v", ErrInvalidRequest, table.Name, line, columns[i], err)
			}
		}

		k := key(&rec)
		if first, dup := seen[k]; dup {
			return nil, repositories.NewUniqueViolation(table.Name, "id", k, []int{first, line})
		}
		seen[k] = line
		records = append(records, rec)
	}

	if records == nil {
		records = []T{}
	}
	return records, nil
}

func resolveHeader(header []string, table models.Table) ([]string, int, error) {
	columns := make([]string, len(header))
	idPos := -1
	seen := make(map[string]bool)

	for i, raw := range header {
		name := strings.Trim(strings.TrimSpace(raw), "`\"")

		if _, ok := table.Column(name); !ok {
			return nil, -1, fmt.Errorf("%w: %s has no column %q", ErrInvalidRequest, table.Name, name)
		}
		if seen[name] {
			return nil, -1, fmt.Errorf("%w: column %q appears twice in header", ErrInvalidRequest, name)
		}
		seen[name] = true
		if table.IsPrimaryKey(name) {
			idPos = i
		}
		columns[i] = name
	}

	if idPos < 0 {
		return nil, -1, fmt.Errorf("%w: %s header must include the id column", ErrInvalidRequest, table.Name)
	}
	return columns, idPos, nil
}

// skipBOM drops a leading UTF-8 byte order mark, which spreadsheet
// exports often prepend.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(3); err == nil && bytes.Equal(b, utf8BOM) {
		_, _ = br.Discard(3)
	}
	return br
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func isNullCell(cell string) bool {
	cell = strings.TrimSpace(cell)
	return cell == "" || cell == NullMarker
}

// isNullText reports a text key cell that is empty or the NULL marker.
// Whitespace is data in text columns.
func isNullText(cell string) bool {
	return cell == "" || cell == NullMarker
}

// textCell keeps the empty string and whitespace: only the explicit marker
// means NULL.
func textCell(cell string) *string {
	if cell == NullMarker {
		return nil
	}
	return &cell
}

func intCell(cell string) (*int, error) {
	if isNullCell(cell) {
		return nil, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(cell), 10, 32)
	if err != nil {
		return nil, err
	}
	v := int(n)
	return &v, nil
}
