package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"pdbstore/internal/models"
	"pdbstore/internal/utils"
)

const (
	defaultSchema = "public"

	// catalog queries in flight at once during Verify
	verifyParallelism = 4
)

type SchemaService struct {
	reader SchemaReader
	schema string
}

// NewSchemaService creates a SchemaService reading the given database
// schema, "public" when empty.
func NewSchemaService(reader SchemaReader, schema string) *SchemaService {
	if schema == "" {
		schema = defaultSchema
	}
	return &SchemaService{reader: reader, schema: schema}
}

type SchemaIssue struct {
	Table   string `json:"table"`
	Column  string `json:"column,omitempty"`
	Problem string `json:"problem"`
}

type SchemaReport struct {
	Schema string        `json:"schema"`
	OK     bool          `json:"ok"`
	Issues []SchemaIssue `json:"issues"`
}

func (s *SchemaService) Definitions() []models.Table {
	return models.Tables()
}

// Verify compares the declared tables with the live catalog. Extra tables
// and extra columns are tolerated; anything the declared tables rely on
// that is missing or different is reported.
func (s *SchemaService) Verify(ctx context.Context) (*SchemaReport, error) {
	live, err := s.reader.GetTables(ctx, s.schema, models.TableNames()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	tables := models.Tables()
	perTable := make([][]SchemaIssue, len(tables))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(verifyParallelism)
	for i, want := range tables {
		if !utils.Contains(live, want.Name) {
			perTable[i] = []SchemaIssue{{Table: want.Name, Problem: "table is missing"}}
			continue
		}
		g.Go(func() error {
			issues, err := s.verifyTable(gctx, want)
			perTable[i] = issues
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &SchemaReport{Schema: s.schema, Issues: slices.Concat(perTable...)}
	if report.Issues == nil {
		report.Issues = []SchemaIssue{}
	}
	report.OK = len(report.Issues) == 0
	if !report.OK {
		slog.WarnContext(ctx, "schema drift detected", "schema", s.schema, "issues", len(report.Issues))
	}
	return report, nil
}

func (s *SchemaService) verifyTable(ctx context.Context, want models.Table) ([]SchemaIssue, error) {
	var issues []SchemaIssue

	columns, err := s.reader.GetColumns(ctx, s.schema, want.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for %s: %w", want.Name, err)
	}
	got := make(map[string]models.Column, len(columns))
	for _, col := range columns {
		got[col.Name] = col
	}

	for _, col := range want.Columns {
		have, ok := got[col.Name]
		switch {
		case !ok:
			issues = append(issues, SchemaIssue{Table: want.Name, Column: col.Name, Problem: "column is missing"})
		case !strings.EqualFold(have.DataType, col.DataType):
			issues = append(issues, SchemaIssue{
				Table:   want.Name,
				Column:  col.Name,
				Problem: fmt.Sprintf("type is %s, want %s", have.DataType, col.DataType),
			})
		case have.Nullable != col.Nullable:
			issues = append(issues, SchemaIssue{
				Table:   want.Name,
				Column:  col.Name,
				Problem: fmt.Sprintf("nullable is %t, want %t", have.Nullable, col.Nullable),
			})
		}
	}

	pks, err := s.reader.GetPrimaryKeys(ctx, s.schema, want.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get primary keys for %s: %w", want.Name, err)
	}
	if !slices.Equal(pks, want.PrimaryKeys) {
		issues = append(issues, SchemaIssue{
			Table:   want.Name,
			Problem: fmt.Sprintf("primary key is (%s), want (%s)", strings.Join(pks, ", "), strings.Join(want.PrimaryKeys, ", ")),
		})
	}

	fks, err := s.reader.GetForeignKeys(ctx, s.schema, want.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get foreign keys for %s: %w", want.Name, err)
	}
	for _, fk := range fks {
		issues = append(issues, SchemaIssue{
			Table:   want.Name,
			Column:  fk.FromColumn,
			Problem: fmt.Sprintf("unexpected foreign key %s to %s.%s", fk.ConstraintName, fk.ToTable, fk.ToColumn),
		})
	}

	return issues, nil
}

// Diagram renders the declared tables as a Mermaid ER diagram.
func (s *SchemaService) Diagram() string {
	return generateMermaid(models.Tables())
}

func generateMermaid(tables []models.Table) string {
	var sb strings.Builder

	sb.WriteString("erDiagram\n")

	for _, table := range tables {
		sb.WriteString(fmt.Sprintf("    %s {\n", strings.ToUpper(table.Name)))

		for _, col := range table.Columns {
			annotations := ""
			if table.IsPrimaryKey(col.Name) {
				annotations = " PK"
			}

			sb.WriteString(fmt.Sprintf("        %s %s%s\n",
				simplifyDataType(col.DataType),
				col.Name,
				annotations))
		}

		sb.WriteString("    }\n\n")
	}

	return sb.String()
}

func simplifyDataType(dataType string) string {
	dt := strings.ToLower(dataType)

	switch {
	case dt == "integer":
		return "int"
	case dt == "bigint":
		return "bigint"
	case strings.HasPrefix(dt, "character varying"):
		return "varchar"
	case dt == "text":
		return "text"
	default:
		return dataType
	}
}
