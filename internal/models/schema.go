package models

import (
	"fmt"
	"strings"
)

type Column struct {
	Name     string `json:"name"`
	DataType string `json:"data_type"` // information_schema spelling: 'integer' or 'text'
	Nullable bool   `json:"nullable"`
}

type ForeignKey struct {
	ConstraintName string `json:"constraint_name"`
	FromColumn     string `json:"from_column"`
	ToTable        string `json:"to_table"`
	ToColumn       string `json:"to_column"`
}

type Table struct {
	Name        string   `json:"name"`
	Columns     []Column `json:"columns"`
	PrimaryKeys []string `json:"primary_keys"`
}

var CorrespondenceTable = Table{
	Name: "pdb_unit_id_correspondence",
	Columns: []Column{
		{Name: "id", DataType: "integer"},
		{Name: "old_id", DataType: "text", Nullable: true},
		{Name: "unit_id", DataType: "text", Nullable: true},
		{Name: "pdb", DataType: "text", Nullable: true},
		{Name: "model", DataType: "integer", Nullable: true},
		{Name: "chain", DataType: "text", Nullable: true},
		{Name: "seq_id", DataType: "integer", Nullable: true},
		{Name: "comp_id", DataType: "text", Nullable: true},
		{Name: "atom", DataType: "text", Nullable: true},
		{Name: "alt_id", DataType: "text", Nullable: true},
		{Name: "ins_code", DataType: "text", Nullable: true},
		{Name: "sym_op", DataType: "text", Nullable: true},
		{Name: "pdb_file", DataType: "text", Nullable: true},
	},
	PrimaryKeys: []string{"id"},
}

var CoordinateTable = Table{
	Name: "pdb_coordinates",
	Columns: []Column{
		{Name: "id", DataType: "text"},
		{Name: "pdb", DataType: "text", Nullable: true},
		{Name: "pdb_type", DataType: "text", Nullable: true},
		{Name: "model", DataType: "integer", Nullable: true},
		{Name: "chain", DataType: "text", Nullable: true},
		{Name: "number", DataType: "integer", Nullable: true},
		{Name: "unit", DataType: "text", Nullable: true},
		{Name: "ins_code", DataType: "text", Nullable: true},
		{Name: "index", DataType: "integer", Nullable: true},
	},
	PrimaryKeys: []string{"id"},
}

// Tables returns every table definition in creation order.
func Tables() []Table {
	return []Table{CorrespondenceTable, CoordinateTable}
}

// TableNames returns the name of every table in creation order.
func TableNames() []string {
	tables := Tables()
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name
	}
	return names
}

// LookupTable finds a table definition by its table name.
func LookupTable(name string) (Table, bool) {
	for _, t := range Tables() {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

func (t Table) Column(name string) (Column, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

func (t Table) IsPrimaryKey(name string) bool {
	for _, pk := range t.PrimaryKeys {
		if pk == name {
			return true
		}
	}
	return false
}

// QuotedColumns returns the column list ready for a SELECT or INSERT.
// "index" is a keyword in most SQL dialects, so every name is quoted.
func (t Table) QuotedColumns() string {
	quoted := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		quoted[i] = fmt.Sprintf("\"%s\"", col.Name)
	}
	return strings.Join(quoted, ", ")
}

// DDL renders an idempotent CREATE TABLE statement for the definition.
func (t Table) DDL() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("CREATE TABLE IF NOT EXISTS \"%s\" (\n", t.Name))
	for _, col := range t.Columns {
		columnDef := fmt.Sprintf("  \"%s\" %s", col.Name, strings.ToUpper(col.DataType))
		if !col.Nullable {
			columnDef += " NOT NULL"
		}
		sb.WriteString(columnDef + ",\n")
	}

	pks := make([]string, len(t.PrimaryKeys))
	for i, pk := range t.PrimaryKeys {
		pks[i] = fmt.Sprintf("\"%s\"", pk)
	}
	sb.WriteString(fmt.Sprintf("  PRIMARY KEY (%s)\n", strings.Join(pks, ", ")))
	sb.WriteString(");\n")

	return sb.String()
}
