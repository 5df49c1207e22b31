package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation  = "23505"
	pgNotNullViolation = "23502"
	pgOutOfRange       = "22003"
)

var (
	ErrUniquenessViolation = errors.New("uniqueness violation")
	ErrNullPrimaryKey      = errors.New("primary key cannot be null")
	ErrNotFound            = errors.New("record not found")
	ErrOutOfRange          = errors.New("value out of range")
)

// ConstraintError describes a rejected write. It matches
// ErrUniquenessViolation or ErrNullPrimaryKey through errors.Is.
type ConstraintError struct {
	Table      string // table name
	Column     string // column name, empty for table-level constraints
	Value      any    // offending value, may be nil
	Constraint string // "unique" or "not_null"
	Rows       []int  // for bulk loads: 1-based input lines involved
	Detail     string
}

func (e *ConstraintError) Error() string {
	parts := []string{fmt.Sprintf("constraint violation in %s.%s (%s)", e.Table, e.Column, e.Constraint)}

	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}
	if len(e.Rows) > 0 {
		lines := make([]string, len(e.Rows))
		for i, r := range e.Rows {
			lines[i] = fmt.Sprint(r)
		}
		parts = append(parts, "lines "+strings.Join(lines, ","))
	}
	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}

	return strings.Join(parts, " - ")
}

func (e *ConstraintError) Is(target error) bool {
	switch target {
	case ErrUniquenessViolation:
		return e.Constraint == "unique"
	case ErrNullPrimaryKey:
		return e.Constraint == "not_null"
	}
	return false
}

func NewUniqueViolation(table, column string, value any, rows []int) *ConstraintError {
	return &ConstraintError{
		Table:      table,
		Column:     column,
		Value:      value,
		Constraint: "unique",
		Rows:       rows,
	}
}

func NewNullPrimaryKey(table, column string, rows []int) *ConstraintError {
	return &ConstraintError{
		Table:      table,
		Column:     column,
		Constraint: "not_null",
		Rows:       rows,
	}
}

// translateError turns PostgreSQL constraint failures on table into
// ConstraintErrors, numeric overflow into ErrOutOfRange, and leaves every
// other error untouched.
func translateError(table string, value any, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		ce := NewUniqueViolation(table, "id", value, nil)
		ce.Detail = pgErr.Detail
		return ce
	case pgNotNullViolation:
		ce := NewNullPrimaryKey(table, pgErr.ColumnName, nil)
		ce.Detail = pgErr.Message
		return ce
	case pgOutOfRange:
		return fmt.Errorf("%w: %s: %s", ErrOutOfRange, table, pgErr.Message)
	}

	return err
}
