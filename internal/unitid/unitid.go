// Package unitid encodes and decodes FR3D style unit ids of the form
//
//	PDB|Model|Chain|CompID|Number|Atom|AltID|InsCode|SymOp
//
// Trailing empty fields are dropped and the identity symmetry operation
// 1_555 is never written.
package unitid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	Separator       = "|"
	DefaultSymmetry = "1_555"
	minFields       = 5
	maxFields       = 9
)

var ErrInvalidUnitID = errors.New("invalid unit id")

type UnitID struct {
	PDB      string `json:"pdb"`
	Model    int    `json:"model"`
	Chain    string `json:"chain"`
	CompID   string `json:"comp_id"`
	Number   int    `json:"number"`
	Atom     string `json:"atom,omitempty"`
	AltID    string `json:"alt_id,omitempty"`
	InsCode  string `json:"ins_code,omitempty"`
	Symmetry string `json:"symmetry,omitempty"`
}

// String renders the unit id. Empty trailing fields are omitted but an
// empty field followed by a populated one is kept as a placeholder.
func (u UnitID) String() string {
	symmetry := u.Symmetry
	if symmetry == DefaultSymmetry {
		symmetry = ""
	}

	fields := []string{
		u.PDB,
		strconv.Itoa(u.Model),
		u.Chain,
		u.CompID,
		strconv.Itoa(u.Number),
		u.Atom,
		u.AltID,
		u.InsCode,
		symmetry,
	}

	end := len(fields)
	for end > minFields && fields[end-1] == "" {
		end--
	}
	return strings.Join(fields[:end], Separator)
}

// Parse decodes a unit id string.
func Parse(s string) (UnitID, error) {
	fields := strings.Split(strings.TrimSpace(s), Separator)
	if len(fields) < minFields || len(fields) > maxFields {
		return UnitID{}, fmt.Errorf("%w: %q has %d fields, want %d to %d", ErrInvalidUnitID, s, len(fields), minFields, maxFields)
	}
	if fields[0] == "" {
		return UnitID{}, fmt.Errorf("%w: %q has no pdb", ErrInvalidUnitID, s)
	}

	model, err := strconv.Atoi(fields[1])
	if err != nil {
		return UnitID{}, fmt.Errorf("%w: model %q is not a number", ErrInvalidUnitID, fields[1])
	}
	number, err := strconv.Atoi(fields[4])
	if err != nil {
		return UnitID{}, fmt.Errorf("%w: number %q is not a number", ErrInvalidUnitID, fields[4])
	}

	for len(fields) < maxFields {
		fields = append(fields, "")
	}

	return UnitID{
		PDB:      fields[0],
		Model:    model,
		Chain:    fields[2],
		CompID:   fields[3],
		Number:   number,
		Atom:     fields[5],
		AltID:    fields[6],
		InsCode:  fields[7],
		Symmetry: fields[8],
	}, nil
}
