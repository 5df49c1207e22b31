package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdbstore/internal/models"
)

func TestGroupComponents(t *testing.T) {
	g := models.Component{PDB: "1GID", Model: 1, Chain: "A", Number: 103, Sequence: "G", Index: 7}
	a := models.Component{PDB: "1GID", Model: 1, Chain: "A", Number: 104, Sequence: "A", Index: 8}
	aAlt := a
	aAlt.AltID = "B"

	rows := []ComponentRow{
		{Component: g, Atom: "P"},
		{Component: g, Atom: "OP1"},
		{Component: g, Atom: "P"},
		{Component: a, Atom: "N9"},
		{Component: aAlt, Atom: "N9"},
		{Component: aAlt, Atom: ""},
	}

	got := GroupComponents(rows)
	require.Len(t, got, 3)

	assert.Equal(t, 7, got[0].Index)
	assert.Equal(t, []string{"P", "OP1"}, got[0].Atoms)

	assert.Equal(t, "", got[1].AltID)
	assert.Equal(t, []string{"N9"}, got[1].Atoms)

	assert.Equal(t, "B", got[2].AltID)
	assert.Equal(t, []string{"N9"}, got[2].Atoms)
}

func TestGroupComponents_Empty(t *testing.T) {
	got := GroupComponents(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGroupComponents_SameUnitAtTwoIndexes(t *testing.T) {
	u := models.Component{PDB: "1GID", Model: 1, Chain: "A", Number: 103, Sequence: "G", Index: 7}
	v := u
	v.Index = 9

	got := GroupComponents([]ComponentRow{{Component: u}, {Component: v}})
	require.Len(t, got, 2)
	assert.Nil(t, got[0].Atoms)
}
