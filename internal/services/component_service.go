package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"pdbstore/internal/models"
	"pdbstore/internal/unitid"
)

var ErrComponentNotFound = errors.New("component not found")

type ComponentService struct {
	finder ComponentFinder
}

func NewComponentService(finder ComponentFinder) *ComponentService {
	return &ComponentService{finder: finder}
}

type LookupRequest struct {
	PDB     string  `json:"pdb" binding:"required"`
	PDBFile string  `json:"pdb_file" binding:"required"`
	Motifs  [][]int `json:"motifs" binding:"required"`
}

// Lookup returns the components found at the given indexes, each with its
// unit id filled in. Indexes may repeat and come in any order.
func (s *ComponentService) Lookup(ctx context.Context, pdb, pdbFile string, indexes []int) ([]models.Component, error) {
	pdb = strings.TrimSpace(pdb)
	pdbFile = strings.TrimSpace(pdbFile)
	if pdb == "" || pdbFile == "" {
		return nil, fmt.Errorf("%w: pdb and pdb_file are required", ErrInvalidRequest)
	}

	wanted := slices.Clone(indexes)
	slices.Sort(wanted)
	wanted = slices.Compact(wanted)

	components, err := s.finder.Lookup(ctx, pdb, pdbFile, wanted)
	if err != nil {
		return nil, fmt.Errorf("failed to look up components of %s: %w", pdb, err)
	}

	for i := range components {
		components[i].UnitID = componentUnitID(components[i])
	}
	return components, nil
}

// LoadMotifs resolves every motif to its components, keeping motif order.
// An index may resolve to more than one component when alternate
// locations exist. Any index with no component fails the whole call.
func (s *ComponentService) LoadMotifs(ctx context.Context, pdb, pdbFile string, motifs [][]int) ([][]models.Component, error) {
	var all []int
	for _, motif := range motifs {
		all = append(all, motif...)
	}

	components, err := s.Lookup(ctx, pdb, pdbFile, all)
	if err != nil {
		return nil, err
	}

	byIndex := make(map[int][]models.Component)
	for _, c := range components {
		byIndex[c.Index] = append(byIndex[c.Index], c)
	}

	result := make([][]models.Component, 0, len(motifs))
	for _, motif := range motifs {
		loaded := make([]models.Component, 0, len(motif))
		for _, index := range motif {
			found, ok := byIndex[index]
			if !ok {
				return nil, fmt.Errorf("%w: %s %s index %d", ErrComponentNotFound, pdb, pdbFile, index)
			}
			loaded = append(loaded, found...)
		}
		result = append(result, loaded)
	}

	return result, nil
}

func componentUnitID(c models.Component) string {
	return unitid.UnitID{
		PDB:      c.PDB,
		Model:    c.Model,
		Chain:    c.Chain,
		CompID:   c.Sequence,
		Number:   c.Number,
		AltID:    c.AltID,
		InsCode:  c.InsCode,
		Symmetry: c.Symmetry,
	}.String()
}
