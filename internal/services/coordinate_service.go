package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"pdbstore/internal/models"
	"pdbstore/internal/repositories"
)

type CoordinateService struct {
	store CoordinateStore
}

func NewCoordinateService(store CoordinateStore) *CoordinateService {
	return &CoordinateService{store: store}
}

type CreateCoordinateRequest struct {
	ID      *string `json:"id"`
	PDB     *string `json:"pdb"`
	PDBType *string `json:"pdb_type"`
	Model   *int    `json:"model"`
	Chain   *string `json:"chain"`
	Number  *int    `json:"number"`
	Unit    *string `json:"unit"`
	InsCode *string `json:"ins_code"`
	Index   *int    `json:"index"`
}

// ToModel rejects a missing or empty id: the key is caller supplied and
// never generated. Whitespace in the id is kept as given.
func (req *CreateCoordinateRequest) ToModel() (*models.PdbCoordinate, error) {
	if req.ID == nil || *req.ID == "" {
		return nil, repositories.NewNullPrimaryKey(models.CoordinateTable.Name, "id", nil)
	}
	err := checkInt32Fields(
		intField{"model", req.Model},
		intField{"number", req.Number},
		intField{"index", req.Index},
	)
	if err != nil {
		return nil, err
	}

	return &models.PdbCoordinate{
		ID:      *req.ID,
		PDB:     req.PDB,
		PDBType: req.PDBType,
		Model:   req.Model,
		Chain:   req.Chain,
		Number:  req.Number,
		Unit:    req.Unit,
		InsCode: req.InsCode,
		Index:   req.Index,
	}, nil
}

func (s *CoordinateService) Create(ctx context.Context, req *CreateCoordinateRequest) (*models.PdbCoordinate, error) {
	rec, err := req.ToModel()
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save coordinate %q: %w", rec.ID, err)
	}

	slog.DebugContext(ctx, "coordinate created", "id", rec.ID)
	return rec, nil
}

func (s *CoordinateService) Get(ctx context.Context, id string) (*models.PdbCoordinate, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidRequest)
	}

	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("coordinate %q: %w", id, err)
	}
	return rec, nil
}

func (s *CoordinateService) List(ctx context.Context, pdb string, limit int) ([]models.PdbCoordinate, error) {
	pdb = strings.TrimSpace(pdb)
	if pdb == "" {
		return nil, fmt.Errorf("%w: pdb is required", ErrInvalidRequest)
	}
	return s.store.List(ctx, pdb, clampLimit(limit))
}
