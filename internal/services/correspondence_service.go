package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"pdbstore/internal/models"
	"pdbstore/internal/repositories"
	"pdbstore/internal/unitid"
)

type CorrespondenceService struct {
	store CorrespondenceStore
}

func NewCorrespondenceService(store CorrespondenceStore) *CorrespondenceService {
	return &CorrespondenceService{store: store}
}

// CreateCorrespondenceRequest mirrors the table row. ID is a pointer so a
// missing id can be told apart from id 0.
type CreateCorrespondenceRequest struct {
	ID      *int64  `json:"id"`
	OldID   *string `json:"old_id"`
	UnitID  *string `json:"unit_id"`
	PDB     *string `json:"pdb"`
	Model   *int    `json:"model"`
	Chain   *string `json:"chain"`
	SeqID   *int    `json:"seq_id"`
	CompID  *string `json:"comp_id"`
	Atom    *string `json:"atom"`
	AltID   *string `json:"alt_id"`
	InsCode *string `json:"ins_code"`
	SymOp   *string `json:"sym_op"`
	PDBFile *string `json:"pdb_file"`
}

func (req *CreateCorrespondenceRequest) ToModel() (*models.PdbUnitIdCorrespondence, error) {
	if req.ID == nil {
		return nil, repositories.NewNullPrimaryKey(models.CorrespondenceTable.Name, "id", nil)
	}
	if err := checkInt32("id", *req.ID); err != nil {
		return nil, err
	}
	if err := checkInt32Fields(intField{"model", req.Model}, intField{"seq_id", req.SeqID}); err != nil {
		return nil, err
	}

	return &models.PdbUnitIdCorrespondence{
		ID:      *req.ID,
		OldID:   req.OldID,
		UnitID:  req.UnitID,
		PDB:     req.PDB,
		Model:   req.Model,
		Chain:   req.Chain,
		SeqID:   req.SeqID,
		CompID:  req.CompID,
		Atom:    req.Atom,
		AltID:   req.AltID,
		InsCode: req.InsCode,
		SymOp:   req.SymOp,
		PDBFile: req.PDBFile,
	}, nil
}

func (s *CorrespondenceService) Create(ctx context.Context, req *CreateCorrespondenceRequest) (*models.PdbUnitIdCorrespondence, error) {
	rec, err := req.ToModel()
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save correspondence %d: %w", rec.ID, err)
	}

	slog.DebugContext(ctx, "correspondence created", "id", rec.ID)
	return rec, nil
}

// CorrespondenceView is a stored row as read back, plus the unit id its
// structural fields describe. The stored unit_id is never filled in.
type CorrespondenceView struct {
	models.PdbUnitIdCorrespondence
	DerivedUnitID *string `json:"derived_unit_id,omitempty"`
}

func newCorrespondenceView(rec models.PdbUnitIdCorrespondence) CorrespondenceView {
	view := CorrespondenceView{PdbUnitIdCorrespondence: rec}
	if derived, ok := DeriveUnitID(&rec); ok {
		view.DerivedUnitID = &derived
	}
	return view
}

func (s *CorrespondenceService) Get(ctx context.Context, id int64) (*CorrespondenceView, error) {
	if err := checkInt32("id", id); err != nil {
		return nil, err
	}

	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("correspondence %d: %w", id, err)
	}
	view := newCorrespondenceView(*rec)
	return &view, nil
}

func (s *CorrespondenceService) List(ctx context.Context, pdb, pdbFile string, limit int) ([]CorrespondenceView, error) {
	pdb = strings.TrimSpace(pdb)
	if pdb == "" {
		return nil, fmt.Errorf("%w: pdb is required", ErrInvalidRequest)
	}

	records, err := s.store.List(ctx, pdb, strings.TrimSpace(pdbFile), clampLimit(limit))
	if err != nil {
		return nil, err
	}
	views := make([]CorrespondenceView, len(records))
	for i, rec := range records {
		views[i] = newCorrespondenceView(rec)
	}
	return views, nil
}

// DeriveUnitID builds the unit id a correspondence row describes from its
// structural fields. It needs pdb, model, chain, comp_id and seq_id.
func DeriveUnitID(rec *models.PdbUnitIdCorrespondence) (string, bool) {
	if rec.PDB == nil || rec.Model == nil || rec.Chain == nil || rec.CompID == nil || rec.SeqID == nil {
		return "", false
	}

	u := unitid.UnitID{
		PDB:    *rec.PDB,
		Model:  *rec.Model,
		Chain:  *rec.Chain,
		CompID: *rec.CompID,
		Number: *rec.SeqID,
	}
	if rec.Atom != nil {
		u.Atom = *rec.Atom
	}
	if rec.AltID != nil {
		u.AltID = *rec.AltID
	}
	if rec.InsCode != nil {
		u.InsCode = *rec.InsCode
	}
	if rec.SymOp != nil {
		u.Symmetry = *rec.SymOp
	}

	return u.String(), true
}
