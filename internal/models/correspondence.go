package models

// PdbUnitIdCorrespondence matches the pdb_unit_id_correspondence table.
// It maps a legacy identifier (old_id) to a unit id for one structural element.
type PdbUnitIdCorrespondence struct {
	ID      int64   `json:"id"`
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

func (PdbUnitIdCorrespondence) TableName() string {
	return "pdb_unit_id_correspondence"
}

// Values returns the column values in CorrespondenceTable column order.
func (c *PdbUnitIdCorrespondence) Values() []any {
	return []any{
		c.ID,
		c.OldID,
		c.UnitID,
		c.PDB,
		c.Model,
		c.Chain,
		c.SeqID,
		c.CompID,
		c.Atom,
		c.AltID,
		c.InsCode,
		c.SymOp,
		c.PDBFile,
	}
}

// ScanTargets returns pointers to every field in CorrespondenceTable column order.
func (c *PdbUnitIdCorrespondence) ScanTargets() []any {
	return []any{
		&c.ID,
		&c.OldID,
		&c.UnitID,
		&c.PDB,
		&c.Model,
		&c.Chain,
		&c.SeqID,
		&c.CompID,
		&c.Atom,
		&c.AltID,
		&c.InsCode,
		&c.SymOp,
		&c.PDBFile,
	}
}
