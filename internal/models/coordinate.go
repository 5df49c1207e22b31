package models

// PdbCoordinate matches the pdb_coordinates table. Unlike the
// correspondence table its key is a caller supplied string.
type PdbCoordinate struct {
	ID      string  `json:"id"`
	PDB     *string `json:"pdb"`
	PDBType *string `json:"pdb_type"` // e.g. 'ATOM' or 'HETATM'
	Model   *int    `json:"model"`
	Chain   *string `json:"chain"`
	Number  *int    `json:"number"`
	Unit    *string `json:"unit"`
	InsCode *string `json:"ins_code"`
	Index   *int    `json:"index"`
}

func (PdbCoordinate) TableName() string {
	return "pdb_coordinates"
}

// Values returns the column values in CoordinateTable column order.
func (c *PdbCoordinate) Values() []any {
	return []any{
		c.ID,
		c.PDB,
		c.PDBType,
		c.Model,
		c.Chain,
		c.Number,
		c.Unit,
		c.InsCode,
		c.Index,
	}
}

// ScanTargets returns pointers to every field in CoordinateTable column order.
func (c *PdbCoordinate) ScanTargets() []any {
	return []any{
		&c.ID,
		&c.PDB,
		&c.PDBType,
		&c.Model,
		&c.Chain,
		&c.Number,
		&c.Unit,
		&c.InsCode,
		&c.Index,
	}
}
