package models

// Component is a residue, nucleotide or ligand assembled from the
// correspondence rows of one ordered unit.
type Component struct {
	PDB      string   `json:"pdb"`
	Model    int      `json:"model"`
	Chain    string   `json:"chain"`
	Number   int      `json:"number"`
	Sequence string   `json:"sequence"`
	Index    int      `json:"index"`
	Symmetry string   `json:"symmetry,omitempty"`
	InsCode  string   `json:"ins_code,omitempty"`
	AltID    string   `json:"alt_id,omitempty"`
	Atoms    []string `json:"atoms,omitempty"`
	UnitID   string   `json:"unit_id"`
}

// SameUnit reports whether two components describe the same unit,
// ignoring index and the atoms collected for them.
func (c Component) SameUnit(other Component) bool {
	return c.PDB == other.PDB &&
		c.Model == other.Model &&
		c.Chain == other.Chain &&
		c.Symmetry == other.Symmetry &&
		c.Sequence == other.Sequence &&
		c.Number == other.Number &&
		c.InsCode == other.InsCode &&
		c.AltID == other.AltID
}
