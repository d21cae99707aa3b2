package conversion

import (
	"time"

	"github.com/turtacn/molforge/internal/domain/druglike"
	"github.com/turtacn/molforge/internal/domain/molecule"
)

// Artifact is the generated structure file.
type Artifact struct {
	Filename       string         `json:"filename"`
	MIMEType       string         `json:"mime_type"`
	AtomCount      int            `json:"atom_count,omitempty"`
	HeavyAtomCount int            `json:"heavy_atom_count,omitempty"`
	Formula        string         `json:"formula,omitempty"`
	Elements       map[string]int `json:"elements,omitempty"`
	PDB            string         `json:"pdb"`
}

// Report is the outcome of one successful conversion.
type Report struct {
	ID          string               `json:"id"`
	SMILES      string               `json:"smiles"`
	Descriptors molecule.Descriptors `json:"descriptors"`
	Assessment  druglike.Assessment  `json:"assessment"`
	Structure   Artifact             `json:"structure"`
	ViewerURL   string               `json:"viewer_url"`

	// DownloadURL is a presigned archive link, set only when archiving is on.
	DownloadURL       string     `json:"download_url,omitempty"`
	DownloadExpiresAt *time.Time `json:"download_expires_at,omitempty"`

	Cached      bool      `json:"cached"`
	GeneratedAt time.Time `json:"generated_at"`
}

// PDB returns the structure bytes.
func (r *Report) PDB() []byte {
	return []byte(r.Structure.PDB)
}

// DataURI returns the structure as a chemical/x-pdb data URI.
func (r *Report) DataURI() string {
	return DataURI(r.PDB())
}

//Personal.AI order the ending
