// Package molecule defines the Data Transfer Objects exchanged with the
// MolForge HTTP API. No domain logic lives here, only plain data types that
// SDK users can import without pulling in the server.
package molecule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// PDBFilename is the file name the server offers for structure downloads.
	PDBFilename = "molecule.pdb"
	// PDBMIMEType is the media type of a PDB structure.
	PDBMIMEType = "chemical/x-pdb"
)

// Rule kinds as reported by the server.
const (
	KindCount  = "count"
	KindBinary = "binary"
)

// ─────────────────────────────────────────────────────────────────────────────
// Requests
// ─────────────────────────────────────────────────────────────────────────────

// ConvertRequest is the body of POST /api/v1/molecules/convert and
// POST /api/v1/molecules/pdb.
type ConvertRequest struct {
	SMILES string `json:"smiles"`
}

// Validate rejects an empty submission before it goes over the wire.
func (r ConvertRequest) Validate() error {
	if strings.TrimSpace(r.SMILES) == "" {
		return fmt.Errorf("smiles is required")
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Descriptors and rule results
// ─────────────────────────────────────────────────────────────────────────────

// Descriptors is the descriptor set the drug-likeness rules look at.
type Descriptors struct {
	MolecularWeight float64 `json:"molecular_weight"`
	LogP            float64 `json:"logp"`
	HBondDonors     int     `json:"h_bond_donors"`
	HBondAcceptors  int     `json:"h_bond_acceptors"`
	RotatableBonds  int     `json:"rotatable_bonds"`
	AromaticRings   int     `json:"aromatic_rings"`
}

// Parameter is one descriptor value a rule looked at.
type Parameter struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Integer bool    `json:"integer"`
}

// String renders counts as integers and real values in shortest form.
func (p Parameter) String() string {
	if p.Integer {
		return strconv.FormatInt(int64(p.Value), 10)
	}
	return strconv.FormatFloat(p.Value, 'f', -1, 64)
}

// Criterion is one threshold comparison within a rule.
type Criterion struct {
	Description string `json:"description"`
	Satisfied   bool   `json:"satisfied"`
}

// RuleResult is the outcome of one drug-likeness rule.
type RuleResult struct {
	Rule       string      `json:"rule"`
	Title      string      `json:"title"`
	Kind       string      `json:"kind"`
	Parameters []Parameter `json:"parameters"`
	Criteria   []Criterion `json:"criteria"`
	Violations int         `json:"violations"`
	Passed     bool        `json:"passed"`
}

// Verdict is "No violations", "N violation(s)", "Passed" or "Failed".
func (r RuleResult) Verdict() string {
	if r.Kind == KindBinary {
		if r.Passed {
			return "Passed"
		}
		return "Failed"
	}
	if r.Violations == 0 {
		return "No violations"
	}
	return fmt.Sprintf("%d violation(s)", r.Violations)
}

// Summary is the verdict prefixed with the rule title.
func (r RuleResult) Summary() string {
	return r.Title + ": " + r.Verdict()
}

// Assessment holds the Lipinski, Ghose and Veber results.
type Assessment struct {
	Lipinski RuleResult `json:"lipinski"`
	Ghose    RuleResult `json:"ghose"`
	Veber    RuleResult `json:"veber"`
}

// Results returns the results in evaluation order.
func (a Assessment) Results() []RuleResult {
	return []RuleResult{a.Lipinski, a.Ghose, a.Veber}
}

// ─────────────────────────────────────────────────────────────────────────────
// Conversion report
// ─────────────────────────────────────────────────────────────────────────────

// StructureFile is the generated PDB file and what the server read from it.
type StructureFile struct {
	Filename       string         `json:"filename"`
	MIMEType       string         `json:"mime_type"`
	AtomCount      int            `json:"atom_count,omitempty"`
	HeavyAtomCount int            `json:"heavy_atom_count,omitempty"`
	Formula        string         `json:"formula,omitempty"`
	Elements       map[string]int `json:"elements,omitempty"`
	PDB            string         `json:"pdb"`
}

// ConversionReport is the response of POST /api/v1/molecules/convert.
type ConversionReport struct {
	ID                string        `json:"id"`
	SMILES            string        `json:"smiles"`
	Descriptors       Descriptors   `json:"descriptors"`
	Assessment        Assessment    `json:"assessment"`
	Structure         StructureFile `json:"structure"`
	ViewerURL         string        `json:"viewer_url"`
	DownloadURL       string        `json:"download_url,omitempty"`
	DownloadExpiresAt *time.Time    `json:"download_expires_at,omitempty"`
	Cached            bool          `json:"cached"`
	GeneratedAt       time.Time     `json:"generated_at"`
}

// TableHeaders implements table output for the CLI.
func (r *ConversionReport) TableHeaders() []string {
	return []string{"RULE", "VERDICT", "PARAMETERS"}
}

// TableRows renders one row per rule.
func (r *ConversionReport) TableRows() [][]string {
	results := r.Assessment.Results()
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		params := make([]string, 0, len(res.Parameters))
		for _, p := range res.Parameters {
			params = append(params, p.Label+"="+p.String())
		}
		rows = append(rows, []string{res.Title, res.Verdict(), strings.Join(params, ", ")})
	}
	return rows
}

// ─────────────────────────────────────────────────────────────────────────────
// Health
// ─────────────────────────────────────────────────────────────────────────────

// ComponentHealth is the state of one dependency.
type ComponentHealth struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HealthStatus is the body of /readyz and /healthz.
type HealthStatus struct {
	Status     string                     `json:"status"`
	Version    string                     `json:"version,omitempty"`
	Uptime     string                     `json:"uptime,omitempty"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// Ready reports whether the server declared itself ready or alive.
func (h HealthStatus) Ready() bool {
	return h.Status == "ready" || h.Status == "alive" || h.Status == "healthy"
}

//Personal.AI order the ending
