// Package rdkit implements molecule.StructureProvider on top of RDKit. The
// engine runs outside the Go process, either as an HTTP sidecar or as a bridge
// command, and both speak the JSON contract defined in this file.
package rdkit

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/turtacn/molforge/internal/domain/molecule"
	"github.com/turtacn/molforge/pkg/errors"
)

// Drivers.
const (
	DriverHTTP = "http"
	DriverExec = "exec"
)

// Generation parameters sent with every request.
const (
	EmbedMethodETKDG = "ETKDG"
	ForceFieldUFF    = "UFF"
)

// Config configures either driver. Fields that do not apply to the selected
// driver are ignored.
type Config struct {
	Driver     string
	Endpoint   string
	Command    string
	Args       []string
	TempDir    string
	Timeout    time.Duration
	RandomSeed int

	RetryMaxAttempts     int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration

	BreakerFailures int
	BreakerInterval time.Duration
	BreakerTimeout  time.Duration
}

func (c *Config) applyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 45 * time.Second
	}
	if c.RetryMaxAttempts <= 0 {
		c.RetryMaxAttempts = 3
	}
	if c.RetryInitialInterval <= 0 {
		c.RetryInitialInterval = 200 * time.Millisecond
	}
	if c.RetryMaxInterval <= 0 {
		c.RetryMaxInterval = 2 * time.Second
	}
	if c.BreakerFailures <= 0 {
		c.BreakerFailures = 5
	}
	if c.BreakerInterval <= 0 {
		c.BreakerInterval = time.Minute
	}
	if c.BreakerTimeout <= 0 {
		c.BreakerTimeout = 30 * time.Second
	}
}

// GenerateRequest asks the engine for one structure.
type GenerateRequest struct {
	SMILES       string `json:"smiles"`
	AddHydrogens bool   `json:"add_hydrogens"`
	EmbedMethod  string `json:"embed_method"`
	ForceField   string `json:"force_field"`
	RandomSeed   int    `json:"random_seed"`

	// PDBPath is set by the exec driver only. The bridge writes the PDB
	// block there instead of inlining it in the response.
	PDBPath string `json:"pdb_path,omitempty"`
}

// DescriptorPayload carries RDKit descriptor values under their RDKit names.
type DescriptorPayload struct {
	MolWt             float64 `json:"mol_wt"`
	MolLogP           float64 `json:"mol_logp"`
	NumHDonors        int     `json:"num_h_donors"`
	NumHAcceptors     int     `json:"num_h_acceptors"`
	NumRotatableBonds int     `json:"num_rotatable_bonds"`
	NumAromaticRings  int     `json:"num_aromatic_rings"`
}

// GenerateResponse is the engine's answer.
type GenerateResponse struct {
	Valid       bool              `json:"valid"`
	Error       string            `json:"error,omitempty"`
	PDB         string            `json:"pdb,omitempty"`
	Descriptors DescriptorPayload `json:"descriptors"`
}

func newRequest(smiles string, seed int) GenerateRequest {
	return GenerateRequest{
		SMILES:       smiles,
		AddHydrogens: true,
		EmbedMethod:  EmbedMethodETKDG,
		ForceField:   ForceFieldUFF,
		RandomSeed:   seed,
	}
}

func (p DescriptorPayload) toDomain() molecule.Descriptors {
	return molecule.Descriptors{
		MolecularWeight: p.MolWt,
		LogP:            p.MolLogP,
		HBondDonors:     p.NumHDonors,
		HBondAcceptors:  p.NumHAcceptors,
		RotatableBonds:  p.NumRotatableBonds,
		AromaticRings:   p.NumAromaticRings,
	}
}

// decodeResponse parses a response body. A response with valid=false becomes
// the Invalid Input error; valid=true with an error means the molecule parsed
// but could not be embedded or optimised.
func decodeResponse(body []byte) (*GenerateResponse, error) {
	var resp GenerateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeChemBackendProtocol, "malformed engine response")
	}
	if !resp.Valid {
		return nil, errors.InvalidSMILES(strings.TrimSpace(resp.Error))
	}
	if resp.Error != "" {
		return nil, errors.New(errors.ErrCodeMoleculeConversionFailed, errors.DefaultMessageForCode(errors.ErrCodeMoleculeConversionFailed)).
			WithDetail(strings.TrimSpace(resp.Error))
	}
	return &resp, nil
}

// toStructure assembles and validates the domain structure.
func toStructure(smiles string, pdb []byte, d DescriptorPayload) (*molecule.Structure, error) {
	s := &molecule.Structure{
		SMILES:      smiles,
		PDB:         pdb,
		Descriptors: d.toDomain(),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

//Personal.AI order the ending
