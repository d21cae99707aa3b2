package testutil

import (
	"context"
	"sync"

	"github.com/turtacn/molforge/internal/domain/molecule"
	"github.com/turtacn/molforge/pkg/errors"
)

// EthanolPDB is a hydrogen-complete ethanol block as the RDKit bridge writes it.
const EthanolPDB = `HETATM    1  C1  UNL     1      -0.888   0.170   0.041  1.00  0.00           C
HETATM    2  C2  UNL     1       0.498  -0.420  -0.110  1.00  0.00           C
HETATM    3  O1  UNL     1       1.380   0.633   0.172  1.00  0.00           O
HETATM    4  H1  UNL     1      -1.001   1.035  -0.644  1.00  0.00           H
HETATM    5  H2  UNL     1      -1.647  -0.600  -0.210  1.00  0.00           H
HETATM    6  H3  UNL     1      -1.046   0.522   1.083  1.00  0.00           H
HETATM    7  H4  UNL     1       0.661  -1.253   0.605  1.00  0.00           H
HETATM    8  H5  UNL     1       0.641  -0.795  -1.147  1.00  0.00           H
HETATM    9  H6  UNL     1       1.302   0.898   1.120  1.00  0.00           H
CONECT    1    2    4    5    6
CONECT    2    3    7    8
CONECT    3    9
END
`

// EthanolDescriptors are the descriptors RDKit reports for CCO.
var EthanolDescriptors = molecule.Descriptors{
	MolecularWeight: 46.069,
	LogP:            -0.0014,
	HBondDonors:     1,
	HBondAcceptors:  1,
	RotatableBonds:  0,
	AromaticRings:   0,
}

// StubProvider is a molecule.StructureProvider with canned answers. SMILES
// strings missing from Structures are rejected as invalid input.
type StubProvider struct {
	Structures map[string]*molecule.Structure
	// Err, when set, is returned by every Generate call.
	Err error
	// PingErr is returned by Ping.
	PingErr error

	mu    sync.Mutex
	calls []string
}

// NewStubProvider returns a provider that knows ethanol.
func NewStubProvider() *StubProvider {
	return &StubProvider{Structures: map[string]*molecule.Structure{
		"CCO": {SMILES: "CCO", PDB: []byte(EthanolPDB), Descriptors: EthanolDescriptors},
	}}
}

func (p *StubProvider) Name() string { return "stub" }

func (p *StubProvider) Generate(ctx context.Context, smiles string) (*molecule.Structure, error) {
	p.mu.Lock()
	p.calls = append(p.calls, smiles)
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Err != nil {
		return nil, p.Err
	}
	s, ok := p.Structures[smiles]
	if !ok {
		return nil, errors.InvalidSMILES(smiles)
	}
	clone := *s
	return &clone, nil
}

func (p *StubProvider) Ping(context.Context) error { return p.PingErr }

// Calls returns the SMILES strings Generate was called with, in order.
func (p *StubProvider) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

//Personal.AI order the ending
