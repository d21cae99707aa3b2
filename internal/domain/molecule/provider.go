package molecule

import "context"

// StructureProvider is the single contract at the chemistry-library boundary.
// Implementations parse the SMILES, add explicit hydrogens, embed 3D
// coordinates, optimise the geometry, serialise PDB and compute Descriptors.
//
// Generate returns an error carrying errors.ErrCodeMoleculeInvalidSMILES when
// the engine cannot parse smiles, and a backend error code for anything else.
type StructureProvider interface {
	Generate(ctx context.Context, smiles string) (*Structure, error)

	// Name identifies the driver in logs and metrics.
	Name() string

	// Ping reports whether the engine is reachable.
	Ping(ctx context.Context) error
}

//Personal.AI order the ending
