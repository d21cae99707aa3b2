package molecule

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/turtacn/molforge/pkg/errors"
)

const (
	// PDBFilename is the name offered for structure downloads.
	PDBFilename = "molecule.pdb"
	// PDBMIMEType is the media type of a PDB structure.
	PDBMIMEType = "chemical/x-pdb"
)

// Structure is the product of one structure generation: the 3D coordinates as
// a PDB block and the descriptors of the hydrogen-complete molecule.
type Structure struct {
	SMILES      string      `json:"smiles"`
	PDB         []byte      `json:"pdb"`
	Descriptors Descriptors `json:"descriptors"`
}

// Validate checks that a provider returned something usable.
func (s *Structure) Validate() error {
	if s == nil {
		return errors.New(errors.ErrCodeChemBackendProtocol, "structure is nil")
	}
	if len(s.PDB) == 0 {
		return errors.New(errors.ErrCodeChemBackendProtocol, "structure has an empty PDB block")
	}
	if err := s.Descriptors.Validate(); err != nil {
		return errors.Wrap(err, errors.ErrCodeChemBackendProtocol, "structure has invalid descriptors")
	}
	return nil
}

// ContentKey returns the cache and archive key of a normalised SMILES string:
// the lowercase hex SHA-256 digest.
func ContentKey(smiles string) string {
	sum := sha256.Sum256([]byte(smiles))
	return hex.EncodeToString(sum[:])
}

// IsContentKey reports whether s has the shape of a ContentKey.
func IsContentKey(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

//Personal.AI order the ending
