// Package molecule defines the value objects that cross the boundary between
// MolForge and the external cheminformatics engine. Descriptors is the only
// data the drug-likeness rules ever see; Structure is what one generation
// returns.
package molecule

import (
	"math"

	"github.com/turtacn/molforge/pkg/errors"
)

// Descriptors is the Molecule Descriptor Set computed by the chemistry engine
// for a single submission. It is immutable once produced.
type Descriptors struct {
	// MolecularWeight is the average molecular weight in daltons.
	MolecularWeight float64 `json:"molecular_weight"`
	// LogP is the Crippen octanol-water partition coefficient.
	LogP float64 `json:"logp"`
	// HBondDonors counts hydrogen bond donors.
	HBondDonors int `json:"h_bond_donors"`
	// HBondAcceptors counts hydrogen bond acceptors.
	HBondAcceptors int `json:"h_bond_acceptors"`
	// RotatableBonds counts rotatable bonds.
	RotatableBonds int `json:"rotatable_bonds"`
	// AromaticRings counts aromatic rings.
	AromaticRings int `json:"aromatic_rings"`
}

// Validate rejects negative counts, negative weight and non-finite values.
// The engine never produces these; the check guards descriptor sets supplied
// directly by API callers.
func (d Descriptors) Validate() error {
	switch {
	case math.IsNaN(d.MolecularWeight) || math.IsInf(d.MolecularWeight, 0):
		return errors.NewValidationError("molecular_weight", "must be a finite number")
	case math.IsNaN(d.LogP) || math.IsInf(d.LogP, 0):
		return errors.NewValidationError("logp", "must be a finite number")
	case d.MolecularWeight < 0:
		return errors.NewValidationError("molecular_weight", "must not be negative")
	case d.HBondDonors < 0:
		return errors.NewValidationError("h_bond_donors", "must not be negative")
	case d.HBondAcceptors < 0:
		return errors.NewValidationError("h_bond_acceptors", "must not be negative")
	case d.RotatableBonds < 0:
		return errors.NewValidationError("rotatable_bonds", "must not be negative")
	case d.AromaticRings < 0:
		return errors.NewValidationError("aromatic_rings", "must not be negative")
	}
	return nil
}

//Personal.AI order the ending
