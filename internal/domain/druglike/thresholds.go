package druglike

import (
	"fmt"

	"github.com/turtacn/molforge/pkg/errors"
)

// LipinskiThresholds are the upper limits of the Rule of Five. A value above
// a limit is one violation.
type LipinskiThresholds struct {
	MaxHBondDonors     int     `json:"max_h_bond_donors" mapstructure:"max_h_bond_donors"`
	MaxHBondAcceptors  int     `json:"max_h_bond_acceptors" mapstructure:"max_h_bond_acceptors"`
	MaxMolecularWeight float64 `json:"max_molecular_weight" mapstructure:"max_molecular_weight"`
	MaxLogP            float64 `json:"max_logp" mapstructure:"max_logp"`
}

// GhoseThresholds are the inclusive ranges and upper limits of Ghose's rule.
type GhoseThresholds struct {
	MinMolecularWeight float64 `json:"min_molecular_weight" mapstructure:"min_molecular_weight"`
	MaxMolecularWeight float64 `json:"max_molecular_weight" mapstructure:"max_molecular_weight"`
	MinLogP            float64 `json:"min_logp" mapstructure:"min_logp"`
	MaxLogP            float64 `json:"max_logp" mapstructure:"max_logp"`
	MaxRotatableBonds  int     `json:"max_rotatable_bonds" mapstructure:"max_rotatable_bonds"`
	MaxAromaticRings   int     `json:"max_aromatic_rings" mapstructure:"max_aromatic_rings"`
}

// VeberThresholds are the inclusive upper limits of Veber's rule.
type VeberThresholds struct {
	MaxRotatableBonds  int     `json:"max_rotatable_bonds" mapstructure:"max_rotatable_bonds"`
	MaxMolecularWeight float64 `json:"max_molecular_weight" mapstructure:"max_molecular_weight"`
}

// Thresholds groups the limits of all three rules.
type Thresholds struct {
	Lipinski LipinskiThresholds `json:"lipinski" mapstructure:"lipinski"`
	Ghose    GhoseThresholds    `json:"ghose" mapstructure:"ghose"`
	Veber    VeberThresholds    `json:"veber" mapstructure:"veber"`
}

// DefaultThresholds returns the published cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Lipinski: LipinskiThresholds{
			MaxHBondDonors:     5,
			MaxHBondAcceptors:  10,
			MaxMolecularWeight: 500,
			MaxLogP:            5,
		},
		Ghose: GhoseThresholds{
			MinMolecularWeight: 480,
			MaxMolecularWeight: 500,
			MinLogP:            0.4,
			MaxLogP:            5.6,
			MaxRotatableBonds:  10,
			MaxAromaticRings:   2,
		},
		Veber: VeberThresholds{
			MaxRotatableBonds:  10,
			MaxMolecularWeight: 500,
		},
	}
}

// Validate rejects negative limits and inverted Ghose ranges. LogP limits may
// be negative.
func (t Thresholds) Validate() error {
	var problems []string
	neg := func(name string, v float64) {
		if v < 0 {
			problems = append(problems, name+" must not be negative")
		}
	}

	neg("lipinski.max_h_bond_donors", float64(t.Lipinski.MaxHBondDonors))
	neg("lipinski.max_h_bond_acceptors", float64(t.Lipinski.MaxHBondAcceptors))
	neg("lipinski.max_molecular_weight", t.Lipinski.MaxMolecularWeight)

	neg("ghose.min_molecular_weight", t.Ghose.MinMolecularWeight)
	neg("ghose.max_rotatable_bonds", float64(t.Ghose.MaxRotatableBonds))
	neg("ghose.max_aromatic_rings", float64(t.Ghose.MaxAromaticRings))
	if t.Ghose.MinMolecularWeight > t.Ghose.MaxMolecularWeight {
		problems = append(problems, "ghose molecular weight range is inverted")
	}
	if t.Ghose.MinLogP > t.Ghose.MaxLogP {
		problems = append(problems, "ghose logp range is inverted")
	}

	neg("veber.max_rotatable_bonds", float64(t.Veber.MaxRotatableBonds))
	neg("veber.max_molecular_weight", t.Veber.MaxMolecularWeight)

	if len(problems) > 0 {
		return errors.New(errors.ErrCodeThresholdsInvalid, "invalid drug-likeness thresholds").
			WithDetail(fmt.Sprintf("%v", problems))
	}
	return nil
}

//Personal.AI order the ending
