// Package druglike evaluates a Molecule Descriptor Set against the Lipinski,
// Ghose and Veber drug-likeness heuristics.
//
// Every evaluator is a pure function of its inputs. Nothing here renders or
// logs; callers present the returned Result however they like.
package druglike

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/turtacn/molforge/internal/domain/molecule"
)

const (
	titleLipinski = "Lipinski's Rule of Five"
	titleGhose    = "Ghose's Rule"
	titleVeber    = "Veber's Rule"
)

// Lipinski evaluates the Rule of Five with the default thresholds.
func Lipinski(d molecule.Descriptors) Result {
	return EvaluateLipinski(d, DefaultThresholds().Lipinski)
}

// Ghose evaluates Ghose's rule with the default thresholds.
func Ghose(d molecule.Descriptors) Result {
	return EvaluateGhose(d, DefaultThresholds().Ghose)
}

// Veber evaluates Veber's rule with the default thresholds.
func Veber(d molecule.Descriptors) Result {
	return EvaluateVeber(d, DefaultThresholds().Veber)
}

// EvaluateLipinski counts one violation each for HBD > MaxHBondDonors,
// HBA > MaxHBondAcceptors, MW > MaxMolecularWeight and LogP > MaxLogP.
func EvaluateLipinski(d molecule.Descriptors, t LipinskiThresholds) Result {
	r := Result{
		Rule:  RuleLipinski,
		Title: titleLipinski,
		Kind:  KindCount,
		Parameters: []Parameter{
			countParam(LabelHBondDonors, d.HBondDonors),
			countParam(LabelHBondAcceptors, d.HBondAcceptors),
			realParam(LabelMolecularWeight, d.MolecularWeight),
			realParam(LabelLogP, d.LogP),
		},
	}
	r.check(d.HBondDonors <= t.MaxHBondDonors, "HBD <= "+strconv.Itoa(t.MaxHBondDonors))
	r.check(d.HBondAcceptors <= t.MaxHBondAcceptors, "HBA <= "+strconv.Itoa(t.MaxHBondAcceptors))
	r.check(d.MolecularWeight <= t.MaxMolecularWeight, "MW <= "+num(t.MaxMolecularWeight))
	r.check(d.LogP <= t.MaxLogP, "LogP <= "+num(t.MaxLogP))
	r.Passed = r.Violations == 0
	return r
}

// EvaluateGhose counts one violation each for MW outside
// [MinMolecularWeight, MaxMolecularWeight], LogP outside [MinLogP, MaxLogP],
// rotatable bonds > MaxRotatableBonds and aromatic rings > MaxAromaticRings.
func EvaluateGhose(d molecule.Descriptors, t GhoseThresholds) Result {
	r := Result{
		Rule:  RuleGhose,
		Title: titleGhose,
		Kind:  KindCount,
		Parameters: []Parameter{
			realParam(LabelMolecularWeight, d.MolecularWeight),
			realParam(LabelLogP, d.LogP),
			countParam(LabelRotatableBonds, d.RotatableBonds),
			countParam(LabelAromaticRings, d.AromaticRings),
		},
	}
	r.check(within(d.MolecularWeight, t.MinMolecularWeight, t.MaxMolecularWeight),
		fmt.Sprintf("%s <= MW <= %s", num(t.MinMolecularWeight), num(t.MaxMolecularWeight)))
	r.check(within(d.LogP, t.MinLogP, t.MaxLogP),
		fmt.Sprintf("%s <= LogP <= %s", num(t.MinLogP), num(t.MaxLogP)))
	r.check(d.RotatableBonds <= t.MaxRotatableBonds, "RotB <= "+strconv.Itoa(t.MaxRotatableBonds))
	r.check(d.AromaticRings <= t.MaxAromaticRings, "AromRings <= "+strconv.Itoa(t.MaxAromaticRings))
	r.Passed = r.Violations == 0
	return r
}

// EvaluateVeber passes iff rotatable bonds <= MaxRotatableBonds and
// MW <= MaxMolecularWeight. Violations counts the failed criteria so callers
// can tell which side failed, but the verdict is binary.
func EvaluateVeber(d molecule.Descriptors, t VeberThresholds) Result {
	r := Result{
		Rule:  RuleVeber,
		Title: titleVeber,
		Kind:  KindBinary,
		Parameters: []Parameter{
			countParam(LabelRotatableBonds, d.RotatableBonds),
			realParam(LabelMolecularWeight, d.MolecularWeight),
		},
	}
	r.check(d.RotatableBonds <= t.MaxRotatableBonds, "RotB <= "+strconv.Itoa(t.MaxRotatableBonds))
	r.check(d.MolecularWeight <= t.MaxMolecularWeight, "MW <= "+num(t.MaxMolecularWeight))
	r.Passed = r.Violations == 0
	return r
}

// Evaluate runs all three rules in order against t.
func Evaluate(d molecule.Descriptors, t Thresholds) Assessment {
	return Assessment{
		Lipinski: EvaluateLipinski(d, t.Lipinski),
		Ghose:    EvaluateGhose(d, t.Ghose),
		Veber:    EvaluateVeber(d, t.Veber),
	}
}

func (r *Result) check(ok bool, description string) {
	r.Criteria = append(r.Criteria, Criterion{Description: description, Satisfied: ok})
	if !ok {
		r.Violations++
	}
}

func within(v, lo, hi float64) bool { return v >= lo && v <= hi }

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func countParam(label string, v int) Parameter {
	return Parameter{Label: label, Value: float64(v), Integer: true}
}

func realParam(label string, v float64) Parameter {
	return Parameter{Label: label, Value: v}
}

// ─────────────────────────────────────────────────────────────────────────────
// Evaluator
// ─────────────────────────────────────────────────────────────────────────────

// Evaluator applies a replaceable set of thresholds. It is safe for
// concurrent use; SetThresholds takes effect for evaluations that start
// afterwards.
type Evaluator struct {
	mu         sync.RWMutex
	thresholds Thresholds
}

// NewEvaluator validates t and returns an Evaluator using it.
func NewEvaluator(t Thresholds) (*Evaluator, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{thresholds: t}, nil
}

// NewDefaultEvaluator returns an Evaluator with DefaultThresholds.
func NewDefaultEvaluator() *Evaluator {
	return &Evaluator{thresholds: DefaultThresholds()}
}

// Evaluate runs Lipinski, Ghose and Veber in that order.
func (e *Evaluator) Evaluate(d molecule.Descriptors) Assessment {
	return Evaluate(d, e.Thresholds())
}

// Thresholds returns the thresholds currently in use.
func (e *Evaluator) Thresholds() Thresholds {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.thresholds
}

// SetThresholds replaces the thresholds after validating them. On error the
// previous thresholds stay in effect.
func (e *Evaluator) SetThresholds(t Thresholds) error {
	if err := t.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	e.thresholds = t
	e.mu.Unlock()
	return nil
}

//Personal.AI order the ending
