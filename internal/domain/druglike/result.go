package druglike

import (
	"fmt"
	"strconv"
)

// RuleName identifies a drug-likeness rule.
type RuleName string

const (
	RuleLipinski RuleName = "lipinski"
	RuleGhose    RuleName = "ghose"
	RuleVeber    RuleName = "veber"
)

// Kind says how a rule reports its outcome.
type Kind string

const (
	// KindCount rules report how many criteria were violated.
	KindCount Kind = "count"
	// KindBinary rules report only pass or fail.
	KindBinary Kind = "binary"
)

// Parameter labels, in the order they are presented.
const (
	LabelHBondDonors     = "Number of Hydrogen Bond Donors (HBD)"
	LabelHBondAcceptors  = "Number of Hydrogen Bond Acceptors (HBA)"
	LabelMolecularWeight = "Molecular Weight (MW)"
	LabelLogP            = "LogP (lipophilicity)"
	LabelRotatableBonds  = "Number of Rotatable Bonds"
	LabelAromaticRings   = "Number of Aromatic Rings"
)

// Parameter is one descriptor value a rule looked at.
type Parameter struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Integer bool    `json:"integer"`
}

// String renders the value the way it was computed: counts as integers and
// real values in their shortest exact decimal form.
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

// Result is the structured outcome of evaluating one rule.
type Result struct {
	Rule       RuleName    `json:"rule"`
	Title      string      `json:"title"`
	Kind       Kind        `json:"kind"`
	Parameters []Parameter `json:"parameters"`
	Criteria   []Criterion `json:"criteria"`
	Violations int         `json:"violations"`
	Passed     bool        `json:"passed"`
}

// Verdict is the short outcome text: "No violations" or "N violation(s)" for
// count rules, "Passed" or "Failed" for binary rules.
func (r Result) Verdict() string {
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

// Summary prefixes the verdict with the rule title,
// e.g. "Lipinski's Rule of Five: 2 violation(s)".
func (r Result) Summary() string {
	return r.Title + ": " + r.Verdict()
}

// Assessment holds the three rule results in evaluation order.
type Assessment struct {
	Lipinski Result `json:"lipinski"`
	Ghose    Result `json:"ghose"`
	Veber    Result `json:"veber"`
}

// Results returns the results in evaluation order: Lipinski, Ghose, Veber.
func (a Assessment) Results() []Result {
	return []Result{a.Lipinski, a.Ghose, a.Veber}
}

// AllPassed reports whether every rule passed.
func (a Assessment) AllPassed() bool {
	return a.Lipinski.Passed && a.Ghose.Passed && a.Veber.Passed
}

//Personal.AI order the ending
