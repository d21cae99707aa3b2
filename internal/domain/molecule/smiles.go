package molecule

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/turtacn/molforge/pkg/errors"
)

// DefaultMaxSMILESLength bounds a submission before it reaches the engine.
const DefaultMaxSMILESLength = 4096

// smilesAlphabet is the character set of OpenSMILES. A string outside it can
// never parse, so it is rejected without a round trip to the engine.
var smilesAlphabet = regexp.MustCompile(`^[A-Za-z0-9@+\-\[\]()=#$:/\\%.*~]+$`)

// NormalizeSMILES trims surrounding whitespace and checks the result is a
// plausible SMILES string of at most maxLen bytes (maxLen <= 0 uses
// DefaultMaxSMILESLength). Failures are the Invalid Input error.
//
// Passing this check does not mean the string parses; only the engine decides
// that.
func NormalizeSMILES(raw string, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxSMILESLength
	}
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", errors.InvalidSMILES("empty input")
	}
	if len(s) > maxLen {
		return "", errors.InvalidSMILES(fmt.Sprintf("input exceeds %d characters", maxLen))
	}
	if !smilesAlphabet.MatchString(s) {
		return "", errors.InvalidSMILES("input contains characters outside the SMILES alphabet")
	}
	if !balanced(s) {
		return "", errors.InvalidSMILES("unbalanced brackets or parentheses")
	}
	return s, nil
}

// balanced checks branch parentheses and atom brackets. Brackets never nest.
func balanced(s string) bool {
	depth := 0
	inAtom := false
	for _, r := range s {
		switch r {
		case '[':
			if inAtom {
				return false
			}
			inAtom = true
		case ']':
			if !inAtom {
				return false
			}
			inAtom = false
		case '(':
			if inAtom {
				return false
			}
			depth++
		case ')':
			if inAtom || depth == 0 {
				return false
			}
			depth--
		}
	}
	return depth == 0 && !inAtom
}

//Personal.AI order the ending
