// Package pdb reads generated PDB blocks back with gochem to report what the
// chemistry engine actually produced.
package pdb

import (
	"bytes"
	"context"
	"sort"
	"strconv"
	"strings"

	chem "github.com/rmera/gochem"

	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molforge/pkg/errors"
)

// Summary describes the atoms of a PDB block.
type Summary struct {
	AtomCount      int            `json:"atom_count"`
	HeavyAtomCount int            `json:"heavy_atom_count"`
	Elements       map[string]int `json:"elements"`
	Formula        string         `json:"formula"`
	Models         int            `json:"models"`
}

// Inspector parses PDB blocks.
type Inspector struct {
	logger logging.Logger
}

// NewInspector creates an Inspector.
func NewInspector(logger logging.Logger) *Inspector {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Inspector{logger: logger.Named("pdb")}
}

// Inspect parses block in memory and summarises its atoms.
func (i *Inspector) Inspect(ctx context.Context, block []byte) (*Summary, error) {
	if len(block) == 0 {
		return nil, errors.New(errors.ErrCodeMoleculeInvalidFormat, "empty PDB block")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !hasAtomRecords(block) {
		return nil, errors.New(errors.ErrCodeMoleculeParsingFailed, "PDB block has no atoms")
	}

	mol, err := chem.PDBRead(bytes.NewReader(block))
	if err != nil {
		i.logger.Debug("gochem rejected PDB block", logging.Int("bytes", len(block)), logging.Err(err))
		return nil, errors.Wrap(err, errors.ErrCodeMoleculeParsingFailed, "failed to parse PDB block")
	}
	if mol.Len() == 0 {
		return nil, errors.New(errors.ErrCodeMoleculeParsingFailed, "PDB block has no atoms")
	}

	s := &Summary{
		AtomCount: mol.Len(),
		Elements:  make(map[string]int),
		Models:    len(mol.Coords),
	}
	for n := 0; n < mol.Len(); n++ {
		sym := normalizeSymbol(mol.Atom(n).Symbol)
		s.Elements[sym]++
		if sym != "H" && sym != "D" {
			s.HeavyAtomCount++
		}
	}
	s.Formula = HillFormula(s.Elements)
	return s, nil
}

func hasAtomRecords(block []byte) bool {
	for _, line := range strings.Split(string(block), "\n") {
		if strings.HasPrefix(line, "ATOM  ") || strings.HasPrefix(line, "HETATM") {
			return true
		}
	}
	return false
}

func normalizeSymbol(sym string) string {
	sym = strings.TrimSpace(sym)
	if sym == "" {
		return "X"
	}
	return strings.ToUpper(sym[:1]) + strings.ToLower(sym[1:])
}

// HillFormula renders element counts in Hill order: C, then H, then the rest
// alphabetically. Without carbon every element is alphabetical.
func HillFormula(elements map[string]int) string {
	syms := make([]string, 0, len(elements))
	for sym, n := range elements {
		if n > 0 {
			syms = append(syms, sym)
		}
	}
	_, hasCarbon := elements["C"]
	sort.Slice(syms, func(a, b int) bool {
		if hasCarbon {
			ra, rb := hillRank(syms[a]), hillRank(syms[b])
			if ra != rb {
				return ra < rb
			}
		}
		return syms[a] < syms[b]
	})

	var sb strings.Builder
	for _, sym := range syms {
		sb.WriteString(sym)
		if n := elements[sym]; n > 1 {
			sb.WriteString(strconv.Itoa(n))
		}
	}
	return sb.String()
}

func hillRank(sym string) int {
	switch sym {
	case "C":
		return 0
	case "H":
		return 1
	}
	return 2
}

//Personal.AI order the ending
