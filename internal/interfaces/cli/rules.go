package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/molforge/internal/domain/druglike"
	"github.com/turtacn/molforge/internal/domain/molecule"
)

// assessmentView adapts a druglike.Assessment to the CLI printers.
type assessmentView druglike.Assessment

func (a assessmentView) TableHeaders() []string {
	return []string{"RULE", "VERDICT", "PARAMETERS"}
}

func (a assessmentView) TableRows() [][]string {
	results := druglike.Assessment(a).Results()
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		params := make([]string, 0, len(r.Parameters))
		for _, p := range r.Parameters {
			params = append(params, p.Label+"="+p.String())
		}
		rows = append(rows, []string{r.Title, r.Verdict(), strings.Join(params, ", ")})
	}
	return rows
}

func (a assessmentView) String() string {
	var sb strings.Builder
	for _, r := range druglike.Assessment(a).Results() {
		lines := make([]string, 0, len(r.Parameters))
		for _, p := range r.Parameters {
			lines = append(lines, p.Label+": "+p.String())
		}
		writeRuleSection(&sb, r.Title, lines, r.Summary())
	}
	return strings.TrimRight(sb.String(), "\n")
}

// NewRulesCmd evaluates the drug-likeness rules for descriptor values given
// on the command line, without contacting the server.
func NewRulesCmd() *cobra.Command {
	var d molecule.Descriptors

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Evaluate Lipinski, Ghose and Veber rules for given descriptors",
		Long: "Rules applies the drug-likeness thresholds from the configuration to the\n" +
			"descriptor values passed as flags.",
		Example: "  molforge rules --mw 600 --logp 6 --hbd 6 --hba 11\n  molforge rules --mw 490 --logp 2 --rotb 5 --arom 1 -o table",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if err := d.Validate(); err != nil {
				return err
			}

			evaluator, err := druglike.NewEvaluator(cliCtx.Config.Rules.Thresholds())
			if err != nil {
				return fmt.Errorf("invalid rule thresholds: %w", err)
			}
			return PrintResult(cmd, assessmentView(evaluator.Evaluate(d)))
		},
	}

	f := cmd.Flags()
	f.Float64Var(&d.MolecularWeight, "mw", 0, "molecular weight (Da)")
	f.Float64Var(&d.LogP, "logp", 0, "LogP (lipophilicity)")
	f.IntVar(&d.HBondDonors, "hbd", 0, "number of hydrogen bond donors")
	f.IntVar(&d.HBondAcceptors, "hba", 0, "number of hydrogen bond acceptors")
	f.IntVar(&d.RotatableBonds, "rotb", 0, "number of rotatable bonds")
	f.IntVar(&d.AromaticRings, "arom", 0, "number of aromatic rings")
	return cmd
}

//Personal.AI order the ending
