package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molforge/pkg/client"
	"github.com/turtacn/molforge/pkg/errors"
	"github.com/turtacn/molforge/pkg/types/molecule"
)

type convertOptions struct {
	smiles string
	out    string
}

// NewConvertCmd converts a SMILES string through the API server.
func NewConvertCmd() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [SMILES]",
		Short: "Convert SMILES notation to a 3D structure in PDB format",
		Long: "Convert sends the SMILES string to the MolForge API server, prints the\n" +
			"drug-likeness assessment and the 3D viewer link, and optionally writes the\n" +
			"generated PDB file.",
		Example: "  molforge convert --smiles CCO --out molecule.pdb\n  molforge convert 'c1ccccc1O' -o json",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.smiles == "" && len(args) == 1 {
				opts.smiles = args[0]
			}
			return runConvert(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.smiles, "smiles", "s", "", "SMILES notation to convert")
	cmd.Flags().StringVar(&opts.out, "out", "", "write the PDB file to this path (e.g. "+molecule.PDBFilename+")")
	return cmd
}

func runConvert(cmd *cobra.Command, opts *convertOptions) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	if cliCtx.Client == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "API client is not configured; pass --server")
	}

	ctx := cmd.Context()
	if cliCtx.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cliCtx.Timeout)
		defer cancel()
	}

	report, err := cliCtx.Client.Convert(ctx, opts.smiles)
	if err != nil {
		if isInvalidSMILES(err) {
			return errors.InvalidSMILES(opts.smiles)
		}
		return err
	}
	cliCtx.Logger.Debug("conversion finished",
		logging.String("structure_id", report.ID),
		logging.Bool("cached", report.Cached))

	if opts.out != "" {
		if err := os.WriteFile(opts.out, []byte(report.Structure.PDB), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.out, err)
		}
	}

	switch cliCtx.OutputFormat {
	case "json":
		return printJSON(cmd.OutOrStdout(), report)
	case "table":
		if err := printTable(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	default:
		writeReport(cmd.OutOrStdout(), report)
	}
	if opts.out != "" {
		PrintSuccess(cmd, "PDB file written to "+opts.out)
	}
	return nil
}

func isInvalidSMILES(err error) bool {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.IsInvalidSMILES()
	}
	return errors.IsInvalidSMILES(err)
}

func writeReport(w io.Writer, r *molecule.ConversionReport) {
	fmt.Fprintln(w, "Conversion successful! PDB file generated.")
	fmt.Fprintln(w)
	for _, res := range r.Assessment.Results() {
		lines := make([]string, 0, len(res.Parameters))
		for _, p := range res.Parameters {
			lines = append(lines, p.Label+": "+p.String())
		}
		writeRuleSection(w, res.Title, lines, res.Summary())
	}
	fmt.Fprintln(w, "3D Visualization:")
	fmt.Fprintln(w, "  "+r.ViewerURL)
	if r.DownloadURL != "" {
		fmt.Fprintln(w, "Download PDB file:")
		fmt.Fprintln(w, "  "+r.DownloadURL)
	}
}

func writeRuleSection(w io.Writer, title string, params []string, summary string) {
	fmt.Fprintf(w, "%s Parameters:\n", title)
	for _, p := range params {
		fmt.Fprintln(w, "  "+p)
	}
	fmt.Fprintln(w, summary)
	fmt.Fprintln(w)
}

//Personal.AI order the ending
