// Package cli implements the molforge command-line tool.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/molforge/internal/config"
	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molforge/pkg/client"
	"github.com/turtacn/molforge/pkg/errors"
	"github.com/turtacn/molforge/pkg/types/molecule"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// cliContextKey is the context key for CLIContext.
type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	Verbose      bool
	Timeout      time.Duration
	ServerAddr   string
}

// APIClient is the part of the SDK the commands call.
type APIClient interface {
	Convert(ctx context.Context, smiles string) (*molecule.ConversionReport, error)
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config       *config.Config
	Logger       logging.Logger
	Client       APIClient
	OutputFormat string
	Verbose      bool
	Timeout      time.Duration
}

// CommandDependencies overrides what persistentPreRun would otherwise build.
// Nil fields are initialised from flags and configuration.
type CommandDependencies struct {
	Client APIClient
	Logger logging.Logger
}

// NewRootCommand creates the root cobra command with all global flags and subcommands.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithDeps(CommandDependencies{})
}

// NewRootCommandWithDeps is NewRootCommand with injected dependencies.
func NewRootCommandWithDeps(deps CommandDependencies) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "molforge",
		Short: "MolForge CLI: SMILES to PDB conversion and drug-likeness rules",
		Long: "MolForge converts SMILES notation into 3D structures in PDB format and checks\n" +
			"molecules against Lipinski's Rule of Five, Ghose's Rule and Veber's Rule.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts, deps)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./molforge.yaml)")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", "text", "output format (text, json, table)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose output")
	pf.DurationVar(&opts.Timeout, "timeout", 2*time.Minute, "global operation timeout")
	pf.StringVar(&opts.ServerAddr, "server", "", "API server address (default: http://localhost:8080)")

	cmd.AddCommand(
		NewConvertCmd(),
		NewRulesCmd(),
		NewVersionCmd(),
	)
	return cmd
}

// persistentPreRun initializes config, logger, and client, then stores CLIContext.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions, deps CommandDependencies) error {
	switch strings.ToLower(opts.OutputFormat) {
	case "text", "json", "table":
	default:
		return errors.NewValidationError("output", fmt.Sprintf("unsupported output format %q", opts.OutputFormat))
	}

	cfg, err := initConfig(opts)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger := deps.Logger
	if logger == nil {
		if logger, err = initLogger(opts); err != nil {
			return fmt.Errorf("logger initialization failed: %w", err)
		}
	}

	apiClient := deps.Client
	if apiClient == nil {
		c, err := initClient(cfg, opts)
		if err != nil {
			logger.Warn("API client initialization failed, remote commands will not work", logging.Err(err))
		} else {
			apiClient = c
		}
	}

	cliCtx := &CLIContext{
		Config:       cfg,
		Logger:       logger,
		Client:       apiClient,
		OutputFormat: strings.ToLower(opts.OutputFormat),
		Verbose:      opts.Verbose,
		Timeout:      opts.Timeout,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cliCtx))
	return nil
}

// initConfig loads configuration with priority: flags > env > file > defaults.
func initConfig(opts *RootOptions) (*config.Config, error) {
	if opts.ConfigPath != "" {
		return config.Load(opts.ConfigPath)
	}

	searchPaths := []string{"./molforge.yaml"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(homeDir, ".molforge", "config.yaml"))
	}
	searchPaths = append(searchPaths, "/etc/molforge/config.yaml")

	for _, p := range searchPaths {
		if _, statErr := os.Stat(p); statErr == nil {
			return config.Load(p)
		}
	}
	return config.LoadFromEnv()
}

// initLogger creates a logger configured for CLI usage (output to stderr).
func initLogger(opts *RootOptions) (logging.Logger, error) {
	level := strings.ToLower(opts.LogLevel)
	if !logging.ValidLevel(level) {
		level = logging.LevelWarn
	}
	if opts.Verbose {
		level = logging.LevelDebug
	}

	return logging.NewLogger(logging.LogConfig{
		Level:            level,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
}

// initClient creates an API client from the --server flag or the server
// section of the configuration.
func initClient(cfg *config.Config, opts *RootOptions) (*client.Client, error) {
	addr := opts.ServerAddr
	if addr == "" {
		host := cfg.Server.Host
		if host == "" || host == "0.0.0.0" || host == "::" {
			host = "localhost"
		}
		addr = fmt.Sprintf("http://%s:%d", host, cfg.Server.Port)
	}
	return client.NewClient(addr,
		client.WithTimeout(opts.Timeout),
		client.WithUserAgent("molforge-cli/"+Version))
}

// GetCLIContext extracts CLIContext from a cobra command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.NewValidationError("context", "command context is nil")
	}

	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.NewValidationError("context", "CLIContext not found in command context")
	}
	return cliCtx, nil
}

// Execute is the main entry point for the CLI application.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

// PrintResult outputs data in the format specified by CLIContext.
func PrintResult(cmd *cobra.Command, data interface{}) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return printJSON(cmd.OutOrStdout(), data)
	}

	switch cliCtx.OutputFormat {
	case "json":
		return printJSON(cmd.OutOrStdout(), data)
	case "table":
		return printTable(cmd.OutOrStdout(), data)
	default:
		return printText(cmd.OutOrStdout(), data)
	}
}

// printJSON outputs data as indented JSON.
func printJSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// printText outputs data as a simple string representation.
func printText(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case string:
		fmt.Fprintln(w, v)
	case fmt.Stringer:
		fmt.Fprintln(w, v.String())
	default:
		fmt.Fprintf(w, "%+v\n", v)
	}
	return nil
}

// printTable outputs data as a table if it implements the table provider
// methods, otherwise falls back to text.
func printTable(w io.Writer, data interface{}) error {
	type tableProvider interface {
		TableHeaders() []string
		TableRows() [][]string
	}

	if tp, ok := data.(tableProvider); ok {
		fmt.Fprint(w, FormatTable(tp.TableHeaders(), tp.TableRows()))
		return nil
	}
	return printText(w, data)
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
}

// PrintSuccess writes a formatted success message to stdout.
func PrintSuccess(cmd *cobra.Command, msg string) {
	fmt.Fprintf(cmd.OutOrStdout(), "OK: %s\n", msg)
}

// FormatTable renders headers and rows as an aligned ASCII table.
func FormatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	colWidths := make([]int, len(headers))
	for i, h := range headers {
		colWidths[i] = len(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(colWidths); i++ {
			if len(row[i]) > colWidths[i] {
				colWidths[i] = len(row[i])
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i := range headers {
			if i > 0 {
				sb.WriteString("  ")
			}
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			if i == len(headers)-1 {
				sb.WriteString(val)
			} else {
				sb.WriteString(padRight(val, colWidths[i]))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	sep := make([]string, len(colWidths))
	for i, w := range colWidths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}

// padRight pads s with spaces to the given width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

//Personal.AI order the ending
