package rdkit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/turtacn/molforge/internal/domain/molecule"
	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molforge/pkg/errors"
)

// ExecProvider runs a local bridge command per generation. The request goes on
// stdin, the descriptors come back on stdout and the PDB block is written to a
// temp file owned by this call.
type ExecProvider struct {
	command string
	args    []string
	cfg     Config
	logger  logging.Logger
}

// NewExecProvider creates an ExecProvider.
func NewExecProvider(cfg Config, logger logging.Logger) (*ExecProvider, error) {
	cfg.applyDefaults()
	if strings.TrimSpace(cfg.Command) == "" {
		return nil, fmt.Errorf("rdkit: bridge command is required for the exec driver")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ExecProvider{
		command: cfg.Command,
		args:    cfg.Args,
		cfg:     cfg,
		logger:  logger.Named("rdkit"),
	}, nil
}

// Name implements molecule.StructureProvider.
func (p *ExecProvider) Name() string { return DriverExec }

// Generate implements molecule.StructureProvider. The temp file is removed on
// every return path.
func (p *ExecProvider) Generate(ctx context.Context, smiles string) (*molecule.Structure, error) {
	f, err := os.CreateTemp(p.cfg.TempDir, "molforge-*.pdb")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create temp file")
	}
	path := f.Name()
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			p.logger.Warn("failed to remove temp file", logging.String("path", path), logging.Err(rmErr))
		}
	}()
	if err := f.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to close temp file")
	}

	req := newRequest(smiles, p.cfg.RandomSeed)
	req.PDBPath = path
	input, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode engine request")
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.command, p.args...)
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), errors.ErrCodeTimeout, "structure generation timed out")
		}
		// A bridge may exit non-zero after reporting why the molecule failed.
		if _, decErr := decodeResponse(stdout.Bytes()); errors.IsInvalidSMILES(decErr) ||
			errors.IsCode(decErr, errors.ErrCodeMoleculeConversionFailed) {
			return nil, decErr
		}
		p.logger.Warn("bridge command failed",
			logging.String("command", p.command),
			logging.String("stderr", truncate(stderr.String(), 512)),
			logging.Err(err))
		return nil, errors.Wrap(err, errors.ErrCodeChemBackendFailed, "bridge command failed").
			WithDetail(truncate(stderr.String(), 256))
	}

	resp, err := decodeResponse(stdout.Bytes())
	if err != nil {
		return nil, err
	}

	pdb, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeChemBackendProtocol, "failed to read bridge output")
	}
	if len(pdb) == 0 && resp.PDB != "" {
		pdb = []byte(resp.PDB)
	}
	return toStructure(smiles, pdb, resp.Descriptors)
}

// Ping implements molecule.StructureProvider by resolving the command.
func (p *ExecProvider) Ping(_ context.Context) error {
	if _, err := exec.LookPath(p.command); err != nil {
		return errors.Wrap(err, errors.ErrCodeChemBackendUnavailable, "bridge command not found")
	}
	return nil
}

//Personal.AI order the ending
