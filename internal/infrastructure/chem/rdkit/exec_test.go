package rdkit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molforge/pkg/errors"
)

const bridgeHelperEnv = "MOLFORGE_BRIDGE_HELPER"

// TestBridgeHelperProcess is not a real test. The exec tests run the test
// binary itself as the bridge command with bridgeHelperEnv set.
func TestBridgeHelperProcess(t *testing.T) {
	if os.Getenv(bridgeHelperEnv) != "1" {
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		fmt.Fprintln(os.Stderr, "bad request:", err)
		os.Exit(2)
	}

	emit := func(resp GenerateResponse) {
		_ = json.NewEncoder(os.Stdout).Encode(resp)
	}

	switch req.SMILES {
	case "C1CC(":
		emit(GenerateResponse{Valid: false, Error: "SMILES Parse Error: extra open parentheses"})
		os.Exit(0)
	case "C1CC":
		emit(GenerateResponse{Valid: false, Error: "SMILES Parse Error: unclosed ring"})
		os.Exit(1)
	case "C#C#C":
		emit(GenerateResponse{Valid: true, Error: "3D embedding failed"})
		os.Exit(2)
	case "CRASH":
		fmt.Fprintln(os.Stderr, "Traceback (most recent call last): ImportError: rdkit")
		os.Exit(3)
	case "SLEEP":
		time.Sleep(10 * time.Second)
		os.Exit(0)
	case "INLINE":
		emit(GenerateResponse{Valid: true, PDB: ethanolPDB, Descriptors: ethanolDescriptors})
		os.Exit(0)
	case "GARBAGE":
		fmt.Fprint(os.Stdout, "Warning: UFFTYPER: Unrecognized atom type")
		os.Exit(0)
	}

	if err := os.WriteFile(req.PDBPath, []byte(ethanolPDB), 0o600); err != nil {
		fmt.Fprintln(os.Stderr, "write pdb:", err)
		os.Exit(2)
	}
	emit(GenerateResponse{Valid: true, Descriptors: ethanolDescriptors})
	os.Exit(0)
}

func newTestExecProvider(t *testing.T, timeout time.Duration) (*ExecProvider, string) {
	t.Helper()
	t.Setenv(bridgeHelperEnv, "1")
	dir := t.TempDir()
	p, err := NewExecProvider(Config{
		Driver:     DriverExec,
		Command:    os.Args[0],
		Args:       []string{"-test.run=^TestBridgeHelperProcess$"},
		TempDir:    dir,
		Timeout:    timeout,
		RandomSeed: 7,
	}, logging.NewNopLogger())
	require.NoError(t, err)
	return p, dir
}

func assertTempDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp PDB files must be removed")
}

func TestExecProvider_Generate_Success(t *testing.T) {
	p, dir := newTestExecProvider(t, 30*time.Second)

	s, err := p.Generate(context.Background(), "CCO")
	require.NoError(t, err)
	assert.Equal(t, ethanolPDB, string(s.PDB))
	assert.InDelta(t, -0.0014, s.Descriptors.LogP, 1e-9)
	assert.Equal(t, 0, s.Descriptors.RotatableBonds)
	assert.Equal(t, DriverExec, p.Name())

	assertTempDirEmpty(t, dir)
}

func TestExecProvider_Generate_InlinePDB(t *testing.T) {
	p, dir := newTestExecProvider(t, 30*time.Second)

	s, err := p.Generate(context.Background(), "INLINE")
	require.NoError(t, err)
	assert.Equal(t, ethanolPDB, string(s.PDB))
	assertTempDirEmpty(t, dir)
}

func TestExecProvider_Generate_InvalidSMILES(t *testing.T) {
	p, dir := newTestExecProvider(t, 30*time.Second)

	for _, smiles := range []string{"C1CC(", "C1CC"} {
		s, err := p.Generate(context.Background(), smiles)
		assert.Nil(t, s)
		assert.True(t, errors.IsInvalidSMILES(err), smiles)
	}
	assertTempDirEmpty(t, dir)
}

func TestExecProvider_Generate_EmbeddingFailure(t *testing.T) {
	p, dir := newTestExecProvider(t, 30*time.Second)

	_, err := p.Generate(context.Background(), "C#C#C")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMoleculeConversionFailed))
	assert.False(t, errors.IsInvalidSMILES(err))
	assertTempDirEmpty(t, dir)
}

func TestExecProvider_Generate_BridgeFailures(t *testing.T) {
	p, dir := newTestExecProvider(t, 30*time.Second)

	_, err := p.Generate(context.Background(), "CRASH")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeChemBackendFailed))
	var ae *errors.AppError
	require.True(t, errors.As(err, &ae))
	assert.Contains(t, ae.Detail, "ImportError")

	_, err = p.Generate(context.Background(), "GARBAGE")
	assert.True(t, errors.IsCode(err, errors.ErrCodeChemBackendProtocol))

	assertTempDirEmpty(t, dir)
}

func TestExecProvider_Generate_Timeout(t *testing.T) {
	p, dir := newTestExecProvider(t, 200*time.Millisecond)

	start := time.Now()
	_, err := p.Generate(context.Background(), "SLEEP")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTimeout))
	assert.Less(t, time.Since(start), 5*time.Second)

	assertTempDirEmpty(t, dir)
}

func TestExecProvider_Ping(t *testing.T) {
	p, _ := newTestExecProvider(t, time.Second)
	assert.NoError(t, p.Ping(context.Background()))

	missing, err := NewExecProvider(Config{Command: "molforge-bridge-does-not-exist"}, nil)
	require.NoError(t, err)
	assert.True(t, errors.IsCode(missing.Ping(context.Background()), errors.ErrCodeChemBackendUnavailable))
}

func TestNewExecProvider_RequiresCommand(t *testing.T) {
	_, err := NewExecProvider(Config{Command: "  "}, nil)
	assert.Error(t, err)
}

//Personal.AI order the ending
