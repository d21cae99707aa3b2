package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molforge/pkg/errors"
	"github.com/turtacn/molforge/pkg/types/molecule"
)

const reportJSON = `{
	"id": "5f1c",
	"smiles": "CCO",
	"descriptors": {"molecular_weight": 46.069, "logp": -0.0014, "h_bond_donors": 1, "h_bond_acceptors": 1},
	"assessment": {
		"lipinski": {"rule": "lipinski", "title": "Lipinski's Rule of Five", "kind": "count", "violations": 0, "passed": true},
		"ghose": {"rule": "ghose", "title": "Ghose's Rule", "kind": "count", "violations": 2, "passed": false},
		"veber": {"rule": "veber", "title": "Veber's Rule", "kind": "binary", "passed": true}
	},
	"structure": {"filename": "molecule.pdb", "mime_type": "chemical/x-pdb", "pdb": "END\n"},
	"viewer_url": "https://molview.org/?inputFormat=pdb&structureUrl=data%3Achemical%2Fx-pdb%3Bbase64%2CRU5ECg%3D%3D",
	"cached": false,
	"generated_at": "2024-01-01T00:00:00Z"
}`

func TestConvert_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/molecules/convert", r.URL.Path)
		var req molecule.ConvertRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "CCO", req.SMILES)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reportJSON))
	})

	report, err := c.Convert(context.Background(), "CCO")
	require.NoError(t, err)
	assert.Equal(t, "CCO", report.SMILES)
	assert.Equal(t, "Ghose's Rule: 2 violation(s)", report.Assessment.Ghose.Summary())
	assert.Equal(t, "Veber's Rule: Passed", report.Assessment.Veber.Summary())
	assert.Equal(t, "END\n", report.Structure.PDB)
}

func TestConvert_EmptySMILES(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request must not be sent")
	})

	_, err := c.Convert(context.Background(), " ")
	assert.True(t, errors.IsInvalidSMILES(err))
}

func TestConvert_InvalidSMILES(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"MOL_001","message":"Invalid SMILES notation."}`))
	})

	report, err := c.Convert(context.Background(), "C1CC")
	assert.Nil(t, report)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsInvalidSMILES())
	assert.Equal(t, "Invalid SMILES notation.", apiErr.Message)
}

func TestDownloadPDB(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/molecules/pdb", r.URL.Path)
		assert.Equal(t, molecule.PDBMIMEType, r.Header.Get("Accept"))
		w.Header().Set("Content-Type", molecule.PDBMIMEType)
		w.Header().Set("Content-Disposition", `attachment; filename="molecule.pdb"`)
		_, _ = w.Write([]byte("HETATM\nEND\n"))
	})

	pdb, err := c.DownloadPDB(context.Background(), "CCO")
	require.NoError(t, err)
	assert.Equal(t, "HETATM\nEND\n", string(pdb))
}

func TestGetStructurePDB(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/structures/abc/pdb" {
			_, _ = w.Write([]byte("END\n"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"MOL_004","message":"structure not found"}`))
	})

	pdb, err := c.GetStructurePDB(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "END\n", string(pdb))

	_, err = c.GetStructurePDB(context.Background(), "missing")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())

	_, err = c.GetStructurePDB(context.Background(), "")
	assert.True(t, errors.IsValidation(err))
}

func TestEvaluate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/druglike/evaluate", r.URL.Path)
		var d molecule.Descriptors
		require.NoError(t, json.NewDecoder(r.Body).Decode(&d))
		assert.Equal(t, 6, d.HBondDonors)
		_, _ = w.Write([]byte(`{"lipinski":{"title":"Lipinski's Rule of Five","kind":"count","violations":4},
			"ghose":{"title":"Ghose's Rule","kind":"count","violations":4},
			"veber":{"title":"Veber's Rule","kind":"binary","passed":false}}`))
	})

	a, err := c.Evaluate(context.Background(), molecule.Descriptors{HBondDonors: 6, HBondAcceptors: 11, MolecularWeight: 600, LogP: 6})
	require.NoError(t, err)
	assert.Equal(t, 4, a.Lipinski.Violations)
	assert.Equal(t, "Failed", a.Veber.Verdict())
}

func TestHealth(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/readyz", r.URL.Path)
			_, _ = w.Write([]byte(`{"status":"ready"}`))
		})
		h, err := c.Health(context.Background())
		require.NoError(t, err)
		assert.True(t, h.Ready())
	})

	t.Run("not ready is not retried", func(t *testing.T) {
		calls := 0
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"not_ready","components":{"chem":{"status":"unhealthy","error":"connection refused"}}}`))
		})
		h, err := c.Health(context.Background())
		require.Error(t, err)
		require.NotNil(t, h)
		assert.False(t, h.Ready())
		assert.Equal(t, "unhealthy", h.Components["chem"].Status)
		assert.Equal(t, 1, calls)
	})
}

//Personal.AI order the ending
