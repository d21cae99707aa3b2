package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molforge/internal/application/conversion"
	"github.com/turtacn/molforge/internal/domain/druglike"
	"github.com/turtacn/molforge/internal/domain/molecule"
	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molforge/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const ethanolPDB = "HETATM    1  C1  UNL     1      -0.888   0.164  -0.093  1.00  0.00           C  \nEND\n"

var ethanol = molecule.Descriptors{MolecularWeight: 46.069, LogP: -0.0014, HBondDonors: 1, HBondAcceptors: 1}

type mockService struct{ mock.Mock }

func (m *mockService) Convert(ctx context.Context, smiles string) (*conversion.Report, error) {
	args := m.Called(ctx, smiles)
	r, _ := args.Get(0).(*conversion.Report)
	return r, args.Error(1)
}

func (m *mockService) Evaluate(d molecule.Descriptors) (druglike.Assessment, error) {
	args := m.Called(d)
	a, _ := args.Get(0).(druglike.Assessment)
	return a, args.Error(1)
}

func (m *mockService) Structure(ctx context.Context, key string) (*molecule.Structure, error) {
	args := m.Called(ctx, key)
	st, _ := args.Get(0).(*molecule.Structure)
	return st, args.Error(1)
}

func ethanolReport() *conversion.Report {
	pdb := []byte(ethanolPDB)
	return &conversion.Report{
		ID:          molecule.ContentKey("CCO"),
		SMILES:      "CCO",
		Descriptors: ethanol,
		Assessment:  druglike.NewDefaultEvaluator().Evaluate(ethanol),
		Structure: conversion.Artifact{
			Filename: molecule.PDBFilename,
			MIMEType: molecule.PDBMIMEType,
			PDB:      ethanolPDB,
		},
		ViewerURL:   conversion.ViewerURL(conversion.DefaultViewerBaseURL, pdb),
		GeneratedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newAPI(svc ConversionService) *gin.Engine {
	r := gin.New()
	api := r.Group("/api/v1")
	NewMoleculeHandler(svc, logging.NewNopLogger()).RegisterRoutes(api)
	NewDrugLikenessHandler(svc, logging.NewNopLogger()).RegisterRoutes(api)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// ─────────────────────────────────────────────────────────────────────────────
// Error mapping
// ─────────────────────────────────────────────────────────────────────────────

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"invalid smiles", errors.InvalidSMILES("unparseable"), http.StatusBadRequest, "MOL_001", "Invalid SMILES notation."},
		{"not found", errors.New(errors.ErrCodeStructureNotFound, "structure not found"), http.StatusNotFound, "MOL_004", "structure not found"},
		{"embedding failed", errors.New(errors.ErrCodeMoleculeConversionFailed, "embedding failed"), http.StatusUnprocessableEntity, "MOL_011", "embedding failed"},
		{"backend masked", errors.New(errors.ErrCodeChemBackendFailed, "exit status 1 from /usr/bin/python3"), http.StatusBadGateway, "CHEM_002", "chemistry backend failed"},
		{"breaker open", errors.New(errors.ErrCodeChemBackendUnavailable, "circuit open"), http.StatusServiceUnavailable, "CHEM_001", "chemistry backend unavailable"},
		{"foreign error", context.DeadlineExceeded, http.StatusInternalServerError, "COMMON_001", "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := errorResponse(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// MoleculeHandler
// ─────────────────────────────────────────────────────────────────────────────

func TestMoleculeHandler_Convert(t *testing.T) {
	svc := new(mockService)
	svc.On("Convert", mock.Anything, "CCO").Return(ethanolReport(), nil).Once()
	r := newAPI(svc)

	rec := do(r, http.MethodPost, "/api/v1/molecules/convert", `{"smiles":"CCO"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got conversion.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "CCO", got.SMILES)
	assert.Equal(t, 0, got.Assessment.Lipinski.Violations)
	assert.True(t, got.Assessment.Veber.Passed)
	assert.Equal(t, molecule.PDBFilename, got.Structure.Filename)
	assert.True(t, strings.HasPrefix(got.ViewerURL, "https://molview.org/?inputFormat=pdb&structureUrl="))
	svc.AssertExpectations(t)
}

func TestMoleculeHandler_Convert_InvalidSMILES(t *testing.T) {
	svc := new(mockService)
	svc.On("Convert", mock.Anything, "C1CC").Return(nil, errors.InvalidSMILES("unclosed ring"))
	r := newAPI(svc)

	rec := do(r, http.MethodPost, "/api/v1/molecules/convert", `{"smiles":"C1CC"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "MOL_001", resp.Code)
	assert.Equal(t, "Invalid SMILES notation.", resp.Message)
	assert.NotContains(t, rec.Body.String(), "assessment")
}

func TestMoleculeHandler_Convert_MalformedBody(t *testing.T) {
	svc := new(mockService)
	r := newAPI(svc)

	rec := do(r, http.MethodPost, "/api/v1/molecules/convert", `{"smiles":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "COMMON_002", decodeError(t, rec).Code)
	svc.AssertNotCalled(t, "Convert", mock.Anything, mock.Anything)
}

func TestMoleculeHandler_DownloadPDB(t *testing.T) {
	svc := new(mockService)
	svc.On("Convert", mock.Anything, "CCO").Return(ethanolReport(), nil)
	r := newAPI(svc)

	rec := do(r, http.MethodPost, "/api/v1/molecules/pdb", `{"smiles":"CCO"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "chemical/x-pdb", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="molecule.pdb"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, molecule.ContentKey("CCO"), rec.Header().Get("X-Structure-ID"))
	assert.Equal(t, ethanolPDB, rec.Body.String())
}

func TestMoleculeHandler_GetStructurePDB(t *testing.T) {
	key := molecule.ContentKey("CCO")
	svc := new(mockService)
	svc.On("Structure", mock.Anything, key).Return(&molecule.Structure{PDB: []byte(ethanolPDB)}, nil)
	svc.On("Structure", mock.Anything, "missing").
		Return(nil, errors.New(errors.ErrCodeStructureNotFound, "structure not found"))
	r := newAPI(svc)

	rec := do(r, http.MethodGet, "/api/v1/structures/"+key+"/pdb", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ethanolPDB, rec.Body.String())

	rec = do(r, http.MethodGet, "/api/v1/structures/missing/pdb", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "MOL_004", decodeError(t, rec).Code)
}

func TestMoleculeHandler_BackendFailureIsMasked(t *testing.T) {
	svc := new(mockService)
	svc.On("Convert", mock.Anything, "CCO").
		Return(nil, errors.New(errors.ErrCodeChemBackendFailed, "traceback in bridge").WithDetail("stderr=..."))
	r := newAPI(svc)

	rec := do(r, http.MethodPost, "/api/v1/molecules/convert", `{"smiles":"CCO"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "chemistry backend failed", resp.Message)
	assert.Empty(t, resp.Detail)
}

// ─────────────────────────────────────────────────────────────────────────────
// DrugLikenessHandler
// ─────────────────────────────────────────────────────────────────────────────

func TestDrugLikenessHandler_Evaluate(t *testing.T) {
	d := molecule.Descriptors{MolecularWeight: 600, LogP: 6, HBondDonors: 6, HBondAcceptors: 11, RotatableBonds: 11}
	svc := new(mockService)
	svc.On("Evaluate", d).Return(druglike.NewDefaultEvaluator().Evaluate(d), nil)
	r := newAPI(svc)

	body := `{"molecular_weight":600,"logp":6,"h_bond_donors":6,"h_bond_acceptors":11,"rotatable_bonds":11}`
	rec := do(r, http.MethodPost, "/api/v1/druglike/evaluate", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var a druglike.Assessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.Equal(t, 4, a.Lipinski.Violations)
	assert.False(t, a.Veber.Passed)
	assert.Equal(t, "Failed", a.Veber.Verdict())
}

func TestDrugLikenessHandler_Evaluate_Invalid(t *testing.T) {
	d := molecule.Descriptors{HBondDonors: -1}
	svc := new(mockService)
	svc.On("Evaluate", d).Return(druglike.Assessment{},
		errors.Wrap(errors.NewValidationError("h_bond_donors", "must not be negative"),
			errors.ErrCodeDescriptorsInvalid, "invalid molecular descriptors"))
	r := newAPI(svc)

	rec := do(r, http.MethodPost, "/api/v1/druglike/evaluate", `{"h_bond_donors":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "MOL_016", decodeError(t, rec).Code)
}

// ─────────────────────────────────────────────────────────────────────────────
// HealthHandler
// ─────────────────────────────────────────────────────────────────────────────

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string                    { return s.name }
func (s stubChecker) Check(ctx context.Context) error { return s.err }

func newHealthRouter(checkers ...HealthChecker) *gin.Engine {
	r := gin.New()
	NewHealthHandler("v1.2.3", checkers...).RegisterRoutes(r)
	return r
}

func TestHealthHandler_Liveness(t *testing.T) {
	rec := do(newHealthRouter(stubChecker{"chem", errors.New(errors.ErrCodeChemBackendUnavailable, "down")}), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp LivenessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alive", resp.Status)
	assert.Equal(t, "v1.2.3", resp.Version)
}

func TestHealthHandler_Readiness(t *testing.T) {
	t.Run("no checkers", func(t *testing.T) {
		rec := do(newHealthRouter(), http.MethodGet, "/readyz", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
	})

	t.Run("all healthy", func(t *testing.T) {
		rec := do(newHealthRouter(stubChecker{name: "chem"}, stubChecker{name: "redis"}), http.MethodGet, "/readyz", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var resp ReadinessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ready", resp.Status)
		assert.Len(t, resp.Components, 2)
	})

	t.Run("one unhealthy", func(t *testing.T) {
		rec := do(newHealthRouter(stubChecker{name: "chem"}, stubChecker{"minio", errors.New(errors.ErrCodeStorageError, "bucket missing")}),
			http.MethodGet, "/readyz", "")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var resp ReadinessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "not_ready", resp.Status)
		assert.Equal(t, "unhealthy", resp.Components["minio"].Status)
		assert.Contains(t, resp.Components["minio"].Error, "bucket missing")
		assert.Equal(t, "healthy", resp.Components["chem"].Status)
	})
}

func TestHealthHandler_Detailed(t *testing.T) {
	rec := do(newHealthRouter(stubChecker{"redis", errors.New(errors.ErrCodeCacheError, "refused")}), http.MethodGet, "/healthz/detail", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp DetailedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "v1.2.3", resp.Version)
}

//Personal.AI order the ending
