package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/turtacn/molforge/pkg/errors"
	"github.com/turtacn/molforge/pkg/types/molecule"
)

// Convert generates the 3D structure of smiles and returns the full report:
// descriptors, the three rule results, the viewer link and the PDB block.
func (c *Client) Convert(ctx context.Context, smiles string) (*molecule.ConversionReport, error) {
	req := molecule.ConvertRequest{SMILES: smiles}
	if err := req.Validate(); err != nil {
		return nil, errors.InvalidSMILES(err.Error())
	}

	var report molecule.ConversionReport
	if err := c.postJSON(ctx, "/api/v1/molecules/convert", req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// DownloadPDB generates the structure of smiles and returns only the PDB file.
func (c *Client) DownloadPDB(ctx context.Context, smiles string) ([]byte, error) {
	req := molecule.ConvertRequest{SMILES: smiles}
	if err := req.Validate(); err != nil {
		return nil, errors.InvalidSMILES(err.Error())
	}
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/v1/molecules/pdb",
		body:   req,
		accept: molecule.PDBMIMEType,
	})
}

// GetStructurePDB fetches a previously generated structure by report id.
func (c *Client) GetStructurePDB(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, errors.NewValidationError("id", "structure id is required")
	}
	return c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/v1/structures/" + url.PathEscape(id) + "/pdb",
		accept: molecule.PDBMIMEType,
	})
}

// Evaluate applies the server's drug-likeness thresholds to d.
func (c *Client) Evaluate(ctx context.Context, d molecule.Descriptors) (*molecule.Assessment, error) {
	var a molecule.Assessment
	if err := c.postJSON(ctx, "/api/v1/druglike/evaluate", d, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Health queries /readyz. A not-ready server yields both the decoded status
// and an *APIError.
func (c *Client) Health(ctx context.Context) (*molecule.HealthStatus, error) {
	var status molecule.HealthStatus
	err := c.doJSON(ctx, request{method: http.MethodGet, path: "/readyz", noRetry: true}, &status)
	if err == nil {
		return &status, nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusServiceUnavailable {
		if jsonErr := json.Unmarshal(apiErr.body, &status); jsonErr == nil && status.Status != "" {
			return &status, err
		}
	}
	return nil, err
}

//Personal.AI order the ending
