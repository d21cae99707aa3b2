package molecule

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertRequest_Validate(t *testing.T) {
	assert.NoError(t, ConvertRequest{SMILES: "CCO"}.Validate())
	assert.Error(t, ConvertRequest{SMILES: "  "}.Validate())
}

func TestRuleResult_Verdict(t *testing.T) {
	tests := []struct {
		result RuleResult
		want   string
	}{
		{RuleResult{Title: "Lipinski's Rule of Five", Kind: KindCount}, "Lipinski's Rule of Five: No violations"},
		{RuleResult{Title: "Ghose's Rule", Kind: KindCount, Violations: 4}, "Ghose's Rule: 4 violation(s)"},
		{RuleResult{Title: "Veber's Rule", Kind: KindBinary, Passed: true}, "Veber's Rule: Passed"},
		{RuleResult{Title: "Veber's Rule", Kind: KindBinary}, "Veber's Rule: Failed"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.result.Summary())
	}
}

func TestParameter_String(t *testing.T) {
	assert.Equal(t, "6", Parameter{Value: 6, Integer: true}.String())
	assert.Equal(t, "46.069", Parameter{Value: 46.069}.String())
	assert.Equal(t, "-0.0014", Parameter{Value: -0.0014}.String())
}

func TestConversionReport_DecodesServerPayload(t *testing.T) {
	payload := `{
		"id": "abc",
		"smiles": "CCO",
		"descriptors": {"molecular_weight": 46.069, "logp": -0.0014, "h_bond_donors": 1, "h_bond_acceptors": 1},
		"assessment": {
			"lipinski": {"rule": "lipinski", "title": "Lipinski's Rule of Five", "kind": "count",
				"parameters": [{"label": "Number of Hydrogen Bond Donors (HBD)", "value": 1, "integer": true}],
				"violations": 0, "passed": true},
			"ghose": {"rule": "ghose", "title": "Ghose's Rule", "kind": "count", "violations": 2},
			"veber": {"rule": "veber", "title": "Veber's Rule", "kind": "binary", "passed": true}
		},
		"structure": {"filename": "molecule.pdb", "mime_type": "chemical/x-pdb", "pdb": "END\n"},
		"viewer_url": "https://molview.org/?inputFormat=pdb",
		"cached": true,
		"generated_at": "2024-01-01T00:00:00Z"
	}`

	var r ConversionReport
	require.NoError(t, json.Unmarshal([]byte(payload), &r))
	assert.Equal(t, 1, r.Descriptors.HBondDonors)
	assert.Equal(t, PDBFilename, r.Structure.Filename)
	assert.True(t, r.Cached)
	assert.Nil(t, r.DownloadExpiresAt)

	rows := r.TableRows()
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Lipinski's Rule of Five", "No violations", "Number of Hydrogen Bond Donors (HBD)=1"}, rows[0])
	assert.Equal(t, "2 violation(s)", rows[1][1])
	assert.Equal(t, "Passed", rows[2][1])
}

func TestHealthStatus_Ready(t *testing.T) {
	assert.True(t, HealthStatus{Status: "ready"}.Ready())
	assert.True(t, HealthStatus{Status: "alive"}.Ready())
	assert.False(t, HealthStatus{Status: "not_ready"}.Ready())
}

//Personal.AI order the ending
