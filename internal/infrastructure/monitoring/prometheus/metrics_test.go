package prometheus

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppMetrics_Recorders(t *testing.T) {
	c := newTestCollector(t)
	m := NewAppMetrics(c)

	RecordHTTPRequest(m, http.MethodPost, "/api/v1/molecules/convert", 200, 30*time.Millisecond)
	RecordConversion(m, "success")
	RecordConversion(m, "invalid_input")
	RecordRuleVerdict(m, "lipinski", true)
	RecordRuleVerdict(m, "veber", false)
	RecordCacheAccess(m, true)
	RecordCacheAccess(m, false)
	RecordCacheAccess(m, false)
	RecordArchive(m, "put", nil)
	RecordEventPublish(m, errors.New("broker down"))

	expected := `
# HELP molforge_conversions_total SMILES conversions by outcome
# TYPE molforge_conversions_total counter
molforge_conversions_total{outcome="invalid_input"} 1
molforge_conversions_total{outcome="success"} 1
# HELP molforge_cache_misses_total Structure cache misses
# TYPE molforge_cache_misses_total counter
molforge_cache_misses_total 2
# HELP molforge_rule_verdicts_total Drug-likeness verdicts
# TYPE molforge_rule_verdicts_total counter
molforge_rule_verdicts_total{passed="false",rule="veber"} 1
molforge_rule_verdicts_total{passed="true",rule="lipinski"} 1
# HELP molforge_events_published_total Conversion events published
# TYPE molforge_events_published_total counter
molforge_events_published_total{result="error"} 1
`
	err := testutil.GatherAndCompare(c.Gatherer(), strings.NewReader(expected),
		"molforge_conversions_total", "molforge_cache_misses_total",
		"molforge_rule_verdicts_total", "molforge_events_published_total")
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(c.Gatherer(), "molforge_http_requests_total", "molforge_archive_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestNoopAppMetrics(t *testing.T) {
	m := NewNoopAppMetrics()
	assert.NotPanics(t, func() {
		RecordConversion(m, "error")
		RecordCacheAccess(m, true)
		m.StructureGenerationTime.WithLabelValues("http").Observe(1)
	})
}

//Personal.AI order the ending
