package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molforge/internal/infrastructure/monitoring/prometheus"
)

func TestMetrics_LabelsByRouteTemplate(t *testing.T) {
	c, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "molforge"}, logging.NewNopLogger())
	require.NoError(t, err)
	m := prometheus.NewAppMetrics(c)

	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/api/v1/structures/:id/pdb", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/structures/abc/pdb", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/structures/def/pdb", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/nope", nil))

	expected := `
# HELP molforge_http_requests_total Total HTTP requests
# TYPE molforge_http_requests_total counter
molforge_http_requests_total{method="GET",path="/api/v1/structures/:id/pdb",status="404"} 2
molforge_http_requests_total{method="GET",path="unmatched",status="404"} 1
# HELP molforge_http_active_requests In-flight HTTP requests
# TYPE molforge_http_active_requests gauge
molforge_http_active_requests 0
`
	assert.NoError(t, promtestutil.GatherAndCompare(c.Gatherer(), strings.NewReader(expected),
		"molforge_http_requests_total", "molforge_http_active_requests"))
}

//Personal.AI order the ending
