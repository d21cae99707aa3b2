package prometheus

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
)

func newTestCollector(t *testing.T) MetricsCollector {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "molforge"}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func TestNewMetricsCollector_RequiresNamespace(t *testing.T) {
	c, err := NewMetricsCollector(CollectorConfig{}, logging.NewNopLogger())
	assert.Error(t, err)
	assert.Nil(t, c)
}

func TestRegisterCounter_Idempotent(t *testing.T) {
	c := newTestCollector(t)

	a := c.RegisterCounter("things_total", "things", "kind")
	b := c.RegisterCounter("things_total", "things", "kind")
	a.WithLabelValues("x").Inc()
	b.WithLabelValues("x").Add(2)

	count, err := testutil.GatherAndCount(c.Gatherer(), "molforge_things_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	pc, ok := a.(promCounterVec)
	require.True(t, ok)
	assert.Equal(t, 3.0, testutil.ToFloat64(pc.vec.WithLabelValues("x")))
}

func TestRegister_TypeMismatchReturnsNoop(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterCounter("mixed", "help")

	g := c.RegisterGauge("mixed", "help")
	assert.IsType(t, noopGaugeVec{}, g)
	assert.NotPanics(t, func() { g.WithLabelValues().Set(1) })
}

func TestRegisterHistogram_DefaultBuckets(t *testing.T) {
	c := newTestCollector(t)
	h := c.RegisterHistogram("latency_seconds", "latency", nil, "op")
	h.WithLabelValues("convert").Observe(0.2)

	count, err := testutil.GatherAndCount(c.Gatherer(), "molforge_latency_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHandler_ExposesMetrics(t *testing.T) {
	c := newTestCollector(t)
	c.RegisterGauge("in_flight", "in flight").WithLabelValues().Inc()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "molforge_in_flight 1")
}

func TestNoopCollector(t *testing.T) {
	c := NewNoopCollector()
	assert.NotPanics(t, func() {
		c.RegisterCounter("a", "a").WithLabelValues().Inc()
		c.RegisterGauge("b", "b").WithLabelValues().Dec()
		c.RegisterHistogram("c", "c", nil).WithLabelValues().Observe(1)
	})
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type recordingHistogram struct{ observed []float64 }

func (h *recordingHistogram) Observe(v float64) { h.observed = append(h.observed, v) }

func TestTimer_ObserveDuration(t *testing.T) {
	h := &recordingHistogram{}
	timer := NewTimer(h)
	time.Sleep(2 * time.Millisecond)
	d := timer.ObserveDuration()

	require.Len(t, h.observed, 1)
	assert.GreaterOrEqual(t, d, 2*time.Millisecond)
	assert.InDelta(t, d.Seconds(), h.observed[0], 1e-9)

	assert.NotPanics(t, func() { NewTimer(nil).ObserveDuration() })
}

//Personal.AI order the ending
