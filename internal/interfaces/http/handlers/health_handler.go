package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker is an interface for components that can report their health.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}

// HealthHandler handles health check HTTP requests.
type HealthHandler struct {
	checkers []HealthChecker
	version  string
	startAt  time.Time
	timeout  time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(version string, checkers ...HealthChecker) *HealthHandler {
	return &HealthHandler{
		checkers: checkers,
		version:  version,
		startAt:  time.Now(),
		timeout:  5 * time.Second,
	}
}

// RegisterRoutes registers health check routes.
func (h *HealthHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)
	r.GET("/healthz/detail", h.Detailed)
}

// LivenessResponse is the response for liveness checks.
type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// ReadinessResponse is the response for readiness checks.
type ReadinessResponse struct {
	Status     string                    `json:"status"`
	Components map[string]ComponentCheck `json:"components,omitempty"`
}

// DetailedResponse is the response for the detailed health endpoint.
type DetailedResponse struct {
	Status     string                    `json:"status"`
	Version    string                    `json:"version"`
	Uptime     string                    `json:"uptime"`
	Components map[string]ComponentCheck `json:"components"`
}

// ComponentCheck represents the health status of a single component.
type ComponentCheck struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Liveness handles GET /healthz. It never looks at dependencies.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, LivenessResponse{
		Status:  "alive",
		Version: h.version,
		Uptime:  h.uptime(),
	})
}

// Readiness handles GET /readyz: 200 when every dependency answers, 503
// otherwise.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if len(h.checkers) == 0 {
		c.JSON(http.StatusOK, ReadinessResponse{Status: "ready"})
		return
	}

	components, healthy := h.checkAll(c.Request.Context())
	if healthy {
		c.JSON(http.StatusOK, ReadinessResponse{Status: "ready", Components: components})
		return
	}
	c.JSON(http.StatusServiceUnavailable, ReadinessResponse{Status: "not_ready", Components: components})
}

// Detailed handles GET /healthz/detail.
func (h *HealthHandler) Detailed(c *gin.Context) {
	components, healthy := h.checkAll(c.Request.Context())

	resp := DetailedResponse{
		Status:     "healthy",
		Version:    h.version,
		Uptime:     h.uptime(),
		Components: components,
	}
	code := http.StatusOK
	if !healthy {
		resp.Status = "degraded"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, resp)
}

func (h *HealthHandler) uptime() string {
	return time.Since(h.startAt).Truncate(time.Second).String()
}

// checkAll runs all health checkers concurrently.
func (h *HealthHandler) checkAll(ctx context.Context) (map[string]ComponentCheck, bool) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	results := make(map[string]ComponentCheck, len(h.checkers))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, checker := range h.checkers {
		wg.Add(1)
		go func(hc HealthChecker) {
			defer wg.Done()

			start := time.Now()
			err := hc.Check(ctx)
			cc := ComponentCheck{
				Status:  "healthy",
				Latency: time.Since(start).Truncate(time.Microsecond).String(),
			}
			if err != nil {
				cc.Status = "unhealthy"
				cc.Error = err.Error()
			}

			mu.Lock()
			results[hc.Name()] = cc
			mu.Unlock()
		}(checker)
	}
	wg.Wait()

	healthy := true
	for _, cc := range results {
		if cc.Status != "healthy" {
			healthy = false
			break
		}
	}
	return results, healthy
}

//Personal.AI order the ending
