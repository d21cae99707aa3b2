package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molforge/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/molforge/internal/interfaces/http/handlers"
	"github.com/turtacn/molforge/internal/interfaces/http/middleware"
)

// RouterConfig aggregates all handler and middleware dependencies required
// to construct the complete HTTP route tree.
type RouterConfig struct {
	// Handlers
	PageHandler         *handlers.PageHandler
	MoleculeHandler     *handlers.MoleculeHandler
	DrugLikenessHandler *handlers.DrugLikenessHandler
	HealthHandler       *handlers.HealthHandler

	// Middleware
	CORS        middleware.CORSConfig
	Logging     middleware.LoggingConfig
	RateLimiter middleware.RateLimiter
	RateLimit   middleware.RateLimitConfig
	MaxBodySize int64

	// Infrastructure
	Logger           logging.Logger
	Metrics          *prometheus.AppMetrics
	MetricsCollector prometheus.MetricsCollector
	MetricsPath      string
}

// NewRouter constructs the complete HTTP route tree from the given
// configuration. Health checks and the metrics endpoint sit outside the rate
// limit; the converter page and API v1 sit inside it.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true

	// --- Global middleware (applied to every request) ---
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID(logger))
	r.Use(middleware.RequestLogging(logger, cfg.Logging))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	r.Use(middleware.CORS(cfg.CORS))
	if cfg.MaxBodySize > 0 {
		r.Use(middleware.MaxBodySize(cfg.MaxBodySize))
	}

	// --- Public health endpoints ---
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterRoutes(r)
	}

	if cfg.MetricsCollector != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(cfg.MetricsCollector.Handler()))
	}

	// --- Converter (rate limited) ---
	var limited []gin.HandlerFunc
	if cfg.RateLimiter != nil {
		limited = append(limited, middleware.RateLimit(cfg.RateLimiter, cfg.RateLimit))
	}

	root := r.Group("/", limited...)
	if cfg.PageHandler != nil {
		cfg.PageHandler.RegisterRoutes(root)
	}

	api := r.Group("/api/v1", limited...)
	if cfg.MoleculeHandler != nil {
		cfg.MoleculeHandler.RegisterRoutes(api)
	}
	if cfg.DrugLikenessHandler != nil {
		cfg.DrugLikenessHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.ErrorResponse{Code: "COMMON_005", Message: "resource not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, handlers.ErrorResponse{Code: "COMMON_002", Message: "method not allowed"})
	})

	return r
}

//Personal.AI order the ending
