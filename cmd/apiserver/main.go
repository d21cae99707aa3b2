// API server entry point for MolForge.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/molforge/internal/application/conversion"
	"github.com/turtacn/molforge/internal/config"
	"github.com/turtacn/molforge/internal/domain/druglike"
	"github.com/turtacn/molforge/internal/infrastructure/chem/pdb"
	"github.com/turtacn/molforge/internal/infrastructure/chem/rdkit"
	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molforge/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/turtacn/molforge/internal/interfaces/http"
	"github.com/turtacn/molforge/internal/interfaces/http/handlers"
	"github.com/turtacn/molforge/internal/interfaces/http/middleware"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	httpPort := flag.Int("http-port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	if err := run(*configPath, *httpPort); err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, httpPort int) error {
	cfg, watchPath, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if httpPort > 0 {
		cfg.Server.Port = httpPort
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		OutputPaths: cfg.Log.OutputPaths,
	})
	if err != nil {
		return err
	}
	logging.SetDefault(logger)
	logger.Info("starting MolForge API server",
		logging.String("version", Version),
		logging.String("commit", GitCommit),
		logging.String("addr", cfg.Server.Address()),
		logging.String("chem_driver", cfg.Chem.Driver))

	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Metrics
	collector := prometheus.NewNoopCollector()
	if cfg.Metrics.Enabled {
		if collector, err = prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, logger); err != nil {
			return fmt.Errorf("metrics collector: %w", err)
		}
	}
	metrics := prometheus.NewAppMetrics(collector)

	// Chemistry engine
	provider, err := rdkit.New(rdkit.Config{
		Driver:               cfg.Chem.Driver,
		Endpoint:             cfg.Chem.Endpoint,
		Command:              cfg.Chem.BridgeCommand,
		Args:                 cfg.Chem.BridgeArgs,
		TempDir:              cfg.Chem.TempDir,
		Timeout:              cfg.Chem.Timeout,
		RandomSeed:           cfg.Chem.RandomSeed,
		RetryMaxAttempts:     cfg.Chem.RetryMaxAttempts,
		RetryInitialInterval: cfg.Chem.RetryInitialInterval,
		RetryMaxInterval:     cfg.Chem.RetryMaxInterval,
		BreakerFailures:      cfg.Chem.BreakerFailures,
		BreakerInterval:      cfg.Chem.BreakerInterval,
		BreakerTimeout:       cfg.Chem.BreakerTimeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("structure provider: %w", err)
	}

	evaluator, err := druglike.NewEvaluator(cfg.Rules.Thresholds())
	if err != nil {
		return fmt.Errorf("drug-likeness rules: %w", err)
	}

	// Optional backing services
	deps, err := connectDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Close()

	opts := append(deps.serviceOptions(),
		conversion.WithInspector(pdb.NewInspector(logger)),
		conversion.WithMetrics(metrics))
	svc, err := conversion.NewService(provider, evaluator, conversion.Config{
		MaxSMILESLength: cfg.Chem.MaxSMILESLength,
		ViewerBaseURL:   cfg.Viewer.BaseURL,
		CacheTTL:        cfg.Redis.TTL,
	}, logger, opts...)
	if err != nil {
		return fmt.Errorf("conversion service: %w", err)
	}

	if watchPath != "" {
		watchThresholds(watchPath, svc, logger)
	}

	// HTTP
	limiter := middleware.NewTokenBucketLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, 5*time.Minute)
	defer limiter.Stop()

	rateCfg := middleware.DefaultRateLimitConfig()
	rateCfg.RequestsPerSecond = cfg.Server.RateLimitRPS
	rateCfg.BurstSize = cfg.Server.RateLimitBurst

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.Server.AllowedOrigins

	logCfg := middleware.DefaultLoggingConfig()
	logCfg.SlowThreshold = cfg.Server.SlowThreshold

	checkers := append([]handlers.HealthChecker{&providerHealthAdapter{provider: provider}}, deps.checkers()...)
	router := httpserver.NewRouter(httpserver.RouterConfig{
		PageHandler:         handlers.NewPageHandler(svc, logger),
		MoleculeHandler:     handlers.NewMoleculeHandler(svc, logger),
		DrugLikenessHandler: handlers.NewDrugLikenessHandler(svc, logger),
		HealthHandler:       handlers.NewHealthHandler(Version, checkers...),
		CORS:                corsCfg,
		Logging:             logCfg,
		RateLimiter:         limiter,
		RateLimit:           rateCfg,
		MaxBodySize:         cfg.Server.MaxBodySize,
		Logger:              logger,
		Metrics:             metrics,
		MetricsCollector:    metricsCollectorOrNil(cfg, collector),
		MetricsPath:         cfg.Metrics.Path,
	})

	srv := httpserver.NewServer(httpserver.ServerConfig{
		Addr:            cfg.Server.Address(),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, router, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", logging.Err(err))
	}
	logger.Info("server stopped")
	return nil
}

// loadConfig reads configPath when it exists and falls back to environment
// variables and defaults otherwise. The returned path is empty when there is
// no file to watch.
func loadConfig(path string) (*config.Config, string, error) {
	if _, err := os.Stat(path); err == nil {
		cfg, err := config.Load(path)
		return cfg, path, err
	}
	fmt.Fprintf(os.Stderr, "warning: config file %s not found, using environment and defaults\n", path)
	cfg, err := config.LoadFromEnv()
	return cfg, "", err
}

// watchThresholds hot-reloads the drug-likeness thresholds. Other settings
// need a restart.
func watchThresholds(path string, svc *conversion.Service, logger logging.Logger) {
	err := config.Watch(path, func(next *config.Config) {
		if err := svc.SetThresholds(next.Rules.Thresholds()); err != nil {
			logger.Warn("rejected reloaded thresholds", logging.Err(err))
			return
		}
		logger.Info("drug-likeness thresholds reloaded", logging.String("config", path))
	}, func(err error) {
		logger.Warn("config reload failed", logging.Err(err))
	})
	if err != nil {
		logger.Warn("config watch disabled", logging.Err(err))
	}
}

func metricsCollectorOrNil(cfg *config.Config, c prometheus.MetricsCollector) prometheus.MetricsCollector {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return c
}

//Personal.AI order the ending
