package di

import (
	"fmt"

	"RetailPrice/internal/domain/repository"
	domsvc "RetailPrice/internal/domain/service"
	"RetailPrice/internal/handler/api"
	"RetailPrice/internal/services/artifacts"
	"RetailPrice/internal/usecase"
	"RetailPrice/pkg/cache"
	"RetailPrice/pkg/config"
	xhttp "RetailPrice/pkg/http"
	applogger "RetailPrice/pkg/logger"
	"RetailPrice/pkg/metrics"
	"RetailPrice/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
)

// ProvideLogger creates the process logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder. With metrics disabled the
// collectors go to a private registry that is never scraped.
func ProvideMetrics(cfg *config.Config) repository.Metrics {
	if !cfg.Metrics.Enabled {
		return metrics.NewWithRegistry(prometheus.NewRegistry())
	}
	return metrics.New()
}

// ProvideArtifacts loads the preprocessor and model. Failure here aborts startup.
func ProvideArtifacts(cfg *config.Config, logger *applogger.Logger) (*artifacts.Bundle, error) {
	b, err := artifacts.LoadBundle(cfg.Artifacts.PreprocessorPath, cfg.Artifacts.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("artifacts: %w", err)
	}
	if err := b.RequireColumns(usecase.AdaptedColumns()); err != nil {
		return nil, fmt.Errorf("artifacts: %w", err)
	}

	logger.Info("artifacts loaded",
		applogger.String("model_type", b.Info.ModelType),
		applogger.Int("features", b.Info.FeatureCount),
		applogger.String("fingerprint", b.Info.Fingerprint),
	)
	return b, nil
}

// ProvideCache creates the prediction cache, or nil when caching is disabled.
func ProvideCache(cfg *config.Config, logger *applogger.Logger) (cache.Service, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	if !cfg.Cache.Redis.Enabled {
		logger.Info("prediction cache: memory", applogger.Int("size", cfg.Cache.MemorySize))
		return cache.NewMemoryCache(
			cache.WithMemoryMaxSize(cfg.Cache.MemorySize),
			cache.WithMemoryTTL(cfg.Cache.TTL),
		), nil
	}

	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	logger.Info("prediction cache: memory+redis",
		applogger.String("redis", fmt.Sprintf("%s:%d", cfg.Cache.Redis.Host, cfg.Cache.Redis.Port)),
	)
	return cache.NewLayeredCache(rc,
		cache.WithLayeredMemorySize(cfg.Cache.MemorySize),
		cache.WithLayeredMemoryTTL(cfg.Cache.TTL),
	), nil
}

// ProvidePricePredictor assembles invoker -> cache (optional) -> instrumentation.
func ProvidePricePredictor(
	cfg *config.Config,
	bundle *artifacts.Bundle,
	c cache.Service,
	m repository.Metrics,
	logger *applogger.Logger,
) domsvc.PricePredictor {
	var p domsvc.PricePredictor = usecase.NewPriceInvoker(bundle.Preprocessor, bundle.Model)
	if c != nil {
		p = usecase.NewCachedPredictor(p, c, cfg.Cache.TTL, bundle.Info.Fingerprint, m, logger)
	}
	return usecase.NewInstrumentedPredictor(p, m)
}

// ProvideHTTPHandler creates the API route handler.
func ProvideHTTPHandler(logger *applogger.Logger, p domsvc.PricePredictor, bundle *artifacts.Bundle) xhttp.Handler {
	return api.NewPriceEchoHandler(logger, p, bundle.Info)
}

// ProvideHTTPServer creates the Echo server from config.
func ProvideHTTPServer(cfg *config.Config, h xhttp.Handler, logger *applogger.Logger) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(h,
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithLogger(logger),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	srv *xhttp.Server,
	c cache.Service,
) *server.App {
	app := server.New(cfg, logger, srv)
	if c != nil {
		app.OnShutdown(c)
	}
	return app
}
