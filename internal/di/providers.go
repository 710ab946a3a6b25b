package di

import (
	"fmt"

	domsvc "SentiDash/internal/domain/service"
	"SentiDash/internal/handler/api"
	icache "SentiDash/internal/service/cache"
	"SentiDash/internal/service/modelapi"
	"SentiDash/internal/usecase"
	pkgcache "SentiDash/pkg/cache"
	"SentiDash/pkg/config"
	applogger "SentiDash/pkg/logger"
	"SentiDash/pkg/metrics"
	"SentiDash/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domsvc.Metrics {
	return metrics.New()
}

// ProvideCacheBackend creates the configured cache backend.
func ProvideCacheBackend(cfg *config.Config) (pkgcache.Service, error) {
	switch cfg.Cache.Backend {
	case "redis":
		cache, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisHost(cfg.Cache.Redis.Host),
			pkgcache.WithRedisPort(cfg.Cache.Redis.Port),
			pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
			pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
			pkgcache.WithRedisPool(cfg.Cache.Redis.PoolSize),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return cache, nil
	default:
		opts := []pkgcache.MemoryOption{}
		if cfg.Cache.Memory.MaxSize > 0 {
			opts = append(opts, pkgcache.WithMemoryMaxSize(cfg.Cache.Memory.MaxSize))
		}
		if cfg.Cache.Memory.CleanupInterval > 0 {
			opts = append(opts, pkgcache.WithMemoryCleanup(cfg.Cache.Memory.CleanupInterval))
		}
		return pkgcache.NewMemoryCache(opts...), nil
	}
}

// ProvideModelClient creates the model API client.
func ProvideModelClient(cfg *config.Config, logger *applogger.Logger) domsvc.ModelClient {
	return modelapi.New(logger,
		modelapi.WithPredictTimeout(cfg.ModelAPI.PredictTimeout),
		modelapi.WithHealthTimeout(cfg.ModelAPI.HealthTimeout),
		modelapi.WithSentiment(cfg.ModelAPI.IncludeSentiment),
	)
}

// ProvideResultCache creates the prediction result cache.
func ProvideResultCache(backend pkgcache.Service, logger *applogger.Logger, cfg *config.Config) domsvc.ResultCache {
	return icache.NewResultCache(backend, logger, cfg.Cache.TTL)
}

// ProvidePredictor creates the prediction orchestrator use case.
func ProvidePredictor(
	client domsvc.ModelClient,
	cache domsvc.ResultCache,
	metrics domsvc.Metrics,
	logger *applogger.Logger,
	cfg *config.Config,
) *usecase.Predictor {
	return usecase.NewPredictor(client, cache, metrics, logger,
		usecase.WithMaxConcurrency(cfg.ModelAPI.MaxConcurrency),
		usecase.WithMaxRPS(cfg.ModelAPI.MaxRPS),
		usecase.WithDefaultBaseURL(cfg.ModelAPI.BaseURL),
	)
}

// ProvidePredictionsHandler creates the HTTP handler.
func ProvidePredictionsHandler(logger *applogger.Logger, predictor *usecase.Predictor) *api.PredictionsEchoHandler {
	return api.NewPredictionsEchoHandler(logger, predictor)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	handler *api.PredictionsEchoHandler,
	backend pkgcache.Service,
) *server.App {
	return server.New(cfg, logger, handler, backend)
}
