package cache

import (
	"context"
	"errors"
	"time"

	"SentiDash/internal/domain/models"
	pkgcache "SentiDash/pkg/cache"
	applogger "SentiDash/pkg/logger"
)

const keyPrefix = "predict"

// ResultCache memoizes successful predictions keyed by (base URL, symbol).
// The base URL is hashed into the key so switching API targets switches
// cache namespaces; a different backend never serves another's results.
type ResultCache struct {
	backend pkgcache.Service
	logger  *applogger.Logger
	ttl     time.Duration // 0 = session-lived, explicit Clear is the only eviction
}

// NewResultCache creates a prediction result cache over the given backend.
func NewResultCache(backend pkgcache.Service, logger *applogger.Logger, ttl time.Duration) *ResultCache {
	return &ResultCache{backend: backend, logger: logger, ttl: ttl}
}

// Get returns the cached result for (baseURL, symbol), if any.
func (rc *ResultCache) Get(ctx context.Context, baseURL, symbol string) (*models.PredictionResult, bool) {
	var result models.PredictionResult
	err := rc.backend.Get(ctx, rc.key(baseURL, symbol), &result)
	if err != nil {
		if !errors.Is(err, pkgcache.ErrCacheMiss) && rc.logger != nil {
			rc.logger.Warn("result cache read error", applogger.Error(err))
		}
		return nil, false
	}
	return &result, true
}

// Put stores a successful prediction. Last write wins on concurrent puts
// of the same key; values for the same key are expected to be equivalent.
func (rc *ResultCache) Put(ctx context.Context, baseURL, symbol string, result *models.PredictionResult) {
	if result == nil {
		return
	}
	if err := rc.backend.Set(ctx, rc.key(baseURL, symbol), result, rc.ttl); err != nil && rc.logger != nil {
		rc.logger.Warn("result cache write error", applogger.Error(err))
	}
}

// Clear evicts one base URL namespace, or every entry when baseURL is empty.
func (rc *ResultCache) Clear(ctx context.Context, baseURL string) error {
	if baseURL == "" {
		return rc.backend.DeleteByPattern(ctx, pkgcache.BuildPattern(keyPrefix+":"))
	}
	return rc.backend.DeleteByPattern(ctx, pkgcache.BuildPattern(rc.namespace(baseURL)+":"))
}

func (rc *ResultCache) key(baseURL, symbol string) string {
	return pkgcache.GenerateKeyWithParams(rc.namespace(baseURL), symbol)
}

func (rc *ResultCache) namespace(baseURL string) string {
	return pkgcache.GenerateKeyWithParams(keyPrefix, pkgcache.HashKey(baseURL))
}
