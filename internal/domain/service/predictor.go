package service

import (
	"context"

	"SentiDash/internal/domain/models"
)

// ModelClient talks to the remote model-serving API. One blocking round
// trip per call, bounded by the configured timeout; no automatic retry.
type ModelClient interface {
	// CheckHealth probes the health endpoint. Errors are folded into the
	// returned status, never raised.
	CheckHealth(ctx context.Context, baseURL string) models.APIHealth

	// ModelInfo fetches the deployed model description.
	ModelInfo(ctx context.Context, baseURL string) (models.ModelInfo, *models.FailureRecord)

	// Predict fetches and validates a prediction for one symbol.
	Predict(ctx context.Context, baseURL, symbol string) (*models.PredictionResult, *models.FailureRecord)
}

// ResultCache memoizes successful predictions per (base URL, symbol).
type ResultCache interface {
	Get(ctx context.Context, baseURL, symbol string) (*models.PredictionResult, bool)
	Put(ctx context.Context, baseURL, symbol string, result *models.PredictionResult)
	// Clear evicts one base URL namespace, or everything when baseURL is empty.
	Clear(ctx context.Context, baseURL string) error
}

// Metrics records operational counters for the orchestration layer.
type Metrics interface {
	RecordPrediction(outcome, symbol string)
	RecordFailure(kind string)
	RecordCacheHit()
	RecordCacheMiss()
	RecordUpstreamLatency(endpoint string, seconds float64)
}
