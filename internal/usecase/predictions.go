package usecase

import (
	"context"
	"sync"
	"time"

	"SentiDash/internal/domain/models"
	domsvc "SentiDash/internal/domain/service"
	applogger "SentiDash/pkg/logger"
	"SentiDash/pkg/util"

	"golang.org/x/time/rate"
)

// Predictor orchestrates prediction requests against the model API:
// single-symbol calls, multi-symbol comparisons with per-symbol failure
// isolation, and result caching.
type Predictor struct {
	client         domsvc.ModelClient
	cache          domsvc.ResultCache
	metrics        domsvc.Metrics
	logger         *applogger.Logger
	limiter        *rate.Limiter
	maxConcurrency int
	defaultBaseURL string
}

// Option configures Predictor.
type Option func(*Predictor)

// NewPredictor creates a prediction orchestrator.
func NewPredictor(client domsvc.ModelClient, cache domsvc.ResultCache, metrics domsvc.Metrics, logger *applogger.Logger, opts ...Option) *Predictor {
	p := &Predictor{
		client:         client,
		cache:          cache,
		metrics:        metrics,
		logger:         logger,
		limiter:        rate.NewLimiter(rate.Every(time.Second), 5),
		maxConcurrency: 4,
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithMaxConcurrency bounds parallel dispatches within one comparison.
func WithMaxConcurrency(n int) Option {
	return func(p *Predictor) {
		if n > 0 {
			p.maxConcurrency = n
		}
	}
}

// WithMaxRPS bounds the request rate against the model API.
func WithMaxRPS(n int) Option {
	return func(p *Predictor) {
		if n > 0 {
			p.limiter = rate.NewLimiter(rate.Every(time.Second), n)
		}
	}
}

// WithDefaultBaseURL sets the base URL used when the caller passes none.
func WithDefaultBaseURL(u string) Option {
	return func(p *Predictor) {
		p.defaultBaseURL = u
	}
}

// Health probes the model API.
func (p *Predictor) Health(ctx context.Context, baseURL string) models.APIHealth {
	return p.client.CheckHealth(ctx, p.resolveBaseURL(baseURL))
}

// ModelInfo fetches the deployed model description.
func (p *Predictor) ModelInfo(ctx context.Context, baseURL string) (models.ModelInfo, *models.FailureRecord) {
	return p.client.ModelInfo(ctx, p.resolveBaseURL(baseURL))
}

// Predict resolves one symbol. Caller-side contract violations surface as
// InvalidRequestError before any network call; upstream failures come back
// as *FailureRecord.
func (p *Predictor) Predict(ctx context.Context, baseURL, symbol string, refresh bool) (*models.PredictionResult, error) {
	sym := util.NormalizeSymbol(symbol)
	if !util.ValidSymbol(sym) {
		return nil, models.InvalidRequestf("invalid symbol %q", symbol)
	}

	req := models.PredictionRequest{Symbol: sym, BaseURL: p.resolveBaseURL(baseURL)}
	outcome := p.resolveSymbol(ctx, req, refresh)
	if outcome.Failure != nil {
		return nil, outcome.Failure
	}
	return outcome.Result, nil
}

// Compare fans one prediction call per unique symbol out to the model API
// and returns one outcome per requested symbol, in input order. Per-symbol
// failures are data in the batch; only a structurally invalid request is
// an error, raised before any network call.
func (p *Predictor) Compare(ctx context.Context, baseURL string, symbols []string) (*models.BatchResult, error) {
	if len(symbols) == 0 {
		return nil, models.InvalidRequestf("symbol list is empty")
	}

	// Entries may be comma-joined (the dashboard ships its ticker text
	// input verbatim); expand before validating.
	normalized := make([]string, 0, len(symbols))
	for _, s := range symbols {
		parts := util.SplitSymbols(s)
		if len(parts) == 0 {
			return nil, models.InvalidRequestf("invalid symbol %q", s)
		}
		for _, sym := range parts {
			if !util.ValidSymbol(sym) {
				return nil, models.InvalidRequestf("invalid symbol %q", sym)
			}
			normalized = append(normalized, sym)
		}
	}

	// Dedup preserving first-seen order: one dispatch per unique symbol.
	seen := make(map[string]struct{}, len(normalized))
	unique := make([]string, 0, len(normalized))
	for _, sym := range normalized {
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}
		unique = append(unique, sym)
	}

	base := p.resolveBaseURL(baseURL)

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		resolved = make(map[string]models.SymbolOutcome, len(unique))
		sem      = make(chan struct{}, p.maxConcurrency)
	)

	for _, sym := range unique {
		wg.Add(1)
		sem <- struct{}{}
		go func(sym string) {
			defer wg.Done()
			defer func() { <-sem }()

			outcome := p.resolveSymbol(ctx, models.PredictionRequest{Symbol: sym, BaseURL: base}, false)

			mu.Lock()
			resolved[sym] = outcome
			mu.Unlock()
		}(sym)
	}
	wg.Wait()

	// Reassemble in the original pre-dedup order; duplicated requests
	// share the resolved outcome.
	batch := &models.BatchResult{
		Outcomes: make([]models.SymbolOutcome, 0, len(normalized)),
	}
	for _, sym := range normalized {
		outcome := resolved[sym]
		batch.Outcomes = append(batch.Outcomes, outcome)
		if outcome.OK() {
			batch.Succeeded++
		} else {
			batch.Failed++
		}
	}
	return batch, nil
}

// ClearCache evicts cached results for one base URL, or all of them.
func (p *Predictor) ClearCache(ctx context.Context, baseURL string) error {
	return p.cache.Clear(ctx, baseURL)
}

// resolveSymbol answers one request from cache or upstream. The request
// symbol is already normalized and validated.
func (p *Predictor) resolveSymbol(ctx context.Context, req models.PredictionRequest, refresh bool) models.SymbolOutcome {
	if !refresh {
		if cached, ok := p.cache.Get(ctx, req.BaseURL, req.Symbol); ok {
			p.metrics.RecordCacheHit()
			return models.SymbolOutcome{Symbol: req.Symbol, Result: cached}
		}
		p.metrics.RecordCacheMiss()
	}

	if err := p.limiter.Wait(ctx); err != nil {
		fail := models.NetworkFailure(req.Symbol, err)
		p.metrics.RecordFailure(string(fail.Kind))
		p.metrics.RecordPrediction("failure", req.Symbol)
		return models.SymbolOutcome{Symbol: req.Symbol, Failure: fail}
	}

	start := time.Now()
	result, fail := p.client.Predict(ctx, req.BaseURL, req.Symbol)
	p.metrics.RecordUpstreamLatency("predict", time.Since(start).Seconds())

	if fail != nil {
		p.metrics.RecordFailure(string(fail.Kind))
		p.metrics.RecordPrediction("failure", req.Symbol)
		if p.logger != nil {
			p.logger.Warn("prediction failed",
				applogger.String("symbol", req.Symbol),
				applogger.String("kind", string(fail.Kind)),
				applogger.Error(fail),
			)
		}
		return models.SymbolOutcome{Symbol: req.Symbol, Failure: fail}
	}

	p.cache.Put(ctx, req.BaseURL, req.Symbol, result)
	p.metrics.RecordPrediction("success", req.Symbol)
	return models.SymbolOutcome{Symbol: req.Symbol, Result: result}
}

func (p *Predictor) resolveBaseURL(baseURL string) string {
	if baseURL == "" {
		return p.defaultBaseURL
	}
	return baseURL
}
