package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"SentiDash/internal/domain/models"
	icache "SentiDash/internal/service/cache"
	pkgcache "SentiDash/pkg/cache"
)

type fakeClient struct {
	mu       sync.Mutex
	calls    map[string]int
	failWith map[string]*models.FailureRecord
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		calls:    make(map[string]int),
		failWith: make(map[string]*models.FailureRecord),
	}
}

func (f *fakeClient) CheckHealth(_ context.Context, _ string) models.APIHealth {
	return models.APIHealth{Status: models.HealthHealthy}
}

func (f *fakeClient) ModelInfo(_ context.Context, _ string) (models.ModelInfo, *models.FailureRecord) {
	return models.ModelInfo{"model_type": "XGBoost"}, nil
}

func (f *fakeClient) Predict(_ context.Context, _, symbol string) (*models.PredictionResult, *models.FailureRecord) {
	f.mu.Lock()
	f.calls[symbol]++
	fail := f.failWith[symbol]
	f.mu.Unlock()

	if fail != nil {
		return nil, fail
	}
	return &models.PredictionResult{
		Symbol:        symbol,
		Return:        0.01,
		ReturnPercent: 1.0,
		Direction:     models.DirectionUp,
	}, nil
}

func (f *fakeClient) callCount(symbol string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[symbol]
}

func (f *fakeClient) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

type noopMetrics struct{}

func (noopMetrics) RecordPrediction(string, string)       {}
func (noopMetrics) RecordFailure(string)                  {}
func (noopMetrics) RecordCacheHit()                       {}
func (noopMetrics) RecordCacheMiss()                      {}
func (noopMetrics) RecordUpstreamLatency(string, float64) {}

func newTestPredictor(t *testing.T, client *fakeClient) *Predictor {
	t.Helper()
	backend := pkgcache.NewMemoryCache(pkgcache.WithMemoryMaxSize(100))
	t.Cleanup(func() { _ = backend.Close() })
	cache := icache.NewResultCache(backend, nil, 0)
	return NewPredictor(client, cache, noopMetrics{}, nil,
		WithMaxRPS(1000),
		WithDefaultBaseURL("https://api.example.com"),
	)
}

func TestComparePreservesOrderAndDuplicates(t *testing.T) {
	client := newFakeClient()
	p := newTestPredictor(t, client)

	in := []string{"TSLA", "AAPL", "TSLA", "MSFT"}
	batch, err := p.Compare(context.Background(), "", in)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}

	if len(batch.Outcomes) != len(in) {
		t.Fatalf("expected %d outcomes, got %d", len(in), len(batch.Outcomes))
	}
	want := []string{"TSLA", "AAPL", "TSLA", "MSFT"}
	for i, o := range batch.Outcomes {
		if o.Symbol != want[i] {
			t.Fatalf("outcome %d: expected %s, got %s", i, want[i], o.Symbol)
		}
	}
	if client.callCount("TSLA") != 1 {
		t.Fatalf("duplicate symbol dispatched %d times", client.callCount("TSLA"))
	}
	if batch.Succeeded != 4 || batch.Failed != 0 {
		t.Fatalf("unexpected counts %d/%d", batch.Succeeded, batch.Failed)
	}
}

func TestCompareExpandsCommaJoinedEntries(t *testing.T) {
	client := newFakeClient()
	p := newTestPredictor(t, client)

	batch, err := p.Compare(context.Background(), "", []string{"aapl,tsla", "MSFT"})
	if err != nil {
		t.Fatalf("compare: %v", err)
	}

	want := []string{"AAPL", "TSLA", "MSFT"}
	if len(batch.Outcomes) != len(want) {
		t.Fatalf("expected %d outcomes, got %d", len(want), len(batch.Outcomes))
	}
	for i, o := range batch.Outcomes {
		if o.Symbol != want[i] {
			t.Fatalf("outcome %d: expected %s, got %s", i, want[i], o.Symbol)
		}
	}
}

func TestCompareEmptyListIsInvalidRequest(t *testing.T) {
	client := newFakeClient()
	p := newTestPredictor(t, client)

	_, err := p.Compare(context.Background(), "", nil)
	var invalid *models.InvalidRequestError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidRequestError, got %v", err)
	}
	if client.totalCalls() != 0 {
		t.Fatalf("empty batch must make zero network calls, made %d", client.totalCalls())
	}
}

func TestCompareInvalidSymbolIsInvalidRequest(t *testing.T) {
	client := newFakeClient()
	p := newTestPredictor(t, client)

	_, err := p.Compare(context.Background(), "", []string{"AAPL", "BRK.B"})
	var invalid *models.InvalidRequestError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidRequestError, got %v", err)
	}
	if client.totalCalls() != 0 {
		t.Fatalf("invalid request must fail before any network call")
	}
}

func TestComparePartialFailureIsIsolated(t *testing.T) {
	client := newFakeClient()
	client.failWith["ZZZZ"] = models.NetworkFailure("ZZZZ", errors.New("timeout"))
	p := newTestPredictor(t, client)

	batch, err := p.Compare(context.Background(), "", []string{"AAPL", "ZZZZ"})
	if err != nil {
		t.Fatalf("partial failure must not raise: %v", err)
	}

	if len(batch.Outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(batch.Outcomes))
	}
	first, second := batch.Outcomes[0], batch.Outcomes[1]
	if !first.OK() || first.Symbol != "AAPL" {
		t.Fatalf("AAPL success is affected by ZZZZ failure: %+v", first)
	}
	if second.OK() || second.Failure.Kind != models.FailureNetwork {
		t.Fatalf("expected network failure for ZZZZ, got %+v", second)
	}
	if batch.Succeeded != 1 || batch.Failed != 1 {
		t.Fatalf("unexpected counts %d/%d", batch.Succeeded, batch.Failed)
	}
}

func TestCompareAllFailedStillReturnsBatch(t *testing.T) {
	client := newFakeClient()
	client.failWith["AAPL"] = models.APIFailure("AAPL", 500, "boom")
	client.failWith["TSLA"] = models.APIFailure("TSLA", 503, "down")
	p := newTestPredictor(t, client)

	batch, err := p.Compare(context.Background(), "", []string{"AAPL", "TSLA"})
	if err != nil {
		t.Fatalf("all-failed batch must not raise: %v", err)
	}
	if batch.Failed != 2 || batch.Succeeded != 0 {
		t.Fatalf("unexpected counts %d/%d", batch.Succeeded, batch.Failed)
	}
	for _, o := range batch.Outcomes {
		if o.Failure == nil {
			t.Fatalf("expected failure outcome for %s", o.Symbol)
		}
	}
}

func TestPredictUsesCacheOnSecondCall(t *testing.T) {
	client := newFakeClient()
	p := newTestPredictor(t, client)
	ctx := context.Background()

	if _, err := p.Predict(ctx, "", "AAPL", false); err != nil {
		t.Fatalf("predict: %v", err)
	}
	if _, err := p.Predict(ctx, "", "AAPL", false); err != nil {
		t.Fatalf("predict: %v", err)
	}

	if client.callCount("AAPL") != 1 {
		t.Fatalf("expected one upstream call, got %d", client.callCount("AAPL"))
	}
}

func TestPredictBaseURLChangeBypassesStaleCache(t *testing.T) {
	client := newFakeClient()
	p := newTestPredictor(t, client)
	ctx := context.Background()

	if _, err := p.Predict(ctx, "https://api-one.example.com", "AAPL", false); err != nil {
		t.Fatalf("predict: %v", err)
	}
	if _, err := p.Predict(ctx, "https://api-two.example.com", "AAPL", false); err != nil {
		t.Fatalf("predict: %v", err)
	}

	if client.callCount("AAPL") != 2 {
		t.Fatalf("different base URL must not serve stale cache, calls=%d", client.callCount("AAPL"))
	}
}

func TestPredictRefreshBypassesCache(t *testing.T) {
	client := newFakeClient()
	p := newTestPredictor(t, client)
	ctx := context.Background()

	if _, err := p.Predict(ctx, "", "AAPL", false); err != nil {
		t.Fatalf("predict: %v", err)
	}
	if _, err := p.Predict(ctx, "", "AAPL", true); err != nil {
		t.Fatalf("predict: %v", err)
	}

	if client.callCount("AAPL") != 2 {
		t.Fatalf("refresh must bypass the cache, calls=%d", client.callCount("AAPL"))
	}
}

func TestPredictNormalizesSymbol(t *testing.T) {
	client := newFakeClient()
	p := newTestPredictor(t, client)

	res, err := p.Predict(context.Background(), "", "  aapl ", false)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if res.Symbol != "AAPL" {
		t.Fatalf("symbol not normalized: %s", res.Symbol)
	}
}

func TestPredictInvalidSymbol(t *testing.T) {
	client := newFakeClient()
	p := newTestPredictor(t, client)

	_, err := p.Predict(context.Background(), "", "", false)
	var invalid *models.InvalidRequestError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidRequestError, got %v", err)
	}
	if client.totalCalls() != 0 {
		t.Fatalf("invalid symbol must fail before any network call")
	}
}

func TestClearCacheForcesRefetch(t *testing.T) {
	client := newFakeClient()
	p := newTestPredictor(t, client)
	ctx := context.Background()

	if _, err := p.Predict(ctx, "", "AAPL", false); err != nil {
		t.Fatalf("predict: %v", err)
	}
	if err := p.ClearCache(ctx, ""); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := p.Predict(ctx, "", "AAPL", false); err != nil {
		t.Fatalf("predict: %v", err)
	}

	if client.callCount("AAPL") != 2 {
		t.Fatalf("clear must evict, calls=%d", client.callCount("AAPL"))
	}
}
