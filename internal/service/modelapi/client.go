package modelapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"SentiDash/internal/domain/models"
	xhttp "SentiDash/pkg/http"
	applogger "SentiDash/pkg/logger"
)

// Client talks to the sentiment prediction API over HTTP. It is stateless:
// the base URL is threaded through every call so switching API targets
// never touches hidden client state.
type Client struct {
	http             *xhttp.Client
	logger           *applogger.Logger
	predictTimeout   time.Duration
	healthTimeout    time.Duration
	includeSentiment bool
}

// Option configures Client.
type Option func(*Client)

// New creates a model API client.
func New(logger *applogger.Logger, opts ...Option) *Client {
	c := &Client{
		logger:           logger,
		predictTimeout:   10 * time.Second,
		healthTimeout:    10 * time.Second,
		includeSentiment: true,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.http = xhttp.NewClient(xhttp.WithTimeout(c.predictTimeout))
	return c
}

// WithPredictTimeout sets the prediction request timeout.
func WithPredictTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.predictTimeout = d
		}
	}
}

// WithHealthTimeout sets the health and model-info request timeout.
func WithHealthTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.healthTimeout = d
		}
	}
}

// WithSentiment toggles the include_sentiment query parameter.
func WithSentiment(enabled bool) Option {
	return func(c *Client) {
		c.includeSentiment = enabled
	}
}

// CheckHealth probes GET /health. Connection errors and non-2xx responses
// are folded into HealthUnreachable; a 2xx with an unexpected body is
// HealthDegraded.
func (c *Client) CheckHealth(ctx context.Context, baseURL string) models.APIHealth {
	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     endpoint(baseURL, "/health"),
		Timeout: c.healthTimeout,
	})
	if err != nil {
		return models.APIHealth{Status: models.HealthUnreachable}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = xhttp.DrainBody(resp)
		return models.APIHealth{Status: models.HealthUnreachable}
	}

	var body map[string]interface{}
	if err := xhttp.DecodeJSON(resp, &body); err != nil {
		// An empty body on 2xx still counts as alive.
		if errors.Is(err, io.EOF) {
			return models.APIHealth{Status: models.HealthHealthy}
		}
		return models.APIHealth{Status: models.HealthDegraded}
	}

	health := models.APIHealth{Status: models.HealthHealthy, Detail: body}
	if v, ok := body["model_loaded"].(bool); ok {
		health.ModelLoaded = &v
	}
	if v, ok := body["version"].(string); ok {
		health.Version = v
	}
	return health
}

// ModelInfo fetches GET /model/info. The body is passed through unvalidated.
func (c *Client) ModelInfo(ctx context.Context, baseURL string) (models.ModelInfo, *models.FailureRecord) {
	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     endpoint(baseURL, "/model/info"),
		Timeout: c.healthTimeout,
	})
	if err != nil {
		return nil, models.NetworkFailure("", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(xhttp.DrainBody(resp)))
		return nil, models.APIFailure("", resp.StatusCode, msg)
	}

	var info models.ModelInfo
	if err := xhttp.DecodeJSON(resp, &info); err != nil {
		return nil, models.MalformedFailure("", err)
	}
	return info, nil
}

// Predict fetches GET /predict/{symbol} and validates the payload. The
// caller receives exactly one of a result or a failure record; there is
// no retry inside the client.
func (c *Client) Predict(ctx context.Context, baseURL, symbol string) (*models.PredictionResult, *models.FailureRecord) {
	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    endpoint(baseURL, "/predict/"+url.PathEscape(symbol)),
		QueryParams: map[string][]string{
			"include_sentiment": {strconv.FormatBool(c.includeSentiment)},
		},
		Timeout: c.predictTimeout,
	})
	if err != nil {
		return nil, models.NetworkFailure(symbol, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(xhttp.DrainBody(resp)))
		if msg == "" {
			msg = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		}
		return nil, models.APIFailure(symbol, resp.StatusCode, msg)
	}

	var raw map[string]interface{}
	if err := xhttp.DecodeJSON(resp, &raw); err != nil {
		return nil, models.MalformedFailure(symbol, err)
	}

	result, verr := c.parsePrediction(raw, symbol)
	if verr != nil {
		return nil, models.MalformedFailure(symbol, verr)
	}
	return result, nil
}

func endpoint(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + path
}
