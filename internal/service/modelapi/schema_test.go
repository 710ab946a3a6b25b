package modelapi

import (
	"testing"

	"SentiDash/internal/domain/models"
)

func testClient() *Client {
	return New(nil)
}

func TestParsePredictionFullPayload(t *testing.T) {
	raw := map[string]interface{}{
		"prediction":         0.0123,
		"prediction_percent": 1.23,
		"confidence":         0.87,
		"sentiment":          0.42,
		"symbol":             "AAPL",
		"timestamp":          "2025-01-15T10:30:00Z",
	}

	res, err := testClient().parsePrediction(raw, "AAPL")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.Return != 0.0123 {
		t.Fatalf("unexpected return %v", res.Return)
	}
	if res.ReturnPercent != 1.23 {
		t.Fatalf("unexpected percent %v", res.ReturnPercent)
	}
	if res.Direction != models.DirectionUp {
		t.Fatalf("unexpected direction %s", res.Direction)
	}
	if res.Confidence == nil || *res.Confidence != 0.87 {
		t.Fatalf("unexpected confidence %v", res.Confidence)
	}
	if res.Sentiment == nil || *res.Sentiment != 0.42 {
		t.Fatalf("unexpected sentiment %v", res.Sentiment)
	}
	if res.Timestamp.IsZero() {
		t.Fatalf("timestamp not set")
	}
}

func TestParsePredictionCoercesStringNumbers(t *testing.T) {
	raw := map[string]interface{}{
		"prediction": "-0.02",
		"symbol":     "TSLA",
	}

	res, err := testClient().parsePrediction(raw, "TSLA")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.Return != -0.02 {
		t.Fatalf("coercion failed: %v", res.Return)
	}
	if res.Direction != models.DirectionDown {
		t.Fatalf("unexpected direction %s", res.Direction)
	}
}

func TestParsePredictionDerivesPercentWhenAbsent(t *testing.T) {
	raw := map[string]interface{}{
		"prediction": 0.015,
		"symbol":     "MSFT",
	}

	res, err := testClient().parsePrediction(raw, "MSFT")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.ReturnPercent != 1.5 {
		t.Fatalf("unexpected derived percent %v", res.ReturnPercent)
	}
}

func TestParsePredictionFlatAtZero(t *testing.T) {
	raw := map[string]interface{}{
		"prediction": 0.0,
		"symbol":     "GOOGL",
		// direction in the payload must be ignored
		"direction": "up",
	}

	res, err := testClient().parsePrediction(raw, "GOOGL")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.Direction != models.DirectionFlat {
		t.Fatalf("direction must be recomputed, got %s", res.Direction)
	}
}

func TestParsePredictionMissingPrediction(t *testing.T) {
	raw := map[string]interface{}{
		"symbol": "AAPL",
	}

	if _, err := testClient().parsePrediction(raw, "AAPL"); err == nil {
		t.Fatalf("expected schema rejection")
	}
}

func TestParsePredictionNonCoercibleReturn(t *testing.T) {
	raw := map[string]interface{}{
		"prediction": "not-a-number",
		"symbol":     "AAPL",
	}

	if _, err := testClient().parsePrediction(raw, "AAPL"); err == nil {
		t.Fatalf("expected schema rejection")
	}
}

func TestParsePredictionConfidenceOutOfRange(t *testing.T) {
	raw := map[string]interface{}{
		"prediction": 0.01,
		"confidence": 1.7,
		"symbol":     "AAPL",
	}

	if _, err := testClient().parsePrediction(raw, "AAPL"); err == nil {
		t.Fatalf("expected schema rejection")
	}
}

func TestParsePredictionNullConfidenceAccepted(t *testing.T) {
	raw := map[string]interface{}{
		"prediction": 0.01,
		"confidence": nil,
		"symbol":     "AAPL",
	}

	res, err := testClient().parsePrediction(raw, "AAPL")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.Confidence != nil {
		t.Fatalf("null confidence should stay absent")
	}
}

func TestParsePredictionSymbolMismatchDoesNotReject(t *testing.T) {
	raw := map[string]interface{}{
		"prediction": 0.01,
		"symbol":     "aapl",
	}

	res, err := testClient().parsePrediction(raw, "AAPL")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.Symbol != "AAPL" {
		t.Fatalf("requested symbol stays canonical, got %s", res.Symbol)
	}
}
