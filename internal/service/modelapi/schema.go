package modelapi

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"SentiDash/internal/domain/models"
	applogger "SentiDash/pkg/logger"
	"SentiDash/pkg/util"
)

// parsePrediction converts a raw decoded payload into a typed
// PredictionResult. Required: numeric prediction and a symbol field.
// Numeric fields arriving as strings get a best-effort coercion; anything
// that still fails is a schema violation. The direction label is derived
// from the validated return, never read from the payload.
func (c *Client) parsePrediction(raw map[string]interface{}, requested string) (*models.PredictionResult, error) {
	predRaw, ok := raw["prediction"]
	if !ok {
		return nil, fmt.Errorf("missing required field 'prediction'")
	}
	ret, ok := toFloat(predRaw)
	if !ok {
		return nil, fmt.Errorf("field 'prediction' is not numeric: %v", predRaw)
	}

	symRaw, ok := raw["symbol"]
	if !ok {
		return nil, fmt.Errorf("missing required field 'symbol'")
	}
	payloadSym, ok := symRaw.(string)
	if !ok {
		return nil, fmt.Errorf("field 'symbol' is not a string: %v", symRaw)
	}
	if util.NormalizeSymbol(payloadSym) != requested && c.logger != nil {
		// Server may normalize casing or aliases; the requested symbol
		// stays canonical for cache keys and batch reassembly.
		c.logger.Warn("prediction symbol mismatch",
			applogger.String("requested", requested),
			applogger.String("payload", payloadSym),
		)
	}

	result := &models.PredictionResult{
		Symbol:    requested,
		Return:    ret,
		Direction: models.DirectionFor(ret),
		Raw:       raw,
	}

	if v, present := raw["prediction_percent"]; present && v != nil {
		pct, ok := toFloat(v)
		if !ok {
			return nil, fmt.Errorf("field 'prediction_percent' is not numeric: %v", v)
		}
		result.ReturnPercent = roundPercent(pct)
	} else {
		result.ReturnPercent = roundPercent(ret * 100)
	}

	if v, present := raw["confidence"]; present && v != nil {
		conf, ok := toFloat(v)
		if !ok {
			return nil, fmt.Errorf("field 'confidence' is not numeric: %v", v)
		}
		if conf < 0 || conf > 1 {
			return nil, fmt.Errorf("field 'confidence' outside [0,1]: %v", conf)
		}
		result.Confidence = &conf
	}

	if v, present := sentimentField(raw); present {
		sent, ok := toFloat(v)
		if !ok {
			return nil, fmt.Errorf("sentiment field is not numeric: %v", v)
		}
		result.Sentiment = &sent
	}

	if v, ok := raw["timestamp"].(string); ok {
		result.Timestamp = util.ParseTimeDefault(v, time.Now().UTC())
	} else {
		result.Timestamp = time.Now().UTC()
	}

	return result, nil
}

// sentimentField accepts either naming the API has used for the Reddit
// sentiment score.
func sentimentField(raw map[string]interface{}) (interface{}, bool) {
	for _, key := range []string{"sentiment", "sentiment_score"} {
		if v, ok := raw[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// roundPercent fixes the display precision of percent values to two
// decimal places. Raw returns keep full float64 precision.
func roundPercent(p float64) float64 {
	return math.Round(p*100) / 100
}
