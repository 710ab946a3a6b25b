package models

import "time"

// Direction labels the sign of a predicted return.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

// DirectionFor derives the direction label from a predicted return.
// Always recomputed here, never trusted from the API payload.
func DirectionFor(ret float64) Direction {
	switch {
	case ret > 0:
		return DirectionUp
	case ret < 0:
		return DirectionDown
	default:
		return DirectionFlat
	}
}

// PredictionRequest identifies one prediction call.
type PredictionRequest struct {
	Symbol  string `json:"symbol"`
	BaseURL string `json:"base_url"`
}

// PredictionResult is a validated prediction from the model API.
// Immutable after creation.
type PredictionResult struct {
	Symbol        string                 `json:"symbol"`
	Return        float64                `json:"prediction"`         // model log return
	ReturnPercent float64                `json:"prediction_percent"` // expected move in percent
	Direction     Direction              `json:"direction"`
	Confidence    *float64               `json:"confidence,omitempty"` // [0,1] when present
	Sentiment     *float64               `json:"sentiment,omitempty"`
	Timestamp     time.Time              `json:"timestamp"` // server-provided, else receipt time
	Raw           map[string]interface{} `json:"raw,omitempty"`
}

// HealthStatus classifies the model API liveness.
type HealthStatus string

const (
	HealthHealthy     HealthStatus = "healthy"
	HealthDegraded    HealthStatus = "degraded"
	HealthUnreachable HealthStatus = "unreachable"
)

// APIHealth is the outcome of a health probe. Not persisted.
type APIHealth struct {
	Status      HealthStatus           `json:"status"`
	ModelLoaded *bool                  `json:"model_loaded,omitempty"`
	Version     string                 `json:"version,omitempty"`
	Detail      map[string]interface{} `json:"detail,omitempty"`
}

// ModelInfo describes the deployed model. Free-form, passed through
// unvalidated to the presentation layer.
type ModelInfo map[string]interface{}
