package models

import "fmt"

// FailureKind is the closed error taxonomy for per-symbol outcomes.
type FailureKind string

const (
	FailureNetwork   FailureKind = "network_error"     // connection refused, DNS failure, timeout
	FailureAPI       FailureKind = "api_error"         // non-2xx from a reachable server
	FailureMalformed FailureKind = "malformed_response" // 2xx body failing schema validation
)

// FailureRecord is a per-symbol failure. It is data, not control flow:
// batch calls return it inside outcomes instead of raising.
type FailureRecord struct {
	Symbol     string      `json:"symbol"`
	Kind       FailureKind `json:"kind"`
	Message    string      `json:"message"`
	StatusCode int         `json:"status_code,omitempty"`
}

func (f *FailureRecord) Error() string {
	if f.StatusCode > 0 {
		return fmt.Sprintf("%s %s (status %d): %s", f.Symbol, f.Kind, f.StatusCode, f.Message)
	}
	return fmt.Sprintf("%s %s: %s", f.Symbol, f.Kind, f.Message)
}

// NetworkFailure builds a NetworkError failure record.
func NetworkFailure(symbol string, err error) *FailureRecord {
	return &FailureRecord{Symbol: symbol, Kind: FailureNetwork, Message: err.Error()}
}

// APIFailure builds an ApiError failure record carrying the HTTP status.
func APIFailure(symbol string, status int, message string) *FailureRecord {
	return &FailureRecord{Symbol: symbol, Kind: FailureAPI, StatusCode: status, Message: message}
}

// MalformedFailure builds a MalformedResponse failure record.
func MalformedFailure(symbol string, err error) *FailureRecord {
	return &FailureRecord{Symbol: symbol, Kind: FailureMalformed, Message: err.Error()}
}

// InvalidRequestError is a caller-side contract violation. Unlike
// FailureRecord it is raised synchronously, before any network call.
type InvalidRequestError struct {
	Message string
}

func (e *InvalidRequestError) Error() string {
	return e.Message
}

// InvalidRequestf builds an InvalidRequestError with formatting.
func InvalidRequestf(format string, a ...interface{}) *InvalidRequestError {
	return &InvalidRequestError{Message: fmt.Sprintf(format, a...)}
}
