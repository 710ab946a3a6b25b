package models

// PredictParams binds the single-symbol prediction route.
type PredictParams struct {
	Symbol  string `param:"symbol" validate:"required,min=1,max=10"`
	BaseURL string `query:"base_url" validate:"omitempty,url"`
	Refresh bool   `query:"refresh"`
}

// CompareRequest binds the multi-symbol comparison request.
type CompareRequest struct {
	Symbols []string `json:"symbols" validate:"required,min=1,max=25,dive,min=1,max=10"`
	BaseURL string   `json:"base_url" validate:"omitempty,url"`
}

// HealthParams binds the upstream health probe route.
type HealthParams struct {
	BaseURL string `query:"base_url" validate:"omitempty,url"`
}

// ClearCacheParams binds the cache invalidation route. Empty BaseURL
// clears every namespace.
type ClearCacheParams struct {
	BaseURL string `query:"base_url" validate:"omitempty,url"`
}
