package models

// SymbolOutcome is the resolved outcome for one requested symbol:
// exactly one of Result or Failure is set.
type SymbolOutcome struct {
	Symbol  string            `json:"symbol"`
	Result  *PredictionResult `json:"result,omitempty"`
	Failure *FailureRecord    `json:"failure,omitempty"`
}

// OK reports whether the outcome is a successful prediction.
func (o SymbolOutcome) OK() bool {
	return o.Result != nil
}

// BatchResult holds one outcome per requested symbol, in input order.
// Duplicated input symbols appear duplicated here as well.
type BatchResult struct {
	Outcomes  []SymbolOutcome `json:"outcomes"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
}
