package model

// ClaimRecord is the canonical claim produced by extraction
type ClaimRecord struct {
	Patient   string  `json:"patient"`             // Patient name or identifier
	Diagnosis string  `json:"diagnosis"`           // Free-text diagnosis
	Treatment string  `json:"treatment"`           // Free-text treatment/procedure
	Cost      float64 `json:"cost"`                // Claimed amount, never negative
	RiskHint  string  `json:"risk_hint,omitempty"` // Extraction-time risk estimate (informational only)
}

// Sanitized returns a copy with malformed fields coerced to safe defaults.
// Downstream matching treats empty strings as "no information"; a negative
// cost is coerced to zero rather than rejected.
func (c ClaimRecord) Sanitized() ClaimRecord {
	if c.Cost < 0 {
		c.Cost = 0
	}
	return c
}

// Extraction-time risk hints. These never feed the policy pipeline; they only
// annotate the record for reviewers.
const (
	RiskHintHigh   = "High Risk"
	RiskHintMedium = "Medium Risk"
	RiskHintLow    = "Low Risk"
)
