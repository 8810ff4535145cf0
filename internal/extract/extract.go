// Package extract turns raw claim payloads (JSON or free text) into the
// canonical ClaimRecord consumed by the policy pipeline. Extraction is a
// thin collaborator: it only fills fields, it never influences scoring.
package extract

import (
	"strings"

	"github.com/pkravets/claimlens/internal/extract/adapters"
	"github.com/pkravets/claimlens/internal/model"
)

// Extractor converts raw claim payloads into ClaimRecords
type Extractor struct {
	registry *adapters.Registry
}

// NewExtractor creates an extractor with the built-in adapter registry
func NewExtractor() *Extractor {
	return &Extractor{registry: adapters.NewRegistry()}
}

// Extract produces a canonical ClaimRecord from the payload. It never
// fails: when no adapter recognizes the payload a fallback record with
// safe defaults is returned.
func (e *Extractor) Extract(payload string) model.ClaimRecord {
	return e.registry.Extract(payload)
}

// RiskHint estimates a coarse extraction-time risk label for reviewers
// using the rule table's indicator keywords. It annotates the record only;
// the policy pipeline computes its own risk score independently.
func RiskHint(record model.ClaimRecord, keywords model.RiskKeywords) string {
	// An unparseable claim carries no signal either way; flag it for a
	// human look instead of letting the zero cost read as low risk.
	if adapters.IsFallback(record) {
		return model.RiskHintMedium
	}

	text := strings.ToLower(record.Diagnosis + " " + record.Treatment)

	if record.Cost > 50000 || containsAny(text, keywords.High) {
		return model.RiskHintHigh
	}
	if record.Cost > 10000 || containsAny(text, keywords.Medium) {
		return model.RiskHintMedium
	}
	return model.RiskHintLow
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
