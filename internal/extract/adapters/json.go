package adapters

import (
	"encoding/json"
	"strings"

	"github.com/pkravets/claimlens/internal/model"
)

// JSONAdapter extracts claim fields from JSON payloads. Field aliases match
// common upstream exports: patient|name, diagnosis|condition,
// treatment|procedure, cost|amount.
type JSONAdapter struct{}

// NewJSONAdapter creates a new JSON adapter
func NewJSONAdapter() *JSONAdapter {
	return &JSONAdapter{}
}

// Name returns the adapter name
func (a *JSONAdapter) Name() string { return "json" }

// CanHandle checks for a JSON object payload
func (a *JSONAdapter) CanHandle(payload string) bool {
	return strings.HasPrefix(strings.TrimSpace(payload), "{")
}

// Extract decodes the payload and maps the aliased fields
func (a *JSONAdapter) Extract(payload string) (model.ClaimRecord, bool) {
	var data map[string]any
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return model.ClaimRecord{}, false
	}

	record := model.ClaimRecord{
		Patient:   firstString(data, "patient", "name"),
		Diagnosis: firstString(data, "diagnosis", "condition"),
		Treatment: firstString(data, "treatment", "procedure"),
		Cost:      firstNumber(data, "cost", "amount"),
	}

	return record, hasAnyField(record)
}

func firstString(data map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := data[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

func firstNumber(data map[string]any, keys ...string) float64 {
	for _, key := range keys {
		v, ok := data[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			if n > 0 {
				return n
			}
		case string:
			if parsed := parseCost(n); parsed > 0 {
				return parsed
			}
		}
	}
	return 0
}
