package adapters

import (
	"regexp"
	"strings"

	"github.com/pkravets/claimlens/internal/model"
)

// Labeled-text patterns for the standard claim format:
// "Patient: John Smith, Diagnosis: Cataract, Treatment: ..., Cost: $3500"
var labeledPatterns = map[string]*regexp.Regexp{
	"patient":   regexp.MustCompile(`(?i)(?:Patient|Name):\s*([A-Za-z\s]+)`),
	"diagnosis": regexp.MustCompile(`(?i)(?:Diagnosis|Condition):\s*([^,\n]+)`),
	"treatment": regexp.MustCompile(`(?i)(?:Treatment|Procedure):\s*([^,\n]+)`),
	"cost":      regexp.MustCompile(`(?i)(?:Cost|Amount|Price):\s*\$?([0-9,]+\.?\d*)`),
}

// Flexible patterns tolerate missing colons and looser field labels. Tried
// only when the labeled patterns produced nothing.
var flexiblePatterns = map[string]*regexp.Regexp{
	"patient":   regexp.MustCompile(`(?i)(?:patient|name|client)[\s:]*([A-Za-z\s]+?)(?:\s*,|\s*\n|$)`),
	"diagnosis": regexp.MustCompile(`(?i)(?:diagnosis|condition|disease)[\s:]*([^,\n]+?)(?:\s*,|\s*\n|$)`),
	"treatment": regexp.MustCompile(`(?i)(?:treatment|procedure|therapy|surgery)[\s:]*([^,\n]+?)(?:\s*,|\s*\n|$)`),
	"cost":      regexp.MustCompile(`(?i)(?:cost|amount|price|fee)[\s:]*\$?([0-9,]+\.?\d*)`),
}

// LabeledTextAdapter extracts fields from explicitly labeled claim text
type LabeledTextAdapter struct{}

// NewLabeledTextAdapter creates a new labeled-text adapter
func NewLabeledTextAdapter() *LabeledTextAdapter {
	return &LabeledTextAdapter{}
}

// Name returns the adapter name
func (a *LabeledTextAdapter) Name() string { return "labeled-text" }

// CanHandle accepts any non-JSON text
func (a *LabeledTextAdapter) CanHandle(payload string) bool {
	return strings.TrimSpace(payload) != ""
}

// Extract applies the standard labeled patterns
func (a *LabeledTextAdapter) Extract(payload string) (model.ClaimRecord, bool) {
	record := applyPatterns(payload, labeledPatterns)
	return record, hasAnyField(record)
}

// FlexibleTextAdapter is the loose free-text fallback
type FlexibleTextAdapter struct{}

// NewFlexibleTextAdapter creates a new flexible-text adapter
func NewFlexibleTextAdapter() *FlexibleTextAdapter {
	return &FlexibleTextAdapter{}
}

// Name returns the adapter name
func (a *FlexibleTextAdapter) Name() string { return "flexible-text" }

// CanHandle accepts any non-empty text
func (a *FlexibleTextAdapter) CanHandle(payload string) bool {
	return strings.TrimSpace(payload) != ""
}

// Extract applies the flexible patterns
func (a *FlexibleTextAdapter) Extract(payload string) (model.ClaimRecord, bool) {
	record := applyPatterns(payload, flexiblePatterns)
	return record, hasAnyField(record)
}

func applyPatterns(payload string, patterns map[string]*regexp.Regexp) model.ClaimRecord {
	var record model.ClaimRecord

	if m := patterns["patient"].FindStringSubmatch(payload); m != nil {
		record.Patient = strings.TrimSpace(m[1])
	}
	if m := patterns["diagnosis"].FindStringSubmatch(payload); m != nil {
		record.Diagnosis = strings.TrimSpace(m[1])
	}
	if m := patterns["treatment"].FindStringSubmatch(payload); m != nil {
		record.Treatment = strings.TrimSpace(m[1])
	}
	if m := patterns["cost"].FindStringSubmatch(payload); m != nil {
		record.Cost = parseCost(m[1])
	}

	return record
}
