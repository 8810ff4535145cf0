package adapters

import (
	"strconv"
	"strings"

	"github.com/pkravets/claimlens/internal/model"
)

// Adapter defines the interface for claim input-format adapters
type Adapter interface {
	// Name returns the adapter name
	Name() string

	// CanHandle checks if this adapter recognizes the payload format
	CanHandle(payload string) bool

	// Extract pulls a ClaimRecord out of the payload. ok is false when the
	// payload yielded no usable fields.
	Extract(payload string) (record model.ClaimRecord, ok bool)
}

// Registry holds the input-format adapters in trial order
type Registry struct {
	adapters []Adapter
}

// NewRegistry creates a registry with the built-in adapters: JSON payloads
// first, then labeled English text, then the flexible free-text fallback.
func NewRegistry() *Registry {
	return &Registry{
		adapters: []Adapter{
			NewJSONAdapter(),
			NewLabeledTextAdapter(),
			NewFlexibleTextAdapter(),
		},
	}
}

// Register appends a custom adapter. It is tried after the built-ins.
func (r *Registry) Register(adapter Adapter) {
	r.adapters = append(r.adapters, adapter)
}

// Extract runs the payload through the adapters in order and returns the
// first successful record. When nothing matches it returns the fallback
// record so downstream evaluation always has a structurally valid input.
func (r *Registry) Extract(payload string) model.ClaimRecord {
	for _, adapter := range r.adapters {
		if !adapter.CanHandle(payload) {
			continue
		}
		if record, ok := adapter.Extract(payload); ok {
			return record.Sanitized()
		}
	}
	return FallbackRecord()
}

// FallbackRecord is returned when no adapter could extract anything. Empty
// strings and zero cost are safe defaults for downstream matching.
func FallbackRecord() model.ClaimRecord {
	return model.ClaimRecord{
		Patient:   "Unknown Patient",
		Diagnosis: "Unknown",
		Treatment: "Unknown",
		Cost:      0,
	}
}

// IsFallback reports whether the record is the no-extraction fallback,
// which callers may use to trigger an alternative extraction path.
func IsFallback(record model.ClaimRecord) bool {
	fallback := FallbackRecord()
	return record.Patient == fallback.Patient &&
		record.Diagnosis == fallback.Diagnosis &&
		record.Treatment == fallback.Treatment &&
		record.Cost == fallback.Cost
}

// parseCost coerces a cost string to a non-negative float. Currency symbols
// and thousands separators are stripped; anything unparseable becomes 0.
func parseCost(raw string) float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(raw, ",", ""), "$", ""))
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// hasAnyField reports whether extraction produced at least one usable field
func hasAnyField(record model.ClaimRecord) bool {
	return record.Patient != "" || record.Diagnosis != "" || record.Treatment != "" || record.Cost != 0
}
