// Package llm provides an optional LLM-backed extraction fallback for claim
// payloads the pattern adapters cannot parse. Providers only ever produce a
// ClaimRecord; they are never part of coverage matching or scoring, so
// enabling them cannot change a decision for a payload the deterministic
// extractor already handles.
package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/pkravets/claimlens/internal/extract/adapters"
	"github.com/pkravets/claimlens/internal/model"
)

// Provider defines the interface for LLM extraction providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// ExtractClaim extracts the canonical claim fields from messy text
	ExtractClaim(ctx context.Context, claimText string) (model.ClaimRecord, error)

	// IsAvailable checks if the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", "" (disabled)
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 500,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(cfg model.LLMConfig) Config {
	return Config{
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		MaxTokens: cfg.MaxTokens,
	}
}

// buildPrompt constructs the extraction prompt. The model is instructed to
// return only a JSON object so the response can be parsed by the same JSON
// adapter used for structured payloads.
func buildPrompt(claimText string) string {
	return fmt.Sprintf(`Extract the following fields from this medical insurance claim text and respond with ONLY a JSON object, no prose:

{"patient": "<patient name>", "diagnosis": "<diagnosis>", "treatment": "<treatment or procedure>", "cost": <numeric amount>}

Rules:
- Use empty strings for fields that are not present.
- Use 0 for a missing or unparseable cost.
- Do not invent information that is not in the text.

Claim text:
%s`, claimText)
}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// parseRecord extracts the JSON object from a model response and decodes it
// through the standard JSON claim adapter.
func parseRecord(response string) (model.ClaimRecord, error) {
	payload := jsonObjectPattern.FindString(strings.TrimSpace(response))
	if payload == "" {
		return model.ClaimRecord{}, fmt.Errorf("no JSON object in model response")
	}

	record, ok := adapters.NewJSONAdapter().Extract(payload)
	if !ok {
		return model.ClaimRecord{}, fmt.Errorf("model response contained no claim fields")
	}

	return record.Sanitized(), nil
}
