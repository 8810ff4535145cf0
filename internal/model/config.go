package model

import "time"

// Config is the full runtime configuration for Claimlens
type Config struct {
	Rules       RulesConfig       `yaml:"rules" mapstructure:"rules"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Audit       AuditConfig       `yaml:"audit" mapstructure:"audit"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// RulesConfig controls where the coverage-rule table comes from
type RulesConfig struct {
	// Path to a YAML rule table. Empty means the built-in default ruleset.
	Path string `yaml:"path" mapstructure:"path"`

	// Watch enables hot reload: the file is watched and the active table
	// is atomically swapped on change.
	Watch bool `yaml:"watch" mapstructure:"watch"`
}

// CacheConfig controls the adjudication result cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// LLMConfig configures the optional LLM extraction fallback.
// The LLM only ever produces a ClaimRecord from messy text; it never
// participates in coverage matching or scoring.
type LLMConfig struct {
	Provider  string  `yaml:"provider" mapstructure:"provider"` // "openai", "ollama", "" (disabled)
	Model     string  `yaml:"model" mapstructure:"model"`
	APIKey    string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL   string  `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"` // requests/second in batch mode
}

// ConcurrencyConfig controls batch processing parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// AuditConfig controls the optional SQLite decision log
type AuditConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Rules: RulesConfig{
			Path:  "",
			Watch: false,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".claimlens-cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		LLM: LLMConfig{
			Provider:  "", // Disabled by default
			Timeout:   30,
			MaxTokens: 500,
			RateLimit: 1.0,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Audit: AuditConfig{
			Enabled: false,
			Path:    "claimlens-audit.db",
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
