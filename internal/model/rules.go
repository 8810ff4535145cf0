package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// RuleCategory classifies a coverage determination
type RuleCategory string

const (
	CategoryCovered     RuleCategory = "covered"     // Payable under policy
	CategoryConditional RuleCategory = "conditional" // Payable when requirements are met
	CategoryExcluded    RuleCategory = "excluded"    // Never payable
)

// CoverageRule is an NCD/LCD-style keyword-triggered determination.
// An empty Conditions or Procedures list is a wildcard on that axis:
// the rule matches any diagnosis (respectively treatment). This is
// deliberate - many determinations constrain only one axis.
type CoverageRule struct {
	Source     string   `json:"source" yaml:"source"`         // Determination identifier, e.g. "NCD_80.1"
	Title      string   `json:"title" yaml:"title"`           // Human-readable title
	Conditions []string `json:"conditions" yaml:"conditions"` // Diagnosis trigger keywords
	Procedures []string `json:"procedures" yaml:"procedures"` // Treatment trigger keywords
	Notes      string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// CostLimits holds the Part B style cost-sharing parameters
type CostLimits struct {
	AnnualDeductible float64 `json:"annual_deductible" yaml:"annual_deductible"`
	CoinsuranceRate  float64 `json:"coinsurance_rate" yaml:"coinsurance_rate"`
}

// Requirements lists the special-requirement trigger phrases
type Requirements struct {
	PriorAuthorization     []string `json:"prior_authorization" yaml:"prior_authorization"`
	PhysicianCertification []string `json:"physician_certification" yaml:"physician_certification"`
	DocumentationRequired  []string `json:"documentation_required" yaml:"documentation_required"`
}

// RiskKeywords holds the indicator keyword lists per risk band
type RiskKeywords struct {
	High   []string `json:"high" yaml:"high"`
	Medium []string `json:"medium" yaml:"medium"`
	Low    []string `json:"low" yaml:"low"`
}

// BenefitCategory maps treatment keywords to a Medicare benefit category.
// Categories are checked in declaration order; the first keyword hit wins.
type BenefitCategory struct {
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// RuleTable is the complete, immutable coverage-rule dataset. It is built
// once by the rules loader and passed by pointer; nothing mutates it after
// construction. Replacing rules at runtime means swapping in a whole new
// table, never editing fields of a live one.
type RuleTable struct {
	Covered           []CoverageRule    `json:"covered" yaml:"covered"`
	Conditional       []CoverageRule    `json:"conditional" yaml:"conditional"`
	Excluded          []CoverageRule    `json:"excluded" yaml:"excluded"`
	Limits            CostLimits        `json:"limits" yaml:"limits"`
	Requirements      Requirements      `json:"requirements" yaml:"requirements"`
	RiskKeywords      RiskKeywords      `json:"risk_keywords" yaml:"risk_keywords"`
	BenefitCategories []BenefitCategory `json:"benefit_categories" yaml:"benefit_categories"`
}

// ByCategory returns the rule list for the given category in priority order.
func (t *RuleTable) ByCategory(category RuleCategory) []CoverageRule {
	switch category {
	case CategoryCovered:
		return t.Covered
	case CategoryConditional:
		return t.Conditional
	case CategoryExcluded:
		return t.Excluded
	default:
		return nil
	}
}

// Fingerprint returns a stable digest of the table contents, used to key
// cached adjudication results so a rules change invalidates the cache.
func (t *RuleTable) Fingerprint() string {
	data, err := json.Marshal(t)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
