package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pkravets/claimlens/internal/model"
)

// Load reads a rule table from a YAML file and validates it. An empty path
// returns the built-in default table. A table that fails validation is
// rejected outright: a silently misconfigured table would corrupt every
// decision downstream.
func Load(path string) (*model.RuleTable, error) {
	if path == "" {
		return DefaultTable(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule file: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates a YAML rule table.
func Parse(data []byte) (*model.RuleTable, error) {
	var table model.RuleTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse rule file: %w", err)
	}

	if err := Validate(&table); err != nil {
		return nil, err
	}

	return &table, nil
}

// Validate checks a rule table for misconfiguration. It returns the first
// problem found.
func Validate(t *model.RuleTable) error {
	if t == nil {
		return fmt.Errorf("rule table: nil")
	}

	if t.Limits.AnnualDeductible < 0 {
		return fmt.Errorf("rule table: annual_deductible must be >= 0, got %v", t.Limits.AnnualDeductible)
	}
	if t.Limits.CoinsuranceRate < 0 || t.Limits.CoinsuranceRate > 1 {
		return fmt.Errorf("rule table: coinsurance_rate must be in [0,1], got %v", t.Limits.CoinsuranceRate)
	}

	if len(t.Covered)+len(t.Conditional)+len(t.Excluded) == 0 {
		return fmt.Errorf("rule table: no coverage rules defined")
	}

	for _, category := range []model.RuleCategory{model.CategoryCovered, model.CategoryConditional, model.CategoryExcluded} {
		for i, rule := range t.ByCategory(category) {
			if rule.Source == "" {
				return fmt.Errorf("rule table: %s rule %d has no source identifier", category, i)
			}
			if rule.Title == "" {
				return fmt.Errorf("rule table: %s rule %q has no title", category, rule.Source)
			}
			for _, kw := range append(append([]string{}, rule.Conditions...), rule.Procedures...) {
				if kw == "" {
					return fmt.Errorf("rule table: %s rule %q contains an empty keyword", category, rule.Source)
				}
			}
		}
	}

	for i, bc := range t.BenefitCategories {
		if bc.Name == "" {
			return fmt.Errorf("rule table: benefit category %d has no name", i)
		}
		if len(bc.Keywords) == 0 {
			return fmt.Errorf("rule table: benefit category %q has no keywords", bc.Name)
		}
	}

	return nil
}

// WriteDefault writes the built-in default rule table as YAML to the given
// path. Used by `claimlens rules init`.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultTable())
	if err != nil {
		return fmt.Errorf("marshal default rules: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write rule file: %w", err)
	}

	return nil
}
