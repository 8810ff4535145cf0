package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkravets/claimlens/internal/model"
)

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	table, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if table.Limits.AnnualDeductible != 1600 {
		t.Errorf("Expected default deductible 1600, got %v", table.Limits.AnnualDeductible)
	}
	if table.Limits.CoinsuranceRate != 0.20 {
		t.Errorf("Expected default coinsurance 0.20, got %v", table.Limits.CoinsuranceRate)
	}
	if len(table.Covered) == 0 || len(table.Conditional) == 0 || len(table.Excluded) == 0 {
		t.Error("Expected rules in every category")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/rules.yaml")
	if err == nil {
		t.Error("Expected an error for a missing rule file")
	}
}

func TestDefaultTable_Valid(t *testing.T) {
	if err := Validate(DefaultTable()); err != nil {
		t.Errorf("Default table failed validation: %v", err)
	}
}

func TestWriteDefault_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Fingerprint() != DefaultTable().Fingerprint() {
		t.Error("Roundtripped table fingerprint differs from the default table")
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("covered: [not: valid: yaml"))
	if err == nil {
		t.Error("Expected a parse error")
	}
}

func TestValidate_Rejections(t *testing.T) {
	base := func() *model.RuleTable {
		return &model.RuleTable{
			Covered: []model.CoverageRule{
				{Source: "COV_1", Title: "Test Rule", Conditions: []string{"test"}},
			},
			Limits: model.CostLimits{AnnualDeductible: 1600, CoinsuranceRate: 0.20},
		}
	}

	tests := []struct {
		name   string
		mutate func(*model.RuleTable)
	}{
		{"negative deductible", func(t *model.RuleTable) { t.Limits.AnnualDeductible = -1 }},
		{"coinsurance below zero", func(t *model.RuleTable) { t.Limits.CoinsuranceRate = -0.1 }},
		{"coinsurance above one", func(t *model.RuleTable) { t.Limits.CoinsuranceRate = 1.5 }},
		{"no rules", func(t *model.RuleTable) { t.Covered = nil }},
		{"missing source", func(t *model.RuleTable) { t.Covered[0].Source = "" }},
		{"missing title", func(t *model.RuleTable) { t.Covered[0].Title = "" }},
		{"empty keyword", func(t *model.RuleTable) { t.Covered[0].Conditions = []string{""} }},
		{"unnamed benefit category", func(t *model.RuleTable) {
			t.BenefitCategories = []model.BenefitCategory{{Keywords: []string{"x"}}}
		}},
		{"benefit category without keywords", func(t *model.RuleTable) {
			t.BenefitCategories = []model.BenefitCategory{{Name: "Test"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := base()
			tt.mutate(table)
			if err := Validate(table); err == nil {
				t.Error("Expected validation to fail")
			}
		})
	}

	if err := Validate(base()); err != nil {
		t.Errorf("Base table must be valid: %v", err)
	}
}

func TestValidate_EdgeRatesAccepted(t *testing.T) {
	table := &model.RuleTable{
		Covered: []model.CoverageRule{{Source: "C", Title: "T", Conditions: []string{"x"}}},
		Limits:  model.CostLimits{AnnualDeductible: 0, CoinsuranceRate: 1.0},
	}

	if err := Validate(table); err != nil {
		t.Errorf("Boundary rates must pass: %v", err)
	}
}

func TestFingerprint_ChangesWithContent(t *testing.T) {
	a := DefaultTable()
	b := DefaultTable()
	b.Limits.AnnualDeductible = 2000

	if a.Fingerprint() == b.Fingerprint() {
		t.Error("Expected different fingerprints for different tables")
	}
	if a.Fingerprint() != DefaultTable().Fingerprint() {
		t.Error("Expected a stable fingerprint for identical tables")
	}
}

func TestLoad_RejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	content := "covered:\n  - source: X\n    title: Bad\nlimits:\n  annual_deductible: -5\n  coinsurance_rate: 0.2\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected validation failure for a negative deductible")
	}
}
