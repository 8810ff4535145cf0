package policy

import (
	"testing"

	"github.com/pkravets/claimlens/internal/model"
	"github.com/pkravets/claimlens/internal/rules"
)

func testTable() *model.RuleTable {
	return &model.RuleTable{
		Covered: []model.CoverageRule{
			{Source: "COV_1", Title: "Cataract Surgery", Conditions: []string{"cataract"}, Procedures: []string{"phaco"}},
			{Source: "COV_2", Title: "Dialysis", Conditions: []string{"renal disease"}, Procedures: []string{"dialysis"}},
		},
		Conditional: []model.CoverageRule{
			{Source: "CON_1", Title: "Physical Therapy", Conditions: []string{"back pain"}, Procedures: []string{"physical therapy"}},
		},
		Excluded: []model.CoverageRule{
			{Source: "EXC_1", Title: "Cosmetic Procedures", Conditions: []string{"aesthetic"}, Procedures: []string{"cosmetic"}},
		},
		Limits: model.CostLimits{AnnualDeductible: 1600, CoinsuranceRate: 0.20},
		BenefitCategories: []model.BenefitCategory{
			{Name: "Inpatient Hospital Services", Keywords: []string{"surgery"}},
			{Name: "Outpatient Physical Therapy Services", Keywords: []string{"therapy"}},
		},
	}
}

func TestMatcher_Classify_CoveredByDiagnosis(t *testing.T) {
	matcher := NewMatcher()

	status := matcher.Classify("Bilateral cataract", "Consultation", testTable())

	if status.Status != model.StatusCovered {
		t.Errorf("Expected COVERED, got %s", status.Status)
	}
	if status.Source != "COV_1" {
		t.Errorf("Expected COV_1, got %s", status.Source)
	}
	if status.Reason != "Meets Medicare coverage determination: Cataract Surgery" {
		t.Errorf("Unexpected reason: %s", status.Reason)
	}
}

func TestMatcher_Classify_DisjunctionAcrossAxes(t *testing.T) {
	matcher := NewMatcher()

	// Diagnosis does not match any keyword, but the treatment does:
	// the rule must still fire.
	status := matcher.Classify("Unrelated diagnosis", "Outpatient dialysis session", testTable())

	if status.Status != model.StatusCovered {
		t.Errorf("Expected COVERED via treatment axis, got %s", status.Status)
	}
	if status.Source != "COV_2" {
		t.Errorf("Expected COV_2, got %s", status.Source)
	}
}

func TestMatcher_Classify_CoveredWinsOverExcluded(t *testing.T) {
	matcher := NewMatcher()

	// Matches both COV_1 (cataract) and EXC_1 (cosmetic): the scan order
	// covered -> conditional -> excluded means COVERED wins.
	status := matcher.Classify("Cataract", "Cosmetic lens procedure", testTable())

	if status.Status != model.StatusCovered {
		t.Errorf("Expected COVERED to win the priority scan, got %s", status.Status)
	}
}

func TestMatcher_Classify_Excluded(t *testing.T) {
	matcher := NewMatcher()

	status := matcher.Classify("Aesthetic concerns", "Cosmetic plastic surgery", testTable())

	if status.Status != model.StatusExcluded {
		t.Errorf("Expected EXCLUDED, got %s", status.Status)
	}
	if status.Reason != "Explicitly excluded service: Cosmetic Procedures" {
		t.Errorf("Unexpected reason: %s", status.Reason)
	}
}

func TestMatcher_Classify_NoMatchDefaultsToReview(t *testing.T) {
	matcher := NewMatcher()

	status := matcher.Classify("Rare condition", "Novel treatment", testTable())

	if status.Status != model.StatusRequiresReview {
		t.Errorf("Expected REQUIRES_REVIEW default, got %s", status.Status)
	}
	if status.Source != "Policy_Default" {
		t.Errorf("Expected Policy_Default source, got %s", status.Source)
	}
	if status.Reason != "No explicit coverage determination found, requires manual review" {
		t.Errorf("Unexpected default reason: %s", status.Reason)
	}
}

func TestMatcher_Classify_EmptyAxisIsWildcard(t *testing.T) {
	matcher := NewMatcher()

	table := &model.RuleTable{
		Covered: []model.CoverageRule{
			// No conditions: the diagnosis axis matches everything.
			{Source: "COV_W", Title: "Wildcard Diagnosis", Procedures: []string{"never-used"}},
		},
	}

	status := matcher.Classify("Anything at all", "Anything at all", table)

	if status.Status != model.StatusCovered {
		t.Errorf("Expected wildcard axis to match, got %s", status.Status)
	}
}

func TestMatcher_Classify_CaseInsensitive(t *testing.T) {
	matcher := NewMatcher()

	status := matcher.Classify("CATARACT, both eyes", "", testTable())

	if status.Status != model.StatusCovered {
		t.Errorf("Expected case-insensitive match, got %s", status.Status)
	}
}

func TestMatcher_ApplicableRules_CappedAtThree(t *testing.T) {
	matcher := NewMatcher()

	table := &model.RuleTable{
		Covered: []model.CoverageRule{
			{Source: "A", Title: "A", Conditions: []string{"pain"}, Procedures: []string{"x1"}},
			{Source: "B", Title: "B", Conditions: []string{"pain"}, Procedures: []string{"x2"}},
			{Source: "C", Title: "C", Conditions: []string{"pain"}, Procedures: []string{"x3"}},
			{Source: "D", Title: "D", Conditions: []string{"pain"}, Procedures: []string{"x4"}},
		},
	}

	refs := matcher.ApplicableRules("chronic pain", "treatment", table)

	if len(refs) != 3 {
		t.Fatalf("Expected 3 applicable rules, got %d", len(refs))
	}
	if refs[0].Source != "A" || refs[1].Source != "B" || refs[2].Source != "C" {
		t.Errorf("Expected discovery order A, B, C; got %s, %s, %s", refs[0].Source, refs[1].Source, refs[2].Source)
	}
}

func TestMatcher_ApplicableRules_DiscoveryOrder(t *testing.T) {
	matcher := NewMatcher()

	// Matches COV_1 and EXC_1: covered rules are discovered first.
	refs := matcher.ApplicableRules("cataract", "cosmetic touch-up", testTable())

	if len(refs) != 2 {
		t.Fatalf("Expected 2 applicable rules, got %d", len(refs))
	}
	if refs[0].Category != model.CategoryCovered {
		t.Errorf("Expected covered rule first, got %s", refs[0].Category)
	}
	if refs[1].Category != model.CategoryExcluded {
		t.Errorf("Expected excluded rule second, got %s", refs[1].Category)
	}
}

func TestMatcher_BenefitCategory(t *testing.T) {
	matcher := NewMatcher()
	table := testTable()

	tests := []struct {
		treatment string
		want      string
	}{
		{"Knee replacement surgery", "Inpatient Hospital Services"},
		{"Physical therapy sessions", "Outpatient Physical Therapy Services"},
		{"Routine consultation", rules.DefaultBenefitCategory},
	}

	for _, tt := range tests {
		got := matcher.BenefitCategory(tt.treatment, table)
		if got != tt.want {
			t.Errorf("BenefitCategory(%q) = %q, want %q", tt.treatment, got, tt.want)
		}
	}
}

func TestMatcher_BenefitCategory_FirstKeywordWins(t *testing.T) {
	matcher := NewMatcher()

	// "surgery" and "therapy" both present: categories are checked in
	// table order, so the first wins.
	got := matcher.BenefitCategory("Post-surgery therapy", testTable())

	if got != "Inpatient Hospital Services" {
		t.Errorf("Expected first category in table order, got %q", got)
	}
}
