package policy

import (
	"fmt"
	"strings"

	"github.com/pkravets/claimlens/internal/model"
	"github.com/pkravets/claimlens/internal/rules"
)

// Matcher classifies a claim's coverage status against the rule table
type Matcher struct{}

// NewMatcher creates a new coverage matcher
func NewMatcher() *Matcher {
	return &Matcher{}
}

// categoryOrder is the fixed priority order for classification. The first
// matching rule wins, so a claim matching both a covered and an excluded
// determination resolves to COVERED. Reordering this changes outcomes.
var categoryOrder = []model.RuleCategory{
	model.CategoryCovered,
	model.CategoryConditional,
	model.CategoryExcluded,
}

// Classify scans the rule table in priority order and returns the coverage
// status decided by the first matching rule. No match across all three
// categories defaults to REQUIRES_REVIEW.
func (m *Matcher) Classify(diagnosis, treatment string, table *model.RuleTable) model.CoverageStatus {
	for _, category := range categoryOrder {
		for _, rule := range table.ByCategory(category) {
			if !matchesRule(diagnosis, treatment, rule) {
				continue
			}
			switch category {
			case model.CategoryCovered:
				return model.CoverageStatus{
					Status: model.StatusCovered,
					Source: rule.Source,
					Title:  rule.Title,
					Reason: fmt.Sprintf("Meets Medicare coverage determination: %s", rule.Title),
				}
			case model.CategoryConditional:
				return model.CoverageStatus{
					Status: model.StatusConditional,
					Source: rule.Source,
					Title:  rule.Title,
					Reason: fmt.Sprintf("Conditional coverage, must meet specific requirements: %s", rule.Title),
				}
			case model.CategoryExcluded:
				return model.CoverageStatus{
					Status: model.StatusExcluded,
					Source: rule.Source,
					Title:  rule.Title,
					Reason: fmt.Sprintf("Explicitly excluded service: %s", rule.Title),
				}
			}
		}
	}

	return model.CoverageStatus{
		Status: model.StatusRequiresReview,
		Source: "Policy_Default",
		Title:  "Manual Review Required",
		Reason: "No explicit coverage determination found, requires manual review",
	}
}

// ApplicableRules returns every determination that matches the claim, in
// discovery order (covered, then conditional, then excluded), capped at 3.
func (m *Matcher) ApplicableRules(diagnosis, treatment string, table *model.RuleTable) []model.RuleRef {
	var refs []model.RuleRef
	for _, category := range categoryOrder {
		for _, rule := range table.ByCategory(category) {
			if matchesRule(diagnosis, treatment, rule) {
				refs = append(refs, model.RuleRef{
					Source:   rule.Source,
					Title:    rule.Title,
					Category: category,
				})
				if len(refs) == 3 {
					return refs
				}
			}
		}
	}
	return refs
}

// BenefitCategory classifies the treatment into a Medicare benefit category.
// Categories are checked in table order; the first keyword hit wins.
func (m *Matcher) BenefitCategory(treatment string, table *model.RuleTable) string {
	lower := strings.ToLower(treatment)
	for _, bc := range table.BenefitCategories {
		for _, kw := range bc.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return bc.Name
			}
		}
	}
	return rules.DefaultBenefitCategory
}

// matchesRule reports whether the claim triggers the rule. The match is a
// disjunction: a hit on either the diagnosis axis or the treatment axis
// fires the rule. An empty keyword list is a wildcard on its axis.
func matchesRule(diagnosis, treatment string, rule model.CoverageRule) bool {
	return axisMatches(diagnosis, rule.Conditions) || axisMatches(treatment, rule.Procedures)
}

func axisMatches(text string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
