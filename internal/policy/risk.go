package policy

import (
	"strings"

	"github.com/pkravets/claimlens/internal/model"
)

// Risk signal weights and bucket thresholds. The score is a raw signed sum:
// it is never clamped, and routine-care credit can push it below zero.
const (
	riskHighThreshold   = 5
	riskMediumThreshold = 2
)

// RiskScorer computes a claim's risk score and level from cost and
// treatment keyword signals. All signals are independent and can co-fire.
type RiskScorer struct{}

// NewRiskScorer creates a new risk scorer
func NewRiskScorer() *RiskScorer {
	return &RiskScorer{}
}

// Score assesses the claim's risk. The diagnosis is accepted for contract
// symmetry; the keyword signals key off the treatment text.
func (s *RiskScorer) Score(cost float64, diagnosis, treatment string) model.RiskLevel {
	_ = diagnosis
	treatmentLower := strings.ToLower(treatment)

	score := 0
	var factors []string

	if cost > 50000 {
		score += 3
		factors = append(factors, "High-cost claim")
	}
	if containsAny(treatmentLower, "experimental", "investigational") {
		score += 3
		factors = append(factors, "Experimental treatment")
	}
	if cost > 10000 {
		score += 2
		factors = append(factors, "Elevated cost")
	}
	if containsAny(treatmentLower, "elective") {
		score += 2
		factors = append(factors, "Elective procedure")
	}
	if containsAny(treatmentLower, "routine", "preventive") {
		score--
		factors = append(factors, "Routine care")
	}

	level := model.RiskLow
	switch {
	case score >= riskHighThreshold:
		level = model.RiskHigh
	case score >= riskMediumThreshold:
		level = model.RiskMedium
	}

	return model.RiskLevel{
		Level:                level,
		Score:                score,
		Factors:              factors,
		RequiresManualReview: level == model.RiskHigh || level == model.RiskMedium,
	}
}

func containsAny(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
