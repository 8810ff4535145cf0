package policy

import (
	"github.com/pkravets/claimlens/internal/model"
)

// Evaluator composes the matcher, cost evaluator, requirement checker and
// risk scorer into a single policy-compliance report. Every call is a pure
// function of the claim and the rule table.
type Evaluator struct {
	matcher      *Matcher
	costs        *CostEvaluator
	requirements *RequirementChecker
	risk         *RiskScorer
}

// NewEvaluator creates a new compliance evaluator
func NewEvaluator() *Evaluator {
	return &Evaluator{
		matcher:      NewMatcher(),
		costs:        NewCostEvaluator(),
		requirements: NewRequirementChecker(),
		risk:         NewRiskScorer(),
	}
}

// Evaluate produces the complete compliance report for a claim against the
// given rule table.
func (e *Evaluator) Evaluate(claim model.ClaimRecord, table *model.RuleTable) model.ComplianceReport {
	claim = claim.Sanitized()

	coverage := e.matcher.Classify(claim.Diagnosis, claim.Treatment, table)
	cost := e.costs.Evaluate(claim.Cost, table.Limits)
	special := e.requirements.Check(claim.Diagnosis, claim.Treatment, table.Requirements)
	risk := e.risk.Score(claim.Cost, claim.Diagnosis, claim.Treatment)

	return model.ComplianceReport{
		Patient:             claim.Patient,
		CoverageStatus:      coverage,
		CostCompliance:      cost,
		SpecialRequirements: special,
		RiskLevel:           risk,
		ProvisionalDecision: provisionalDecision(coverage, special, risk, claim.Cost),
		ApplicableRules:     e.matcher.ApplicableRules(claim.Diagnosis, claim.Treatment, table),
		BenefitCategory:     e.matcher.BenefitCategory(claim.Treatment, table),
		ComplianceDetails: model.ComplianceDetails{
			DeductibleApplicable:       true,
			CoinsuranceRate:            table.Limits.CoinsuranceRate,
			PriorAuthorizationRequired: special.PriorAuthorization,
		},
	}
}

// provisionalDecision runs the coverage-driven policy state machine. The
// checks encode policy precedence and run in this exact order, first match
// wins: exclusion beats everything, and high risk or high cost overrides a
// weak default approval.
func provisionalDecision(coverage model.CoverageStatus, special model.SpecialRequirements, risk model.RiskLevel, cost float64) model.ProvisionalDecision {
	if coverage.Status == model.StatusExcluded {
		return model.ProvisionalDecision{
			Decision:   model.DecisionDenied,
			Reason:     coverage.Reason,
			Confidence: 0.95,
		}
	}

	if coverage.Status == model.StatusCovered && risk.Level == model.RiskLow && cost < 5000 {
		return model.ProvisionalDecision{
			Decision:   model.DecisionApproved,
			Reason:     "Meets Medicare coverage standards with low risk",
			Confidence: 0.90,
		}
	}

	if coverage.Status == model.StatusConditional {
		if special.Compliant {
			return model.ProvisionalDecision{
				Decision:   model.DecisionApproved,
				Reason:     "Meets conditional coverage requirements",
				Confidence: 0.80,
			}
		}
		return model.ProvisionalDecision{
			Decision:   model.DecisionPending,
			Reason:     "Additional requirements must be met",
			Confidence: 0.60,
		}
	}

	if risk.Level == model.RiskHigh || cost > 25000 {
		return model.ProvisionalDecision{
			Decision:   model.DecisionRequiresReview,
			Reason:     "High-risk or high-cost claim requires manual review",
			Confidence: 0.50,
		}
	}

	return model.ProvisionalDecision{
		Decision:   model.DecisionApproved,
		Reason:     "Meets basic coverage conditions",
		Confidence: 0.75,
	}
}
