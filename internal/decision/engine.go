package decision

import (
	"fmt"
	"strings"

	"github.com/pkravets/claimlens/internal/model"
)

// Sub-score weights for the composite decision score. They sum to 1.0 so a
// fully favorable report scores exactly 1.0 before clamping.
const (
	weightCoverage     = 0.40
	weightRisk         = 0.25
	weightCost         = 0.20
	weightRequirements = 0.15
)

// Composite-score decision thresholds
const (
	approveThreshold = 0.80
	reviewThreshold  = 0.50
)

// coverageScores maps the coverage status to its sub-score. Statuses not in
// the table (including the zero value of a partial report) score as unknown.
var coverageScores = map[model.CoverageStatusCode]float64{
	model.StatusCovered:        1.0,
	model.StatusConditional:    0.7,
	model.StatusRequiresReview: 0.5,
	model.StatusExcluded:       0.0,
}

const unknownCoverageScore = 0.3

// riskScores maps the risk level to its sub-score. An unrecognized level
// scores as medium risk.
var riskScores = map[model.RiskLevelCode]float64{
	model.RiskLow:    1.0,
	model.RiskMedium: 0.6,
	model.RiskHigh:   0.2,
}

const unknownRiskScore = 0.6

// Engine turns a compliance report into the final decision. It never fails
// on partial input: missing nested fields read as zero values and resolve
// to the most conservative applicable branch.
type Engine struct{}

// NewEngine creates a new decision engine
func NewEngine() *Engine {
	return &Engine{}
}

// Decide computes the weighted composite score, applies the decision
// overrides and thresholds, and assembles the final decision.
func (e *Engine) Decide(claim model.ClaimRecord, report model.ComplianceReport) model.FinalDecision {
	claim = claim.Sanitized()

	composite := clamp01(weightCoverage*coverageScore(report.CoverageStatus) +
		weightRisk*riskScore(report.RiskLevel) +
		weightCost*costScore(report.CostCompliance) +
		weightRequirements*requirementsScore(report.SpecialRequirements))

	decision := resolveDecision(report, composite)

	return model.FinalDecision{
		Decision:        decision,
		DecisionScore:   composite,
		Confidence:      confidence(report, composite),
		Reason:          buildReason(report, composite),
		Recommendations: recommendations(report, decision),
		FinancialImpact: financialImpact(claim, report, decision),
	}
}

// resolveDecision applies the override rules before thresholding the
// composite: a provisional denial is terminal, and a manual-review flag
// forces review even when the composite clears the approval bar.
func resolveDecision(report model.ComplianceReport, composite float64) model.DecisionCode {
	if report.ProvisionalDecision.Decision == model.DecisionDenied {
		return model.DecisionDenied
	}
	if report.RiskLevel.RequiresManualReview {
		return model.DecisionRequiresReview
	}

	switch {
	case composite >= approveThreshold:
		return model.DecisionApproved
	case composite >= reviewThreshold:
		return model.DecisionRequiresReview
	default:
		return model.DecisionDenied
	}
}

func coverageScore(status model.CoverageStatus) float64 {
	if score, ok := coverageScores[status.Status]; ok {
		return score
	}
	return unknownCoverageScore
}

func riskScore(risk model.RiskLevel) float64 {
	if score, ok := riskScores[risk.Level]; ok {
		return score
	}
	return unknownRiskScore
}

func costScore(cost model.CostCompliance) float64 {
	switch {
	case !cost.Compliant:
		return 0.0
	case len(cost.Warnings) >= 2:
		return 0.3
	case len(cost.Warnings) == 1:
		return 0.7
	default:
		return 1.0
	}
}

func requirementsScore(special model.SpecialRequirements) float64 {
	switch {
	case !special.Compliant:
		return 0.0
	case len(special.RequiredItems) > 3:
		return 0.5
	case len(special.RequiredItems) >= 1:
		return 0.8
	default:
		return 1.0
	}
}

// confidence starts from the composite and gets boosted by decisive
// evidence: a definitive coverage determination (+0.10) and a clear-cut
// risk signal (+0.05).
func confidence(report model.ComplianceReport, composite float64) float64 {
	c := composite
	if report.CoverageStatus.Status == model.StatusCovered || report.CoverageStatus.Status == model.StatusExcluded {
		c += 0.10
	}
	if report.RiskLevel.Level == model.RiskLow || report.RiskLevel.Level == model.RiskHigh {
		c += 0.05
	}
	return clamp01(c)
}

// buildReason concatenates, in fixed order: the coverage explanation, up to
// two risk factors, the first cost warning, and the composite score.
func buildReason(report model.ComplianceReport, composite float64) string {
	parts := []string{}

	if report.CoverageStatus.Reason != "" {
		parts = append(parts, report.CoverageStatus.Reason)
	}

	factors := report.RiskLevel.Factors
	if len(factors) > 2 {
		factors = factors[:2]
	}
	if len(factors) > 0 {
		parts = append(parts, fmt.Sprintf("Risk factors: %s", strings.Join(factors, ", ")))
	}

	if len(report.CostCompliance.Warnings) > 0 {
		parts = append(parts, report.CostCompliance.Warnings[0])
	}

	parts = append(parts, fmt.Sprintf("Composite score: %.2f", composite))

	return strings.Join(parts, "; ")
}

// recommendations returns the decision-specific base recommendation plus
// conditional add-ons from the report.
func recommendations(report model.ComplianceReport, decision model.DecisionCode) []string {
	var recs []string

	switch decision {
	case model.DecisionApproved:
		recs = append(recs, "Process payment according to coverage terms")
	case model.DecisionDenied:
		recs = append(recs, "Notify provider of denial and appeal rights")
	default:
		recs = append(recs, "Route claim to a medical reviewer")
	}

	if report.SpecialRequirements.PriorAuthorization {
		recs = append(recs, "Verify prior authorization is on file")
	}
	if report.SpecialRequirements.PhysicianCertification {
		recs = append(recs, "Request physician certification")
	}
	if report.RiskLevel.Level == model.RiskHigh {
		recs = append(recs, "Escalate to review committee")
	}

	return recs
}

// financialImpact reports the policy cost split. The approved amount is the
// insurance payment for approved claims and zero otherwise: nothing is
// payable on a denial, and a claim under review has no approved amount yet.
func financialImpact(claim model.ClaimRecord, report model.ComplianceReport, decision model.DecisionCode) model.FinancialImpact {
	approved := 0.0
	if decision == model.DecisionApproved {
		approved = report.CostCompliance.InsurancePayment
	}

	return model.FinancialImpact{
		TotalClaimAmount:      claim.Cost,
		ApprovedAmount:        approved,
		PatientResponsibility: report.CostCompliance.PatientResponsibility,
		InsurancePayment:      report.CostCompliance.InsurancePayment,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
