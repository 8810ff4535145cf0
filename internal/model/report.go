package model

import "time"

// CoverageStatusCode is the categorical verdict on whether a service is payable
type CoverageStatusCode string

const (
	StatusCovered        CoverageStatusCode = "COVERED"
	StatusConditional    CoverageStatusCode = "CONDITIONAL"
	StatusExcluded       CoverageStatusCode = "EXCLUDED"
	StatusRequiresReview CoverageStatusCode = "REQUIRES_REVIEW"
)

// CoverageStatus is the outcome of matching a claim against the rule table
type CoverageStatus struct {
	Status CoverageStatusCode `json:"status"`
	Source string             `json:"source"` // Determination that decided the status
	Title  string             `json:"title"`
	Reason string             `json:"reason"`
}

// CostCompliance is the cost split and cost-driven warnings for a claim.
// Compliant is always true in the current policy model: cost escalates
// review but never disqualifies a claim outright.
type CostCompliance struct {
	TotalCost             float64  `json:"total_cost"`
	Deductible            float64  `json:"deductible"`
	PatientResponsibility float64  `json:"patient_responsibility"`
	InsurancePayment      float64  `json:"insurance_payment"`
	CoinsuranceRate       float64  `json:"coinsurance_rate"`
	Warnings              []string `json:"warnings"`
	Compliant             bool     `json:"compliant"`
}

// SpecialRequirements lists the obligations triggered by the treatment text.
// Compliant defaults to true: the claim is assumed to carry the necessary
// documentation absent evidence otherwise.
type SpecialRequirements struct {
	RequiredItems           []string `json:"required_items"`
	PriorAuthorization      bool     `json:"prior_authorization"`
	PhysicianCertification  bool     `json:"physician_certification"`
	AdditionalDocumentation bool     `json:"additional_documentation"`
	Compliant               bool     `json:"compliant"`
}

// RiskLevelCode buckets the raw risk score
type RiskLevelCode string

const (
	RiskLow    RiskLevelCode = "LOW"
	RiskMedium RiskLevelCode = "MEDIUM"
	RiskHigh   RiskLevelCode = "HIGH"
)

// RiskLevel is the multi-factor risk assessment for a claim. Score is the
// raw signed sum of signal weights; it is not clamped and can go negative.
type RiskLevel struct {
	Level                RiskLevelCode `json:"level"`
	Score                int           `json:"score"`
	Factors              []string      `json:"factors"`
	RequiresManualReview bool          `json:"requires_manual_review"`
}

// DecisionCode is a bounded adjudication outcome
type DecisionCode string

const (
	DecisionApproved       DecisionCode = "APPROVED"
	DecisionDenied         DecisionCode = "DENIED"
	DecisionRequiresReview DecisionCode = "REQUIRES_REVIEW"
	DecisionPending        DecisionCode = "PENDING" // Provisional only, never final
)

// ProvisionalDecision is the compliance stage's own coverage-driven
// recommendation. The decision engine consumes it and may override it.
type ProvisionalDecision struct {
	Decision   DecisionCode `json:"decision"`
	Reason     string       `json:"reason"`
	Confidence float64      `json:"confidence"`
}

// RuleRef references a determination that applies to a claim
type RuleRef struct {
	Source   string       `json:"source"`
	Title    string       `json:"title"`
	Category RuleCategory `json:"category"`
}

// ComplianceDetails carries secondary policy facts for reporting
type ComplianceDetails struct {
	DeductibleApplicable       bool    `json:"deductible_applicable"`
	CoinsuranceRate            float64 `json:"coinsurance_rate"`
	PriorAuthorizationRequired bool    `json:"prior_authorization_required"`
}

// ComplianceReport is the full policy-compliance evaluation for one claim.
// It is immutable once produced.
type ComplianceReport struct {
	Patient             string              `json:"patient"`
	CoverageStatus      CoverageStatus      `json:"coverage_status"`
	CostCompliance      CostCompliance      `json:"cost_compliance"`
	SpecialRequirements SpecialRequirements `json:"special_requirements"`
	RiskLevel           RiskLevel           `json:"risk_level"`
	ProvisionalDecision ProvisionalDecision `json:"provisional_decision"`
	ApplicableRules     []RuleRef           `json:"applicable_rules"`
	BenefitCategory     string              `json:"benefit_category"`
	ComplianceDetails   ComplianceDetails   `json:"compliance_details"`
}

// FinancialImpact is the money breakdown attached to a final decision
type FinancialImpact struct {
	TotalClaimAmount      float64 `json:"total_claim_amount"`
	ApprovedAmount        float64 `json:"approved_amount"`
	PatientResponsibility float64 `json:"patient_responsibility"`
	InsurancePayment      float64 `json:"insurance_payment"`
}

// FinalDecision is the adjudication output for one claim, constructed once
// from a ComplianceReport and never mutated afterwards.
type FinalDecision struct {
	Decision        DecisionCode    `json:"decision"`
	DecisionScore   float64         `json:"decision_score"` // Weighted composite in [0,1]
	Confidence      float64         `json:"confidence"`     // [0,1]
	Reason          string          `json:"reason"`
	Recommendations []string        `json:"recommendations"`
	FinancialImpact FinancialImpact `json:"financial_impact"`
}

// Report bundles everything produced for a single claim
type Report struct {
	Claim            ClaimRecord      `json:"claim"`
	Compliance       ComplianceReport `json:"compliance"`
	Decision         FinalDecision    `json:"decision"`
	RulesFingerprint string           `json:"rules_fingerprint,omitempty"`
	EvaluatedAt      time.Time        `json:"evaluated_at"`
}
