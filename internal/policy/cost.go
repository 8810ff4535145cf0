package policy

import (
	"github.com/shopspring/decimal"

	"github.com/pkravets/claimlens/internal/model"
)

// Cost thresholds that escalate review. Cost never auto-denies a claim:
// Medicare-style policies carry no absolute ceiling, so Compliant stays true.
const (
	highCostThreshold      = 50000
	ultraHighCostThreshold = 100000
)

// CostEvaluator computes the patient/insurer cost split and cost warnings
type CostEvaluator struct{}

// NewCostEvaluator creates a new cost evaluator
func NewCostEvaluator() *CostEvaluator {
	return &CostEvaluator{}
}

// Split returns the exact (unrounded) patient responsibility and insurance
// payment for a claim amount. The patient pays the deductible plus
// coinsurance on the amount above it; the insurer pays the rest, so the two
// always sum to the claim amount exactly.
func (e *CostEvaluator) Split(cost float64, limits model.CostLimits) (patient, insurance decimal.Decimal) {
	total := decimal.NewFromFloat(cost)
	deductible := decimal.NewFromFloat(limits.AnnualDeductible)
	rate := decimal.NewFromFloat(limits.CoinsuranceRate)

	over := total.Sub(deductible)
	if over.IsNegative() {
		over = decimal.Zero
	}

	patient = deductible.Add(over.Mul(rate))
	insurance = total.Sub(patient)
	return patient, insurance
}

// Evaluate computes the cost-compliance block for a claim. Amounts are
// rounded to 2 decimal places for reporting only, after the split.
func (e *CostEvaluator) Evaluate(cost float64, limits model.CostLimits) model.CostCompliance {
	if cost < 0 {
		cost = 0
	}

	patient, insurance := e.Split(cost, limits)

	var warnings []string
	if cost > highCostThreshold {
		warnings = append(warnings, "High-cost claim requiring special review")
	}
	if cost > ultraHighCostThreshold {
		warnings = append(warnings, "Ultra-high-cost claim requiring committee review")
	}

	return model.CostCompliance{
		TotalCost:             cost,
		Deductible:            limits.AnnualDeductible,
		PatientResponsibility: patient.Round(2).InexactFloat64(),
		InsurancePayment:      insurance.Round(2).InexactFloat64(),
		CoinsuranceRate:       limits.CoinsuranceRate,
		Warnings:              warnings,
		Compliant:             true,
	}
}
