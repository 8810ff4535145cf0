package policy

import (
	"math"
	"testing"

	"github.com/pkravets/claimlens/internal/model"
)

var testLimits = model.CostLimits{AnnualDeductible: 1600, CoinsuranceRate: 0.20}

func TestCostEvaluator_Evaluate_StandardSplit(t *testing.T) {
	evaluator := NewCostEvaluator()

	// 3500: patient pays 1600 deductible + 20% of 1900 = 1980
	result := evaluator.Evaluate(3500, testLimits)

	if result.PatientResponsibility != 1980 {
		t.Errorf("Expected patient responsibility 1980, got %v", result.PatientResponsibility)
	}
	if result.InsurancePayment != 1520 {
		t.Errorf("Expected insurance payment 1520, got %v", result.InsurancePayment)
	}
	if !result.Compliant {
		t.Error("Expected compliant to be true")
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", result.Warnings)
	}
}

func TestCostEvaluator_Evaluate_SplitSumsToTotal(t *testing.T) {
	evaluator := NewCostEvaluator()

	costs := []float64{0, 100, 1600, 1600.01, 3500, 12345.67, 89500.50, 250000}
	for _, cost := range costs {
		result := evaluator.Evaluate(cost, testLimits)
		sum := result.PatientResponsibility + result.InsurancePayment
		if math.Abs(sum-cost) > 0.011 {
			t.Errorf("Cost %v: split sums to %v", cost, sum)
		}
	}
}

func TestCostEvaluator_Split_Exact(t *testing.T) {
	evaluator := NewCostEvaluator()

	// The unrounded split must sum to the total exactly, with no float
	// drift: this is what decimal arithmetic buys.
	patient, insurance := evaluator.Split(89500.50, testLimits)

	if !patient.Add(insurance).Equal(patient.Add(insurance).Round(2)) {
		t.Error("Expected exact decimal split")
	}
	if got := patient.InexactFloat64(); got != 19180.10 {
		t.Errorf("Expected patient responsibility 19180.10, got %v", got)
	}
}

func TestCostEvaluator_Evaluate_HighCostWarning(t *testing.T) {
	evaluator := NewCostEvaluator()

	result := evaluator.Evaluate(60000, testLimits)

	if len(result.Warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d", len(result.Warnings))
	}
	if result.Warnings[0] != "High-cost claim requiring special review" {
		t.Errorf("Unexpected warning: %s", result.Warnings[0])
	}
	if !result.Compliant {
		t.Error("A cost warning must not flip compliant to false")
	}
}

func TestCostEvaluator_Evaluate_BothWarningsCoFire(t *testing.T) {
	evaluator := NewCostEvaluator()

	result := evaluator.Evaluate(150000, testLimits)

	if len(result.Warnings) != 2 {
		t.Fatalf("Expected both warnings above 100000, got %d", len(result.Warnings))
	}
	if result.Warnings[1] != "Ultra-high-cost claim requiring committee review" {
		t.Errorf("Unexpected second warning: %s", result.Warnings[1])
	}
}

func TestCostEvaluator_Evaluate_ThresholdsAreExclusive(t *testing.T) {
	evaluator := NewCostEvaluator()

	// Exactly at a threshold does not fire the warning.
	if got := evaluator.Evaluate(50000, testLimits); len(got.Warnings) != 0 {
		t.Errorf("Expected no warning at exactly 50000, got %v", got.Warnings)
	}
	if got := evaluator.Evaluate(100000, testLimits); len(got.Warnings) != 1 {
		t.Errorf("Expected only the high-cost warning at exactly 100000, got %v", got.Warnings)
	}
}

func TestCostEvaluator_Evaluate_RoundsForReportingOnly(t *testing.T) {
	evaluator := NewCostEvaluator()

	// 2000.555: patient = 1600 + 400.555*0.2 = 1680.111 -> 1680.11
	result := evaluator.Evaluate(2000.555, testLimits)

	if result.PatientResponsibility != 1680.11 {
		t.Errorf("Expected 1680.11, got %v", result.PatientResponsibility)
	}
}

func TestCostEvaluator_Evaluate_NegativeCostCoerced(t *testing.T) {
	evaluator := NewCostEvaluator()

	result := evaluator.Evaluate(-500, testLimits)

	if result.TotalCost != 0 {
		t.Errorf("Expected negative cost coerced to 0, got %v", result.TotalCost)
	}
}

func TestCostEvaluator_Evaluate_BelowDeductible(t *testing.T) {
	evaluator := NewCostEvaluator()

	// Below the deductible the patient still owes the full deductible;
	// the coinsurance term is floored at zero, not the balance.
	result := evaluator.Evaluate(1000, testLimits)

	if result.PatientResponsibility != 1600 {
		t.Errorf("Expected patient responsibility 1600, got %v", result.PatientResponsibility)
	}
	if result.InsurancePayment != -600 {
		t.Errorf("Expected insurance payment -600, got %v", result.InsurancePayment)
	}
}
