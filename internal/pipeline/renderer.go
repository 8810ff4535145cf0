package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pkravets/claimlens/internal/model"
)

// Renderer writes adjudication reports as JSON, Markdown, and a stdout summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Claim Adjudication Report\n\n")
	fmt.Fprintf(&b, "- **Patient:** %s\n", report.Claim.Patient)
	fmt.Fprintf(&b, "- **Diagnosis:** %s\n", report.Claim.Diagnosis)
	fmt.Fprintf(&b, "- **Treatment:** %s\n", report.Claim.Treatment)
	fmt.Fprintf(&b, "- **Claimed amount:** $%.2f\n", report.Claim.Cost)
	fmt.Fprintf(&b, "- **Evaluated:** %s\n\n", report.EvaluatedAt.Format("2006-01-02 15:04:05 UTC"))

	fmt.Fprintf(&b, "## Decision\n\n")
	fmt.Fprintf(&b, "**%s** (score %.2f, confidence %.2f)\n\n", report.Decision.Decision, report.Decision.DecisionScore, report.Decision.Confidence)
	fmt.Fprintf(&b, "%s\n\n", report.Decision.Reason)

	fmt.Fprintf(&b, "## Coverage\n\n")
	fmt.Fprintf(&b, "- Status: %s (%s)\n", report.Compliance.CoverageStatus.Status, report.Compliance.CoverageStatus.Source)
	fmt.Fprintf(&b, "- Benefit category: %s\n", report.Compliance.BenefitCategory)
	if len(report.Compliance.ApplicableRules) > 0 {
		fmt.Fprintf(&b, "- Applicable determinations:\n")
		for _, ref := range report.Compliance.ApplicableRules {
			fmt.Fprintf(&b, "  - %s: %s (%s)\n", ref.Source, ref.Title, ref.Category)
		}
	}
	fmt.Fprintf(&b, "\n")

	fmt.Fprintf(&b, "## Risk\n\n")
	fmt.Fprintf(&b, "- Level: %s (score %d)\n", report.Compliance.RiskLevel.Level, report.Compliance.RiskLevel.Score)
	for _, factor := range report.Compliance.RiskLevel.Factors {
		fmt.Fprintf(&b, "- %s\n", factor)
	}
	fmt.Fprintf(&b, "\n")

	fmt.Fprintf(&b, "## Financials\n\n")
	fi := report.Decision.FinancialImpact
	fmt.Fprintf(&b, "| Total claim | Approved | Patient responsibility | Insurance payment |\n")
	fmt.Fprintf(&b, "|---|---|---|---|\n")
	fmt.Fprintf(&b, "| $%.2f | $%.2f | $%.2f | $%.2f |\n\n", fi.TotalClaimAmount, fi.ApprovedAmount, fi.PatientResponsibility, fi.InsurancePayment)

	if len(report.Compliance.SpecialRequirements.RequiredItems) > 0 {
		fmt.Fprintf(&b, "## Special Requirements\n\n")
		for _, item := range report.Compliance.SpecialRequirements.RequiredItems {
			fmt.Fprintf(&b, "- %s\n", item)
		}
		fmt.Fprintf(&b, "\n")
	}

	if len(report.Decision.Recommendations) > 0 {
		fmt.Fprintf(&b, "## Recommendations\n\n")
		for _, rec := range report.Decision.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
		fmt.Fprintf(&b, "\n")
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "---\n")
		fmt.Fprintf(&b, "Generated by Claimlens (rules %s). Decisions are rule-driven and reproducible; this report is decision support, not medical or legal advice.\n", report.RulesFingerprint)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// RenderSummary prints the key outcome to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("Decision:   %s\n", report.Decision.Decision)
	fmt.Printf("Score:      %.2f\n", report.Decision.DecisionScore)
	fmt.Printf("Confidence: %.2f\n", report.Decision.Confidence)
	fmt.Printf("Coverage:   %s (%s)\n", report.Compliance.CoverageStatus.Status, report.Compliance.CoverageStatus.Source)
	fmt.Printf("Risk:       %s (score %d)\n", report.Compliance.RiskLevel.Level, report.Compliance.RiskLevel.Score)
	fmt.Printf("Reason:     %s\n", report.Decision.Reason)
	fi := report.Decision.FinancialImpact
	fmt.Printf("Financials: total $%.2f, approved $%.2f, patient $%.2f, insurer $%.2f\n",
		fi.TotalClaimAmount, fi.ApprovedAmount, fi.PatientResponsibility, fi.InsurancePayment)
	for _, rec := range report.Decision.Recommendations {
		fmt.Printf("  - %s\n", rec)
	}
}
