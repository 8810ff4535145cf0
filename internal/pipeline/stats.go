package pipeline

import (
	"fmt"
	"io"

	"github.com/pkravets/claimlens/internal/model"
)

// Minutes of reviewer time a manual audit takes on average. Used only for
// the batch summary's time-saved estimate.
const manualReviewMinutes = 30

// BatchStats aggregates adjudication outcomes across a batch run
type BatchStats struct {
	TotalClaims    int     `json:"total_claims"`
	Approved       int     `json:"approved"`
	Denied         int     `json:"denied"`
	RequiresReview int     `json:"requires_review"`
	Failed         int     `json:"failed"`
	TotalAmount    float64 `json:"total_amount"`
	ApprovedAmount float64 `json:"approved_amount"`
}

// Collect builds batch statistics from a set of reports. failed counts
// inputs that produced no report at all (unreadable files, cancelled
// context); adjudication itself never fails.
func Collect(reports []*model.Report, failed int) BatchStats {
	stats := BatchStats{
		TotalClaims: len(reports) + failed,
		Failed:      failed,
	}

	for _, report := range reports {
		stats.TotalAmount += report.Claim.Cost
		switch report.Decision.Decision {
		case model.DecisionApproved:
			stats.Approved++
			stats.ApprovedAmount += report.Claim.Cost
		case model.DecisionDenied:
			stats.Denied++
		default:
			stats.RequiresReview++
		}
	}

	return stats
}

// AutoApprovalRate returns the share of claims approved without review
func (s BatchStats) AutoApprovalRate() float64 {
	if s.TotalClaims == 0 {
		return 0
	}
	return float64(s.Approved) / float64(s.TotalClaims) * 100
}

// ReviewMinutesSaved estimates reviewer time saved by auto-decided claims
func (s BatchStats) ReviewMinutesSaved() int {
	return (s.Approved + s.Denied) * manualReviewMinutes
}

// Render writes the batch summary in the demo-report format
func (s BatchStats) Render(w io.Writer) {
	manual := s.RequiresReview
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Batch Adjudication Summary\n")
	fmt.Fprintf(w, "==========================\n")
	fmt.Fprintf(w, "Total claims:        %d\n", s.TotalClaims)
	fmt.Fprintf(w, "Approved:            %d (%.1f%%)\n", s.Approved, s.AutoApprovalRate())
	fmt.Fprintf(w, "Denied:              %d\n", s.Denied)
	fmt.Fprintf(w, "Requires review:     %d\n", manual)
	if s.Failed > 0 {
		fmt.Fprintf(w, "Failed to process:   %d\n", s.Failed)
	}
	fmt.Fprintf(w, "Total amount:        $%.2f\n", s.TotalAmount)
	fmt.Fprintf(w, "Approved amount:     $%.2f\n", s.ApprovedAmount)
	fmt.Fprintf(w, "Review time saved:   %d minutes (est.)\n", s.ReviewMinutesSaved())
}
