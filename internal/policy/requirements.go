package policy

import (
	"fmt"
	"strings"

	"github.com/pkravets/claimlens/internal/model"
)

// RequirementChecker detects special-requirement obligations triggered by
// the treatment text
type RequirementChecker struct{}

// NewRequirementChecker creates a new requirement checker
func NewRequirementChecker() *RequirementChecker {
	return &RequirementChecker{}
}

// Check returns the special-requirement obligations for a claim. Each
// configured phrase is split into words and fires if any single word
// appears in the treatment text. The first two documentation entries are
// always required regardless of treatment.
//
// Compliant defaults to true: the claim is assumed to carry the necessary
// documentation absent evidence otherwise. The diagnosis is accepted for
// contract symmetry but determinations key off the treatment text only.
func (c *RequirementChecker) Check(diagnosis, treatment string, reqs model.Requirements) model.SpecialRequirements {
	_ = diagnosis
	treatmentLower := strings.ToLower(treatment)

	var required []string
	for _, item := range reqs.PriorAuthorization {
		if anyWordIn(item, treatmentLower) {
			required = append(required, fmt.Sprintf("Prior authorization required: %s", item))
		}
	}
	for _, item := range reqs.PhysicianCertification {
		if anyWordIn(item, treatmentLower) {
			required = append(required, fmt.Sprintf("Physician certification required: %s", item))
		}
	}
	for i, item := range reqs.DocumentationRequired {
		if i == 2 {
			break
		}
		required = append(required, fmt.Sprintf("Documentation required: %s", item))
	}

	return model.SpecialRequirements{
		RequiredItems:           required,
		PriorAuthorization:      anyItemContains(required, "prior authorization"),
		PhysicianCertification:  anyItemContains(required, "physician certification"),
		AdditionalDocumentation: anyItemContains(required, "documentation"),
		Compliant:               true,
	}
}

// anyWordIn reports whether any whitespace-separated word of phrase appears
// as a substring of text. text must already be lowercased.
func anyWordIn(phrase, text string) bool {
	for _, word := range strings.Fields(strings.ToLower(phrase)) {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

func anyItemContains(items []string, substr string) bool {
	for _, item := range items {
		if strings.Contains(strings.ToLower(item), substr) {
			return true
		}
	}
	return false
}
