package rules

import "github.com/pkravets/claimlens/internal/model"

// DefaultTable returns the built-in coverage-rule table, a distilled set of
// NCD/LCD-style determinations with 2024 Part B cost-sharing parameters.
// It is used when no rule file is configured, and it is what `rules init`
// writes out as a starting point.
//
// Keyword lists are deliberately specific: matching is disjunctive (a rule
// fires when either axis hits), so a broad keyword like "surgery" in a
// covered rule would swallow claims that belong to exclusions scanned later.
func DefaultTable() *model.RuleTable {
	return &model.RuleTable{
		Covered: []model.CoverageRule{
			{
				Source:     "NCD_80.10",
				Title:      "Phacoemulsification for Cataract Extraction",
				Conditions: []string{"cataract"},
				Procedures: []string{"phaco", "lens extraction", "intraocular lens"},
				Notes:      "Covered when performed for lens opacity impairing vision",
			},
			{
				Source:     "NCD_20.8",
				Title:      "Cardiac Pacemakers",
				Conditions: []string{"arrhythmia", "bradycardia", "heart block"},
				Procedures: []string{"pacemaker"},
				Notes:      "Single and dual chamber implantation",
			},
			{
				Source:     "NCD_130.1",
				Title:      "Dialysis for End-Stage Renal Disease",
				Conditions: []string{"end-stage renal", "renal disease", "kidney failure"},
				Procedures: []string{"dialysis", "hemodialysis"},
			},
			{
				Source:     "NCD_210.3",
				Title:      "Screening and Preventive Services",
				Conditions: []string{"annual checkup", "screening"},
				Procedures: []string{"preventive care", "routine consultation"},
			},
			{
				Source:     "HCPCS_DME",
				Title:      "Durable Medical Equipment",
				Conditions: []string{"chronic illness", "disability"},
				Procedures: []string{"wheelchair", "hospital bed", "glucose monitoring"},
				Notes:      "Medically necessary equipment for home use",
			},
			{
				Source:     "HCPCS_DRUGS",
				Title:      "Injectable Drugs and Biologicals",
				Conditions: []string{"various medical conditions"},
				Procedures: []string{"injection", "infusion"},
				Notes:      "FDA-approved injectable medications",
			},
		},
		Conditional: []model.CoverageRule{
			{
				Source:     "LCD_L34049",
				Title:      "Outpatient Therapy Services",
				Conditions: []string{"back pain", "sprain", "post-surgical recovery"},
				Procedures: []string{"physical therapy", "occupational therapy", "speech therapy"},
				Notes:      "Subject to annual visit limits and plan-of-care certification",
			},
			{
				Source:     "NCD_310.1",
				Title:      "Routine Costs in Clinical Trials",
				Conditions: []string{"experimental condition"},
				Procedures: []string{"experimental", "investigational"},
				Notes:      "Covered only within a qualifying clinical trial",
			},
			{
				Source:     "NCD_240.2",
				Title:      "Home Use of Oxygen",
				Conditions: []string{"hypoxemia", "copd", "respiratory failure"},
				Procedures: []string{"oxygen therapy", "cpap"},
			},
			{
				Source:     "LCD_L35490",
				Title:      "Chronic Pain Management Programs",
				Conditions: []string{"chronic pain"},
				Procedures: []string{"pain management"},
			},
		},
		Excluded: []model.CoverageRule{
			{
				Source:     "EXCL_1862a10",
				Title:      "Cosmetic Surgery and Procedures",
				Conditions: []string{"aesthetic", "cosmetic concerns"},
				Procedures: []string{"cosmetic"},
				Notes:      "Statutory exclusion; reconstructive repair after injury is separate",
			},
			{
				Source:     "EXCL_ALTMED",
				Title:      "Alternative and Wellness Services",
				Conditions: []string{"lifestyle issues"},
				Procedures: []string{"acupuncture", "homeopathy", "wellness program"},
			},
			{
				Source:     "EXCL_DENTAL",
				Title:      "Cosmetic Dentistry",
				Conditions: []string{"dental aesthetics"},
				Procedures: []string{"cosmetic dentistry", "teeth whitening"},
			},
		},
		Limits: model.CostLimits{
			AnnualDeductible: 1600,
			CoinsuranceRate:  0.20,
		},
		Requirements: model.Requirements{
			PriorAuthorization: []string{
				"expensive imaging (>$1000)",
				"experimental procedures",
				"cosmetic surgery",
				"certain durable medical equipment",
			},
			PhysicianCertification: []string{
				"home health services",
				"hospice care",
				"skilled nursing facility",
				"durable medical equipment",
			},
			DocumentationRequired: []string{
				"medical necessity justification",
				"treatment plan",
				"progress notes",
				"diagnostic reports",
			},
		},
		RiskKeywords: model.RiskKeywords{
			High:   []string{"cancer", "surgery", "emergency", "icu", "intensive", "transplant"},
			Medium: []string{"chronic", "therapy", "rehabilitation", "specialist"},
			Low:    []string{"routine", "preventive"},
		},
		BenefitCategories: []model.BenefitCategory{
			{Name: "Inpatient Hospital Services", Keywords: []string{"surgery", "surgical"}},
			{Name: "Outpatient Physical Therapy Services", Keywords: []string{"therapy", "rehabilitation", "treatment"}},
			{Name: "Diagnostic X-Ray Tests", Keywords: []string{"imaging", "x-ray", "ct", "mri"}},
			{Name: "Drugs and Biologicals", Keywords: []string{"drug", "medication", "injection"}},
			{Name: "Durable Medical Equipment", Keywords: []string{"device", "equipment"}},
		},
	}
}

// DefaultBenefitCategory is assigned when no category keyword matches.
const DefaultBenefitCategory = "Physicians' Services"
