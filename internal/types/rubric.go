package types

import "fmt"

// ScoreRubricInput represents the input for scoring one resume against the
// fixed rubric. No job description is involved; the rubric is baked into the
// instruction.
type ScoreRubricInput struct {
	ResumeText string `json:"resumeText"`
}

// RubricCriterion describes one weighted criterion of the fixed rubric.
type RubricCriterion struct {
	Field       string // JSON field name in the model response
	Column      string // report/template column header
	Description string // criterion wording passed into the instruction
	Max         int    // maximum points for this criterion
}

// MaxRubricScore is the sum of all criterion maxima.
const MaxRubricScore = 100

// RubricCriteria declares the fixed rubric: 14 named criteria whose maxima sum
// to 100. The table drives the response schema, validation, the prompt text
// and the report columns, so they cannot drift apart.
var RubricCriteria = []RubricCriterion{
	{
		Field:       "legal_ops_experience",
		Column:      "Core Experience: 6–10 years in Legal Ops / IP / Startup-facing roles",
		Description: "6-10 years in Legal Ops / IP / Startup-facing roles",
		Max:         10,
	},
	{
		Field:       "patent_filing_experience",
		Column:      "Core Experience: Patent filing coordination (India, PCT, USPTO, EPO)",
		Description: "Patent filing coordination (India, PCT, USPTO, EPO)",
		Max:         10,
	},
	{
		Field:       "contract_drafting_experience",
		Column:      "Core Experience: Drafting & enforcing contracts (NDAs, MSAs, investor agreements)",
		Description: "Drafting and enforcing contracts (NDAs, MSAs, investor agreements)",
		Max:         10,
	},
	{
		Field:       "patent_law_knowledge",
		Column:      "Specialized Knowledge: Indian + International Patent Law & PCT process",
		Description: "Indian and international patent law and the PCT process",
		Max:         10,
	},
	{
		Field:       "fundraising_knowledge",
		Column:      "Specialized Knowledge: Fundraising legalities (SAFE/convertible notes, investor term sheets)",
		Description: "Fundraising legalities (SAFE/convertible notes, investor term sheets)",
		Max:         10,
	},
	{
		Field:       "legal_drafting_skills",
		Column:      "Skills: Legal drafting, research & litigation support",
		Description: "Legal drafting, research and litigation support",
		Max:         10,
	},
	{
		Field:       "organizational_skills",
		Column:      "Skills: Organizational & multitasking (repositories, audit-ready records, multiple priorities)",
		Description: "Organizational and multitasking skills (repositories, audit-ready records, multiple priorities)",
		Max:         10,
	},
	{
		Field:       "founder_proximity_fit",
		Column:      "Cultural Fit: Worked closely with Founders / CXOs",
		Description: "Worked closely with founders / CXOs",
		Max:         5,
	},
	{
		Field:       "confidentiality_fit",
		Column:      "Cultural Fit: Confidentiality, accuracy, maturity",
		Description: "Confidentiality, accuracy, maturity",
		Max:         5,
	},
	{
		Field:       "risk_speed_balance_fit",
		Column:      "Cultural Fit: Balancing risk governance with innovation speed",
		Description: "Balancing risk governance with innovation speed",
		Max:         5,
	},
	{
		Field:       "legal_education",
		Column:      "Education: LLB/LLM or paralegal/legal qualification",
		Description: "LLB/LLM or paralegal/legal qualification",
		Max:         5,
	},
	{
		Field:       "certifications",
		Column:      "Education: Certifications, memberships, publications in IP/Patent Law",
		Description: "Certifications, memberships, publications in IP/Patent Law",
		Max:         5,
	},
	{
		Field:       "vc_exposure_bonus",
		Column:      "Bonus: Prior work with VC/PE portfolio companies / tech startups",
		Description: "Prior work with VC/PE portfolio companies / tech startups",
		Max:         3,
	},
	{
		Field:       "international_exposure_bonus",
		Column:      "Bonus: International exposure (cross-border filings, global counsel coordination)",
		Description: "International exposure (cross-border filings, global counsel coordination)",
		Max:         2,
	},
}

// RubricEvaluation is the validated result of one fixed-rubric evaluation.
// Field order matches RubricCriteria.
type RubricEvaluation struct {
	CandidateName              string `json:"candidate_name"`
	LegalOpsExperience         int    `json:"legal_ops_experience"`          // 0-10
	PatentFilingExperience     int    `json:"patent_filing_experience"`      // 0-10
	ContractDraftingExperience int    `json:"contract_drafting_experience"`  // 0-10
	PatentLawKnowledge         int    `json:"patent_law_knowledge"`          // 0-10
	FundraisingKnowledge       int    `json:"fundraising_knowledge"`         // 0-10
	LegalDraftingSkills        int    `json:"legal_drafting_skills"`         // 0-10
	OrganizationalSkills       int    `json:"organizational_skills"`         // 0-10
	FounderProximityFit        int    `json:"founder_proximity_fit"`         // 0-5
	ConfidentialityFit         int    `json:"confidentiality_fit"`           // 0-5
	RiskSpeedBalanceFit        int    `json:"risk_speed_balance_fit"`        // 0-5
	LegalEducation             int    `json:"legal_education"`               // 0-5
	Certifications             int    `json:"certifications"`                // 0-5
	VCExposureBonus            int    `json:"vc_exposure_bonus"`             // 0-3
	InternationalExposureBonus int    `json:"international_exposure_bonus"`  // 0-2
	TotalScore                 int    `json:"total_score"`                   // 0-100
	Recommendation             string `json:"recommendation"`
	Justification              string `json:"justification"`
}

// CriterionScores returns the per-criterion scores in RubricCriteria order.
func (r RubricEvaluation) CriterionScores() []int {
	return []int{
		r.LegalOpsExperience,
		r.PatentFilingExperience,
		r.ContractDraftingExperience,
		r.PatentLawKnowledge,
		r.FundraisingKnowledge,
		r.LegalDraftingSkills,
		r.OrganizationalSkills,
		r.FounderProximityFit,
		r.ConfidentialityFit,
		r.RiskSpeedBalanceFit,
		r.LegalEducation,
		r.Certifications,
		r.VCExposureBonus,
		r.InternationalExposureBonus,
	}
}

// Sum recomputes the total from the per-criterion scores.
func (r RubricEvaluation) Sum() int {
	total := 0
	for _, s := range r.CriterionScores() {
		total += s
	}
	return total
}

// Validate rejects any criterion score outside its declared [0, max] bound.
// Violations are errors, never clamped.
func (r RubricEvaluation) Validate() error {
	scores := r.CriterionScores()
	for i, c := range RubricCriteria {
		if scores[i] < 0 || scores[i] > c.Max {
			return fmt.Errorf("%s score %d outside [0, %d]", c.Field, scores[i], c.Max)
		}
	}
	if r.TotalScore < 0 || r.TotalScore > MaxRubricScore {
		return fmt.Errorf("total_score %d outside [0, %d]", r.TotalScore, MaxRubricScore)
	}
	return nil
}

// Normalize recomputes the total from the criterion sum and derives the
// recommendation tier from it. The model reports its own total, but nothing
// guarantees internal consistency, so the sum is authoritative. The return
// value reports whether the model's total disagreed with the sum.
func (r *RubricEvaluation) Normalize() bool {
	if r.CandidateName == "" {
		r.CandidateName = NotProvided
	}
	sum := r.Sum()
	mismatch := r.TotalScore != sum
	r.TotalScore = sum
	r.Recommendation = RubricRecommendation(r.TotalScore)
	return mismatch
}
