package types

import "fmt"

// NotProvided is the sentinel used for identity fields the model could not
// find in the resume text. Report cells never carry an empty string for these.
const NotProvided = "Not Provided"

// MaxSubScore bounds the experience and skills scores in generic mode.
const MaxSubScore = 10

// Recommendation tiers for generic mode, chosen by the sum of the experience
// and skills scores (0-20).
const (
	TierStronglyRecommended = "Strongly Recommended"
	TierRecommended         = "Recommended"
	TierConsider            = "Consider"
	TierNotSuitable         = "Not Suitable"
)

// Recommendation tiers for fixed-rubric mode, chosen by the total score (0-100).
const (
	RubricTierStronglyRecommended = "Strongly Recommended for Interview"
	RubricTierRecommended         = "Recommended for Interview"
	RubricTierConsider            = "Consider with Caution"
	RubricTierNotSuitable         = "Not Suitable"
)

// SimpleTiers lists the generic-mode tiers from best to worst.
var SimpleTiers = []string{TierStronglyRecommended, TierRecommended, TierConsider, TierNotSuitable}

// RubricTiers lists the rubric-mode tiers from best to worst.
var RubricTiers = []string{RubricTierStronglyRecommended, RubricTierRecommended, RubricTierConsider, RubricTierNotSuitable}

// SimpleRecommendation maps a score sum (0-20) onto a generic-mode tier.
// The ranges are inclusive and partition the full range: 16-20, 11-15, 6-10, 0-5.
func SimpleRecommendation(sum int) string {
	switch {
	case sum >= 16:
		return TierStronglyRecommended
	case sum >= 11:
		return TierRecommended
	case sum >= 6:
		return TierConsider
	default:
		return TierNotSuitable
	}
}

// RubricRecommendation maps a total score (0-100) onto a rubric-mode tier.
// The ranges are inclusive and partition the full range: 85-100, 70-84, 50-69, 0-49.
func RubricRecommendation(total int) string {
	switch {
	case total >= 85:
		return RubricTierStronglyRecommended
	case total >= 70:
		return RubricTierRecommended
	case total >= 50:
		return RubricTierConsider
	default:
		return RubricTierNotSuitable
	}
}

// SummarizeJobInput represents the input for summarizing a job description
type SummarizeJobInput struct {
	JobDescription string `json:"jobDescription"`
}

// JobRequirements is the condensed representation of a job description.
// It is produced once per batch and shared read-only across all resume
// evaluations, so the full job description is never re-sent to the model.
type JobRequirements struct {
	KeySkills              []string `json:"key_skills"`
	ExperienceRequirements string   `json:"experience_requirements"`
	RoleResponsibilities   string   `json:"role_responsibilities"`
	Qualifications         string   `json:"qualifications"`
}

// Validate checks that the requirements object is usable for evaluation.
func (r JobRequirements) Validate() error {
	if len(r.KeySkills) == 0 {
		return fmt.Errorf("key_skills must not be empty")
	}
	return nil
}

// EvaluateResumeInput represents the input for evaluating one resume in
// generic mode.
type EvaluateResumeInput struct {
	Requirements JobRequirements `json:"requirements"`
	ResumeText   string          `json:"resumeText"`
}

// ResumeEvaluation is the validated result of one generic-mode evaluation.
type ResumeEvaluation struct {
	Name            string `json:"name"`
	ContactNumber   string `json:"contact_number"`
	Email           string `json:"email"`
	ExperienceScore int    `json:"experience_score"` // 0-10
	SkillsScore     int    `json:"skills_score"`     // 0-10
	Recommendation  string `json:"recommendation"`
}

// ScoreSum returns the combined experience and skills score (0-20).
func (e ResumeEvaluation) ScoreSum() int {
	return e.ExperienceScore + e.SkillsScore
}

// Validate rejects out-of-bound scores. Violations are errors, never clamped.
func (e ResumeEvaluation) Validate() error {
	if e.ExperienceScore < 0 || e.ExperienceScore > MaxSubScore {
		return fmt.Errorf("experience_score %d outside [0, %d]", e.ExperienceScore, MaxSubScore)
	}
	if e.SkillsScore < 0 || e.SkillsScore > MaxSubScore {
		return fmt.Errorf("skills_score %d outside [0, %d]", e.SkillsScore, MaxSubScore)
	}
	return nil
}

// Normalize fills identity sentinels and derives the recommendation tier from
// the score sum. The model is asked for a tier too, but the deterministic
// partition is authoritative.
func (e *ResumeEvaluation) Normalize() {
	if e.Name == "" {
		e.Name = NotProvided
	}
	if e.ContactNumber == "" {
		e.ContactNumber = NotProvided
	}
	if e.Email == "" {
		e.Email = NotProvided
	}
	e.Recommendation = SimpleRecommendation(e.ScoreSum())
}
