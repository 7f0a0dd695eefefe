package types

import (
	"testing"
)

func TestSimpleRecommendation(t *testing.T) {
	tests := []struct {
		name     string
		sum      int
		expected string
	}{
		{"minimum sum", 0, TierNotSuitable},
		{"top of not suitable", 5, TierNotSuitable},
		{"bottom of consider", 6, TierConsider},
		{"top of consider", 10, TierConsider},
		{"bottom of recommended", 11, TierRecommended},
		{"top of recommended", 15, TierRecommended},
		{"bottom of strongly recommended", 16, TierStronglyRecommended},
		{"maximum sum", 20, TierStronglyRecommended},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SimpleRecommendation(tt.sum); got != tt.expected {
				t.Errorf("SimpleRecommendation(%d) = %q, want %q", tt.sum, got, tt.expected)
			}
		})
	}
}

// Every sum in [0,20] must land in exactly one tier: no gaps, no overlaps.
func TestSimpleRecommendationPartition(t *testing.T) {
	for sum := 0; sum <= 2*MaxSubScore; sum++ {
		tier := SimpleRecommendation(sum)
		matches := 0
		for _, known := range SimpleTiers {
			if tier == known {
				matches++
			}
		}
		if matches != 1 {
			t.Errorf("sum %d mapped to %q which matched %d known tiers", sum, tier, matches)
		}
	}
}

func TestRubricRecommendation(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		expected string
	}{
		{"minimum total", 0, RubricTierNotSuitable},
		{"top of not suitable", 49, RubricTierNotSuitable},
		{"bottom of consider", 50, RubricTierConsider},
		{"top of consider", 69, RubricTierConsider},
		{"bottom of recommended", 70, RubricTierRecommended},
		{"top of recommended", 84, RubricTierRecommended},
		{"bottom of strongly recommended", 85, RubricTierStronglyRecommended},
		{"maximum total", 100, RubricTierStronglyRecommended},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RubricRecommendation(tt.total); got != tt.expected {
				t.Errorf("RubricRecommendation(%d) = %q, want %q", tt.total, got, tt.expected)
			}
		})
	}
}

func TestResumeEvaluationValidate(t *testing.T) {
	tests := []struct {
		name        string
		eval        ResumeEvaluation
		expectError bool
	}{
		{"all zero scores", ResumeEvaluation{}, false},
		{"maximum scores", ResumeEvaluation{ExperienceScore: 10, SkillsScore: 10}, false},
		{"mid-range scores", ResumeEvaluation{ExperienceScore: 7, SkillsScore: 4}, false},
		{"experience above bound", ResumeEvaluation{ExperienceScore: 11, SkillsScore: 5}, true},
		{"skills above bound", ResumeEvaluation{ExperienceScore: 5, SkillsScore: 11}, true},
		{"negative experience", ResumeEvaluation{ExperienceScore: -1}, true},
		{"negative skills", ResumeEvaluation{SkillsScore: -3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.eval.Validate()
			if tt.expectError && err == nil {
				t.Errorf("expected validation error for %+v, got none", tt.eval)
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestResumeEvaluationNormalize(t *testing.T) {
	e := ResumeEvaluation{
		ExperienceScore: 8,
		SkillsScore:     8,
		Recommendation:  "nonsense from the model",
	}
	e.Normalize()

	if e.Name != NotProvided || e.ContactNumber != NotProvided || e.Email != NotProvided {
		t.Errorf("missing identity fields not replaced with sentinel: %+v", e)
	}
	if e.Recommendation != TierStronglyRecommended {
		t.Errorf("Recommendation = %q, want %q", e.Recommendation, TierStronglyRecommended)
	}
}

func TestRubricCriteriaMaximaSumToHundred(t *testing.T) {
	sum := 0
	for _, c := range RubricCriteria {
		sum += c.Max
	}
	if sum != MaxRubricScore {
		t.Errorf("sum of criterion maxima = %d, want %d", sum, MaxRubricScore)
	}
}

func TestRubricCriteriaAlignWithScores(t *testing.T) {
	var r RubricEvaluation
	if got, want := len(r.CriterionScores()), len(RubricCriteria); got != want {
		t.Fatalf("CriterionScores returned %d values for %d criteria", got, want)
	}
}

func TestRubricEvaluationValidate(t *testing.T) {
	full := RubricEvaluation{
		LegalOpsExperience:         10,
		PatentFilingExperience:     10,
		ContractDraftingExperience: 10,
		PatentLawKnowledge:         10,
		FundraisingKnowledge:       10,
		LegalDraftingSkills:        10,
		OrganizationalSkills:       10,
		FounderProximityFit:        5,
		ConfidentialityFit:         5,
		RiskSpeedBalanceFit:        5,
		LegalEducation:             5,
		Certifications:             5,
		VCExposureBonus:            3,
		InternationalExposureBonus: 2,
		TotalScore:                 100,
	}

	if err := full.Validate(); err != nil {
		t.Errorf("full-marks evaluation should validate, got: %v", err)
	}
	if full.Sum() != MaxRubricScore {
		t.Errorf("Sum() = %d, want %d", full.Sum(), MaxRubricScore)
	}

	t.Run("criterion above its own maximum", func(t *testing.T) {
		bad := full
		bad.InternationalExposureBonus = 3 // declared max is 2
		if err := bad.Validate(); err == nil {
			t.Error("expected validation error for bonus above its maximum")
		}
	})

	t.Run("negative criterion", func(t *testing.T) {
		bad := full
		bad.ConfidentialityFit = -1
		if err := bad.Validate(); err == nil {
			t.Error("expected validation error for negative score")
		}
	})

	t.Run("total above bound", func(t *testing.T) {
		bad := full
		bad.TotalScore = 101
		if err := bad.Validate(); err == nil {
			t.Error("expected validation error for total above 100")
		}
	})
}

func TestRubricEvaluationNormalize(t *testing.T) {
	r := RubricEvaluation{
		LegalOpsExperience:  8,
		PatentLawKnowledge:  9,
		LegalDraftingSkills: 7,
		LegalEducation:      5,
		TotalScore:          95, // model's claim disagrees with the sum (29)
		Recommendation:      RubricTierStronglyRecommended,
	}

	mismatch := r.Normalize()
	if !mismatch {
		t.Error("expected Normalize to report a total-score mismatch")
	}
	if r.TotalScore != 29 {
		t.Errorf("TotalScore = %d, want recomputed sum 29", r.TotalScore)
	}
	if r.Recommendation != RubricTierNotSuitable {
		t.Errorf("Recommendation = %q, want %q", r.Recommendation, RubricTierNotSuitable)
	}
	if r.CandidateName != NotProvided {
		t.Errorf("CandidateName = %q, want sentinel", r.CandidateName)
	}

	t.Run("consistent total is untouched", func(t *testing.T) {
		ok := RubricEvaluation{CandidateName: "Jane Doe", LegalOpsExperience: 10, TotalScore: 10}
		if ok.Normalize() {
			t.Error("consistent total reported as mismatch")
		}
		if ok.TotalScore != 10 || ok.CandidateName != "Jane Doe" {
			t.Errorf("unexpected mutation: %+v", ok)
		}
	})
}

func TestEvaluationRecordRecommendation(t *testing.T) {
	tests := []struct {
		name     string
		record   EvaluationRecord
		expected string
	}{
		{
			"generic record",
			EvaluationRecord{Evaluation: &ResumeEvaluation{Recommendation: TierRecommended}},
			TierRecommended,
		},
		{
			"rubric record",
			EvaluationRecord{Rubric: &RubricEvaluation{Recommendation: RubricTierConsider}},
			RubricTierConsider,
		},
		{
			"failure record falls back to lowest tier",
			EvaluationRecord{Err: "Could not extract text"},
			TierNotSuitable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.Recommendation(); got != tt.expected {
				t.Errorf("Recommendation() = %q, want %q", got, tt.expected)
			}
		})
	}
}
