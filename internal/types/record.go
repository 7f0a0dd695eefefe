package types

// EvaluationRecord is one report row: the per-file result of a batch run.
// Exactly one of Evaluation or Rubric is set on success; on failure both are
// nil and Err carries the reason. Records are created once per file, appended
// in input order and never mutated afterwards.
type EvaluationRecord struct {
	Index      int               `json:"index"`
	FileName   string            `json:"fileName"`
	Evaluation *ResumeEvaluation `json:"evaluation,omitempty"`
	Rubric     *RubricEvaluation `json:"rubric,omitempty"`
	Err        string            `json:"error,omitempty"`
}

// Failed reports whether the record is a sentinel failure record.
func (r EvaluationRecord) Failed() bool {
	return r.Err != ""
}

// Recommendation returns the record's tier, falling back to the lowest tier
// for failure records.
func (r EvaluationRecord) Recommendation() string {
	switch {
	case r.Evaluation != nil:
		return r.Evaluation.Recommendation
	case r.Rubric != nil:
		return r.Rubric.Recommendation
	default:
		return TierNotSuitable
	}
}

// BatchSummary aggregates a finished batch for the presentation layer.
type BatchSummary struct {
	TotalFiles      int            `json:"totalFiles"`
	Evaluated       int            `json:"evaluated"`
	Failed          int            `json:"failed"`
	TierCounts      map[string]int `json:"tierCounts"`
	MeanExperience  float64        `json:"meanExperienceScore,omitempty"`
	MeanSkills      float64        `json:"meanSkillsScore,omitempty"`
	MeanTotal       float64        `json:"meanTotalScore,omitempty"`
	Tiers           []string       `json:"-"` // display order for formatters
}
