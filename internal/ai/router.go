package ai

import (
	"context"

	"resumescreen/internal/types"
)

// OperationRouter routes each operation to the service configured for it, so
// a batch command can honor per-operation timeouts, retries and circuit
// breakers with a single Provider value.
type OperationRouter struct {
	Summarize *Service
	Evaluate  *Service
	Rubric    *Service
}

var _ Provider = (*OperationRouter)(nil)

func (r *OperationRouter) SummarizeJob(ctx context.Context, input types.SummarizeJobInput) (types.JobRequirements, *TokenUsage, error) {
	return r.Summarize.SummarizeJob(ctx, input)
}

func (r *OperationRouter) EvaluateResume(ctx context.Context, input types.EvaluateResumeInput) (types.ResumeEvaluation, *TokenUsage, error) {
	return r.Evaluate.EvaluateResume(ctx, input)
}

func (r *OperationRouter) ScoreRubric(ctx context.Context, input types.ScoreRubricInput) (types.RubricEvaluation, *TokenUsage, error) {
	return r.Rubric.ScoreRubric(ctx, input)
}

// GetModelInfo checks the first configured service; all operations share the
// same backend in practice.
func (r *OperationRouter) GetModelInfo(ctx context.Context) *ModelInfo {
	for _, s := range []*Service{r.Summarize, r.Evaluate, r.Rubric} {
		if s != nil {
			return s.GetModelInfo(ctx)
		}
	}
	return &ModelInfo{Available: false, Error: "no AI service configured"}
}

func (r *OperationRouter) Close() error {
	var firstErr error
	for _, s := range []*Service{r.Summarize, r.Evaluate, r.Rubric} {
		if s == nil {
			continue
		}
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
