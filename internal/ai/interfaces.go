package ai

import (
	"context"

	"resumescreen/internal/types"
)

// Provider is the contract-checked LLM boundary. Every method issues one
// structured-output call and returns a validated, typed record; a response
// that violates the declared schema or score bounds comes back as a typed
// error, never as a best-effort value.
// All methods return token usage information - callers can ignore it if not needed.
type Provider interface {
	SummarizeJob(ctx context.Context, input types.SummarizeJobInput) (types.JobRequirements, *TokenUsage, error)
	EvaluateResume(ctx context.Context, input types.EvaluateResumeInput) (types.ResumeEvaluation, *TokenUsage, error)
	ScoreRubric(ctx context.Context, input types.ScoreRubricInput) (types.RubricEvaluation, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
