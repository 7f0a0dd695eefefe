package ai

import (
	"context"
	"fmt"

	"resumescreen/internal/config"
	screenErrors "resumescreen/internal/errors"
	"resumescreen/internal/types"
)

// Service provides AI-powered resume screening operations
type Service struct {
	provider Provider
	logger   *screenErrors.Logger
}

// NewService creates a new AI service for a specific operation type
func NewService(cfg *config.OperationAIConfig, operationType string, logger *screenErrors.Logger) (*Service, error) {
	var provider Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, operationType, logger)
	default:
		return nil, screenErrors.NewConfigError(screenErrors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, err
	}

	return &Service{
		provider: provider,
		logger:   logger,
	}, nil
}

// SummarizeJob condenses a job description into structured requirements
func (s *Service) SummarizeJob(ctx context.Context, input types.SummarizeJobInput) (types.JobRequirements, *TokenUsage, error) {
	return s.provider.SummarizeJob(ctx, input)
}

// EvaluateResume scores a resume against summarized job requirements
func (s *Service) EvaluateResume(ctx context.Context, input types.EvaluateResumeInput) (types.ResumeEvaluation, *TokenUsage, error) {
	return s.provider.EvaluateResume(ctx, input)
}

// ScoreRubric scores a resume against the fixed hiring rubric
func (s *Service) ScoreRubric(ctx context.Context, input types.ScoreRubricInput) (types.RubricEvaluation, *TokenUsage, error) {
	return s.provider.ScoreRubric(ctx, input)
}

// GetModelInfo reports availability of the configured model
func (s *Service) GetModelInfo(ctx context.Context) *ModelInfo {
	return s.provider.GetModelInfo(ctx)
}

// Close releases provider resources
func (s *Service) Close() error {
	return s.provider.Close()
}
