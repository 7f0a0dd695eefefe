package ai

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"strings"
	"time"

	"resumescreen/internal/config"
	screenErrors "resumescreen/internal/errors"
	"resumescreen/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements Provider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	config         *config.OperationAIConfig
	circuitBreaker *AICircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *screenErrors.Logger
}

// Ensure GeminiProvider implements Provider
var _ Provider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance for a specific operation
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType string, logger *screenErrors.Logger) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, screenErrors.NewConfigError(screenErrors.ErrCodeMissingAPIKey,
			"No API key configured for the AI backend", nil)
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, screenErrors.NewAIError(screenErrors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	return &GeminiProvider{
		client:         client,
		config:         cfg,
		circuitBreaker: NewAICircuitBreaker(operationType, cfg, logger),
		modelBreaker:   NewModelCircuitBreaker(operationType, cfg, logger),
		logger:         logger,
	}, nil
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)

		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// executeWithRetry executes an AI operation with retry logic and exponential backoff
func (g *GeminiProvider) executeWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= *g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying AI operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", *g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			// Cap maximum backoff at 30 seconds
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !g.isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "AI operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", *g.config.MaxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, *g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func (g *GeminiProvider) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Check for network errors (timeouts, connection issues)
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true
		}
		// Consider other network errors retryable (e.g., connection refused)
		return true
	}

	// Check for Google API errors (HTTP status codes)
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// executeAIOperation is a generic helper to run AI operations with common
// tracing, timeout, circuit breaker, and parsing logic.
func executeAIOperation[Out any](
	g *GeminiProvider,
	ctx context.Context,
	operationName string,
	userPrompt string,
	systemPrompt string,
	genaiConfig *genai.GenerateContentConfig,
	spanAttributes ...attribute.KeyValue,
) (Out, *TokenUsage, error) {
	var output Out
	tracer := otel.Tracer("resumescreen.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+operationName)
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	if *g.config.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, operationName, func() (*genai.GenerateContentResponse, error) {
			callCtx, cancel := context.WithTimeout(ctx, *g.config.Timeout)
			defer cancel()
			return g.client.Models.GenerateContent(callCtx, g.config.Model, genai.Text(userPrompt), genaiConfig)
		})
	})

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		g.logger.Debug("Circuit breaker status after failed call",
			"operation", operationName,
			"stats", g.CircuitBreakerStats())
		return output, nil, screenErrors.NewAIError(screenErrors.ErrCodeAIServiceFailed, "Failed to generate content for "+operationName, err)
	}

	if err := json.Unmarshal([]byte(result.Text()), &output); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, screenErrors.NewAIError(screenErrors.ErrCodeAIResponseInvalid, "Failed to parse AI response for "+operationName, err)
	}

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return output, tokenUsage, nil
}

// SummarizeJob implements Provider for condensing a job description into a
// requirements object. This runs once per batch regardless of resume count.
func (g *GeminiProvider) SummarizeJob(ctx context.Context, input types.SummarizeJobInput) (types.JobRequirements, *TokenUsage, error) {
	systemPrompt, userPrompt := g.getPromptsForSummarize(input.JobDescription)
	genaiConfig := g.buildSummarizeSchema()

	output, tokenUsage, err := executeAIOperation[types.JobRequirements](
		g,
		ctx,
		"summarize_job",
		userPrompt,
		systemPrompt,
		genaiConfig,
		attribute.Int("input.job_length", len(input.JobDescription)),
	)

	if err != nil {
		return types.JobRequirements{}, nil, err
	}

	if err := output.Validate(); err != nil {
		return types.JobRequirements{}, nil, screenErrors.NewValidationError(
			screenErrors.ErrCodeAIResponseInvalid, "Job requirements failed validation", err)
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("output.key_skills_count", len(output.KeySkills)),
		)
	}

	return output, tokenUsage, nil
}

// EvaluateResume implements Provider for generic-mode resume evaluation
func (g *GeminiProvider) EvaluateResume(ctx context.Context, input types.EvaluateResumeInput) (types.ResumeEvaluation, *TokenUsage, error) {
	systemPrompt, userPrompt := g.getPromptsForEvaluate(input.Requirements, input.ResumeText)
	genaiConfig := g.buildEvaluateSchema()

	output, tokenUsage, err := executeAIOperation[types.ResumeEvaluation](
		g,
		ctx,
		"evaluate_resume",
		userPrompt,
		systemPrompt,
		genaiConfig,
		attribute.Int("input.resume_length", len(input.ResumeText)),
	)

	if err != nil {
		return types.ResumeEvaluation{}, nil, err
	}

	// Bounds are a hard contract: an out-of-range score is rejected, not clamped.
	if err := output.Validate(); err != nil {
		return types.ResumeEvaluation{}, nil, screenErrors.NewValidationError(
			screenErrors.ErrCodeAIResponseInvalid, "Resume evaluation failed validation", err)
	}
	output.Normalize()

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("output.experience_score", output.ExperienceScore),
			attribute.Int("output.skills_score", output.SkillsScore),
			attribute.String("output.recommendation", output.Recommendation),
		)
	}

	return output, tokenUsage, nil
}

// ScoreRubric implements Provider for fixed-rubric scoring
func (g *GeminiProvider) ScoreRubric(ctx context.Context, input types.ScoreRubricInput) (types.RubricEvaluation, *TokenUsage, error) {
	systemPrompt, userPrompt := g.getPromptsForRubric(input.ResumeText)
	genaiConfig := g.buildRubricSchema()

	output, tokenUsage, err := executeAIOperation[types.RubricEvaluation](
		g,
		ctx,
		"score_rubric",
		userPrompt,
		systemPrompt,
		genaiConfig,
		attribute.Int("input.resume_length", len(input.ResumeText)),
	)

	if err != nil {
		return types.RubricEvaluation{}, nil, err
	}

	if err := output.Validate(); err != nil {
		return types.RubricEvaluation{}, nil, screenErrors.NewValidationError(
			screenErrors.ErrCodeAIResponseInvalid, "Rubric evaluation failed validation", err)
	}
	if reportedTotal := output.TotalScore; output.Normalize() {
		g.logger.Warn("Model-reported total disagreed with criterion sum, recomputed",
			"reported_total", reportedTotal,
			"recomputed_total", output.TotalScore)
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.Int("output.total_score", output.TotalScore),
			attribute.String("output.recommendation", output.Recommendation),
		)
	}

	return output, tokenUsage, nil
}

// CircuitBreakerStats returns circuit breaker statistics for diagnostics
func (g *GeminiProvider) CircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations": g.circuitBreaker.GetStats(),
	}
	stats["overall_healthy"] = g.circuitBreaker.IsHealthy()
	return stats
}

// Close implements Provider interface
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	return nil
}

// buildSummarizeSchema creates the response schema for job summarization
func (g *GeminiProvider) buildSummarizeSchema() *genai.GenerateContentConfig {
	genaiConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"key_skills": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"experience_requirements": {Type: genai.TypeString},
				"role_responsibilities":   {Type: genai.TypeString},
				"qualifications":          {Type: genai.TypeString},
			},
			Required: []string{"key_skills", "experience_requirements", "role_responsibilities", "qualifications"},
		},
	}

	if *g.config.Temperature > 0 {
		genaiConfig.Temperature = g.config.Temperature
	}

	return genaiConfig
}

// buildEvaluateSchema creates the response schema for generic-mode evaluation
func (g *GeminiProvider) buildEvaluateSchema() *genai.GenerateContentConfig {
	genaiConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":             {Type: genai.TypeString},
				"contact_number":   {Type: genai.TypeString},
				"email":            {Type: genai.TypeString},
				"experience_score": {Type: genai.TypeInteger},
				"skills_score":     {Type: genai.TypeInteger},
				"recommendation": {
					Type: genai.TypeString,
					Enum: types.SimpleTiers,
				},
			},
			Required: []string{"name", "contact_number", "email", "experience_score", "skills_score", "recommendation"},
		},
	}

	if *g.config.Temperature > 0 {
		genaiConfig.Temperature = g.config.Temperature
	}

	return genaiConfig
}

// buildRubricSchema creates the response schema for fixed-rubric scoring.
// The criterion fields come from the declared rubric table so the schema can
// never drift from validation or the report columns.
func (g *GeminiProvider) buildRubricSchema() *genai.GenerateContentConfig {
	properties := map[string]*genai.Schema{
		"candidate_name": {Type: genai.TypeString},
		"total_score":    {Type: genai.TypeInteger},
		"recommendation": {
			Type: genai.TypeString,
			Enum: types.RubricTiers,
		},
		"justification": {Type: genai.TypeString},
	}
	required := []string{"candidate_name", "total_score", "recommendation", "justification"}

	for _, c := range types.RubricCriteria {
		properties[c.Field] = &genai.Schema{Type: genai.TypeInteger}
		required = append(required, c.Field)
	}

	genaiConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: properties,
			Required:   required,
		},
	}

	if *g.config.Temperature > 0 {
		genaiConfig.Temperature = g.config.Temperature
	}

	return genaiConfig
}

// getPromptsForSummarize returns system and user prompts for job summarization
func (g *GeminiProvider) getPromptsForSummarize(jobDescription string) (string, string) {
	systemPrompt := resolvePrompt(g.config.CustomPrompts.SystemPrompts.SummarizeJob, DefaultSystemPrompts.SummarizeJob)
	userPrompt := resolvePrompt(g.config.CustomPrompts.UserPrompts.SummarizeJob, DefaultUserPrompts.SummarizeJob)

	return systemPrompt, fmt.Sprintf(userPrompt, jobDescription)
}

// getPromptsForEvaluate returns system and user prompts for evaluation
func (g *GeminiProvider) getPromptsForEvaluate(req types.JobRequirements, resumeText string) (string, string) {
	systemPrompt := resolvePrompt(g.config.CustomPrompts.SystemPrompts.EvaluateResume, DefaultSystemPrompts.EvaluateResume)
	userPrompt := resolvePrompt(g.config.CustomPrompts.UserPrompts.EvaluateResume, DefaultUserPrompts.EvaluateResume)

	formattedUserPrompt := fmt.Sprintf(userPrompt,
		strings.Join(req.KeySkills, ", "),
		req.ExperienceRequirements,
		req.RoleResponsibilities,
		req.Qualifications,
		resumeText)

	return systemPrompt, formattedUserPrompt
}

// getPromptsForRubric returns system and user prompts for rubric scoring
func (g *GeminiProvider) getPromptsForRubric(resumeText string) (string, string) {
	systemPrompt := resolvePrompt(g.config.CustomPrompts.SystemPrompts.ScoreRubric, DefaultSystemPrompts.ScoreRubric)
	userPrompt := resolvePrompt(g.config.CustomPrompts.UserPrompts.ScoreRubric, DefaultUserPrompts.ScoreRubric)

	return systemPrompt, fmt.Sprintf(userPrompt, RubricCriteriaList(), resumeText)
}

// resolvePrompt prefers a prompt defined in the configuration over the
// hardcoded default.
func resolvePrompt(fromConfig, fromDefault string) string {
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}
