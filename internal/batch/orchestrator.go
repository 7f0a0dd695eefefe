package batch

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"resumescreen/internal/ai"
	screenErrors "resumescreen/internal/errors"
	"resumescreen/internal/extract"
	"resumescreen/internal/types"
)

// Orchestrator runs a screening batch: one summarization call up front, then
// one evaluation call per resume. A failed file never aborts the batch; it
// becomes a failure record in the same position a success would occupy.
type Orchestrator struct {
	extractor extract.Extractor
	provider  ai.Provider
	logger    *screenErrors.Logger
	workers   int
}

// NewOrchestrator creates a batch orchestrator. workers <= 1 runs files
// sequentially.
func NewOrchestrator(extractor extract.Extractor, provider ai.Provider, logger *screenErrors.Logger, workers int) *Orchestrator {
	if workers < 1 {
		workers = 1
	}
	return &Orchestrator{
		extractor: extractor,
		provider:  provider,
		logger:    logger,
		workers:   workers,
	}
}

// Run executes a generic-mode screening batch. The job description is
// summarized exactly once; its failure is fatal because every evaluation
// depends on it. Per-resume failures are isolated into failure records.
func (o *Orchestrator) Run(ctx context.Context, jobDescPath string, resumePaths []string) (types.JobRequirements, []types.EvaluationRecord, error) {
	jdText, err := o.extractor.ExtractText(jobDescPath)
	if err != nil {
		return types.JobRequirements{}, nil, err
	}
	if strings.TrimSpace(jdText) == "" {
		return types.JobRequirements{}, nil, screenErrors.NewValidationError(
			screenErrors.ErrCodeEmptyDocument,
			"Job description contains no extractable text: "+jobDescPath, nil)
	}

	requirements, usage, err := o.provider.SummarizeJob(ctx, types.SummarizeJobInput{JobDescription: jdText})
	if err != nil {
		return types.JobRequirements{}, nil, err
	}
	o.logTokenUsage("summarize_job", usage)

	o.logger.Info("Job description summarized",
		"job_description", jobDescPath,
		"key_skills", len(requirements.KeySkills),
		"resumes", len(resumePaths))

	var inputTokens, outputTokens atomic.Int64
	records := o.processFiles(ctx, resumePaths, func(ctx context.Context, text string) types.EvaluationRecord {
		evaluation, usage, err := o.provider.EvaluateResume(ctx, types.EvaluateResumeInput{
			Requirements: requirements,
			ResumeText:   text,
		})
		if err != nil {
			return types.EvaluationRecord{Err: err.Error()}
		}
		accumulateTokens(&inputTokens, &outputTokens, usage)
		return types.EvaluationRecord{Evaluation: &evaluation}
	})

	o.logger.Info("Screening batch finished",
		"total_files", len(records),
		"input_tokens", inputTokens.Load(),
		"output_tokens", outputTokens.Load())

	return requirements, records, nil
}

// RunRubric executes a fixed-rubric batch. There is no job description; the
// rubric itself defines what is scored.
func (o *Orchestrator) RunRubric(ctx context.Context, resumePaths []string) ([]types.EvaluationRecord, error) {
	var inputTokens, outputTokens atomic.Int64
	records := o.processFiles(ctx, resumePaths, func(ctx context.Context, text string) types.EvaluationRecord {
		rubric, usage, err := o.provider.ScoreRubric(ctx, types.ScoreRubricInput{ResumeText: text})
		if err != nil {
			return types.EvaluationRecord{Err: err.Error()}
		}
		accumulateTokens(&inputTokens, &outputTokens, usage)
		return types.EvaluationRecord{Rubric: &rubric}
	})

	o.logger.Info("Rubric batch finished",
		"total_files", len(records),
		"input_tokens", inputTokens.Load(),
		"output_tokens", outputTokens.Load())

	return records, nil
}

// logTokenUsage records the token cost of the one-off summarize call. The
// per-resume calls are accumulated instead, so a large batch logs one line.
func (o *Orchestrator) logTokenUsage(operation string, usage *ai.TokenUsage) {
	if usage == nil {
		return
	}
	o.logger.Debug("AI token usage",
		"operation", operation,
		"input_tokens", usage.InputTokens,
		"output_tokens", usage.OutputTokens,
		"total_tokens", usage.TotalTokens)
}

// evaluateFunc turns extracted resume text into a record. Index, FileName and
// extraction failures are handled by the orchestrator.
type evaluateFunc func(ctx context.Context, text string) types.EvaluationRecord

// processFiles evaluates every path and returns one record per path, in input
// order. With workers > 1 the files are distributed over a fixed pool; the
// pre-sized result slice keeps ordering deterministic regardless of which
// worker finishes first.
func (o *Orchestrator) processFiles(ctx context.Context, paths []string, evaluate evaluateFunc) []types.EvaluationRecord {
	records := make([]types.EvaluationRecord, len(paths))

	if o.workers == 1 || len(paths) <= 1 {
		for i, path := range paths {
			records[i] = o.processFile(ctx, i, path, evaluate)
		}
		return records
	}

	type job struct {
		index int
		path  string
	}

	jobs := make(chan job)
	var wg sync.WaitGroup

	for range o.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				records[j.index] = o.processFile(ctx, j.index, j.path, evaluate)
			}
		}()
	}

feed:
	for i, path := range paths {
		select {
		case jobs <- job{index: i, path: path}:
		case <-ctx.Done():
			// Unfed files become cancellation records so the report still
			// carries one row per input file.
			for k := i; k < len(paths); k++ {
				records[k] = failureRecord(k, paths[k], ctx.Err().Error())
			}
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return records
}

// processFile extracts one resume and evaluates it. Every failure path
// returns a sentinel record instead of an error.
func (o *Orchestrator) processFile(ctx context.Context, index int, path string, evaluate evaluateFunc) types.EvaluationRecord {
	fileName := filepath.Base(path)

	text, err := o.extractor.ExtractText(path)
	if err != nil {
		o.logger.LogError(err, "Skipping file after extraction failure", "file", fileName)
		return failureRecord(index, path, err.Error())
	}
	if strings.TrimSpace(text) == "" {
		o.logger.Warn("Skipping file with no extractable text", "file", fileName)
		return failureRecord(index, path, "Could not extract text from file")
	}

	record := evaluate(ctx, text)
	record.Index = index
	record.FileName = fileName
	if record.Failed() {
		o.logger.Warn("Evaluation failed for file", "file", fileName, "error", record.Err)
	} else {
		o.logger.Debug("Evaluated file", "file", fileName, "recommendation", record.Recommendation())
	}
	return record
}

func failureRecord(index int, path, reason string) types.EvaluationRecord {
	return types.EvaluationRecord{
		Index:    index,
		FileName: filepath.Base(path),
		Err:      reason,
	}
}

func accumulateTokens(input, output *atomic.Int64, usage *ai.TokenUsage) {
	if usage == nil {
		return
	}
	input.Add(usage.InputTokens)
	output.Add(usage.OutputTokens)
}

// Summarize aggregates finished records for the presentation layer. tiers
// fixes the display order of the recommendation counts; failure records are
// counted in the lowest tier, matching their report rows.
func Summarize(records []types.EvaluationRecord, tiers []string) types.BatchSummary {
	summary := types.BatchSummary{
		TotalFiles: len(records),
		TierCounts: make(map[string]int, len(tiers)),
		Tiers:      tiers,
	}
	for _, tier := range tiers {
		summary.TierCounts[tier] = 0
	}

	var expSum, skillsSum, totalSum int
	var evalCount, rubricCount int

	for _, r := range records {
		if r.Failed() {
			summary.Failed++
		} else {
			summary.Evaluated++
		}
		summary.TierCounts[r.Recommendation()]++

		if r.Evaluation != nil {
			expSum += r.Evaluation.ExperienceScore
			skillsSum += r.Evaluation.SkillsScore
			evalCount++
		}
		if r.Rubric != nil {
			totalSum += r.Rubric.TotalScore
			rubricCount++
		}
	}

	if evalCount > 0 {
		summary.MeanExperience = float64(expSum) / float64(evalCount)
		summary.MeanSkills = float64(skillsSum) / float64(evalCount)
	}
	if rubricCount > 0 {
		summary.MeanTotal = float64(totalSum) / float64(rubricCount)
	}

	return summary
}
