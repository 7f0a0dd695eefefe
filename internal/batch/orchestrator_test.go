package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"

	"resumescreen/internal/ai"
	screenErrors "resumescreen/internal/errors"
	"resumescreen/internal/types"
)

// fakeExtractor returns canned text per path. A path missing from the map
// fails extraction the way a corrupt file would.
type fakeExtractor struct {
	texts map[string]string
}

func (f *fakeExtractor) ExtractText(path string) (string, error) {
	text, ok := f.texts[path]
	if !ok {
		return "", screenErrors.NewIOError(screenErrors.ErrCodeExtractionFailed,
			"Failed to extract text from "+path, nil)
	}
	return text, nil
}

// fakeProvider derives deterministic results from the input text so ordering
// tests can tie each record back to its file.
type fakeProvider struct {
	summarizeCalls atomic.Int32
	evaluateCalls  atomic.Int32
	rubricCalls    atomic.Int32
	summarizeErr   error
	evaluateErrFor string
	withoutUsage   bool
}

func (f *fakeProvider) SummarizeJob(_ context.Context, input types.SummarizeJobInput) (types.JobRequirements, *ai.TokenUsage, error) {
	f.summarizeCalls.Add(1)
	if f.summarizeErr != nil {
		return types.JobRequirements{}, nil, f.summarizeErr
	}
	requirements := types.JobRequirements{
		KeySkills:              []string{"Go"},
		ExperienceRequirements: "3 years",
		RoleResponsibilities:   "Build things",
		Qualifications:         "BSc",
	}
	if f.withoutUsage {
		return requirements, nil, nil
	}
	return requirements, &ai.TokenUsage{InputTokens: 100, OutputTokens: 20, TotalTokens: 120}, nil
}

func (f *fakeProvider) EvaluateResume(_ context.Context, input types.EvaluateResumeInput) (types.ResumeEvaluation, *ai.TokenUsage, error) {
	f.evaluateCalls.Add(1)
	if f.evaluateErrFor != "" && strings.Contains(input.ResumeText, f.evaluateErrFor) {
		return types.ResumeEvaluation{}, nil, screenErrors.NewAIError(
			screenErrors.ErrCodeAIServiceFailed, "Evaluation backend unavailable", nil)
	}
	eval := types.ResumeEvaluation{
		Name:            "Candidate " + input.ResumeText,
		ContactNumber:   types.NotProvided,
		Email:           types.NotProvided,
		ExperienceScore: 8,
		SkillsScore:     7,
	}
	eval.Normalize()
	if f.withoutUsage {
		return eval, nil, nil
	}
	return eval, &ai.TokenUsage{InputTokens: 50, OutputTokens: 10, TotalTokens: 60}, nil
}

func (f *fakeProvider) ScoreRubric(_ context.Context, input types.ScoreRubricInput) (types.RubricEvaluation, *ai.TokenUsage, error) {
	f.rubricCalls.Add(1)
	rubric := types.RubricEvaluation{
		CandidateName:              "Candidate " + input.ResumeText,
		LegalOpsExperience:         8,
		PatentFilingExperience:     7,
		ContractDraftingExperience: 6,
		PatentLawKnowledge:         5,
		FundraisingKnowledge:       4,
		LegalDraftingSkills:        8,
		OrganizationalSkills:       7,
		FounderProximityFit:        4,
		ConfidentialityFit:         5,
		RiskSpeedBalanceFit:        3,
		LegalEducation:             5,
		Certifications:             2,
		VCExposureBonus:            1,
		InternationalExposureBonus: 1,
		Justification:              "Strong legal operations evidence",
	}
	rubric.Normalize()
	return rubric, &ai.TokenUsage{InputTokens: 80, OutputTokens: 30, TotalTokens: 110}, nil
}

func (f *fakeProvider) GetModelInfo(context.Context) *ai.ModelInfo {
	return &ai.ModelInfo{Name: "fake", Available: true}
}

func (f *fakeProvider) Close() error { return nil }

func testLogger() *screenErrors.Logger {
	return screenErrors.NewLogger(slog.LevelError)
}

func TestRunIsolatesPerFileFailures(t *testing.T) {
	extractor := &fakeExtractor{texts: map[string]string{
		"jd.pdf":            "job description",
		"resumes/alice.pdf": "alice",
		"resumes/carol.pdf": "carol",
	}}
	provider := &fakeProvider{}
	orch := NewOrchestrator(extractor, provider, testLogger(), 1)

	paths := []string{"resumes/alice.pdf", "resumes/bob.pdf", "resumes/carol.pdf"}
	requirements, records, err := orch.Run(context.Background(), "jd.pdf", paths)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(requirements.KeySkills) == 0 {
		t.Error("requirements not propagated")
	}
	if len(records) != len(paths) {
		t.Fatalf("got %d records, want %d", len(records), len(paths))
	}

	var failed int
	for i, r := range records {
		if r.Index != i {
			t.Errorf("record %d has index %d", i, r.Index)
		}
		if r.Failed() {
			failed++
			if r.FileName != "bob.pdf" {
				t.Errorf("unexpected failure record for %s", r.FileName)
			}
			if r.Evaluation != nil {
				t.Error("failure record carries an evaluation")
			}
			if got := r.Recommendation(); got != types.TierNotSuitable {
				t.Errorf("failure record recommendation = %q, want %q", got, types.TierNotSuitable)
			}
		}
	}
	if failed != 1 {
		t.Errorf("failed records = %d, want 1", failed)
	}

	if records[0].Evaluation.Name != "Candidate alice" {
		t.Errorf("record 0 belongs to %q, want alice", records[0].Evaluation.Name)
	}
	if records[2].Evaluation.Name != "Candidate carol" {
		t.Errorf("record 2 belongs to %q, want carol", records[2].Evaluation.Name)
	}
}

func TestRunFailsFastOnEmptyJobDescription(t *testing.T) {
	extractor := &fakeExtractor{texts: map[string]string{
		"jd.pdf":    "   \n\t ",
		"alice.pdf": "alice",
	}}
	provider := &fakeProvider{}
	orch := NewOrchestrator(extractor, provider, testLogger(), 1)

	_, _, err := orch.Run(context.Background(), "jd.pdf", []string{"alice.pdf"})
	if err == nil {
		t.Fatal("Run() succeeded with empty job description")
	}

	var appErr *screenErrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != screenErrors.ErrCodeEmptyDocument {
		t.Errorf("error = %v, want code %s", err, screenErrors.ErrCodeEmptyDocument)
	}
	if provider.summarizeCalls.Load() != 0 {
		t.Error("summarizer was invoked despite empty job description")
	}
	if provider.evaluateCalls.Load() != 0 {
		t.Error("evaluator was invoked despite fatal batch error")
	}
}

func TestRunToleratesMissingTokenUsage(t *testing.T) {
	// Usage metadata is optional in provider responses; a backend that omits
	// it must not break the batch or its logging.
	extractor := &fakeExtractor{texts: map[string]string{
		"jd.pdf":    "job description",
		"alice.pdf": "alice",
	}}
	provider := &fakeProvider{withoutUsage: true}
	orch := NewOrchestrator(extractor, provider, testLogger(), 1)

	_, records, err := orch.Run(context.Background(), "jd.pdf", []string{"alice.pdf"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(records) != 1 || records[0].Failed() {
		t.Errorf("records = %+v, want one successful record", records)
	}
}

func TestRunFailsFastOnSummarizeError(t *testing.T) {
	extractor := &fakeExtractor{texts: map[string]string{
		"jd.pdf":    "job description",
		"alice.pdf": "alice",
	}}
	provider := &fakeProvider{
		summarizeErr: screenErrors.NewAIError(screenErrors.ErrCodeAIServiceFailed, "backend down", nil),
	}
	orch := NewOrchestrator(extractor, provider, testLogger(), 1)

	_, _, err := orch.Run(context.Background(), "jd.pdf", []string{"alice.pdf"})
	if err == nil {
		t.Fatal("Run() succeeded despite summarization failure")
	}
	if provider.evaluateCalls.Load() != 0 {
		t.Error("evaluator was invoked despite summarization failure")
	}
}

func TestRunRecordsEvaluationFailure(t *testing.T) {
	extractor := &fakeExtractor{texts: map[string]string{
		"jd.pdf":    "job description",
		"alice.pdf": "alice",
		"bob.pdf":   "bob",
	}}
	provider := &fakeProvider{evaluateErrFor: "bob"}
	orch := NewOrchestrator(extractor, provider, testLogger(), 1)

	_, records, err := orch.Run(context.Background(), "jd.pdf", []string{"alice.pdf", "bob.pdf"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if records[0].Failed() {
		t.Error("alice record marked failed")
	}
	if !records[1].Failed() {
		t.Fatal("bob record not marked failed")
	}
	if !strings.Contains(records[1].Err, screenErrors.ErrCodeAIServiceFailed) {
		t.Errorf("failure reason = %q, want AI service code", records[1].Err)
	}
}

func TestProcessFilesKeepsInputOrderWithWorkers(t *testing.T) {
	texts := map[string]string{"jd.pdf": "job description"}
	var paths []string
	for i := range 12 {
		path := fmt.Sprintf("resume-%02d.pdf", i)
		texts[path] = fmt.Sprintf("text-%02d", i)
		paths = append(paths, path)
	}

	extractor := &fakeExtractor{texts: texts}
	provider := &fakeProvider{}
	orch := NewOrchestrator(extractor, provider, testLogger(), 4)

	_, records, err := orch.Run(context.Background(), "jd.pdf", paths)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(records) != len(paths) {
		t.Fatalf("got %d records, want %d", len(records), len(paths))
	}
	for i, r := range records {
		wantName := fmt.Sprintf("Candidate text-%02d", i)
		if r.Evaluation == nil || r.Evaluation.Name != wantName {
			t.Errorf("record %d out of order: %+v", i, r)
		}
	}
}

func TestRunRubric(t *testing.T) {
	extractor := &fakeExtractor{texts: map[string]string{
		"alice.pdf": "alice",
		"empty.pdf": "  ",
	}}
	provider := &fakeProvider{}
	orch := NewOrchestrator(extractor, provider, testLogger(), 1)

	records, err := orch.RunRubric(context.Background(), []string{"alice.pdf", "empty.pdf"})
	if err != nil {
		t.Fatalf("RunRubric() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	if records[0].Rubric == nil {
		t.Fatal("alice record missing rubric evaluation")
	}
	if got := records[0].Rubric.TotalScore; got != records[0].Rubric.Sum() {
		t.Errorf("total score = %d, want criterion sum %d", got, records[0].Rubric.Sum())
	}

	if !records[1].Failed() {
		t.Fatal("empty file did not produce a failure record")
	}
	if records[1].Err != "Could not extract text from file" {
		t.Errorf("failure reason = %q", records[1].Err)
	}
	if provider.rubricCalls.Load() != 1 {
		t.Errorf("rubric calls = %d, want 1", provider.rubricCalls.Load())
	}
}

func TestSummarize(t *testing.T) {
	eight := types.ResumeEvaluation{ExperienceScore: 8, SkillsScore: 8}
	eight.Normalize()
	four := types.ResumeEvaluation{ExperienceScore: 2, SkillsScore: 2}
	four.Normalize()

	records := []types.EvaluationRecord{
		{Index: 0, FileName: "a.pdf", Evaluation: &eight},
		{Index: 1, FileName: "b.pdf", Evaluation: &four},
		{Index: 2, FileName: "c.pdf", Err: "Could not extract text from file"},
	}

	summary := Summarize(records, types.SimpleTiers)

	if summary.TotalFiles != 3 || summary.Evaluated != 2 || summary.Failed != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/2/1", summary.TotalFiles, summary.Evaluated, summary.Failed)
	}
	if got := summary.TierCounts[types.TierStronglyRecommended]; got != 1 {
		t.Errorf("strongly recommended count = %d, want 1", got)
	}
	// The failure record and the low scorer both land in the lowest tier.
	if got := summary.TierCounts[types.TierNotSuitable]; got != 2 {
		t.Errorf("not suitable count = %d, want 2", got)
	}
	if summary.MeanExperience != 5.0 {
		t.Errorf("mean experience = %v, want 5.0", summary.MeanExperience)
	}
	if summary.MeanSkills != 5.0 {
		t.Errorf("mean skills = %v, want 5.0", summary.MeanSkills)
	}
}
