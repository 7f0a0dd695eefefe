package cli

import (
	"fmt"

	"resumescreen/internal/ai"
	"resumescreen/internal/batch"
	"resumescreen/internal/common"
	"resumescreen/internal/extract"
	"resumescreen/internal/report"
	"resumescreen/internal/types"

	"github.com/spf13/cobra"
)

var screenCmd = &cobra.Command{
	Use:   "screen [job-description-file] [resume-file-or-dir]...",
	Short: "Screen a batch of resumes against a job description",
	Long: `Screen evaluates every given resume against a job description.
The first argument is the job description file; every further argument is a
resume file or a directory of resumes. The job description is summarized once,
each resume is scored on experience and skills (0-10 each), and the results
are written to an xlsx report with one row per input file.`,
	Args: cobra.MinimumNArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if screenConfig.OutputFormat == "" {
			screenConfig.OutputFormat = cfg.App.DefaultFormat
		}
		if screenConfig.OutputFile == "" {
			screenConfig.OutputFile = cfg.Report.ScreenOutput
		}
		if screenWorkers == 0 {
			screenWorkers = cfg.Batch.Workers
		}
		if err := common.ValidatePositiveWorkers(screenWorkers); err != nil {
			return err
		}
		return common.ValidateOutputFormat(screenConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runScreen,
}

var (
	screenConfig  common.CommandConfig
	screenWorkers int
)

func init() {
	screenCmd.Flags().StringVarP(&screenConfig.OutputFile, "output", "o", "", "Report file path (default: screening_results.xlsx)")
	screenCmd.Flags().StringVar(&screenConfig.OutputFormat, "format", "", "Summary format: json, text, or markdown")
	screenCmd.Flags().IntVar(&screenWorkers, "workers", 0, "Number of concurrent evaluations (default from config)")

	_ = screenCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return cfg.App.SupportedFormats, cobra.ShellCompDirectiveNoFileComp
	})
}

func runScreen(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := getConfigFromContext(ctx)
	logger := getLoggerFromContext(ctx)

	summarizeAIConfig := cfg.GetSummarizeConfig()
	summarizeService, err := ai.NewService(&summarizeAIConfig, "summarize", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}
	evaluateAIConfig := cfg.GetEvaluateConfig()
	evaluateService, err := ai.NewService(&evaluateAIConfig, "evaluate", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	provider := &ai.OperationRouter{Summarize: summarizeService, Evaluate: evaluateService}
	defer func() {
		if err := provider.Close(); err != nil {
			logger.Warn("Failed to close AI provider", "error", err.Error())
		}
	}()

	files, err := common.CollectResumeFiles(args[1:], logger)
	if err != nil {
		return err
	}

	logger.Info("Starting screening batch",
		"job_description", args[0],
		"resumes", len(files),
		"workers", screenWorkers,
		"report", screenConfig.OutputFile)

	if modelInfo := provider.GetModelInfo(ctx); !modelInfo.Available {
		logger.Warn("Model availability check failed, proceeding anyway",
			"model", modelInfo.Name, "error", modelInfo.Error)
	}

	extractor := extract.NewDocumentExtractor(logger)
	orchestrator := batch.NewOrchestrator(extractor, provider, logger, screenWorkers)

	_, records, err := orchestrator.Run(ctx, args[0], files)
	if err != nil {
		return fmt.Errorf("failed to screen resumes: %w", err)
	}

	writer := report.NewWriter(cfg.Report.SheetName, logger)
	if err := writer.WriteScreenReport(screenConfig.OutputFile, records); err != nil {
		return err
	}

	summary := batch.Summarize(records, types.SimpleTiers)
	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(summary, common.CommandConfig{OutputFormat: screenConfig.OutputFormat}); err != nil {
		return err
	}

	logger.Info("Screening completed successfully", "report", screenConfig.OutputFile)
	return nil
}
