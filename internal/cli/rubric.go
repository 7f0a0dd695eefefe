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

var rubricCmd = &cobra.Command{
	Use:   "rubric [resume-file-or-dir]...",
	Short: "Score resumes against the fixed legal-operations rubric",
	Long: `Rubric scores every given resume against a fixed weighted rubric of
14 criteria whose maxima sum to 100. No job description is needed; the rubric
itself defines what is scored. Results are written to an xlsx report, one row
per input file. With --template, the report columns follow the header row of
an existing xlsx template instead of the default order.`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if rubricConfig.OutputFormat == "" {
			rubricConfig.OutputFormat = cfg.App.DefaultFormat
		}
		if rubricConfig.OutputFile == "" {
			rubricConfig.OutputFile = cfg.Report.RubricOutput
		}
		if rubricWorkers == 0 {
			rubricWorkers = cfg.Batch.Workers
		}
		if err := common.ValidatePositiveWorkers(rubricWorkers); err != nil {
			return err
		}
		if rubricTemplate != "" {
			if err := common.ValidateInputFile(rubricTemplate); err != nil {
				return fmt.Errorf("invalid template: %w", err)
			}
		}
		return common.ValidateOutputFormat(rubricConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runRubric,
}

var (
	rubricConfig   common.CommandConfig
	rubricWorkers  int
	rubricTemplate string
)

func init() {
	rubricCmd.Flags().StringVarP(&rubricConfig.OutputFile, "output", "o", "", "Report file path (default: rubric_results.xlsx)")
	rubricCmd.Flags().StringVar(&rubricConfig.OutputFormat, "format", "", "Summary format: json, text, or markdown")
	rubricCmd.Flags().IntVar(&rubricWorkers, "workers", 0, "Number of concurrent evaluations (default from config)")
	rubricCmd.Flags().StringVar(&rubricTemplate, "template", "", "Existing xlsx template whose header row defines the report columns")

	_ = rubricCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return cfg.App.SupportedFormats, cobra.ShellCompDirectiveNoFileComp
	})
}

func runRubric(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := getConfigFromContext(ctx)
	logger := getLoggerFromContext(ctx)

	rubricAIConfig := cfg.GetRubricConfig()
	rubricService, err := ai.NewService(&rubricAIConfig, "rubric", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	provider := &ai.OperationRouter{Rubric: rubricService}
	defer func() {
		if err := provider.Close(); err != nil {
			logger.Warn("Failed to close AI provider", "error", err.Error())
		}
	}()

	files, err := common.CollectResumeFiles(args, logger)
	if err != nil {
		return err
	}

	logger.Info("Starting rubric batch",
		"resumes", len(files),
		"workers", rubricWorkers,
		"template", rubricTemplate,
		"report", rubricConfig.OutputFile)

	if modelInfo := provider.GetModelInfo(ctx); !modelInfo.Available {
		logger.Warn("Model availability check failed, proceeding anyway",
			"model", modelInfo.Name, "error", modelInfo.Error)
	}

	extractor := extract.NewDocumentExtractor(logger)
	orchestrator := batch.NewOrchestrator(extractor, provider, logger, rubricWorkers)

	records, err := orchestrator.RunRubric(ctx, files)
	if err != nil {
		return fmt.Errorf("failed to score resumes: %w", err)
	}

	writer := report.NewWriter(cfg.Report.SheetName, logger)
	if rubricTemplate != "" {
		err = writer.WriteRubricReportWithTemplate(rubricConfig.OutputFile, rubricTemplate, records)
	} else {
		err = writer.WriteRubricReport(rubricConfig.OutputFile, records)
	}
	if err != nil {
		return err
	}

	summary := batch.Summarize(records, types.RubricTiers)
	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(summary, common.CommandConfig{OutputFormat: rubricConfig.OutputFormat}); err != nil {
		return err
	}

	logger.Info("Rubric scoring completed successfully", "report", rubricConfig.OutputFile)
	return nil
}
