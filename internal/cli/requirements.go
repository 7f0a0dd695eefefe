package cli

import (
	"fmt"
	"strings"

	"resumescreen/internal/ai"
	"resumescreen/internal/common"
	screenErrors "resumescreen/internal/errors"
	"resumescreen/internal/extract"
	"resumescreen/internal/types"

	"github.com/spf13/cobra"
)

var requirementsCmd = &cobra.Command{
	Use:   "requirements [job-description-file]",
	Short: "Summarize a job description into structured requirements",
	Long: `Requirements extracts the text of a job description and condenses it
into the structured requirements object used during screening: key skills,
experience requirements, role responsibilities and qualifications. Useful for
inspecting what a screen run would evaluate against.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if requirementsConfig.OutputFormat == "" {
			requirementsConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(requirementsConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runRequirements,
}

var requirementsConfig common.CommandConfig

func init() {
	requirementsCmd.Flags().StringVarP(&requirementsConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	requirementsCmd.Flags().StringVar(&requirementsConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = requirementsCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return cfg.App.SupportedFormats, cobra.ShellCompDirectiveNoFileComp
	})
}

func runRequirements(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := getConfigFromContext(ctx)
	logger := getLoggerFromContext(ctx)

	summarizeAIConfig := cfg.GetSummarizeConfig()
	aiService, err := ai.NewService(&summarizeAIConfig, "summarize", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}
	defer func() {
		if err := aiService.Close(); err != nil {
			logger.Warn("Failed to close AI service", "error", err.Error())
		}
	}()

	extractor := extract.NewDocumentExtractor(logger)
	text, err := extractor.ExtractText(args[0])
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return screenErrors.NewValidationError(screenErrors.ErrCodeEmptyDocument,
			"Job description contains no extractable text: "+args[0], nil)
	}

	logger.Info("Summarizing job description",
		"job_description", args[0],
		"chars", len(text),
		"output_format", requirementsConfig.OutputFormat)

	requirements, tokenUsage, err := aiService.SummarizeJob(ctx, types.SummarizeJobInput{JobDescription: text})
	if err != nil {
		return fmt.Errorf("failed to summarize job description: %w", err)
	}

	if tokenUsage != nil {
		logger.Info("AI token usage",
			"input_tokens", tokenUsage.InputTokens,
			"output_tokens", tokenUsage.OutputTokens,
			"total_tokens", tokenUsage.TotalTokens)
	}

	outputHandler := common.NewOutputHandler(logger)
	return outputHandler.HandleOutput(requirements, requirementsConfig)
}
