package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumescreen/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "JobRequirements", &RequirementsTextFormatter{})
	registry.RegisterFormatter("markdown", "JobRequirements", &RequirementsMarkdownFormatter{})
	registry.RegisterFormatter("text", "BatchSummary", &SummaryTextFormatter{})
	registry.RegisterFormatter("markdown", "BatchSummary", &SummaryMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.JobRequirements:
		return "JobRequirements"
	case types.BatchSummary:
		return "BatchSummary"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// RequirementsTextFormatter handles text formatting for summarized requirements
type RequirementsTextFormatter struct{}

func (rtf *RequirementsTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.JobRequirements)
	if !ok {
		return "", fmt.Errorf("expected JobRequirements, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== JOB REQUIREMENTS ===\n\n")
	output.WriteString("Key Skills:\n")
	for _, skill := range result.KeySkills {
		output.WriteString("  - ")
		output.WriteString(skill)
		output.WriteString("\n")
	}
	output.WriteString("\n")

	output.WriteString("Experience Requirements:\n")
	output.WriteString(result.ExperienceRequirements)
	output.WriteString("\n\n")

	output.WriteString("Role Responsibilities:\n")
	output.WriteString(result.RoleResponsibilities)
	output.WriteString("\n\n")

	output.WriteString("Qualifications:\n")
	output.WriteString(result.Qualifications)
	output.WriteString("\n")

	return output.String(), nil
}

func (rtf *RequirementsTextFormatter) SupportedType() string {
	return "JobRequirements"
}

// RequirementsMarkdownFormatter handles markdown formatting for summarized requirements
type RequirementsMarkdownFormatter struct{}

func (rmf *RequirementsMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.JobRequirements)
	if !ok {
		return "", fmt.Errorf("expected JobRequirements, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Job Requirements\n\n")
	output.WriteString("## Key Skills\n\n")
	for _, skill := range result.KeySkills {
		output.WriteString("- ")
		output.WriteString(skill)
		output.WriteString("\n")
	}
	output.WriteString("\n")

	output.WriteString("## Experience Requirements\n\n")
	output.WriteString(result.ExperienceRequirements)
	output.WriteString("\n\n")

	output.WriteString("## Role Responsibilities\n\n")
	output.WriteString(result.RoleResponsibilities)
	output.WriteString("\n\n")

	output.WriteString("## Qualifications\n\n")
	output.WriteString(result.Qualifications)
	output.WriteString("\n")

	return output.String(), nil
}

func (rmf *RequirementsMarkdownFormatter) SupportedType() string {
	return "JobRequirements"
}

// SummaryTextFormatter handles text formatting for batch summaries
type SummaryTextFormatter struct{}

func (stf *SummaryTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.BatchSummary)
	if !ok {
		return "", fmt.Errorf("expected BatchSummary, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== SCREENING SUMMARY ===\n\n")
	output.WriteString(fmt.Sprintf("Files processed: %d\n", result.TotalFiles))
	output.WriteString(fmt.Sprintf("Evaluated:       %d\n", result.Evaluated))
	output.WriteString(fmt.Sprintf("Failed:          %d\n", result.Failed))
	output.WriteString("\n")

	output.WriteString("Recommendations:\n")
	for _, tier := range result.Tiers {
		output.WriteString(fmt.Sprintf("  %-35s %d\n", tier, result.TierCounts[tier]))
	}

	if result.Evaluated > 0 {
		output.WriteString("\n")
		if result.MeanTotal > 0 {
			output.WriteString(fmt.Sprintf("Mean total score: %.1f/100\n", result.MeanTotal))
		} else {
			output.WriteString(fmt.Sprintf("Mean experience score: %.1f/10\n", result.MeanExperience))
			output.WriteString(fmt.Sprintf("Mean skills score:     %.1f/10\n", result.MeanSkills))
		}
	}

	return output.String(), nil
}

func (stf *SummaryTextFormatter) SupportedType() string {
	return "BatchSummary"
}

// SummaryMarkdownFormatter handles markdown formatting for batch summaries
type SummaryMarkdownFormatter struct{}

func (smf *SummaryMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.BatchSummary)
	if !ok {
		return "", fmt.Errorf("expected BatchSummary, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Screening Summary\n\n")
	output.WriteString(fmt.Sprintf("**Files processed:** %d\n\n", result.TotalFiles))
	output.WriteString(fmt.Sprintf("**Evaluated:** %d\n\n", result.Evaluated))
	output.WriteString(fmt.Sprintf("**Failed:** %d\n\n", result.Failed))

	output.WriteString("## Recommendations\n\n")
	for _, tier := range result.Tiers {
		output.WriteString(fmt.Sprintf("- %s: %d\n", tier, result.TierCounts[tier]))
	}

	if result.Evaluated > 0 {
		output.WriteString("\n## Scores\n\n")
		if result.MeanTotal > 0 {
			output.WriteString(fmt.Sprintf("**Mean total score:** %.1f/100\n", result.MeanTotal))
		} else {
			output.WriteString(fmt.Sprintf("**Mean experience score:** %.1f/10\n\n", result.MeanExperience))
			output.WriteString(fmt.Sprintf("**Mean skills score:** %.1f/10\n", result.MeanSkills))
		}
	}

	return output.String(), nil
}

func (smf *SummaryMarkdownFormatter) SupportedType() string {
	return "BatchSummary"
}

// GlobalRegistry is the default formatter registry instance
var GlobalRegistry = NewFormatterRegistry()
