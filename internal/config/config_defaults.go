package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// AI Configuration - Global defaults
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.maxRetries", 3)
	v.SetDefault("ai.temperature", 0.2)
	v.SetDefault("ai.useSystemPrompts", true)

	// AI Configuration - Summarize operation defaults
	v.SetDefault("ai.summarize.provider", "gemini")
	v.SetDefault("ai.summarize.model", "")
	v.SetDefault("ai.summarize.timeout", 60*time.Second)
	v.SetDefault("ai.summarize.apiKey", "")
	v.SetDefault("ai.summarize.maxRetries", 3) // the whole batch depends on this one call
	v.SetDefault("ai.summarize.temperature", 0.2)
	v.SetDefault("ai.summarize.useSystemPrompts", true)

	// AI Configuration - Evaluate operation defaults
	v.SetDefault("ai.evaluate.provider", "gemini")
	v.SetDefault("ai.evaluate.model", "")
	v.SetDefault("ai.evaluate.timeout", 60*time.Second)
	v.SetDefault("ai.evaluate.apiKey", "")
	v.SetDefault("ai.evaluate.maxRetries", 2)
	v.SetDefault("ai.evaluate.temperature", 0.1) // low temperature for consistent scoring
	v.SetDefault("ai.evaluate.useSystemPrompts", true)

	// AI Configuration - Rubric operation defaults
	v.SetDefault("ai.rubric.provider", "gemini")
	v.SetDefault("ai.rubric.model", "")
	v.SetDefault("ai.rubric.timeout", 90*time.Second) // 14 criteria plus justification take longer
	v.SetDefault("ai.rubric.apiKey", "")
	v.SetDefault("ai.rubric.maxRetries", 2)
	v.SetDefault("ai.rubric.temperature", 0.1)
	v.SetDefault("ai.rubric.useSystemPrompts", true)

	// Circuit Breaker Configuration defaults for all operations
	v.SetDefault("ai.summarize.circuitBreaker.enabled", true)
	v.SetDefault("ai.summarize.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.summarize.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.summarize.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.summarize.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.summarize.circuitBreaker.failureThreshold", 0.6)

	v.SetDefault("ai.evaluate.circuitBreaker.enabled", true)
	v.SetDefault("ai.evaluate.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.evaluate.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.evaluate.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.evaluate.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.evaluate.circuitBreaker.failureThreshold", 0.6)

	v.SetDefault("ai.rubric.circuitBreaker.enabled", true)
	v.SetDefault("ai.rubric.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.rubric.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.rubric.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.rubric.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.rubric.circuitBreaker.failureThreshold", 0.6)

	// Batch Configuration
	v.SetDefault("batch.workers", 1) // sequential reference behavior

	// Report Configuration
	v.SetDefault("report.screenOutput", "screening_results.xlsx")
	v.SetDefault("report.rubricOutput", "rubric_results.xlsx")
	v.SetDefault("report.sheetName", "Sheet1")

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "text")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
}
