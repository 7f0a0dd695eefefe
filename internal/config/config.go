package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
// API Key Precedence Order:
// 1. Config File values
// 2. Environment Variables (RESUMESCREEN_AI_APIKEY)
// 3. GEMINI_API_KEY environment fallback - Lowest priority
type Config struct {
	AI     AIConfig     `mapstructure:"ai"`
	Batch  BatchConfig  `mapstructure:"batch"`
	Report ReportConfig `mapstructure:"report"`
	App    AppConfig    `mapstructure:"app"`
}

// AIConfig holds AI service configuration
type AIConfig struct {
	// Global/fallback configuration shared by every operation
	Provider         string        `mapstructure:"provider"`
	Model            string        `mapstructure:"model"`
	Timeout          time.Duration `mapstructure:"timeout"`
	APIKey           string        `mapstructure:"apiKey"`
	MaxRetries       int           `mapstructure:"maxRetries"`
	Temperature      float32       `mapstructure:"temperature"`
	UseSystemPrompts bool          `mapstructure:"useSystemPrompts"`
	CustomPrompts    PromptConfig  `mapstructure:"customPrompts"`

	// Operation-specific configurations
	Summarize OperationAIConfig `mapstructure:"summarize"`
	Evaluate  OperationAIConfig `mapstructure:"evaluate"`
	Rubric    OperationAIConfig `mapstructure:"rubric"`
}

// CircuitBreakerConfig represents circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`          // Whether circuit breaker is enabled
	MaxRequests      uint32        `mapstructure:"maxRequests"`      // Max requests allowed when half-open
	Interval         time.Duration `mapstructure:"interval"`         // Interval to clear counts
	Timeout          time.Duration `mapstructure:"timeout"`          // Timeout for half-open to open
	MinRequests      uint32        `mapstructure:"minRequests"`      // Minimum requests before tripping
	FailureThreshold float64       `mapstructure:"failureThreshold"` // Failure ratio threshold (0.0-1.0)
}

// OperationAIConfig holds AI configuration for specific operations
type OperationAIConfig struct {
	Provider         string               `mapstructure:"provider"`
	Model            string               `mapstructure:"model"`
	Timeout          *time.Duration       `mapstructure:"timeout"`
	APIKey           string               `mapstructure:"apiKey"`
	MaxRetries       *int                 `mapstructure:"maxRetries"`
	Temperature      *float32             `mapstructure:"temperature"`
	UseSystemPrompts *bool                `mapstructure:"useSystemPrompts"`
	CustomPrompts    PromptConfig         `mapstructure:"customPrompts"`
	CircuitBreaker   CircuitBreakerConfig `mapstructure:"circuitBreaker"`
}

// PromptConfig holds configuration for customizable prompts
type PromptConfig struct {
	SystemPrompts SystemPrompts `mapstructure:"systemPrompts"`
	UserPrompts   UserPrompts   `mapstructure:"userPrompts"`
}

// SystemPrompts contains system-level instructions
type SystemPrompts struct {
	SummarizeJob   string `mapstructure:"summarizeJob"`
	EvaluateResume string `mapstructure:"evaluateResume"`
	ScoreRubric    string `mapstructure:"scoreRubric"`
}

// UserPrompts contains user-level prompt templates
type UserPrompts struct {
	SummarizeJob   string `mapstructure:"summarizeJob"`
	EvaluateResume string `mapstructure:"evaluateResume"`
	ScoreRubric    string `mapstructure:"scoreRubric"`
}

// BatchConfig holds batch orchestration configuration
type BatchConfig struct {
	Workers int `mapstructure:"workers"` // fixed-size worker pool; 1 = sequential
}

// ReportConfig holds report writer configuration
type ReportConfig struct {
	ScreenOutput string `mapstructure:"screenOutput"` // default output path for screen runs
	RubricOutput string `mapstructure:"rubricOutput"` // default output path for rubric runs
	SheetName    string `mapstructure:"sheetName"`
}

// AppConfig holds general application configuration
type AppConfig struct {
	LogLevel         string   `mapstructure:"logLevel"`
	DefaultFormat    string   `mapstructure:"defaultFormat"`
	SupportedFormats []string `mapstructure:"supportedFormats"`
}

// LoadConfig loads configuration from environment variables and a config file
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Set up environment variable handling
	v.SetEnvPrefix("RESUMESCREEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set up config file handling
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/resumescreen/")
	v.AddConfigPath("$HOME/.resumescreen")
	v.AddConfigPath(".")

	// Read the config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal the configuration into the Config struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyFallbacks()

	return &config, nil
}

// applyFallbacks fills the API key from the ambient environment when neither
// the config file nor the prefixed variable supplied one. GEMINI_API_KEY is
// what the genai tooling conventionally exports.
func (c *Config) applyFallbacks() {
	if c.AI.APIKey == "" {
		c.AI.APIKey = os.Getenv("GEMINI_API_KEY")
	}
}
