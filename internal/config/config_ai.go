package config

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// GetSummarizeConfig returns the AI configuration for job-summarization
// operations with fallback to global config
func (c *Config) GetSummarizeConfig() OperationAIConfig {
	config := c.AI.Summarize

	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.SummarizeJob == "" {
		config.CustomPrompts.SystemPrompts.SummarizeJob = c.AI.CustomPrompts.SystemPrompts.SummarizeJob
	}
	if config.CustomPrompts.UserPrompts.SummarizeJob == "" {
		config.CustomPrompts.UserPrompts.SummarizeJob = c.AI.CustomPrompts.UserPrompts.SummarizeJob
	}

	return config
}

// GetEvaluateConfig returns the AI configuration for resume-evaluation
// operations with fallback to global config
func (c *Config) GetEvaluateConfig() OperationAIConfig {
	config := c.AI.Evaluate

	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.EvaluateResume == "" {
		config.CustomPrompts.SystemPrompts.EvaluateResume = c.AI.CustomPrompts.SystemPrompts.EvaluateResume
	}
	if config.CustomPrompts.UserPrompts.EvaluateResume == "" {
		config.CustomPrompts.UserPrompts.EvaluateResume = c.AI.CustomPrompts.UserPrompts.EvaluateResume
	}

	return config
}

// GetRubricConfig returns the AI configuration for fixed-rubric scoring
// operations with fallback to global config
func (c *Config) GetRubricConfig() OperationAIConfig {
	config := c.AI.Rubric

	c.applyOperationDefaults(&config)

	if config.CustomPrompts.SystemPrompts.ScoreRubric == "" {
		config.CustomPrompts.SystemPrompts.ScoreRubric = c.AI.CustomPrompts.SystemPrompts.ScoreRubric
	}
	if config.CustomPrompts.UserPrompts.ScoreRubric == "" {
		config.CustomPrompts.UserPrompts.ScoreRubric = c.AI.CustomPrompts.UserPrompts.ScoreRubric
	}

	return config
}
