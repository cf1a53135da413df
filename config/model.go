package config

type ModelConfig struct {
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`

	// Model is "<provider>/<name>", e.g. "openai/gpt-4o-mini".
	Model string `env:"AGENTEVAL_MODEL"`

	// MaxTokens caps a single structured generation. Only Anthropic requires it.
	MaxTokens int `env:"AGENTEVAL_MAX_TOKENS"`
}

func NewModelConfig() *ModelConfig {
	return &ModelConfig{
		Model:     "openai/gpt-4o-mini",
		MaxTokens: 4096,
	}
}

// HasProvider reports whether any model provider has credentials.
func (c *ModelConfig) HasProvider() bool {
	return c.OpenAIAPIKey != "" || c.AnthropicAPIKey != ""
}
