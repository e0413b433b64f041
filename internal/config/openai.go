package config

import "time"

// OpenAIConfig holds OpenAI-specific configuration.
// BaseURL carries no default: when it is empty and no other source applies,
// the SDK's own endpoint is used.
type OpenAIConfig struct {
	APIKey     string        `env:"OPENAI_API_KEY" yaml:"api_key"`
	BaseURL    string        `env:"OPENAI_BASE_URL" yaml:"base_url"`
	MaxRetries int           `env:"OPENAI_MAX_RETRIES" yaml:"max_retries" default:"3"`
	Timeout    time.Duration `env:"OPENAI_TIMEOUT" yaml:"timeout" default:"30s"`
}
