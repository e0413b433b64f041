package config

import "time"

// AnthropicConfig holds Anthropic-specific configuration.
// BaseURL is named symmetrically with OPENAI_BASE_URL; like it, it carries no
// default so that absence falls through to the SDK endpoint.
type AnthropicConfig struct {
	APIKey     string        `env:"ANTHROPIC_API_KEY" yaml:"api_key"`
	BaseURL    string        `env:"ANTHROPIC_BASE_URL" yaml:"base_url"`
	MaxRetries int           `env:"ANTHROPIC_MAX_RETRIES" yaml:"max_retries" default:"3"`
	Timeout    time.Duration `env:"ANTHROPIC_TIMEOUT" yaml:"timeout" default:"30s"`
}
