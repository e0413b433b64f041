// Package config defines the provider and ambient configuration structs for
// the completion clients. Structs are loaded through pkg/config, which
// processes the env/yaml/default/required tags.
package config

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/lewisedginton/llm_completions/pkg/logger"
)

// Config aggregates all application configuration. The provider sections are
// real yaml mappings, not inline: OpenAI and Anthropic share key names
// (api_key, base_url, ...) and inlining them would collide.
type Config struct {
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	Gateway   GatewayConfig   `yaml:"gateway"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var result error

	validLevels := []string{"debug", "info", "warn", "error"}
	level := strings.ToLower(c.Logging.Level)
	valid := false
	for _, validLevel := range validLevels {
		if level == validLevel {
			valid = true
			break
		}
	}
	if !valid {
		result = multierror.Append(result, fmt.Errorf("log_level must be one of [debug, info, warn, error], got %q", c.Logging.Level))
	}

	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		result = multierror.Append(result, fmt.Errorf("log_format must be either 'json' or 'text', got %q", c.Logging.Format))
	}

	if c.OpenAI.MaxRetries < 0 {
		result = multierror.Append(result, fmt.Errorf("openai max_retries cannot be negative"))
	}
	if c.Anthropic.MaxRetries < 0 {
		result = multierror.Append(result, fmt.Errorf("anthropic max_retries cannot be negative"))
	}

	if c.OpenAI.Timeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("openai timeout must be greater than 0"))
	}
	if c.Anthropic.Timeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("anthropic timeout must be greater than 0"))
	}

	if c.Metrics.ExposeMetrics && (c.Metrics.Port < 1 || c.Metrics.Port > 65535) {
		result = multierror.Append(result, fmt.Errorf("metrics port must be between 1-65535, got %d", c.Metrics.Port))
	}

	return result
}

// GetLogLevel returns the parsed logger level
func (c *Config) GetLogLevel() logger.Level {
	return logger.ParseLevel(strings.ToLower(c.Logging.Level))
}

// LogConfig logs the current configuration (without sensitive data)
func (c *Config) LogConfig(log logger.Logger) {
	log.Info("Configuration loaded",
		logger.BoolField("openai_key_configured", c.OpenAI.APIKey != ""),
		logger.BoolField("anthropic_key_configured", c.Anthropic.APIKey != ""),
		logger.BoolField("openai_base_url_overridden", c.OpenAI.BaseURL != ""),
		logger.BoolField("anthropic_base_url_overridden", c.Anthropic.BaseURL != ""),
		logger.StringField("use_gateway", c.Gateway.UseGateway),
		logger.StringField("log_level", c.Logging.Level),
		logger.StringField("log_format", c.Logging.Format),
		logger.BoolField("metrics_exposed", c.Metrics.ExposeMetrics),
	)
}
