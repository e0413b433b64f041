package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	pkgconfig "github.com/lewisedginton/llm_completions/pkg/config"
)

func TestConfigDefaults(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	var cfg Config
	err := pkgconfig.GetConfigFromEnvVars(&cfg)
	assert.NoError(t, err)

	assert.Equal(t, "", cfg.OpenAI.BaseURL, "base URL must default to empty, not a vendor URL")
	assert.Equal(t, "", cfg.Anthropic.BaseURL)
	assert.Equal(t, "", cfg.Gateway.UseGateway)
	assert.Equal(t, 3, cfg.OpenAI.MaxRetries)
	assert.Equal(t, 30*time.Second, cfg.Anthropic.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.NoError(t, cfg.Validate())
}

func TestConfigFromEnvironment(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	os.Setenv("OPENAI_API_KEY", "test-key")
	os.Setenv("OPENAI_BASE_URL", "https://custom-api.example.com/v1")
	os.Setenv("ANTHROPIC_API_KEY", "other-key")
	os.Setenv("USE_GPUAI", "true")
	os.Setenv("LOG_LEVEL", "debug")

	var cfg Config
	err := pkgconfig.GetConfigFromEnvVars(&cfg)
	assert.NoError(t, err)

	assert.Equal(t, "test-key", cfg.OpenAI.APIKey)
	assert.Equal(t, "https://custom-api.example.com/v1", cfg.OpenAI.BaseURL)
	assert.Equal(t, "other-key", cfg.Anthropic.APIKey)
	assert.Equal(t, "true", cfg.Gateway.UseGateway)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestConfigFromFile(t *testing.T) {
	yamlContent := `
openai:
  api_key: file-openai-key
  base_url: https://file.example.com/v1
anthropic:
  api_key: file-anthropic-key
gateway:
  use_gpuai: "yes"
logging:
  level: debug
metrics:
  metrics_port: 9999
`
	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	assert.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	_, err = tmpFile.WriteString(yamlContent)
	assert.NoError(t, err)
	tmpFile.Close()

	os.Clearenv()
	defer os.Clearenv()
	os.Setenv("OPENAI_API_KEY", "env-openai-key")

	var cfg Config
	err = pkgconfig.GetConfig(&cfg, tmpFile.Name(), false)
	assert.NoError(t, err)

	assert.Equal(t, "env-openai-key", cfg.OpenAI.APIKey, "env should win over file")
	assert.Equal(t, "https://file.example.com/v1", cfg.OpenAI.BaseURL)
	assert.Equal(t, "file-anthropic-key", cfg.Anthropic.APIKey)
	assert.Equal(t, "yes", cfg.Gateway.UseGateway)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 9999, cfg.Metrics.Port)
	assert.Equal(t, "json", cfg.Logging.Format, "defaults still fill unset fields")
	assert.Equal(t, 3, cfg.OpenAI.MaxRetries)
	assert.Equal(t, 30*time.Second, cfg.Anthropic.Timeout)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
		{
			name:    "negative retries",
			mutate:  func(c *Config) { c.OpenAI.MaxRetries = -1 },
			wantErr: true,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Anthropic.Timeout = 0 },
			wantErr: true,
		},
		{
			name: "bad metrics port only when exposed",
			mutate: func(c *Config) {
				c.Metrics.ExposeMetrics = true
				c.Metrics.Port = 99999
			},
			wantErr: true,
		},
		{
			name:    "bad metrics port ignored when not exposed",
			mutate:  func(c *Config) { c.Metrics.Port = 99999 },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				OpenAI:    OpenAIConfig{MaxRetries: 3, Timeout: 30 * time.Second},
				Anthropic: AnthropicConfig{MaxRetries: 3, Timeout: 30 * time.Second},
				Logging:   LoggingConfig{Level: "info", Format: "json"},
				Metrics:   MetricsConfig{Port: 9090},
			}
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
