package config

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testProviderConfig struct {
	APIKey     string        `env:"TEST_API_KEY" yaml:"api_key" required:"true"`
	BaseURL    string        `env:"TEST_BASE_URL" yaml:"base_url"`
	MaxRetries int           `env:"TEST_MAX_RETRIES" yaml:"max_retries" default:"3"`
	Timeout    time.Duration `env:"TEST_TIMEOUT" yaml:"timeout" default:"30s"`
}

type testConfig struct {
	Provider testProviderConfig `yaml:"provider,inline"`

	LogLevel string   `env:"TEST_LOG_LEVEL" yaml:"log_level" default:"info"`
	Debug    bool     `env:"TEST_DEBUG" yaml:"debug" default:"false"`
	Features []string `env:"TEST_FEATURES" yaml:"features"`
}

func TestGetConfigFromEnvVars(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
		want    testConfig
		wantErr bool
	}{
		{
			name: "All defaults, except required field",
			envVars: map[string]string{
				"TEST_API_KEY": "test-key",
			},
			want: testConfig{
				Provider: testProviderConfig{
					APIKey:     "test-key",
					BaseURL:    "",
					MaxRetries: 3,
					Timeout:    30 * time.Second,
				},
				LogLevel: "info",
				Debug:    false,
			},
			wantErr: false,
		},
		{
			name: "Override with environment variables",
			envVars: map[string]string{
				"TEST_API_KEY":     "env-key",
				"TEST_BASE_URL":    "https://custom-api.example.com/v1",
				"TEST_MAX_RETRIES": "5",
				"TEST_TIMEOUT":     "10s",
				"TEST_LOG_LEVEL":   "debug",
				"TEST_DEBUG":       "true",
				"TEST_FEATURES":    "feature1, feature2,feature3",
			},
			want: testConfig{
				Provider: testProviderConfig{
					APIKey:     "env-key",
					BaseURL:    "https://custom-api.example.com/v1",
					MaxRetries: 5,
					Timeout:    10 * time.Second,
				},
				LogLevel: "debug",
				Debug:    true,
				Features: []string{"feature1", "feature2", "feature3"},
			},
			wantErr: false,
		},
		{
			name:    "Missing required field",
			envVars: map[string]string{},
			wantErr: true,
		},
		{
			name: "Invalid int value",
			envVars: map[string]string{
				"TEST_API_KEY":     "test-key",
				"TEST_MAX_RETRIES": "not-a-number",
			},
			wantErr: true,
		},
		{
			name: "Invalid duration value",
			envVars: map[string]string{
				"TEST_API_KEY": "test-key",
				"TEST_TIMEOUT": "soon",
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tc.envVars {
				_ = os.Setenv(k, v)
			}

			var got testConfig
			err := GetConfigFromEnvVars(&got)

			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.want, got)
			}

			os.Clearenv()
		})
	}
}

func TestGetConfigEnvWinsOverFile(t *testing.T) {
	yamlContent := `
log_level: warn
api_key: file-key
max_retries: 7
`
	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	assert.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	_, err = tmpFile.WriteString(yamlContent)
	assert.NoError(t, err)
	tmpFile.Close()

	os.Clearenv()
	os.Setenv("TEST_API_KEY", "env-key")

	var cfg testConfig
	err = GetConfig(&cfg, tmpFile.Name(), false)
	assert.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Provider.APIKey, "env should win over file")
	assert.Equal(t, 7, cfg.Provider.MaxRetries, "file value should survive when env is unset")
	assert.Equal(t, "warn", cfg.LogLevel)

	os.Clearenv()
}

func TestGetConfigWithEnvInterpolation(t *testing.T) {
	yamlContent := `
log_level: info
api_key: ${TEST_INTERPOLATED_KEY}
`
	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	assert.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	_, err = tmpFile.WriteString(yamlContent)
	assert.NoError(t, err)
	tmpFile.Close()

	os.Clearenv()
	os.Setenv("TEST_INTERPOLATED_KEY", "secret-from-env")

	var cfg testConfig
	err = GetConfig(&cfg, tmpFile.Name(), false)
	assert.NoError(t, err)
	assert.Equal(t, "secret-from-env", cfg.Provider.APIKey)

	os.Clearenv()
}

func TestGetConfigMissingFileFallsBackWhenAllowed(t *testing.T) {
	os.Clearenv()
	os.Setenv("TEST_API_KEY", "env-key")

	var cfg testConfig
	err := GetConfig(&cfg, "/nonexistent/config.yaml", true)
	assert.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Provider.APIKey)

	var strict testConfig
	err = GetConfig(&strict, "/nonexistent/config.yaml", false)
	assert.Error(t, err)

	os.Clearenv()
}

type validatedConfig struct {
	Port int `env:"TEST_PORT" yaml:"port" default:"8080"`
}

func (c validatedConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1-65535, got %d", c.Port)
	}
	return nil
}

func TestGetConfigFromEnvVarsRunsValidator(t *testing.T) {
	os.Clearenv()
	os.Setenv("TEST_PORT", "99999")

	var cfg validatedConfig
	err := GetConfigFromEnvVars(&cfg)
	assert.Error(t, err)

	os.Clearenv()
	var ok validatedConfig
	assert.NoError(t, GetConfigFromEnvVars(&ok))
	assert.Equal(t, 8080, ok.Port)
}

type ptrValidatedConfig struct {
	Port int `env:"TEST_PORT" yaml:"port" default:"8080"`
}

func (c *ptrValidatedConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1-65535, got %d", c.Port)
	}
	return nil
}

func TestGetConfigFromEnvVarsRunsPointerValidator(t *testing.T) {
	os.Clearenv()
	os.Setenv("TEST_PORT", "99999")

	var cfg ptrValidatedConfig
	err := GetConfigFromEnvVars(&cfg)
	assert.Error(t, err, "pointer-receiver Validate must fire")

	os.Clearenv()
	var ok ptrValidatedConfig
	assert.NoError(t, GetConfigFromEnvVars(&ok))
	assert.Equal(t, 8080, ok.Port)
}
