// Package anthropic provides the Anthropic-compatible completion client.
package anthropic

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/lewisedginton/llm_completions/internal/completion"
	"github.com/lewisedginton/llm_completions/internal/config"
	pkgconfig "github.com/lewisedginton/llm_completions/pkg/config"
	"github.com/lewisedginton/llm_completions/pkg/logger"
	"github.com/lewisedginton/llm_completions/pkg/metrics"
)

const defaultMaxTokens = 4096

// Completion wraps the Anthropic messages API. The environment is read once
// at construction; ClientParams re-derives the parameter set from that
// snapshot on every call.
type Completion struct {
	client anthropic.Client

	model           string
	apiKey          string
	envBaseURL      string
	explicitBaseURL string
	gatewayFlag     string
	timeout         time.Duration
	maxRetries      int

	logger  logger.Logger
	metrics *metrics.Metrics
}

// Option configures a Completion.
type Option func(*Completion)

// WithBaseURL sets an explicit base URL, overriding every other source.
func WithBaseURL(url string) Option {
	return func(c *Completion) {
		c.explicitBaseURL = url
	}
}

// WithLogger sets the logger used for request logging.
func WithLogger(log logger.Logger) Option {
	return func(c *Completion) {
		c.logger = log
	}
}

// WithMetrics enables completion metrics collection.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Completion) {
		c.metrics = m
	}
}

// New creates a new Anthropic completion client. The model name is required;
// credentials and overrides come from the environment (ANTHROPIC_API_KEY,
// ANTHROPIC_BASE_URL, USE_GPUAI) unless an option supplies them.
func New(model string, opts ...Option) (*Completion, error) {
	if model == "" {
		return nil, fmt.Errorf("model name is required")
	}

	var cfg config.AnthropicConfig
	if err := pkgconfig.GetConfigFromEnvVars(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load anthropic configuration: %w", err)
	}
	var gateway config.GatewayConfig
	if err := pkgconfig.GetConfigFromEnvVars(&gateway); err != nil {
		return nil, fmt.Errorf("failed to load gateway configuration: %w", err)
	}

	c := &Completion{
		model:       model,
		apiKey:      cfg.APIKey,
		envBaseURL:  cfg.BaseURL,
		gatewayFlag: gateway.UseGateway,
		timeout:     cfg.Timeout,
		maxRetries:  cfg.MaxRetries,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	if c.logger == nil {
		c.logger = logger.NewLogger(logger.Config{
			Level:   logger.InfoLevel,
			Format:  "json",
			Service: "anthropic-completion",
		})
	}

	c.client = anthropic.NewClient(requestOptions(c.ClientParams())...)
	return c, nil
}

// Model returns the model name.
func (c *Completion) Model() string {
	return c.model
}

// ClientParams returns the fully resolved client parameter set. A nil
// BaseURL means the SDK default endpoint applies.
func (c *Completion) ClientParams() completion.ClientParams {
	return completion.ClientParams{
		Model:  c.model,
		APIKey: c.apiKey,
		BaseURL: completion.BaseURLSource{
			Explicit:    c.explicitBaseURL,
			EnvOverride: c.envBaseURL,
			GatewayFlag: c.gatewayFlag,
		}.Resolve(),
		Timeout:    c.timeout,
		MaxRetries: c.maxRetries,
	}
}

// requestOptions converts resolved params into SDK request options.
func requestOptions(params completion.ClientParams) []option.RequestOption {
	opts := []option.RequestOption{
		option.WithAPIKey(params.APIKey),
		option.WithMaxRetries(params.MaxRetries),
		option.WithRequestTimeout(params.Timeout),
	}
	if params.BaseURL != nil {
		opts = append(opts, option.WithBaseURL(*params.BaseURL))
	}
	return opts
}

// Complete performs a non-streaming message completion. System messages are
// lifted out of the conversation into the request's system prompt.
func (c *Completion) Complete(ctx context.Context, messages []completion.Message) (*completion.Result, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("at least one message is required")
	}

	anthropicMessages, systemPrompt := transformMessages(messages)
	if len(anthropicMessages) == 0 {
		return nil, fmt.Errorf("at least one non-system message is required")
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: defaultMaxTokens,
		Messages:  anthropicMessages,
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	c.logger.Debug("sending completion request",
		logger.StringField("model", c.model),
		logger.IntField("messages", len(anthropicMessages)),
	)

	start := time.Now()
	resp, err := c.client.Messages.New(ctx, params)
	duration := time.Since(start)

	if c.metrics != nil {
		var promptTokens, completionTokens int64
		if err == nil {
			promptTokens = resp.Usage.InputTokens
			completionTokens = resp.Usage.OutputTokens
		}
		c.metrics.ObserveCompletion(completion.ProviderAnthropic, err, duration, promptTokens, completionTokens)
	}

	if err != nil {
		c.logger.Error("completion request failed", logger.ErrorField(err))
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	return &completion.Result{
		Text: extractText(resp),
		Usage: completion.Usage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
		},
	}, nil
}
