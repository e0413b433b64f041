// Package openai provides the OpenAI-compatible completion client.
package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/lewisedginton/llm_completions/internal/completion"
	"github.com/lewisedginton/llm_completions/internal/config"
	pkgconfig "github.com/lewisedginton/llm_completions/pkg/config"
	"github.com/lewisedginton/llm_completions/pkg/logger"
	"github.com/lewisedginton/llm_completions/pkg/metrics"
)

const defaultMaxTokens = 4096

// Completion wraps the OpenAI chat completions API. The environment is read
// once at construction; ClientParams re-derives the parameter set from that
// snapshot on every call.
type Completion struct {
	client openai.Client

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

// New creates a new OpenAI completion client. The model name is required;
// credentials and overrides come from the environment (OPENAI_API_KEY,
// OPENAI_BASE_URL, USE_GPUAI) unless an option supplies them.
func New(model string, opts ...Option) (*Completion, error) {
	if model == "" {
		return nil, fmt.Errorf("model name is required")
	}

	var cfg config.OpenAIConfig
	if err := pkgconfig.GetConfigFromEnvVars(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load openai configuration: %w", err)
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
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.logger == nil {
		c.logger = logger.NewLogger(logger.Config{
			Level:   logger.InfoLevel,
			Format:  "json",
			Service: "openai-completion",
		})
	}

	c.client = openai.NewClient(requestOptions(c.ClientParams())...)
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

// Complete performs a non-streaming chat completion.
func (c *Completion) Complete(ctx context.Context, messages []completion.Message) (*completion.Result, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("at least one message is required")
	}

	params := openai.ChatCompletionNewParams{
		Model:     c.model,
		MaxTokens: openai.Int(defaultMaxTokens),
		Messages:  transformMessages(messages),
	}

	c.logger.Debug("sending completion request",
		logger.StringField("model", c.model),
		logger.IntField("messages", len(messages)),
	)

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	duration := time.Since(start)

	if c.metrics != nil {
		var promptTokens, completionTokens int64
		if err == nil {
			promptTokens = resp.Usage.PromptTokens
			completionTokens = resp.Usage.CompletionTokens
		}
		c.metrics.ObserveCompletion(completion.ProviderOpenAI, err, duration, promptTokens, completionTokens)
	}

	if err != nil {
		c.logger.Error("completion request failed", logger.ErrorField(err))
		return nil, fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	return &completion.Result{
		Text: resp.Choices[0].Message.Content,
		Usage: completion.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}
