package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/lewisedginton/llm_completions/internal/completion"
	"github.com/lewisedginton/llm_completions/internal/completion/anthropic"
	"github.com/lewisedginton/llm_completions/internal/completion/openai"
	"github.com/lewisedginton/llm_completions/internal/config"
	pkgconfig "github.com/lewisedginton/llm_completions/pkg/config"
	"github.com/lewisedginton/llm_completions/pkg/logger"
	"github.com/lewisedginton/llm_completions/pkg/metrics"
)

// Completer is the provider-independent surface the CLI talks to.
type Completer interface {
	Complete(ctx context.Context, messages []completion.Message) (*completion.Result, error)
	ClientParams() completion.ClientParams
}

// CompleteCommand returns a command running a one-shot completion
func CompleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "complete",
		Usage:     "Run a one-shot completion against a provider",
		ArgsUsage: "<prompt>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "provider",
				Value: completion.ProviderOpenAI,
				Usage: "Provider to use (openai, anthropic)",
			},
			&cli.StringFlag{
				Name:     "model",
				Usage:    "Model name",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "Explicit base URL, overrides all environment configuration",
			},
			&cli.StringFlag{
				Name:  "system",
				Usage: "Optional system prompt",
			},
		},
		Action: completeAction,
	}
}

func completeAction(ctx *cli.Context) error {
	log := getLogger(ctx)

	prompt := strings.TrimSpace(strings.Join(ctx.Args().Slice(), " "))
	if prompt == "" {
		return fmt.Errorf("a prompt argument is required")
	}

	cfg := &config.Config{}
	if err := pkgconfig.GetConfig(cfg, ctx.String("config-file"), true); err != nil {
		return fmt.Errorf("configuration loading failed: %w", err)
	}

	m := metrics.NewMetrics(log)
	if cfg.Metrics.ExposeMetrics {
		m.Listen(cfg.Metrics.Port)
		defer m.Stop()
	}

	client, err := newCompleter(ctx.String("provider"), ctx.String("model"), ctx.String("base-url"), log, m)
	if err != nil {
		return err
	}

	params := client.ClientParams()
	resolvedURL := "sdk-default"
	if params.BaseURL != nil {
		resolvedURL = *params.BaseURL
	}
	log.Info("running completion",
		logger.StringField("provider", ctx.String("provider")),
		logger.StringField("model", params.Model),
		logger.StringField("base_url", resolvedURL),
	)

	var messages []completion.Message
	if system := ctx.String("system"); system != "" {
		messages = append(messages, completion.Message{Role: completion.RoleSystem, Content: system})
	}
	messages = append(messages, completion.Message{Role: completion.RoleUser, Content: prompt})

	result, err := client.Complete(ctx.Context, messages)
	if err != nil {
		return fmt.Errorf("completion failed: %w", err)
	}

	fmt.Println(result.Text)
	log.Info("completion finished",
		logger.Int64Field("prompt_tokens", result.Usage.PromptTokens),
		logger.Int64Field("completion_tokens", result.Usage.CompletionTokens),
	)
	return nil
}

func newCompleter(provider, model, baseURL string, log logger.Logger, m *metrics.Metrics) (Completer, error) {
	switch provider {
	case completion.ProviderOpenAI:
		opts := []openai.Option{openai.WithLogger(log), openai.WithMetrics(m)}
		if baseURL != "" {
			opts = append(opts, openai.WithBaseURL(baseURL))
		}
		return openai.New(model, opts...)
	case completion.ProviderAnthropic:
		opts := []anthropic.Option{anthropic.WithLogger(log), anthropic.WithMetrics(m)}
		if baseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(baseURL))
		}
		return anthropic.New(model, opts...)
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}
