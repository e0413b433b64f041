// Package completion holds the types shared by the provider completion
// clients: the resolved client parameter set, the base-URL precedence
// resolver, and the minimal request/response shapes.
package completion

import "time"

// Provider name constants, used for logging and metric labels.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// ClientParams is the parameter set handed to the underlying vendor SDK
// client. It is re-derived on every request, never cached.
type ClientParams struct {
	Model  string
	APIKey string

	// BaseURL is nil when no configuration source overrides the SDK default.
	// nil and "" are distinct: an empty string is never substituted for an
	// absent value.
	BaseURL *string

	Timeout    time.Duration
	MaxRetries int
}

// Message is one turn of a completion conversation.
type Message struct {
	Role    string
	Content string
}

// Message role constants.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Usage reports token consumption for one completion call.
type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
}

// Result is the provider-independent outcome of a completion call.
type Result struct {
	Text  string
	Usage Usage
}
