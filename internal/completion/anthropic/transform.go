package anthropic

import (
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/lewisedginton/llm_completions/internal/completion"
)

// transformMessages converts conversation messages to Anthropic message
// params. System messages are concatenated into a single system prompt, since
// the messages API carries them outside the conversation.
func transformMessages(messages []completion.Message) ([]anthropic.MessageParam, string) {
	out := make([]anthropic.MessageParam, 0, len(messages))
	var system []string

	for _, msg := range messages {
		switch msg.Role {
		case completion.RoleSystem:
			system = append(system, msg.Content)
		case completion.RoleAssistant:
			out = append(out, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	return out, strings.Join(system, "\n\n")
}

// extractText concatenates the text blocks of a response message.
func extractText(msg *anthropic.Message) string {
	var b strings.Builder
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(text.Text)
		}
	}
	return b.String()
}
