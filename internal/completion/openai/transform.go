package openai

import (
	"github.com/openai/openai-go"

	"github.com/lewisedginton/llm_completions/internal/completion"
)

// transformMessages converts conversation messages to the OpenAI union type.
// Unknown roles are treated as user messages.
func transformMessages(messages []completion.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case completion.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case completion.RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}
