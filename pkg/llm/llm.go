package llm

import "context"

// ChatModel sends one system and one user prompt and returns the reply text.
type ChatModel interface {
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
