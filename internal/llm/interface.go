package llm

import (
	"context"

	"github.com/sashabaranov/go-openai"
)

// ChatCompleter is the minimal subset of openai.Client used by the
// conversation service; it is easy to mock in tests.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}
