// Package llm wraps the hosted model client construction.
package llm

import (
	"github.com/sashabaranov/go-openai"
)

// NewClient creates the chat completion client. An empty baseURL keeps the
// provider default.
func NewClient(apiKey, baseURL string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return openai.NewClientWithConfig(config)
}
