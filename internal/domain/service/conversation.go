package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/diegoclair/slack-attendance-bot/internal/domain"
	"github.com/diegoclair/slack-attendance-bot/internal/llm"
	"github.com/sashabaranov/go-openai"
)

// conversationService forwards prompts to the hosted model, carrying the
// user's session history for context.
type conversationService struct {
	llmClient llm.ChatCompleter
	model     string
	sessions  *sessionStore
}

func newConversation(llmClient llm.ChatCompleter, model string, sessions *sessionStore) *conversationService {
	return &conversationService{
		llmClient: llmClient,
		model:     model,
		sessions:  sessions,
	}
}

// Ask sends the prompt to the model with the user's history prepended. The
// exchange is appended to the session only on success, so a failed call
// leaves the history untouched.
func (s *conversationService) Ask(ctx context.Context, userID, prompt string) (string, error) {
	session := s.sessions.SessionFor(userID)
	turns := s.sessions.Turns(session)

	messages := make([]openai.ChatCompletionMessage, 0, len(turns)+1)
	for _, turn := range turns {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := s.llmClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    s.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("model call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}

	reply := resp.Choices[0].Message.Content
	s.sessions.Append(session, domain.RoleUser, prompt)
	s.sessions.Append(session, domain.RoleAssistant, reply)

	return reply, nil
}
