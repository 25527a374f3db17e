package contract

import (
	"context"
	"time"

	"github.com/diegoclair/slack-attendance-bot/internal/domain/entity"
)

// ConversationService forwards a user prompt to the model with the user's
// session as context.
type ConversationService interface {
	Ask(ctx context.Context, userID, prompt string) (string, error)
}

// SessionStore owns the per-user conversation sessions.
type SessionStore interface {
	SessionFor(userID string) *entity.Session
	Append(session *entity.Session, role, content string)
	Snapshot() error
	Restore() error
}

// TalkFinder looks up today's tech-talk announcement. An empty string
// means no talk today (lookup failures degrade to the same answer).
type TalkFinder interface {
	TalkToday(ctx context.Context) string
}

// Dispatcher sends the scheduled announcement for one trigger time.
type Dispatcher interface {
	SendScheduledMessage(ctx context.Context, hhmm string, now time.Time)
}
