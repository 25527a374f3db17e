package contract

import (
	"context"

	"github.com/diegoclair/slack-attendance-bot/internal/domain/entity"
)

// DataManager aggregates all repository interfaces
type DataManager interface {
	WithTransaction(ctx context.Context, fn func(dm DataManager) error) error
	Conversation() ConversationRepo
}

// ConversationRepo defines the contract for the conversation archive
type ConversationRepo interface {
	SaveTurn(turn *entity.ArchivedTurn) error
	ListByUser(userID string) ([]*entity.ArchivedTurn, error)
	CountByUser(userID string) (int64, error)
}
