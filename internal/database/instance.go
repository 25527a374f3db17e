package database

import (
	"context"
	"fmt"

	"github.com/diegoclair/slack-attendance-bot/internal/domain/contract"
)

// instance implements DataManager interface
type instance struct {
	db               *DB
	conversationRepo contract.ConversationRepo
}

// NewInstance creates a new database instance with all repositories
func NewInstance(db *DB) contract.DataManager {
	instance := &instance{
		db: db,
	}
	instance.repoInstances()
	return instance
}

// repoInstances initializes all repositories
func (i *instance) repoInstances() {
	i.conversationRepo = newConversationRepository(i.db.conn)
}

// repoInstancesWithConn creates repository instances with custom dbConn
func repoInstancesWithConn(db dbConn) *instance {
	return &instance{
		conversationRepo: newConversationRepository(db),
	}
}

// Conversation returns the conversation archive repository
func (i *instance) Conversation() contract.ConversationRepo {
	return i.conversationRepo
}

// WithTransaction executes a function within a database transaction
func (i *instance) WithTransaction(ctx context.Context, fn func(dm contract.DataManager) error) error {
	tx, err := i.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txInstance := repoInstancesWithConn(tx)
	err = fn(txInstance)
	if err != nil {
		rbErr := tx.Rollback()
		if rbErr != nil {
			return fmt.Errorf("error rolling back transaction: %v, original error: %w", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}
