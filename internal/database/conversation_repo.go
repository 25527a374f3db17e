package database

import (
	"fmt"
	"time"

	"github.com/diegoclair/slack-attendance-bot/internal/domain/contract"
	"github.com/diegoclair/slack-attendance-bot/internal/domain/entity"
)

type conversationRepository struct {
	db dbConn
}

func newConversationRepository(db dbConn) contract.ConversationRepo {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) SaveTurn(turn *entity.ArchivedTurn) error {
	query := `
		INSERT INTO conversations (user_id, role, content, created_at)
		VALUES (?, ?, ?, ?)
	`

	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}

	result, err := r.db.Exec(query,
		turn.UserID,
		turn.Role,
		turn.Content,
		turn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save turn: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	turn.ID = id
	return nil
}

func (r *conversationRepository) ListByUser(userID string) ([]*entity.ArchivedTurn, error) {
	query := `
		SELECT id, user_id, role, content, created_at
		FROM conversations
		WHERE user_id = ?
		ORDER BY id ASC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list turns: %w", err)
	}
	defer rows.Close()

	var turns []*entity.ArchivedTurn
	for rows.Next() {
		turn := &entity.ArchivedTurn{}
		if err := rows.Scan(
			&turn.ID,
			&turn.UserID,
			&turn.Role,
			&turn.Content,
			&turn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate turns: %w", err)
	}

	return turns, nil
}

func (r *conversationRepository) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(`SELECT COUNT(*) FROM conversations WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count turns: %w", err)
	}
	return count, nil
}
