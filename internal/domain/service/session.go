package service

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/diegoclair/slack-attendance-bot/internal/domain"
	"github.com/diegoclair/slack-attendance-bot/internal/domain/contract"
	"github.com/diegoclair/slack-attendance-bot/internal/domain/entity"
)

// personaPreamble seeds every new session as its first turn, fixing the
// assistant's tone and behavior.
const personaPreamble = `You are a smart and witty Slack bot assistant designed for Becode learners.
Your mission is to support users with:
	1.	Check-ins and check-outs on the Moodle platform:
https://moodle.becode.org/mod/attendance/view.php?id=1433
	2.	Questions related to data science, data analysis, and Python.
You're the helpful sidekick every learner dreams of:
– Clever like a top-tier data scientist
– Funny like a meme lord
– Kind like their favorite mentor

You blend sharp expertise with a playful tone. Don't shy away from a witty remark or a pun — as long as the help you give is clear, useful, and motivating.

Always aim to:
	•	Make the user feel supported, empowered, and excited to keep learning
	•	Be accurate, concise, and approachable in every reply
	•	Avoid long-winded explanations — maximum 1900 characters
	•	Summarize or skip less crucial details when needed
	•	If someone is late to check in or check out, they should bring croissants`

// sessionStore maps user ids to their conversation session. Sessions are
// created lazily and live for the whole process; a JSON snapshot keeps
// them across restarts, and every turn is also archived to the database.
type sessionStore struct {
	mu           sync.Mutex
	sessions     map[string]*entity.Session
	dm           contract.DataManager
	snapshotPath string
}

func newSessionStore(dm contract.DataManager, snapshotPath string) *sessionStore {
	return &sessionStore{
		sessions:     make(map[string]*entity.Session),
		dm:           dm,
		snapshotPath: snapshotPath,
	}
}

// SessionFor returns the user's session, creating it seeded with the
// persona preamble on first contact. At most one session exists per user.
func (s *sessionStore) SessionFor(userID string) *entity.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[userID]; ok {
		return session
	}

	session := &entity.Session{
		UserID: userID,
		Turns: []entity.Turn{
			{Role: domain.RoleSystem, Content: personaPreamble},
		},
	}
	s.sessions[userID] = session
	return session
}

// Append adds a turn to the session, preserving order, and archives it.
// Archive failures are logged, never raised: the in-memory session is the
// source of truth for the conversation.
func (s *sessionStore) Append(session *entity.Session, role, content string) {
	s.mu.Lock()
	session.Turns = append(session.Turns, entity.Turn{Role: role, Content: content})
	s.mu.Unlock()

	if s.dm == nil {
		return
	}
	err := s.dm.Conversation().SaveTurn(&entity.ArchivedTurn{
		UserID:  session.UserID,
		Role:    role,
		Content: content,
	})
	if err != nil {
		log.Printf("Failed to archive turn for user %s: %v", session.UserID, err)
	}
}

// Turns returns a copy of the session's turns, safe to read without
// holding the store's lock.
func (s *sessionStore) Turns(session *entity.Session) []entity.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Turn, len(session.Turns))
	copy(out, session.Turns)
	return out
}

// Snapshot writes all sessions to the snapshot file, keyed by user id.
func (s *sessionStore) Snapshot() error {
	s.mu.Lock()
	flat := make(map[string][]entity.Turn, len(s.sessions))
	for userID, session := range s.sessions {
		turns := make([]entity.Turn, len(session.Turns))
		copy(turns, session.Turns)
		flat[userID] = turns
	}
	s.mu.Unlock()

	data, err := json.MarshalIndent(flat, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %w", err)
	}

	if err := os.WriteFile(s.snapshotPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	log.Printf("Snapshotted %d sessions to %s", len(flat), s.snapshotPath)
	return nil
}

// Restore loads sessions from the snapshot file. A missing file is not an
// error, the store just starts empty.
func (s *sessionStore) Restore() error {
	data, err := os.ReadFile(s.snapshotPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	var flat map[string][]entity.Turn
	if err := json.Unmarshal(data, &flat); err != nil {
		return fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, turns := range flat {
		s.sessions[userID] = &entity.Session{UserID: userID, Turns: turns}
	}

	log.Printf("Restored %d sessions from %s", len(flat), s.snapshotPath)
	return nil
}
