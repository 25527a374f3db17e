package entity

import "time"

// Turn is a single exchange in a conversation, either side.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session holds the ordered conversation history for one user.
// The first turn is always the persona preamble.
type Session struct {
	UserID string `json:"user_id"`
	Turns  []Turn `json:"turns"`
}

// Destination is a channel that receives scheduled announcements,
// together with the user group to mention and the link to include.
type Destination struct {
	ChannelID string
	RoleName  string
	Link      string
}

// Birthday maps a Slack user to a month-day greeting date.
type Birthday struct {
	UserID   string
	MonthDay string // MM-DD
}

// ArchivedTurn is a conversation turn as stored in the database.
type ArchivedTurn struct {
	ID        int64     `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Role      string    `json:"role" db:"role"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
