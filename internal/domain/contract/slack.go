package contract

import "github.com/slack-go/slack"

// SlackClient defines the interface for Slack operations
// This allows mocking in tests while keeping the real implementation simple
type SlackClient interface {
	// AuthTest identifies the bot itself, used to filter self-authored events
	AuthTest() (*slack.AuthTestResponse, error)

	// PostMessage sends a message to a Slack channel or IM
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)

	// GetUserGroups lists the workspace user groups (announcement roles)
	GetUserGroups(options ...slack.GetUserGroupsOption) ([]slack.UserGroup, error)
}
