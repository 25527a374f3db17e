package config

import (
	"testing"

	"github.com/diegoclair/slack-attendance-bot/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_APP_TOKEN", "xapp-test")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ANNOUNCE_CHANNEL_ID", "CANNOUNCE")
	t.Setenv("MONITOR_CHANNEL_ID", "CMONITOR")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MENTION_USER_IDS", "UADMIN1, UADMIN2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "xoxb-test", cfg.SlackBotToken)
	assert.Equal(t, "xapp-test", cfg.SlackAppToken)
	assert.Equal(t, "CANNOUNCE", cfg.AnnounceChannelID)
	assert.Equal(t, []string{"UADMIN1", "UADMIN2"}, cfg.MentionUserIDs)
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("TIMEZONE", "")
	t.Setenv("SKIP_WEEKENDS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, "Europe/Brussels", cfg.Timezone)
	assert.Equal(t, "./user_chats.json", cfg.SnapshotPath)
	assert.Equal(t, "./attendance.db", cfg.DatabasePath)
	assert.True(t, cfg.SkipWeekends)
}

func TestLoadSkipWeekendsDisabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SKIP_WEEKENDS", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.SkipWeekends)
}

func TestLoadMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SLACK_APP_TOKEN", "")
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	// Missing keys are reported together, in order.
	assert.Contains(t, err.Error(), "OPENAI_API_KEY, SLACK_APP_TOKEN")
}

func TestLoadBirthdays(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BIRTHDAYS", "U123=05-25, U456=10-21")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []entity.Birthday{
		{UserID: "U123", MonthDay: "05-25"},
		{UserID: "U456", MonthDay: "10-21"},
	}, cfg.Birthdays)
}

func TestLoadBirthdaysInvalid(t *testing.T) {
	setRequiredEnv(t)

	for _, value := range []string{"U123", "U123=25/05", "=05-25", "U123=5-25"} {
		t.Setenv("BIRTHDAYS", value)
		_, err := Load()
		assert.Error(t, err, "value %q should be rejected", value)
	}
}

func TestDestinations(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ANNOUNCE_ROLE", "Thomas5")
	t.Setenv("ATTENDANCE_LINK", "https://example.com/attendance")

	cfg, err := Load()
	require.NoError(t, err)

	dests := cfg.Destinations()
	require.Len(t, dests, 1)
	assert.Equal(t, "CANNOUNCE", dests[0].ChannelID)
	assert.Equal(t, "Thomas5", dests[0].RoleName)
	assert.Equal(t, "https://example.com/attendance", dests[0].Link)
}
