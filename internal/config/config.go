package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/diegoclair/slack-attendance-bot/internal/domain"
	"github.com/diegoclair/slack-attendance-bot/internal/domain/entity"
)

type Config struct {
	SlackBotToken     string
	SlackAppToken     string
	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAIBaseURL     string
	AnnounceChannelID string
	MonitorChannelID  string
	AnnounceRole      string
	AttendanceLink    string
	Timezone          string
	DatabasePath      string
	SnapshotPath      string
	CredentialsFile   string
	SheetID           string
	MentionUserIDs    []string
	Birthdays         []entity.Birthday
	SkipWeekends      bool
}

// Load reads configuration from the environment. Required values that are
// missing are reported together so a broken deployment fails once, at
// startup, with the full list.
func Load() (*Config, error) {
	cfg := &Config{
		SlackBotToken:     os.Getenv("SLACK_BOT_TOKEN"),
		SlackAppToken:     os.Getenv("SLACK_APP_TOKEN"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		AnnounceChannelID: os.Getenv("ANNOUNCE_CHANNEL_ID"),
		MonitorChannelID:  os.Getenv("MONITOR_CHANNEL_ID"),
		AnnounceRole:      getEnv("ANNOUNCE_ROLE", "Thomas5"),
		AttendanceLink:    getEnv("ATTENDANCE_LINK", "https://moodle.becode.org/mod/attendance/view.php?id=1433"),
		Timezone:          getEnv("TIMEZONE", domain.DefaultTimezone),
		DatabasePath:      getEnv("DATABASE_PATH", "./attendance.db"),
		SnapshotPath:      getEnv("SNAPSHOT_PATH", "./user_chats.json"),
		CredentialsFile:   getEnv("GOOGLE_CREDENTIALS_FILE", "./service-account.json"),
		SheetID:           os.Getenv("SHEET_ID"),
		MentionUserIDs:    splitList(os.Getenv("MENTION_USER_IDS")),
		SkipWeekends:      getEnv("SKIP_WEEKENDS", "true") != "false",
	}

	birthdays, err := parseBirthdays(os.Getenv("BIRTHDAYS"))
	if err != nil {
		return nil, err
	}
	cfg.Birthdays = birthdays

	required := map[string]string{
		"SLACK_BOT_TOKEN":     cfg.SlackBotToken,
		"SLACK_APP_TOKEN":     cfg.SlackAppToken,
		"OPENAI_API_KEY":      cfg.OpenAIAPIKey,
		"ANNOUNCE_CHANNEL_ID": cfg.AnnounceChannelID,
		"MONITOR_CHANNEL_ID":  cfg.MonitorChannelID,
	}

	var missing []string
	for key, value := range required {
		if value == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// Destinations builds the static announcement destination set from the
// configured channel, role and link.
func (c *Config) Destinations() []entity.Destination {
	return []entity.Destination{
		{
			ChannelID: c.AnnounceChannelID,
			RoleName:  c.AnnounceRole,
			Link:      c.AttendanceLink,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseBirthdays parses "U123=05-25,U456=10-21" into birthday entries.
func parseBirthdays(value string) ([]entity.Birthday, error) {
	var out []entity.Birthday
	for _, part := range splitList(value) {
		userID, monthDay, found := strings.Cut(part, "=")
		if !found || userID == "" || len(monthDay) != 5 || monthDay[2] != '-' {
			return nil, fmt.Errorf("invalid BIRTHDAYS entry %q, expected USERID=MM-DD", part)
		}
		out = append(out, entity.Birthday{UserID: userID, MonthDay: monthDay})
	}
	return out, nil
}
