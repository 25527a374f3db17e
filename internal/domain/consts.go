package domain

// Conversation turn roles, matching the model API's chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Announcement categories fired by the timetable.
const (
	CategoryCheckIn  = "CHECK-IN"
	CategoryCheckOut = "CHECK-OUT"
	CategoryBreak    = "BREAKTIME"
	CategoryLunch    = "LUNCHTIME"
)

// DefaultTimezone is the wall-clock timezone for the timetable.
const DefaultTimezone = "Europe/Brussels"

// TimeKeywords trigger the canned current-time reply on mentions.
var TimeKeywords = []string{"what time", "time"}

// TalkKeywords trigger the tech-talk lookup on mentions.
var TalkKeywords = []string{"tech-talk", "tech talk"}
