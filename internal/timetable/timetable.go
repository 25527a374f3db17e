// Package timetable holds the static daily announcement schedule and the
// time math around it. The trigger set is fixed for the process lifetime.
package timetable

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/diegoclair/slack-attendance-bot/internal/domain"
)

const (
	checkInTemplate  = "🤖 {role} bip boup bip boup CHECK-IN 🤖 \nMoodle link : {link}"
	checkOutTemplate = "🤖 {role} bip boup bip boup CHECK-OUT 🤖 \nMoodle link : {link}"
	breakTemplate    = "🤖 {role} bip boup bip boup BREAK-TIME ☕️☕️ 🤖"
	lunchAddendum    = "\n 🤖 It's LUNCH-TIME 🌯 🤖"

	endOfDayMessage   = "🤖 END OF THE DAY! 🍻"
	afterHoursMessage = "🤖 Stop playing with me, working time is over 🍻🍻"
)

// Active working window. Queries outside it get a distinguished answer.
const (
	workdayStartHour = 9
	workdayEndHour   = 17
)

// Timetable is the static set of HH:MM triggers per category.
type Timetable struct {
	CheckIn  []string
	CheckOut []string
	Break    []string
	Lunch    []string

	// TalkTime is the trigger whose announcement gets the tech-talk
	// lookup appended.
	TalkTime string
}

// Default returns the canonical weekday timetable.
func Default() *Timetable {
	return &Timetable{
		CheckIn:  []string{"08:55", "13:25"},
		CheckOut: []string{"12:30", "17:00"},
		Break:    []string{"11:00", "15:00"},
		Lunch:    []string{"12:30"},
		TalkTime: "13:25",
	}
}

// FireTimes returns the distinct trigger times, sorted, for the scheduler.
func (t *Timetable) FireTimes() []string {
	seen := make(map[string]bool)
	var times []string
	for _, hhmm := range t.all() {
		if !seen[hhmm] {
			seen[hhmm] = true
			times = append(times, hhmm)
		}
	}
	sort.Strings(times)
	return times
}

// MessageFor returns the announcement template for a trigger time, with
// {role} and {link} placeholders left in, or "" when the time matches no
// trigger. A time that is also in the lunch list gets the lunch addendum
// appended to whichever template matched.
func (t *Timetable) MessageFor(hhmm string) string {
	var template string
	switch {
	case contains(t.CheckIn, hhmm):
		template = checkInTemplate
	case contains(t.CheckOut, hhmm):
		template = checkOutTemplate
	case contains(t.Break, hhmm):
		template = breakTemplate
	default:
		return ""
	}

	if contains(t.Lunch, hhmm) {
		template += lunchAddendum
	}
	return template
}

// UntilNext reports how long until the next trigger of the day, with a
// distinguished answer before the working window, after it, and once no
// trigger remains. Triggers at identical times keep declaration order.
func (t *Timetable) UntilNext(now time.Time) string {
	if now.Hour() >= workdayEndHour {
		return afterHoursMessage
	}

	type event struct {
		at       time.Time
		category string
	}

	var events []event
	for _, e := range t.categorized() {
		hour, minute, err := ParseHHMM(e.hhmm)
		if err != nil {
			continue
		}
		at := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		events = append(events, event{at: at, category: e.category})
	}

	// Stable keeps declaration order for triggers at the same time.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].at.Before(events[j].at)
	})

	var next *event
	for i := range events {
		if now.Before(events[i].at) {
			next = &events[i]
			break
		}
	}
	if next == nil {
		return endOfDayMessage
	}

	remaining := next.at.Sub(now)
	hours := int(remaining.Hours())
	minutes := int(remaining.Minutes()) % 60

	if now.Hour() < workdayStartHour {
		return fmt.Sprintf("🤖 Take a good coffee, work day will start in %dh %dmin ☕️", hours, minutes)
	}
	return fmt.Sprintf("🤖 Next %s in %dh %dmin", next.category, hours, minutes)
}

type categorizedTime struct {
	hhmm     string
	category string
}

// categorized lists every trigger with its category, in declaration order.
func (t *Timetable) categorized() []categorizedTime {
	var out []categorizedTime
	for _, hhmm := range t.CheckIn {
		out = append(out, categorizedTime{hhmm, domain.CategoryCheckIn})
	}
	for _, hhmm := range t.CheckOut {
		out = append(out, categorizedTime{hhmm, domain.CategoryCheckOut})
	}
	for _, hhmm := range t.Break {
		out = append(out, categorizedTime{hhmm, domain.CategoryBreak})
	}
	for _, hhmm := range t.Lunch {
		out = append(out, categorizedTime{hhmm, domain.CategoryLunch})
	}
	return out
}

func (t *Timetable) all() []string {
	var out []string
	for _, e := range t.categorized() {
		out = append(out, e.hhmm)
	}
	return out
}

// ParseHHMM splits an "HH:MM" trigger time into its components.
func ParseHHMM(hhmm string) (hour, minute int, err error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time format: %s", hhmm)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hour in %s: %w", hhmm, err)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minute in %s: %w", hhmm, err)
	}
	return hour, minute, nil
}

func contains(times []string, hhmm string) bool {
	for _, t := range times {
		if t == hhmm {
			return true
		}
	}
	return false
}
