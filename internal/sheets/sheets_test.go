package sheets

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHeader = []string{"Week", "Date", "Learner", "Theme", "Voice", "Slides", "Body Language"}

func TestRender_TodayMatch(t *testing.T) {
	rows := [][]string{
		testHeader,
		{"W1", "2/6/25", "Alice", "Goroutines", "clear", "ok", "relaxed"},
		{"W1", "4/6/25", "Bob", "SQL windows", "strong", "great", "confident"},
	}

	got := Render(rows, "4/6/25")

	require.NotEmpty(t, got)
	assert.Contains(t, got, "TECH-TALK ALERT")

	// Fields appear in fixed order.
	learner := "Learner: Bob"
	theme := "Theme: SQL windows"
	voice := "Voice: strong"
	slides := "Slides: great"
	body := "Body Language: confident"
	order := []string{learner, theme, voice, slides, body}
	last := -1
	for _, field := range order {
		idx := strings.Index(got, field)
		require.Greater(t, idx, last, "field %q out of order", field)
		last = idx
	}
	assert.NotContains(t, got, "Alice")
}

func TestRender_MultipleMatchesJoinedByBlankLine(t *testing.T) {
	rows := [][]string{
		testHeader,
		{"W1", "4/6/25", "Bob", "SQL", "v", "s", "b"},
		{"W1", "4/6/25", "Carol", "Docker", "v", "s", "b"},
	}

	got := Render(rows, "4/6/25")

	assert.Contains(t, got, "Bob")
	assert.Contains(t, got, "Carol")
	assert.Contains(t, got, "\n\n")
}

func TestRender_NoMatchReturnsEmptyString(t *testing.T) {
	rows := [][]string{
		testHeader,
		{"W1", "2/6/25", "Alice", "Goroutines", "v", "s", "b"},
	}

	assert.Equal(t, "", Render(rows, "4/6/25"))
}

func TestRender_MissingColumnsDegradeToPlaceholder(t *testing.T) {
	rows := [][]string{
		{"Date", "Learner"},
		{"4/6/25", "Bob"},
	}

	got := Render(rows, "4/6/25")

	assert.Contains(t, got, "Learner: Bob")
	assert.Contains(t, got, "Theme: N/A")
	assert.Contains(t, got, "Body Language: N/A")
}

func TestRender_ShortRowDegrades(t *testing.T) {
	rows := [][]string{
		testHeader,
		{"W1", "4/6/25", "Bob"},
	}

	got := Render(rows, "4/6/25")

	assert.Contains(t, got, "Learner: Bob")
	assert.Contains(t, got, "Slides: N/A")
}

func TestRender_NoDateColumn(t *testing.T) {
	rows := [][]string{
		{"Learner", "Theme"},
		{"Bob", "SQL"},
	}

	assert.Equal(t, "", Render(rows, "4/6/25"))
}

func TestTodayKey(t *testing.T) {
	// No leading zeros on day or month, two-digit year.
	assert.Equal(t, "4/6/25", TodayKey(time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "21/10/25", TodayKey(time.Date(2025, 10, 21, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "1/1/07", TodayKey(time.Date(2007, 1, 1, 10, 0, 0, 0, time.UTC)))
}

type stubFetcher struct {
	rows [][]string
	err  error
}

func (s *stubFetcher) FetchRows(ctx context.Context) ([][]string, error) {
	return s.rows, s.err
}

func TestLookup_TalkToday_FetchErrorDegradesToEmpty(t *testing.T) {
	lookup := NewLookup(&stubFetcher{err: errors.New("auth failed")}, func() time.Time {
		return time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC)
	})

	assert.Equal(t, "", lookup.TalkToday(context.Background()))
}

func TestLookup_TalkToday_Match(t *testing.T) {
	rows := [][]string{
		testHeader,
		{"W1", "4/6/25", "Bob", "SQL", "v", "s", "b"},
	}
	lookup := NewLookup(&stubFetcher{rows: rows}, func() time.Time {
		return time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC)
	})

	assert.Contains(t, lookup.TalkToday(context.Background()), "Bob")
}

func TestLookup_TalkToday_NilFetcher(t *testing.T) {
	lookup := NewLookup(nil, time.Now)

	assert.Equal(t, "", lookup.TalkToday(context.Background()))
}
