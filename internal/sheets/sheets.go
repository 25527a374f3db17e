// Package sheets looks up the day's tech-talk announcement in a Google
// Sheet. Fetching and rendering are split so the rendering rules can be
// tested without the API.
package sheets

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// The sheet has a decorative first row; the header row with the column
// names sits on row 2, data starts on row 3.
const readRange = "A2:Z"

// Columns resolved by name from the header row.
var wantedColumns = []string{"Date", "Learner", "Theme", "Voice", "Slides", "Body Language"}

const missingField = "N/A"

// RowFetcher retrieves the raw sheet rows (header row first).
type RowFetcher interface {
	FetchRows(ctx context.Context) ([][]string, error)
}

type apiFetcher struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewFetcher builds a Sheets API fetcher authenticated with a service
// account keyfile.
func NewFetcher(ctx context.Context, credentialsFile, spreadsheetID string) (RowFetcher, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &apiFetcher{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (f *apiFetcher) FetchRows(ctx context.Context) ([][]string, error) {
	resp, err := f.svc.Spreadsheets.Values.Get(f.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet values: %w", err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprintf("%v", cell))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// Lookup answers "what tech talk is scheduled today".
type Lookup struct {
	fetcher RowFetcher
	now     func() time.Time
}

// NewLookup wires a Lookup on top of a fetcher. now decides what "today"
// means (timezone included).
func NewLookup(fetcher RowFetcher, now func() time.Time) *Lookup {
	return &Lookup{fetcher: fetcher, now: now}
}

// TalkToday returns the formatted tech-talk block(s) scheduled for today,
// or "" when there is none. Fetch and auth failures are logged and degrade
// to "", indistinguishable from a day without a talk.
func (l *Lookup) TalkToday(ctx context.Context) string {
	if l.fetcher == nil {
		return ""
	}

	rows, err := l.fetcher.FetchRows(ctx)
	if err != nil {
		log.Printf("Error fetching tech-talk data: %v", err)
		return ""
	}

	return Render(rows, TodayKey(l.now()))
}

// TodayKey formats a date the way the sheet holds it: D/M/YY without
// leading zeros.
func TodayKey(now time.Time) string {
	return fmt.Sprintf("%d/%d/%02d", now.Day(), int(now.Month()), now.Year()%100)
}

// Render scans the rows (header first) for entries dated today and formats
// one announcement block per match, blank-line separated. Missing columns
// degrade the field to a placeholder instead of failing the lookup.
func Render(rows [][]string, today string) string {
	if len(rows) == 0 {
		return ""
	}

	header := rows[0]
	index := make(map[string]int, len(wantedColumns))
	for _, name := range wantedColumns {
		index[name] = -1
		for i, col := range header {
			if col == name {
				index[name] = i
				break
			}
		}
	}

	dateIdx := index["Date"]
	if dateIdx == -1 {
		return ""
	}

	var blocks []string
	for _, row := range rows[1:] {
		if cellAt(row, dateIdx) != today {
			continue
		}

		block := fmt.Sprintf(
			"\n🎤 TECH-TALK ALERT 🎤\n"+
				"Learner: %s\n"+
				"Theme: %s\n"+
				"Voice: %s\n"+
				"Slides: %s\n"+
				"Body Language: %s",
			fieldAt(row, index["Learner"]),
			fieldAt(row, index["Theme"]),
			fieldAt(row, index["Voice"]),
			fieldAt(row, index["Slides"]),
			fieldAt(row, index["Body Language"]),
		)
		blocks = append(blocks, block)
	}

	return strings.Join(blocks, "\n\n")
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func fieldAt(row []string, idx int) string {
	value := cellAt(row, idx)
	if value == "" {
		return missingField
	}
	return value
}
