package sessionconfig

import (
	"context"
	"fmt"
	"strings"
	"time"

	"callbridge/internal/store"
)

const diaryDateLayout = "Jan 02, 2006"

// DiarySource renders the user's recent diary entries.
type DiarySource struct {
	store      DiaryStore
	userID     string
	days       int
	maxEntries int
	fallback   string
	now        func() time.Time
}

func NewDiarySource(s DiaryStore, userID string, days, maxEntries int, fallback string) *DiarySource {
	if days < 1 {
		days = 1
	}
	return &DiarySource{
		store:      s,
		userID:     userID,
		days:       days,
		maxEntries: maxEntries,
		fallback:   fallback,
		now:        time.Now,
	}
}

func (d *DiarySource) Name() string {
	return "diary"
}

func (d *DiarySource) Fallback() string {
	return d.fallback
}

func (d *DiarySource) Section(ctx context.Context, _ SessionContext) (string, error) {
	now := d.now()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(d.days - 1))

	entries, err := d.store.GetDiaryEntriesSince(ctx, d.userID, since, d.maxEntries)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return fmt.Sprintf("No diary entries found for the last %d days.", d.days), nil
	}
	return fmt.Sprintf("Here are the diary entries from the last %d days:\n\n%s", d.days, FormatDiary(entries)), nil
}

// FormatDiary groups entries under a date header per day:
//
//	Mar 01, 2025
//	09:00 - Reading [1 h 30 min]
//	description
func FormatDiary(entries []store.DiaryEntry) string {
	var b strings.Builder
	var currentDay string
	for _, e := range entries {
		day := e.StartedAt.Format(diaryDateLayout)
		if day != currentDay {
			if currentDay != "" {
				b.WriteString("\n")
			}
			b.WriteString(day)
			b.WriteString("\n")
			currentDay = day
		}

		fmt.Fprintf(&b, "%s - %s [%s]\n", e.StartedAt.Format("15:04"), e.Action, entryDuration(e))
		if desc := strings.TrimSpace(e.Description); desc != "" {
			b.WriteString(desc)
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func entryDuration(e store.DiaryEntry) string {
	d, ok := e.Duration()
	if !ok {
		return "Unknown duration"
	}
	if d < 0 {
		return "Invalid duration"
	}
	return FormatDuration(d)
}

// FormatDuration renders whole minutes as "N min", "N h" or "N h M min".
func FormatDuration(d time.Duration) string {
	total := int(d / time.Minute)
	if total < 60 {
		return fmt.Sprintf("%d min", total)
	}
	hours, minutes := total/60, total%60
	if minutes == 0 {
		return fmt.Sprintf("%d h", hours)
	}
	return fmt.Sprintf("%d h %d min", hours, minutes)
}
