package sessionconfig

import (
	"context"
	"fmt"
	"strings"
	"time"

	"callbridge/internal/clients/googlecalendar"
)

const calendarLookahead = 7 * 24 * time.Hour

// CalendarSource renders the coming week's calendar events.
type CalendarSource struct {
	client   CalendarClient
	fallback string
	now      func() time.Time
}

func NewCalendarSource(client CalendarClient, fallback string) *CalendarSource {
	return &CalendarSource{client: client, fallback: fallback, now: time.Now}
}

func (c *CalendarSource) Name() string {
	return "calendar"
}

func (c *CalendarSource) Fallback() string {
	return c.fallback
}

func (c *CalendarSource) Section(ctx context.Context, _ SessionContext) (string, error) {
	now := c.now()
	events, err := c.client.UpcomingEvents(ctx, now, now.Add(calendarLookahead))
	if err != nil {
		return "", err
	}
	return FormatEvents(events), nil
}

// FormatEvents renders events as "Calendar: Name - Mon Jan 2 03:04 PM (1h 30m), ...".
func FormatEvents(events []googlecalendar.Event) string {
	if len(events) == 0 {
		return "No upcoming calendar events."
	}
	parts := make([]string, 0, len(events))
	for _, e := range events {
		if e.AllDay {
			parts = append(parts, fmt.Sprintf("%s - %s (all day)", e.Summary, e.Start.Format("Mon Jan 2")))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s - %s (%s)", e.Summary, e.Start.Format("Mon Jan 2 03:04 PM"), shortDuration(e.End.Sub(e.Start))))
	}
	return "Calendar: " + strings.Join(parts, ", ")
}

func shortDuration(d time.Duration) string {
	total := int(d / time.Minute)
	hours, minutes := total/60, total%60
	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
