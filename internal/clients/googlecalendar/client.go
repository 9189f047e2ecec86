package googlecalendar

import (
	"context"
	"fmt"
	"time"

	"callbridge/internal/observability"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const maxEvents = 50

// Event is a calendar entry reduced to what a prompt needs.
type Event struct {
	ID      string
	Summary string
	Start   time.Time
	End     time.Time
	AllDay  bool
}

type Client struct {
	service    *calendar.Service
	calendarID string
	logger     *observability.Logger
}

func NewClient(ctx context.Context, calendarID string, logger *observability.Logger, opts ...option.ClientOption) (*Client, error) {
	service, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &Client{service: service, calendarID: calendarID, logger: logger}, nil
}

// UpcomingEvents lists single events starting in [from, to), ordered by start time.
func (c *Client) UpcomingEvents(ctx context.Context, from, to time.Time) ([]Event, error) {
	resp, err := c.service.Events.List(c.calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(maxEvents).
		Context(ctx).
		Do()
	if err != nil {
		c.logger.InfoWithError(ctx, "failed to list calendar events", err)
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}

	events := make([]Event, 0, len(resp.Items))
	for _, item := range resp.Items {
		event, err := toEvent(item)
		if err != nil {
			c.logger.InfoWithError(ctx, "skipping calendar event with unreadable time", err)
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func toEvent(item *calendar.Event) (Event, error) {
	if item.Start == nil || item.End == nil {
		return Event{}, fmt.Errorf("event %q has no start or end", item.Id)
	}
	start, allDay, err := parseEventTime(item.Start)
	if err != nil {
		return Event{}, err
	}
	end, _, err := parseEventTime(item.End)
	if err != nil {
		return Event{}, err
	}
	return Event{ID: item.Id, Summary: item.Summary, Start: start, End: end, AllDay: allDay}, nil
}

func parseEventTime(t *calendar.EventDateTime) (time.Time, bool, error) {
	if t.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, t.DateTime)
		return parsed, false, err
	}
	parsed, err := time.Parse(time.DateOnly, t.Date)
	return parsed, true, err
}
