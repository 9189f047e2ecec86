package reminders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"callbridge/internal/clients/googlecalendar"
	"callbridge/internal/observability"
)

// lookahead is how far ahead each check lists calendar events.
const lookahead = 24 * time.Hour

// Options configures a reminder Worker.
type Options struct {
	// PhoneNumber is the number called for every reminder
	PhoneNumber string
	// Variant selects the agent persona bridged into the call
	Variant string
	// Advance is how long before an event starts the call is placed
	Advance time.Duration
	// Interval is how often the calendar is checked
	Interval time.Duration
}

// Worker places a phone call shortly before each timed calendar event.
type Worker struct {
	events   EventSource
	calls    CallPlacer
	logger   *observability.Logger
	opts     Options
	now      func() time.Time
	notified map[string]time.Time
	stopChan chan bool
	stopOnce sync.Once
}

// New creates a new reminder Worker
func New(events EventSource, calls CallPlacer, opts Options, logger *observability.Logger) *Worker {
	if opts.Advance <= 0 {
		opts.Advance = 10 * time.Minute
	}
	if opts.Interval <= 0 {
		opts.Interval = 30 * time.Second
	}
	return &Worker{
		events:   events,
		calls:    calls,
		logger:   logger,
		opts:     opts,
		now:      time.Now,
		notified: make(map[string]time.Time),
		stopChan: make(chan bool),
	}
}

// Start checks the calendar on every interval until stopped or ctx ends.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info(ctx, fmt.Sprintf("Starting reminder worker, calling %d minutes before events",
		int(w.opts.Advance.Minutes())))

	ticker := time.NewTicker(w.opts.Interval)
	defer ticker.Stop()

	w.check(ctx)

	for {
		select {
		case <-ticker.C:
			w.check(ctx)
		case <-w.stopChan:
			w.logger.Info(ctx, "Stopping reminder worker")
			return
		case <-ctx.Done():
			w.logger.Info(ctx, "Context cancelled, stopping reminder worker")
			return
		}
	}
}

// Stop stops the worker. It is safe to call more than once.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.stopChan) })
}

// check calls for every event starting within
// [now+advance, now+advance+2*interval] that has not been called for yet.
// Consecutive windows overlap; the notified set keeps each event to one call.
func (w *Worker) check(ctx context.Context) {
	now := w.now()
	windowStart := now.Add(w.opts.Advance)
	windowEnd := windowStart.Add(2 * w.opts.Interval)

	for key, start := range w.notified {
		if start.Before(now) {
			delete(w.notified, key)
		}
	}

	events, err := w.events.UpcomingEvents(ctx, now, now.Add(lookahead))
	if err != nil {
		w.logger.Error(ctx, "failed to list events for reminders", err)
		return
	}

	for _, event := range events {
		if event.AllDay || event.Start.Before(windowStart) || event.Start.After(windowEnd) {
			continue
		}
		key := eventKey(event)
		if _, done := w.notified[key]; done {
			continue
		}

		eventCtx := observability.WithFields(ctx,
			observability.Field{Key: "event", Value: event.Summary},
			observability.Field{Key: "event_start", Value: event.Start.Format(time.RFC3339)},
		)
		callSID, err := w.calls.PlaceCall(eventCtx, w.opts.PhoneNumber, w.opts.Variant)
		if err != nil {
			w.logger.Error(eventCtx, "failed to place reminder call", err)
			continue
		}
		w.notified[key] = event.Start
		w.logger.Info(observability.WithFields(eventCtx, observability.Field{Key: "call_sid", Value: callSID}),
			"Placed reminder call")
	}
}

func eventKey(event googlecalendar.Event) string {
	if event.ID != "" {
		return event.ID
	}
	return event.Summary + "@" + event.Start.Format(time.RFC3339)
}
