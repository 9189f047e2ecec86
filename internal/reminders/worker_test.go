package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"callbridge/internal/clients/googlecalendar"
	"callbridge/internal/observability"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const reminderNumber = "+15550002222"

var baseTime = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fakeClock struct{ t time.Time }

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func timedEvent(id string, start time.Time) googlecalendar.Event {
	return googlecalendar.Event{ID: id, Summary: "Standup " + id, Start: start, End: start.Add(30 * time.Minute)}
}

func newTestWorker(events EventSource, calls CallPlacer, clock *fakeClock, logger *observability.Logger) *Worker {
	if logger == nil {
		logger = observability.NewLoggerFromZap(zap.NewNop())
	}
	w := New(events, calls, Options{
		PhoneNumber: reminderNumber,
		Variant:     "reminder",
		Advance:     10 * time.Minute,
		Interval:    30 * time.Second,
	}, logger)
	w.now = clock.Now
	return w
}

func TestWorker_Check(t *testing.T) {
	windowStart := baseTime.Add(10 * time.Minute)
	windowEnd := windowStart.Add(time.Minute)

	tests := []struct {
		name      string
		events    []googlecalendar.Event
		listErr   error
		wantCalls int
	}{
		{
			name:      "event inside window is called",
			events:    []googlecalendar.Event{timedEvent("a", windowStart.Add(20*time.Second))},
			wantCalls: 1,
		},
		{
			name:      "window start is inclusive",
			events:    []googlecalendar.Event{timedEvent("a", windowStart)},
			wantCalls: 1,
		},
		{
			name:      "window end is inclusive",
			events:    []googlecalendar.Event{timedEvent("a", windowEnd)},
			wantCalls: 1,
		},
		{
			name:   "event starting too soon is skipped",
			events: []googlecalendar.Event{timedEvent("a", windowStart.Add(-time.Second))},
		},
		{
			name:   "event starting after window is skipped",
			events: []googlecalendar.Event{timedEvent("a", windowEnd.Add(time.Second))},
		},
		{
			name: "all-day event is skipped",
			events: []googlecalendar.Event{{
				ID: "holiday", Summary: "Holiday", Start: windowStart, End: windowStart.Add(24 * time.Hour), AllDay: true,
			}},
		},
		{
			name: "events without id are deduplicated by summary and start",
			events: []googlecalendar.Event{
				{Summary: "Dentist", Start: windowStart},
				{Summary: "Dentist", Start: windowStart},
			},
			wantCalls: 1,
		},
		{
			name: "each event in window gets its own call",
			events: []googlecalendar.Event{
				timedEvent("a", windowStart),
				timedEvent("b", windowStart.Add(30*time.Second)),
				timedEvent("c", windowEnd.Add(time.Hour)),
			},
			wantCalls: 2,
		},
		{
			name:    "calendar error places no calls",
			listErr: errors.New("calendar unavailable"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			events := NewMockEventSource(ctrl)
			calls := NewMockCallPlacer(ctrl)

			events.EXPECT().
				UpcomingEvents(gomock.Any(), baseTime, baseTime.Add(24*time.Hour)).
				Return(tt.events, tt.listErr)
			calls.EXPECT().
				PlaceCall(gomock.Any(), reminderNumber, "reminder").
				Return("CA1", nil).
				Times(tt.wantCalls)

			w := newTestWorker(events, calls, newFakeClock(baseTime), nil)
			w.check(context.Background())

			assert.Len(t, w.notified, tt.wantCalls)
		})
	}
}

func TestWorker_CallsEachEventOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := NewMockEventSource(ctrl)
	calls := NewMockCallPlacer(ctrl)
	clock := newFakeClock(baseTime)
	event := timedEvent("a", baseTime.Add(10*time.Minute+45*time.Second))

	events.EXPECT().UpcomingEvents(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]googlecalendar.Event{event}, nil).Times(2)
	calls.EXPECT().PlaceCall(gomock.Any(), reminderNumber, "reminder").Return("CA1", nil).Times(1)

	w := newTestWorker(events, calls, clock, nil)
	w.check(context.Background())
	clock.Advance(30 * time.Second)
	w.check(context.Background())
}

func TestWorker_RetriesFailedCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := NewMockEventSource(ctrl)
	calls := NewMockCallPlacer(ctrl)
	clock := newFakeClock(baseTime)
	event := timedEvent("a", baseTime.Add(10*time.Minute+45*time.Second))

	events.EXPECT().UpcomingEvents(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]googlecalendar.Event{event}, nil).Times(2)
	gomock.InOrder(
		calls.EXPECT().PlaceCall(gomock.Any(), reminderNumber, "reminder").Return("", errors.New("twilio down")),
		calls.EXPECT().PlaceCall(gomock.Any(), reminderNumber, "reminder").Return("CA2", nil),
	)

	w := newTestWorker(events, calls, clock, nil)
	w.check(context.Background())
	assert.Empty(t, w.notified)

	clock.Advance(30 * time.Second)
	w.check(context.Background())
	assert.Contains(t, w.notified, "a")
}

func TestWorker_ForgetsPastEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := NewMockEventSource(ctrl)
	calls := NewMockCallPlacer(ctrl)
	clock := newFakeClock(baseTime)
	event := timedEvent("a", baseTime.Add(10*time.Minute))

	gomock.InOrder(
		events.EXPECT().UpcomingEvents(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]googlecalendar.Event{event}, nil),
		events.EXPECT().UpcomingEvents(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil),
	)
	calls.EXPECT().PlaceCall(gomock.Any(), reminderNumber, "reminder").Return("CA1", nil)

	w := newTestWorker(events, calls, clock, nil)
	w.check(context.Background())
	assert.Len(t, w.notified, 1)

	clock.Advance(11 * time.Minute)
	w.check(context.Background())
	assert.Empty(t, w.notified)
}

func TestWorker_LogsPlacedCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := NewMockEventSource(ctrl)
	calls := NewMockCallPlacer(ctrl)

	events.EXPECT().UpcomingEvents(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]googlecalendar.Event{timedEvent("a", baseTime.Add(10*time.Minute))}, nil)
	calls.EXPECT().PlaceCall(gomock.Any(), reminderNumber, "reminder").Return("CA7", nil)

	core, logs := observer.New(zap.InfoLevel)
	w := newTestWorker(events, calls, newFakeClock(baseTime), observability.NewLoggerFromZap(zap.New(core)))
	w.check(context.Background())

	entries := logs.FilterMessage("Placed reminder call").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "CA7", fields["call_sid"])
		assert.Equal(t, "Standup a", fields["event"])
	}
}

func TestWorker_StartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := NewMockEventSource(ctrl)
	calls := NewMockCallPlacer(ctrl)

	checked := make(chan struct{}, 1)
	events.EXPECT().UpcomingEvents(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, time.Time, time.Time) ([]googlecalendar.Event, error) {
			select {
			case checked <- struct{}{}:
			default:
			}
			return nil, nil
		}).MinTimes(1)

	w := newTestWorker(events, calls, newFakeClock(baseTime), nil)
	done := make(chan struct{})
	go func() {
		w.Start(context.Background())
		close(done)
	}()

	select {
	case <-checked:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not check on start")
	}
	w.Stop()
	w.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestWorker_StopsOnContextCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := NewMockEventSource(ctrl)
	calls := NewMockCallPlacer(ctrl)
	events.EXPECT().UpcomingEvents(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	w := newTestWorker(events, calls, newFakeClock(baseTime), nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop on cancel")
	}
}
