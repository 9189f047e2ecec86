package reminders

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=reminders

import (
	"context"
	"time"

	"callbridge/internal/clients/googlecalendar"
)

// EventSource lists calendar events starting in [from, to)
type EventSource interface {
	UpcomingEvents(ctx context.Context, from, to time.Time) ([]googlecalendar.Event, error)
}

// CallPlacer dials a number and bridges it to an agent variant
type CallPlacer interface {
	PlaceCall(ctx context.Context, to, variant string) (string, error)
}
