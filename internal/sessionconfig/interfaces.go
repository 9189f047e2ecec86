package sessionconfig

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=sessionconfig

import (
	"context"
	"time"

	"callbridge/internal/clients/googlecalendar"
	"callbridge/internal/store"
)

// PromptBuilder produces the system prompt for one call
type PromptBuilder interface {
	BuildPrompt(ctx context.Context, sc SessionContext) (string, error)
}

// ContextSource contributes one section of a prompt
type ContextSource interface {
	// Name identifies the source in logs and cache keys
	Name() string

	// Section renders the source's current content
	Section(ctx context.Context, sc SessionContext) (string, error)

	// Fallback is used in place of Section when it fails
	Fallback() string
}

// Cache stores rendered prompt sections
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// DiaryStore defines the store operations required by DiarySource
type DiaryStore interface {
	GetDiaryEntriesSince(ctx context.Context, userID string, since time.Time, limit int) ([]store.DiaryEntry, error)
}

// CalendarClient defines the calendar operations required by CalendarSource
type CalendarClient interface {
	UpcomingEvents(ctx context.Context, from, to time.Time) ([]googlecalendar.Event, error)
}
