package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// DiaryEntry is one logged activity from the user's diary.
type DiaryEntry struct {
	ID          int64        `db:"id"`
	UserID      string       `db:"user_id"`
	Action      string       `db:"action"`
	Description string       `db:"description"`
	StartedAt   time.Time    `db:"started_at"`
	EndedAt     sql.NullTime `db:"ended_at"`
}

// Duration is zero and false while the activity has no end time.
func (e DiaryEntry) Duration() (time.Duration, bool) {
	if !e.EndedAt.Valid {
		return 0, false
	}
	return e.EndedAt.Time.Sub(e.StartedAt), true
}

const sqlGetDiaryEntriesSince = `
SELECT id, user_id, action, description, started_at, ended_at
FROM diary_entries
WHERE user_id = $1 AND started_at >= $2
ORDER BY started_at ASC
LIMIT $3`

// GetDiaryEntriesSince returns up to limit entries started at or after since, oldest first.
func (s *Store) GetDiaryEntriesSince(ctx context.Context, userID string, since time.Time, limit int) ([]DiaryEntry, error) {
	var entries []DiaryEntry
	err := s.db.SelectContext(ctx, &entries, sqlGetDiaryEntriesSince, userID, since, limit)
	if err != nil {
		s.logger.Error(ctx, "failed to get diary entries", err)
		return nil, fmt.Errorf("failed to get diary entries: %w", err)
	}
	return entries, nil
}

const sqlCreateDiaryEntry = `
INSERT INTO diary_entries (user_id, action, description, started_at, ended_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, user_id, action, description, started_at, ended_at`

type CreateDiaryEntryParams struct {
	UserID      string
	Action      string
	Description string
	StartedAt   time.Time
	EndedAt     sql.NullTime
}

func (s *Store) CreateDiaryEntry(ctx context.Context, params CreateDiaryEntryParams) (DiaryEntry, error) {
	var entry DiaryEntry
	err := s.db.GetContext(ctx, &entry, sqlCreateDiaryEntry,
		params.UserID, params.Action, params.Description, params.StartedAt, params.EndedAt)
	if err != nil {
		s.logger.Error(ctx, "failed to create diary entry", err)
		return DiaryEntry{}, fmt.Errorf("failed to create diary entry: %w", err)
	}
	return entry, nil
}

const sqlCreateDiaryTable = `
CREATE TABLE IF NOT EXISTS diary_entries (
	id          BIGSERIAL PRIMARY KEY,
	user_id     TEXT        NOT NULL,
	action      TEXT        NOT NULL,
	description TEXT        NOT NULL DEFAULT '',
	started_at  TIMESTAMPTZ NOT NULL,
	ended_at    TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS diary_entries_user_started_idx ON diary_entries (user_id, started_at);`

// EnsureSchema creates the diary table if it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqlCreateDiaryTable); err != nil {
		return fmt.Errorf("failed to create diary schema: %w", err)
	}
	return nil
}
