package store

import (
	"context"
	"fmt"
	"os"
	"testing"

	"callbridge/internal/observability"

	"github.com/jmoiron/sqlx"
)

// TestDB wraps a test database instance
type TestDB struct {
	db    *sqlx.DB
	Store Store
}

// SetupTestDB connects to the database named by the TEST_DB_* variables and
// skips the test when TEST_DB_HOST is unset.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	dbHost := os.Getenv("TEST_DB_HOST")
	if dbHost == "" {
		t.Skip("TEST_DB_HOST not set, skipping database test")
	}
	dbPort := getEnvOr("TEST_DB_PORT", "5432")
	dbUser := getEnvOr("TEST_DB_USER", "bridge_user")
	dbPass := getEnvOr("TEST_DB_PASSWORD", "bridge_password")
	dbName := getEnvOr("TEST_DB_NAME", "bridge_db")

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	db, err := sqlx.Open("pgx", connStr)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("failed to ping database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	store := Store{db: db, logger: observability.NewLogger()}
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("failed to prepare schema: %v", err)
	}
	return &TestDB{db: db, Store: store}
}

// Truncate clears all data from tables while preserving schema
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()
	if _, err := tdb.db.Exec("TRUNCATE TABLE diary_entries RESTART IDENTITY"); err != nil {
		t.Fatalf("failed to truncate diary_entries: %v", err)
	}
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
