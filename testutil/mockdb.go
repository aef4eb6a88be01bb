package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateInMemoryDB creates an in-memory SQLite database with the chatKV
// table for testing
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS chatKV (
		key TEXT PRIMARY KEY,
		value TEXT
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		t.Fatalf("Failed to create chatKV table: %v", err)
	}

	return db
}

// InsertKV inserts a key/value record into the database
func InsertKV(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()
	insertSQL := `
	INSERT INTO chatKV (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := db.Exec(insertSQL, key, value); err != nil {
		t.Fatalf("Failed to insert record: %v", err)
	}
}

// GetKV reads a key/value record from the database. Returns the empty
// string when the key is absent.
func GetKV(t *testing.T, db *sql.DB, key string) string {
	t.Helper()
	var value sql.NullString
	err := db.QueryRow("SELECT value FROM chatKV WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return ""
	}
	if err != nil {
		t.Fatalf("Failed to read record: %v", err)
	}
	return value.String
}
