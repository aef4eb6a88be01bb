package internal

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// OpenDatabase opens the local SQLite store, creating the key/value table
// if it does not exist yet
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS chatKV (
		key TEXT PRIMARY KEY,
		value TEXT
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create chatKV table: %w", err)
	}

	return db, nil
}

// kvGet reads one record from chatKV. The second return value reports
// whether the key was present.
func kvGet(db *sql.DB, key string) (string, bool, error) {
	var value sql.NullString
	err := db.QueryRow("SELECT value FROM chatKV WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StoreError{Key: key, Op: "read", Err: err}
	}
	if !value.Valid {
		return "", false, nil
	}
	return value.String, true, nil
}

// kvSet writes one record to chatKV, replacing any existing value
func kvSet(db *sql.DB, key, value string) error {
	upsertSQL := `
	INSERT INTO chatKV (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := db.Exec(upsertSQL, key, value); err != nil {
		return &StoreError{Key: key, Op: "write", Err: err}
	}
	return nil
}

// kvDelete removes one record from chatKV. Deleting an absent key is not
// an error.
func kvDelete(db *sql.DB, key string) error {
	if _, err := db.Exec("DELETE FROM chatKV WHERE key = ?", key); err != nil {
		return &StoreError{Key: key, Op: "clear", Err: err}
	}
	return nil
}
