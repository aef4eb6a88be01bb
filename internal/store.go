package internal

import (
	"database/sql"
	"encoding/json"
)

// Fixed keys in the chatKV table
const (
	credentialKey = "credential"
	historyKey    = "history"
)

// CredentialStore persists the single API credential
type CredentialStore struct {
	db *sql.DB
}

// NewCredentialStore creates a new CredentialStore instance
func NewCredentialStore(db *sql.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// Load returns the stored credential, or the empty string when absent
func (s *CredentialStore) Load() (string, error) {
	value, ok, err := kvGet(s.db, credentialKey)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return value, nil
}

// Save stores the credential, replacing any previous value
func (s *CredentialStore) Save(token string) error {
	return kvSet(s.db, credentialKey, token)
}

// Clear removes the stored credential
func (s *CredentialStore) Clear() error {
	return kvDelete(s.db, credentialKey)
}

// HistoryStore persists the conversation transcript as a JSON array of
// {role, content} records
type HistoryStore struct {
	db *sql.DB
}

// NewHistoryStore creates a new HistoryStore instance
func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Load returns the stored transcript. A corrupt record is treated as an
// empty history and proactively cleared; decode failures never surface
// to the caller.
func (s *HistoryStore) Load() ([]Message, error) {
	value, ok, err := kvGet(s.db, historyKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var messages []Message
	if err := json.Unmarshal([]byte(value), &messages); err != nil {
		LogWarn("Clearing corrupt history record: %v", err)
		if clearErr := s.Clear(); clearErr != nil {
			LogWarn("Failed to clear corrupt history record: %v", clearErr)
		}
		return nil, nil
	}

	return messages, nil
}

// Save stores the transcript, replacing any previous value
func (s *HistoryStore) Save(messages []Message) error {
	if messages == nil {
		messages = []Message{}
	}
	data, err := json.Marshal(messages)
	if err != nil {
		return &StoreError{Key: historyKey, Op: "write", Err: err}
	}
	return kvSet(s.db, historyKey, string(data))
}

// Clear removes the stored transcript
func (s *HistoryStore) Clear() error {
	return kvDelete(s.db, historyKey)
}
