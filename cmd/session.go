package cmd

import (
	"database/sql"
	"fmt"

	"github.com/iksnae/streamchat/internal"
)

// session bundles the wired-up collaborators a command needs
type session struct {
	db      *sql.DB
	paths   internal.StoragePaths
	cfg     *internal.Config
	creds   *internal.CredentialStore
	history *internal.HistoryStore
}

// openSession resolves storage paths, opens the local store, and loads
// the configuration. The caller owns closing the returned session.
func openSession() (*session, error) {
	paths, err := internal.ResolveStoragePaths(storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage paths: %w", err)
	}

	cfg, err := internal.LoadConfig(paths.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := internal.OpenDatabase(paths.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	return &session{
		db:      db,
		paths:   paths,
		cfg:     cfg,
		creds:   internal.NewCredentialStore(db),
		history: internal.NewHistoryStore(db),
	}, nil
}

// engine builds a SessionEngine over this session's stores
func (s *session) engine(sink internal.EventSink) *internal.SessionEngine {
	transport := internal.NewTransportClient(s.cfg, s.creds)
	return internal.NewSessionEngine(s.creds, s.history, transport, sink, s.cfg.SystemPrompt)
}

// Close releases the underlying store
func (s *session) Close() error {
	return s.db.Close()
}
