package internal

import (
	"fmt"
	"os"
	"path/filepath"
)

// StoragePaths holds the resolved locations for local data
type StoragePaths struct {
	BaseDir      string // data directory
	DatabasePath string // sqlite store
	ConfigPath   string // YAML config file
}

// ResolveStoragePaths resolves the data directory, creating it if needed.
// An empty override selects the default ~/.streamchat location.
func ResolveStoragePaths(override string) (StoragePaths, error) {
	baseDir := override
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return StoragePaths{}, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".streamchat")
	}

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return StoragePaths{}, fmt.Errorf("failed to create data directory: %w", err)
	}

	return StoragePaths{
		BaseDir:      baseDir,
		DatabasePath: filepath.Join(baseDir, "streamchat.db"),
		ConfigPath:   filepath.Join(baseDir, "config.yaml"),
	}, nil
}

// DatabaseExists checks if the local store has been created
func (sp StoragePaths) DatabaseExists() bool {
	_, err := os.Stat(sp.DatabasePath)
	return err == nil
}

// ConfigExists checks if a config file is present
func (sp StoragePaths) ConfigExists() bool {
	_, err := os.Stat(sp.ConfigPath)
	return err == nil
}
