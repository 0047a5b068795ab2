package types

import (
	"path/filepath"
	"strings"
)

// Config holds the parameters for Store.Attach.
type Config struct {
	// DataDir is the directory holding the document. Empty means the
	// working directory.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// File is the document file name inside DataDir. Empty means DefaultFile.
	File string `json:"file" yaml:"file"`

	// Sync selects when the document is written after a mutation.
	// Empty means SyncAsync.
	Sync string `json:"sync" yaml:"sync"`
}

// DefaultFile is the document name used when Config.File is empty.
const DefaultFile = "db.json"

// Sync strategies.
const (
	// SyncAsync hands every snapshot to a background writer and returns
	// immediately. Failures are reported on the store's error channel.
	SyncAsync = "async"

	// SyncImmediate writes the document before the mutating call returns.
	SyncImmediate = "immediate"

	// SyncOnClose holds the latest snapshot until Flush or Detach.
	SyncOnClose = "on_close"
)

var knownSyncStrategies = map[string]bool{
	SyncAsync:     true,
	SyncImmediate: true,
	SyncOnClose:   true,
}

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if c.Sync != "" && !knownSyncStrategies[c.Sync] {
		return ErrUnknownSync
	}
	if c.File != "" {
		if strings.ContainsRune(c.File, filepath.Separator) || c.File == "." || c.File == ".." {
			return ErrInvalidFileName
		}
	}
	return nil
}

// GetFile returns the document file name, applying the default.
func (c Config) GetFile() string {
	if c.File == "" {
		return DefaultFile
	}
	return c.File
}

// GetSync returns the sync strategy, applying the default.
func (c Config) GetSync() string {
	if c.Sync == "" {
		return SyncAsync
	}
	return c.Sync
}

// GetDataDir returns the data directory, applying the default.
func (c Config) GetDataDir() string {
	if c.DataDir == "" {
		return "."
	}
	return c.DataDir
}

// DocumentPath returns the full path of the persisted document.
func (c Config) DocumentPath() string {
	return filepath.Join(c.GetDataDir(), c.GetFile())
}
