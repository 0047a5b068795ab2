package types

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "zero config is valid",
			config:  Config{},
			wantErr: nil,
		},
		{
			name:    "known sync strategy",
			config:  Config{DataDir: "/tmp/data", Sync: SyncImmediate},
			wantErr: nil,
		},
		{
			name:    "unknown sync strategy returns ErrUnknownSync",
			config:  Config{Sync: "eventually"},
			wantErr: ErrUnknownSync,
		},
		{
			name:    "file with a directory component is rejected",
			config:  Config{File: filepath.Join("nested", "db.json")},
			wantErr: ErrInvalidFileName,
		},
		{
			name:    "dot-dot file is rejected",
			config:  Config{File: ".."},
			wantErr: ErrInvalidFileName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	var c Config
	if got := c.GetFile(); got != DefaultFile {
		t.Errorf("GetFile() = %q, want %q", got, DefaultFile)
	}
	if got := c.GetSync(); got != SyncAsync {
		t.Errorf("GetSync() = %q, want %q", got, SyncAsync)
	}
	if got := c.DocumentPath(); got != DefaultFile {
		t.Errorf("DocumentPath() = %q, want %q", got, DefaultFile)
	}

	c = Config{DataDir: "/srv/inn", File: "ledger.json", Sync: SyncOnClose}
	if got := c.DocumentPath(); got != filepath.Join("/srv/inn", "ledger.json") {
		t.Errorf("DocumentPath() = %q", got)
	}
	if got := c.GetSync(); got != SyncOnClose {
		t.Errorf("GetSync() = %q, want %q", got, SyncOnClose)
	}
}
