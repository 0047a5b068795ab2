package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfigDir(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name       string
		flag       string
		envValue   string
		wantPath   string
		wantSource string
	}{
		{"flag wins over env", "/tmp/flag-config", "/tmp/env-config", "/tmp/flag-config", SourceFlag},
		{"env when no flag", "", "/tmp/env-config", "/tmp/env-config", SourceEnv},
		{"default under cwd", "", "", filepath.Join(cwd, DefaultConfigDirName), SourceDefault},
		{"relative flag made absolute", "inn-config", "", filepath.Join(cwd, "inn-config"), SourceFlag},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.envValue)

			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, Dir{Path: tt.wantPath, Source: tt.wantSource}, got)
		})
	}
}

func TestResolveDataDir(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name        string
		flag        string
		configValue string
		envValue    string
		wantPath    string
		wantSource  string
	}{
		{"flag wins over everything", "/tmp/flag-data", "/tmp/yaml-data", "/tmp/env-data", "/tmp/flag-data", SourceFlag},
		{"config.yaml over env", "", "/tmp/yaml-data", "/tmp/env-data", "/tmp/yaml-data", SourceConfig},
		{"env when nothing else", "", "", "/tmp/env-data", "/tmp/env-data", SourceEnv},
		{"default under cwd", "", "", "", filepath.Join(cwd, DefaultDataDirName), SourceDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.envValue)

			got, err := ResolveDataDir(tt.flag, tt.configValue)
			require.NoError(t, err)
			assert.Equal(t, Dir{Path: tt.wantPath, Source: tt.wantSource}, got)
		})
	}
}

func TestResolveDefaultWithoutWorkingDir(t *testing.T) {
	orig := getwd
	t.Cleanup(func() { getwd = orig })
	getwd = func() (string, error) { return "", errors.New("cwd removed") }
	t.Setenv(EnvDataDir, "")

	_, err := ResolveDataDir("", "")
	assert.EqualError(t, err, "cwd removed")

	got, err := ResolveDataDir("/tmp/explicit", "")
	require.NoError(t, err, "explicit directories do not need the working directory")
	assert.Equal(t, "/tmp/explicit", got.Path)
}
