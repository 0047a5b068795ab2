// Package paths resolves where tradepost keeps its configuration and its
// document. Each directory is chosen by precedence: command-line flag,
// then config.yaml (data directory only), then environment, then a
// directory under the working directory.
package paths

import (
	"os"
	"path/filepath"
)

// Working-directory defaults.
const (
	DefaultConfigDirName = ".tradepost"
	DefaultDataDirName   = ".tradepost-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "TRADEPOST_CONFIG_DIR"
	EnvDataDir   = "TRADEPOST_DATA_DIR"
)

// Sources a directory can come from, highest precedence first.
const (
	SourceFlag    = "flag"
	SourceConfig  = "config"
	SourceEnv     = "env"
	SourceDefault = "default"
)

// Dir is a resolved absolute directory and where it came from.
type Dir struct {
	Path   string
	Source string
}

// env and getwd are replaced in tests.
var (
	env   = os.Getenv
	getwd = os.Getwd
)

// ResolveConfigDir picks the configuration directory:
// flag > TRADEPOST_CONFIG_DIR > $(CWD)/.tradepost.
func ResolveConfigDir(flag string) (Dir, error) {
	return resolve(DefaultConfigDirName,
		candidate{flag, SourceFlag},
		candidate{env(EnvConfigDir), SourceEnv})
}

// ResolveDataDir picks the data directory:
// flag > data_dir in config.yaml > TRADEPOST_DATA_DIR > $(CWD)/.tradepost-db.
func ResolveDataDir(flag, configValue string) (Dir, error) {
	return resolve(DefaultDataDirName,
		candidate{flag, SourceFlag},
		candidate{configValue, SourceConfig},
		candidate{env(EnvDataDir), SourceEnv})
}

type candidate struct {
	value  string
	source string
}

func resolve(defaultName string, candidates ...candidate) (Dir, error) {
	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		abs, err := filepath.Abs(c.value)
		if err != nil {
			return Dir{}, err
		}
		return Dir{Path: abs, Source: c.source}, nil
	}
	cwd, err := getwd()
	if err != nil {
		return Dir{}, err
	}
	return Dir{Path: filepath.Join(cwd, defaultName), Source: SourceDefault}, nil
}
