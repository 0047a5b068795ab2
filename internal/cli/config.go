package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/tradepost/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "TRADEPOST"

	cfgKeyDataDir = "data_dir"
	cfgKeyFile    = "file"
	cfgKeySync    = "sync"
)

// configFile is the structure written to config.yaml by init.
type configFile struct {
	DataDir string `yaml:"data_dir,omitempty"`
	File    string `yaml:"file"`
	Sync    string `yaml:"sync"`
}

// loadConfig reads config.yaml from configDir. A missing file or directory
// is not an error: defaults apply. file and sync may be overridden by
// TRADEPOST_FILE and TRADEPOST_SYNC; data_dir is read from the file only,
// since its environment override is resolved by internal/paths.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyFile, types.DefaultFile)
	v.SetDefault(cfgKeySync, types.SyncAsync)
	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyFile, cfgKeySync} {
		if err := v.BindEnv(key); err != nil {
			return nil, sysErrf("bind %s: %w", key, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read %s: %w", filepath.Join(configDir, configFileExt), err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml with cfg if the file does not
// exist. It reports whether the file was written.
func writeConfigIfMissing(configDir string, cfg configFile) (bool, error) {
	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# tradepost configuration\n# sync: async | immediate | on_close\n")
	return true, os.WriteFile(path, append(header, data...), 0o644)
}
