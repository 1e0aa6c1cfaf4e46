package app

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"fintrack/internal/store"
)

// Config holds runtime options for building the app. The passphrase is
// read from the environment by the keystore, never from this file.
type Config struct {
	DataDir   string `toml:"data_dir"`
	Retention int    `toml:"backup_retention"`
	Verbose   bool   `toml:"-"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		DataDir:   "data",
		Retention: store.DefaultRetention,
	}
}

// LoadConfig merges an optional TOML file over the defaults. A missing
// file is not an error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "load config %s", path)
	}
	if cfg.Retention <= 0 {
		cfg.Retention = store.DefaultRetention
	}
	return cfg, nil
}
