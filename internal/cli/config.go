package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/fitsunits/pkg/units"
)

const defaultConfigHint = "$XDG_CONFIG_HOME/fitsunits/config.toml"

// Config holds user defaults read from a TOML file:
//
//	control   = 1      # translate "S" to seconds
//	translate = true   # translate aliases before parse
//	json      = false
//	cache_dir = "/tmp/fitsunits"
type Config struct {
	Control   int    `toml:"control"`
	Translate bool   `toml:"translate"`
	JSON      bool   `toml:"json"`
	CacheDir  string `toml:"cache_dir"`
}

// Validate rejects control values Translate does not understand.
func (cfg Config) Validate() error {
	if cfg.Control < 0 || cfg.Control > int(units.TranslateAll) {
		return fmt.Errorf("control %d out of range 0-%d", cfg.Control, units.TranslateAll)
	}
	return nil
}

// configPath returns the default config file location using the XDG
// standard (~/.config/fitsunits/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the config at path, or at the default location when path
// is empty. A missing default file yields the zero Config; a missing explicit
// file is an error.
func loadConfig(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
