// Package config loads ignscript.toml and applies defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
)

const Version = "0.1.0"

type Config struct {
	// JournalPath is the SQLite file recording conflict resolutions.
	JournalPath string `toml:"journal_path"`
	// Indent forces a serialization indent width in spaces; 0 means
	// auto-detect from each source document.
	Indent   int    `toml:"indent"`
	LogLevel string `toml:"log_level"`

	Patterns PatternsConfig `toml:"patterns"`

	// Resolved at runtime (not in TOML).
	BaseDir string `toml:"-"`
}

// PatternsConfig extends the built-in script path patterns, for custom
// module resources that store scripts under shapes ignscript does not
// know about.
type PatternsConfig struct {
	Extra []string `toml:"extra"`
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Load reads the TOML config at path. A missing file is not an error:
// defaults apply. The IGNSCRIPT_JOURNAL environment variable overrides
// journal_path either way.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
		cfg.BaseDir = filepath.Dir(path)
	}
	applyDefaults(cfg)
	if v := os.Getenv("IGNSCRIPT_JOURNAL"); v != "" {
		cfg.JournalPath = v
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.JournalPath == "" {
		cfg.JournalPath = defaultJournalPath()
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

func validate(cfg *Config) error {
	if !slices.Contains(validLogLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log_level %q (want one of %v)", cfg.LogLevel, validLogLevels)
	}
	if cfg.Indent < 0 || cfg.Indent > 8 {
		return fmt.Errorf("invalid indent %d (want 0-8, 0 = auto-detect)", cfg.Indent)
	}
	return nil
}

func defaultJournalPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "ignscript.db"
	}
	return filepath.Join(dir, "ignscript", "journal.db")
}
