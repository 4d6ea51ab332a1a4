// Package config resolves generation settings from built-in defaults, the
// user's config file, and environment variables, in that order. Command-line
// flags are layered on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/mkarhu/diceware/internal/wordlist"
)

// ConfigFileName is the config file inside the config directory.
const ConfigFileName = "config.toml"

// CacheFileName is the wordlist cache database inside the config directory.
const CacheFileName = "cache.db"

// Settings holds the resolved generation defaults.
//
// The zero value is not useful; start from Defaults().
type Settings struct {
	Words     int    `toml:"words"`     // number of words per passphrase
	Special   int    `toml:"special"`   // number of special-character substitutions
	Lang      string `toml:"lang"`      // language tag for the word list
	File      string `toml:"file"`      // local word list file, overrides Lang when set
	Separator string `toml:"separator"` // separator between words on output
}

// Defaults returns the built-in settings: 5 words, no specials, English,
// space-separated.
func Defaults() Settings {
	return Settings{
		Words:     5,
		Special:   0,
		Lang:      "en",
		Separator: " ",
	}
}

// Validate checks the settings the same way for every source they may have
// come from (file, environment, or flags).
//
// Returns an error describing the first violation, or nil if valid.
func (s Settings) Validate() error {
	if s.Words < 1 {
		return fmt.Errorf("config: words must be at least 1, got %d", s.Words)
	}
	if s.Special < 0 {
		return fmt.Errorf("config: special must not be negative, got %d", s.Special)
	}
	if s.File == "" && !wordlist.Supported(s.Lang) {
		return fmt.Errorf("config: %q is not a supported language (supported: %s)",
			s.Lang, strings.Join(wordlist.Languages(), ", "))
	}
	return nil
}

// environment holds the recognized environment overrides.
type environment struct {
	ConfigDir string `env:"DICEWARE_CONFIG_DIR"`
	CacheDB   string `env:"DICEWARE_CACHE_DB"`
	Lang      string `env:"DICEWARE_LANG"`
}

// Paths holds the resolved filesystem locations.
type Paths struct {
	ConfigDir  string // directory holding config file and cache
	ConfigFile string // TOML config file (may not exist)
	CacheDB    string // SQLite wordlist cache
}

// Resolve determines settings and paths from defaults, the config file, and
// the environment.
//
// The config directory defaults to "diceware" under the user config
// directory and is created if missing; an existing non-directory at that
// path is a fatal error. A missing config file is fine, a malformed one is
// not.
//
// Returns the resolved settings and paths. Validation of the final settings
// is the caller's job, after flags are applied.
func Resolve() (Settings, Paths, error) {
	var environ environment
	if err := env.Parse(&environ); err != nil {
		return Settings{}, Paths{}, fmt.Errorf("config: reading environment: %w", err)
	}

	paths, err := resolvePaths(environ)
	if err != nil {
		return Settings{}, Paths{}, err
	}

	settings, err := loadFile(paths.ConfigFile)
	if err != nil {
		return Settings{}, Paths{}, err
	}

	if environ.Lang != "" {
		settings.Lang = environ.Lang
	}
	return settings, paths, nil
}

func resolvePaths(environ environment) (Paths, error) {
	dir := environ.ConfigDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Paths{}, fmt.Errorf("config: cannot determine config directory: %w", err)
		}
		dir = filepath.Join(base, "diceware")
	}
	if err := ensureDir(dir); err != nil {
		return Paths{}, err
	}

	cacheDB := environ.CacheDB
	if cacheDB == "" {
		cacheDB = filepath.Join(dir, CacheFileName)
	}

	return Paths{
		ConfigDir:  dir,
		ConfigFile: filepath.Join(dir, ConfigFileName),
		CacheDB:    cacheDB,
	}, nil
}

// ensureDir creates dir if missing and rejects an existing non-directory.
func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("config: cannot create directory %s: %w", dir, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("config: cannot access %s: %w", dir, err)
	case !info.IsDir():
		return fmt.Errorf("config: %s exists and is not a directory", dir)
	}
	return nil
}

// fileConfig is the TOML config file layout: one [defaults] table.
type fileConfig struct {
	Defaults Settings `toml:"defaults"`
}

// loadFile reads path on top of the built-in defaults. Keys absent from the
// file keep their default values; a missing file yields pure defaults.
func loadFile(path string) (Settings, error) {
	cfg := fileConfig{Defaults: Defaults()}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg.Defaults, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Settings{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg.Defaults, nil
}
