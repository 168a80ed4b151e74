// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/quill/internal/constants"
)

// Front ends selectable with ui.backend.
const (
	BackendBubbletea = "bubbletea"
	BackendTcell     = "tcell"
)

// Config is the root configuration structure.
type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
	Session SessionConfig `toml:"session"`
}

// EditorConfig holds editing behavior.
type EditorConfig struct {
	// QuitTimes is how many consecutive Ctrl-Q presses discard unsaved
	// changes. 0 means the default.
	QuitTimes int `toml:"quit_times"`
}

// QuitTimesOrDefault returns the configured count or the built-in default.
func (e EditorConfig) QuitTimesOrDefault() int {
	if e.QuitTimes <= 0 {
		return constants.DefaultQuitTimes
	}
	return e.QuitTimes
}

// UIConfig holds user-interface settings.
type UIConfig struct {
	Backend  string `toml:"backend"`
	StatusFg string `toml:"status_fg"`
	StatusBg string `toml:"status_bg"`
}

// LogConfig controls the log file. Logging is off without a path.
type LogConfig struct {
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

// ZerologLevel parses Level, defaulting to info.
func (l LogConfig) ZerologLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(l.Level)
	if err != nil || l.Level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// SessionConfig holds caret-memory settings.
type SessionConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
	TTLDays int    `toml:"ttl_days"`
}

// TTL returns how long an untouched session is kept, 30 days if unset.
func (s SessionConfig) TTL() time.Duration {
	days := s.TTLDays
	if days <= 0 {
		days = 30
	}
	return time.Duration(days) * 24 * time.Hour
}

// PathOrDefault returns the session database path, under the data
// directory if unset.
func (s SessionConfig) PathOrDefault() (string, error) {
	if s.Path != "" {
		return s.Path, nil
	}
	dir, err := EnsureDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sessions.db"), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		UI:      UIConfig{Backend: BackendBubbletea},
		Log:     LogConfig{Level: "info"},
		Session: SessionConfig{Enabled: true},
	}
}

// Override adjusts a loaded configuration, typically from a command-line
// flag. Overrides are applied after the environment and win over it.
type Override func(*Config)

// Load reads configuration from a TOML file, applies environment variable
// overrides and then overrides, and validates the result. An empty path
// means the default location, where a missing file is not an error.
func Load(path string, overrides ...Override) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	if _, err := os.Stat(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	} else {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		for _, k := range md.Undecoded() {
			log.Warn().Str("key", k.String()).Str("file", path).Msg("unknown config key")
		}
	}

	// Apply environment variable overrides, then the caller's
	applyEnvOverrides(cfg)
	for _, o := range overrides {
		o(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.Editor.QuitTimes < 0 {
		errs = append(errs, fmt.Errorf("editor.quit_times=%d must not be negative", c.Editor.QuitTimes))
	}

	switch c.UI.Backend {
	case "", BackendBubbletea, BackendTcell:
	default:
		errs = append(errs, fmt.Errorf("ui.backend=%q must be %q or %q", c.UI.Backend, BackendBubbletea, BackendTcell))
	}

	for name, v := range map[string]string{"ui.status_fg": c.UI.StatusFg, "ui.status_bg": c.UI.StatusBg} {
		if v != "" && !hexColor.MatchString(v) {
			errs = append(errs, fmt.Errorf("%s=%q must be a #rrggbb color", name, v))
		}
	}

	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("log.level=%q is invalid: %v", c.Log.Level, err))
		}
	}

	if c.Session.TTLDays < 0 {
		errs = append(errs, fmt.Errorf("session.ttl_days=%d must not be negative", c.Session.TTLDays))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"QUILL_BACKEND", func(v string) { cfg.UI.Backend = v }},
		{"QUILL_LOG_LEVEL", func(v string) { cfg.Log.Level = v }},
		{"QUILL_LOG_FILE", func(v string) { cfg.Log.Path = v }},
	} {
		if v := os.Getenv(setter.env); v != "" {
			setter.apply(v)
		}
	}
}

// DataDir returns the path to the quill data directory (~/.config/quill).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", constants.Name), nil
}

// DefaultPath returns ~/.config/quill/config.toml.
func DefaultPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}
