package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds every pocketcalc setting.
type Config struct {
	Logging LoggingConfig     `toml:"logging"`
	Engine  EngineConfig      `toml:"engine"`
	Theme   map[string]string `toml:"theme"`
	Keymap  map[string]string `toml:"keymap"`
	Script  ScriptConfig      `toml:"script"`
	Tape    TapeConfig        `toml:"tape"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// File receives log output in terminal mode. Empty discards it.
	File string `toml:"file"`
}

// EngineConfig configures the arithmetic engine.
type EngineConfig struct {
	LeadingMinusAsSign bool `toml:"leading_minus_as_sign"`
}

// ScriptConfig configures the Lua script host.
type ScriptConfig struct {
	Timeout Duration `toml:"timeout"`
}

// TapeConfig configures the paper tape.
type TapeConfig struct {
	// Path is the JSONL tape file. Empty disables the tape.
	Path string `toml:"path"`
}

// Duration is a time.Duration written as a string ("500ms", "2s") in TOML.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String returns the duration in time.Duration notation.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultScriptTimeout bounds a script run when no timeout is configured.
const DefaultScriptTimeout = 5 * time.Second

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Theme:   map[string]string{},
		Keymap:  map[string]string{},
		Script:  ScriptConfig{Timeout: Duration(DefaultScriptTimeout)},
	}
}

// DefaultPath returns the user config file location:
// $XDG_CONFIG_HOME/pocketcalc/config.toml, falling back to the
// platform config directory.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("locating config dir: %w", err)
		}
	}
	return filepath.Join(dir, "pocketcalc", "config.toml"), nil
}

// ExpandHome replaces a leading "~/" in path with the user's home directory.
func ExpandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
