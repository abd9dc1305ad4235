package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dshills/pocketcalc/internal/input/keymap"
	"github.com/dshills/pocketcalc/internal/logging"
	"github.com/dshills/pocketcalc/internal/renderer"
)

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error

	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		errs = append(errs, &ValidationError{
			Path:    "logging.level",
			Message: "must be one of debug, info, warn, error",
			Value:   c.Logging.Level,
			Code:    ErrCodeInvalidEnum,
		})
	}

	if c.Script.Timeout <= 0 {
		errs = append(errs, &ValidationError{
			Path:    "script.timeout",
			Message: "must be positive",
			Value:   c.Script.Timeout,
			Code:    ErrCodeOutOfRange,
		})
	}

	theme := renderer.DefaultTheme()
	for _, name := range sortedKeys(c.Theme) {
		if err := theme.Set(name, c.Theme[name]); err != nil {
			code := ErrCodePatternMismatch
			if errors.Is(err, renderer.ErrUnknownThemeColor) {
				code = ErrCodeInvalidEnum
			}
			errs = append(errs, &ValidationError{
				Path:    "theme." + name,
				Message: err.Error(),
				Value:   c.Theme[name],
				Code:    code,
				Err:     err,
			})
		}
	}

	for _, spec := range sortedKeys(c.Keymap) {
		if _, err := keymap.FromOverrides(map[string]string{spec: c.Keymap[spec]}); err != nil {
			code := ErrCodePatternMismatch
			if errors.Is(err, keymap.ErrUnknownAction) {
				code = ErrCodeInvalidEnum
			}
			errs = append(errs, &ValidationError{
				Path:    fmt.Sprintf("keymap.%q", spec),
				Message: err.Error(),
				Value:   c.Keymap[spec],
				Code:    code,
				Err:     err,
			})
		}
	}

	return errors.Join(errs...)
}

// ResolveTheme returns a renderer theme with the configured colors applied.
func (c *Config) ResolveTheme() (renderer.Theme, error) {
	theme := renderer.DefaultTheme()
	if err := theme.Apply(c.Theme); err != nil {
		return renderer.Theme{}, err
	}
	return theme, nil
}

// LogLevel returns the configured logging level.
func (c *Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Logging.Level)
	return level
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
