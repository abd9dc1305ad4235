package config

import (
	"strconv"
	"time"
)

// envVar maps one environment variable onto a setting.
type envVar struct {
	name  string
	path  string
	apply func(cfg *Config, value string) error
}

// envMapping lists the supported POCKETCALC_* variables.
var envMapping = []envVar{
	{"POCKETCALC_LOG_LEVEL", "logging.level", func(cfg *Config, v string) error {
		cfg.Logging.Level = v
		return nil
	}},
	{"POCKETCALC_LOG_FILE", "logging.file", func(cfg *Config, v string) error {
		cfg.Logging.File = v
		return nil
	}},
	{"POCKETCALC_LEADING_MINUS", "engine.leading_minus_as_sign", func(cfg *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		cfg.Engine.LeadingMinusAsSign = b
		return nil
	}},
	{"POCKETCALC_SCRIPT_TIMEOUT", "script.timeout", func(cfg *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		cfg.Script.Timeout = Duration(d)
		return nil
	}},
	{"POCKETCALC_TAPE", "tape.path", func(cfg *Config, v string) error {
		cfg.Tape.Path = v
		return nil
	}},
}

// EnvVars returns the names of the supported environment variables.
func EnvVars() []string {
	names := make([]string, len(envMapping))
	for i, ev := range envMapping {
		names[i] = ev.name
	}
	return names
}

// applyEnv overlays environment variables on cfg.
// Empty values are treated as set, not as unset.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if lookup == nil {
		return nil
	}
	for _, ev := range envMapping {
		val, ok := lookup(ev.name)
		if !ok {
			continue
		}
		if err := ev.apply(cfg, val); err != nil {
			return &ValidationError{
				Path:    ev.path,
				Message: "invalid value in " + ev.name,
				Value:   val,
				Code:    ErrCodeTypeMismatch,
				Err:     err,
			}
		}
	}
	return nil
}
