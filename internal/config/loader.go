package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// Loader builds a Config from defaults, a TOML file and the environment.
type Loader struct {
	fs     afero.Fs
	lookup func(string) (string, bool)
}

// NewLoader creates a loader reading files from fs and variables from
// the process environment. A nil fs uses the OS filesystem.
func NewLoader(fs afero.Fs) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{fs: fs, lookup: os.LookupEnv}
}

// WithLookupEnv replaces the environment lookup function.
func (l *Loader) WithLookupEnv(lookup func(string) (string, bool)) *Loader {
	l.lookup = lookup
	return l
}

// Load returns the validated configuration.
//
// If path is empty the default path is used and a missing file is not an
// error. An explicit path that doesn't exist returns ErrFileNotFound.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := l.loadFile(cfg, path, explicit); err != nil {
		return nil, err
	}
	if err := applyEnv(cfg, l.lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) loadFile(cfg *Config, path string, explicit bool) error {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if explicit {
				return fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(path, data, cfg)
}

// Parse decodes TOML data into cfg. Unknown keys are rejected.
func Parse(path string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return toParseError(path, err)
	}
	return nil
}

func toParseError(path string, err error) error {
	var strict *toml.StrictMissingError
	if errors.As(err, &strict) && len(strict.Errors) > 0 {
		first := strict.Errors[0]
		line, col := first.Position()
		return &ParseError{
			Path:    path,
			Line:    line,
			Column:  col,
			Message: fmt.Sprintf("unknown key %q", joinKey(first.Key())),
			Err:     err,
		}
	}

	var decErr *toml.DecodeError
	if errors.As(err, &decErr) {
		line, col := decErr.Position()
		return &ParseError{
			Path:    path,
			Line:    line,
			Column:  col,
			Message: decErr.Error(),
			Err:     err,
		}
	}

	return &ParseError{Path: path, Message: err.Error(), Err: err}
}

func joinKey(key toml.Key) string {
	s := ""
	for i, part := range key {
		if i > 0 {
			s += "."
		}
		s += part
	}
	return s
}
