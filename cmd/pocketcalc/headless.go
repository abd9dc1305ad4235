package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/dshills/pocketcalc/internal/batch"
	"github.com/dshills/pocketcalc/internal/config"
	"github.com/dshills/pocketcalc/internal/engine"
	"github.com/dshills/pocketcalc/internal/logging"
	"github.com/dshills/pocketcalc/internal/script"
	"github.com/dshills/pocketcalc/internal/tape"
)

// osFs is the filesystem used outside tests.
var osFs afero.Fs = afero.NewOsFs()

// session bundles what every headless mode needs.
type session struct {
	id     string
	cfg    *config.Config
	logger *logging.Logger
	engine *engine.Engine
	tape   *tape.Recorder
}

// newSession loads the config, applies flag overrides and builds the
// engine. Headless modes log to stderr.
func newSession(opts cliOptions, stderr io.Writer) (*session, error) {
	cfg, err := config.NewLoader(osFs).Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.leadingMinus {
		cfg.Engine.LeadingMinusAsSign = true
	}
	if opts.tapePath != "" {
		cfg.Tape.Path = opts.tapePath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &session{id: logging.NewSessionID(), cfg: cfg}
	s.logger = logging.New(logging.Config{
		Level:  cfg.LogLevel(),
		Output: stderr,
		Prefix: "pocketcalc",
	}).WithSession(s.id)
	s.engine = engine.New(engine.WithLeadingMinusAsSign(cfg.Engine.LeadingMinusAsSign))
	if cfg.Tape.Path != "" {
		s.tape = tape.NewRecorder(osFs, config.ExpandHome(cfg.Tape.Path), s.id)
	}
	return s, nil
}

func runBatch(ctx context.Context, opts cliOptions, in io.Reader, stdout, stderr io.Writer) int {
	format, err := batch.ParseFormat(opts.format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	s, err := newSession(opts, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	runner := batch.NewRunner(s.engine, stdout, batch.Options{
		Format:  format,
		History: opts.history,
		Session: s.id,
		Logger:  s.logger,
		Tape:    s.tape,
	})
	stats, err := runner.Run(ctx, in)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if stats.Errors > 0 {
		return 1
	}
	return 0
}

func runScript(ctx context.Context, opts cliOptions, stdout, stderr io.Writer) int {
	s, err := newSession(opts, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	host := script.New(s.engine, script.Options{
		Timeout: s.cfg.Script.Timeout.Std(),
		Output:  stdout,
		Logger:  s.logger,
		Tape:    s.tape,
	})
	defer host.Close()

	if err := host.RunFile(ctx, osFs, opts.scriptPath); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runPrintTape(opts cliOptions, stdout, stderr io.Writer) int {
	path := opts.tapePath
	if path == "" {
		cfg, err := config.NewLoader(osFs).Load(opts.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		path = cfg.Tape.Path
	}
	if path == "" {
		fmt.Fprintln(stderr, "Error: no tape configured (use -tape or [tape] path)")
		return 1
	}

	entries, err := tape.Read(osFs, config.ExpandHome(path))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if len(entries) == 0 {
			return 1
		}
	}
	if err := tape.Print(stdout, entries); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
