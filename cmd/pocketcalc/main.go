// Package main is the entry point for pocketcalc.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/pocketcalc/internal/app"
	"github.com/dshills/pocketcalc/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// cliOptions holds the parsed command line.
type cliOptions struct {
	configPath   string
	logLevel     string
	exprs        lineList
	format       string
	history      bool
	scriptPath   string
	tapePath     string
	printTape    bool
	leadingMinus bool
	showVersion  bool
}

// lineList collects repeated -e flags.
type lineList []string

func (l *lineList) String() string     { return strings.Join(*l, "; ") }
func (l *lineList) Set(s string) error { *l = append(*l, s); return nil }

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "pocketcalc %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case opts.printTape:
		return runPrintTape(opts, stdout, stderr)
	case opts.scriptPath != "":
		return runScript(ctx, opts, stdout, stderr)
	case len(opts.exprs) > 0:
		return runBatch(ctx, opts, strings.NewReader(strings.Join(opts.exprs, "\n")), stdout, stderr)
	case !isTerminal(stdin):
		return runBatch(ctx, opts, stdin, stdout, stderr)
	default:
		return runUI(ctx, opts, stderr)
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runUI(ctx context.Context, opts cliOptions, stderr io.Writer) int {
	application, err := app.New(app.Options{
		ConfigPath:   opts.configPath,
		LogLevel:     opts.logLevel,
		LeadingMinus: opts.leadingMinus,
		TapePath:     opts.tapePath,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	tb, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(tb); err != nil {
		fmt.Fprintf(stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	go func() {
		<-ctx.Done()
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("pocketcalc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.Var(&opts.exprs, "e", "Evaluate a line of keypad tokens (repeatable)")
	fs.StringVar(&opts.format, "format", "text", "Batch output format (text, json)")
	fs.BoolVar(&opts.history, "history", false, "Print the history line before each result")
	fs.StringVar(&opts.scriptPath, "script", "", "Run a Lua script")
	fs.StringVar(&opts.tapePath, "tape", "", "Append completed calculations to this tape file")
	fs.BoolVar(&opts.printTape, "print-tape", false, "Print the tape file and exit")
	fs.BoolVar(&opts.leadingMinus, "leading-minus", false, "Treat '-' on an empty display as a sign")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "pocketcalc - terminal pocket calculator\n\n")
		fmt.Fprintf(stderr, "Usage: pocketcalc [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  pocketcalc                          Open the keypad\n")
		fmt.Fprintf(stderr, "  pocketcalc -e '12.5 × 2 ='          Evaluate and print 25\n")
		fmt.Fprintf(stderr, "  echo '2 ^ 10 =' | pocketcalc        Batch mode from stdin\n")
		fmt.Fprintf(stderr, "  pocketcalc -format json -e '9 √x'   One JSON record per line\n")
		fmt.Fprintf(stderr, "  pocketcalc -script totals.lua       Run a Lua script\n")
	}

	// -h and -help are handled by the flag package and return flag.ErrHelp.
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return opts, nil
}
