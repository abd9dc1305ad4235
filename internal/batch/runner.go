package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/sjson"

	"github.com/dshills/pocketcalc/internal/engine"
	"github.com/dshills/pocketcalc/internal/logging"
	"github.com/dshills/pocketcalc/internal/tape"
)

// ErrUnknownFormat is returned by ParseFormat for an unsupported name.
var ErrUnknownFormat = errors.New("unknown output format")

// Format selects how results are written.
type Format uint8

const (
	// FormatText writes the display, one line per input line.
	FormatText Format = iota
	// FormatJSON writes one JSON object per input line.
	FormatJSON
)

// String returns the format name.
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "text"
}

// ParseFormat parses "text" or "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "json", "jsonl":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Options configures a Runner.
type Options struct {
	Format Format
	// History writes the history line before each display in FormatText.
	History bool
	// Session is copied into JSON records.
	Session string
	Logger  *logging.Logger
	// Tape, if set, records completed calculations.
	Tape *tape.Recorder
}

// Result is the outcome of one input line.
type Result struct {
	Line     int
	Input    string
	Snapshot engine.Snapshot
	// Err is set when the line contained an unknown token.
	Err error
}

// Stats summarizes a run.
type Stats struct {
	Lines  int
	Errors int
}

// Runner feeds lines to an engine and writes results.
type Runner struct {
	engine *engine.Engine
	out    io.Writer
	opts   Options
	logger *logging.Logger
	line   int
}

// NewRunner creates a runner writing to out.
func NewRunner(e *engine.Engine, out io.Writer, opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Null()
	}
	return &Runner{
		engine: e,
		out:    out,
		opts:   opts,
		logger: logger.WithComponent("batch"),
	}
}

// Run processes every line of in until EOF or ctx is done.
func (r *Runner) Run(ctx context.Context, in io.Reader) (Stats, error) {
	var stats Stats
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		res, ok, err := r.RunLine(sc.Text())
		if err != nil {
			return stats, err
		}
		if !ok {
			continue
		}
		stats.Lines++
		if res.Err != nil {
			stats.Errors++
		}
	}
	if err := sc.Err(); err != nil {
		return stats, fmt.Errorf("reading input: %w", err)
	}
	return stats, nil
}

// RunLine processes one line and writes its result. It returns false for
// blank and comment lines, which produce no output. The returned error is
// an output error; token errors are reported in Result.Err.
func (r *Runner) RunLine(input string) (Result, bool, error) {
	r.line++
	trimmed := strings.TrimSpace(input)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Result{}, false, nil
	}

	snap, err := ApplyLine(r.engine, trimmed, r.observe)
	res := Result{Line: r.line, Input: trimmed, Snapshot: snap, Err: err}
	if err != nil {
		r.logger.Warn("line %d: %v", r.line, err)
	} else {
		r.logger.Debug("line %d: %q -> %q", r.line, trimmed, snap.Display)
	}

	if err := r.write(res); err != nil {
		return res, true, fmt.Errorf("writing result: %w", err)
	}
	return res, true, nil
}

func (r *Runner) observe(snap engine.Snapshot) {
	if r.opts.Tape == nil {
		return
	}
	if _, err := r.opts.Tape.Observe(snap); err != nil {
		r.logger.Error("tape: %v", err)
	}
}

func (r *Runner) write(res Result) error {
	if r.opts.Format == FormatJSON {
		rec, err := Record(r.opts.Session, res)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(r.out, "%s\n", rec)
		return err
	}

	if res.Err != nil {
		_, err := fmt.Fprintf(r.out, "error: line %d: %v\n", res.Line, res.Err)
		return err
	}
	if r.opts.History {
		if _, err := fmt.Fprintln(r.out, res.Snapshot.History); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(r.out, res.Snapshot.Display)
	return err
}

// Record encodes res as a JSON object. A token error adds a "message" field.
func Record(session string, res Result) ([]byte, error) {
	var (
		doc = []byte(`{}`)
		err error
	)
	set := func(path string, v any) {
		if err == nil {
			doc, err = sjson.SetBytes(doc, path, v)
		}
	}
	set("session", session)
	set("line", res.Line)
	set("input", res.Input)
	set("display", res.Snapshot.Display)
	set("history", res.Snapshot.History)
	set("error", res.Snapshot.Error)
	if res.Err != nil {
		set("message", res.Err.Error())
	}
	return doc, err
}
