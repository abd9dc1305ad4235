// Package tape keeps a paper-tape log of completed calculations.
//
// Each entry is one JSON object per line:
//
//	{"id":"…","session":"…","time":"2026-01-02T15:04:05Z","history":"2 + 2 =","display":"4","error":false}
package tape

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/pocketcalc/internal/engine"
)

// ErrCorrupt is returned when a tape line is not a valid entry.
var ErrCorrupt = errors.New("corrupt tape entry")

// Entry is one recorded calculation.
type Entry struct {
	ID      string
	Session string
	Time    time.Time
	History string
	Display string
	Error   bool
}

// Encode returns the entry as a single JSON line without the newline.
func (e Entry) Encode() ([]byte, error) {
	var (
		doc = []byte(`{}`)
		err error
	)
	set := func(path string, v any) {
		if err == nil {
			doc, err = sjson.SetBytes(doc, path, v)
		}
	}
	set("id", e.ID)
	set("session", e.Session)
	set("time", e.Time.UTC().Format(time.RFC3339Nano))
	set("history", e.History)
	set("display", e.Display)
	set("error", e.Error)
	return doc, err
}

// Decode parses one JSON line into an Entry.
func Decode(line []byte) (Entry, error) {
	if !gjson.ValidBytes(line) {
		return Entry{}, ErrCorrupt
	}
	res := gjson.ParseBytes(line)
	if !res.IsObject() {
		return Entry{}, ErrCorrupt
	}
	display := res.Get("display")
	if !display.Exists() {
		return Entry{}, fmt.Errorf("%w: missing display", ErrCorrupt)
	}

	e := Entry{
		ID:      res.Get("id").String(),
		Session: res.Get("session").String(),
		History: res.Get("history").String(),
		Display: display.String(),
		Error:   res.Get("error").Bool(),
	}
	if ts := res.Get("time").String(); ts != "" {
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return Entry{}, fmt.Errorf("%w: time: %v", ErrCorrupt, err)
		}
		e.Time = t
	}
	return e, nil
}

// Recorder appends entries to a tape file.
//
// Recorder is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	fs      afero.Fs
	path    string
	session string
	last    engine.Snapshot
	now     func() time.Time
	newID   func() string
}

// NewRecorder creates a recorder appending to path on fs.
func NewRecorder(fs afero.Fs, path, session string) *Recorder {
	return &Recorder{
		fs:      fs,
		path:    path,
		session: session,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Path returns the tape file path.
func (r *Recorder) Path() string {
	return r.path
}

// Observe records snap if it completes a calculation: a result after "="
// or a transition into the Error state. A snapshot equal to the previously
// observed one is not recorded again, so a repeated "=" adds nothing.
// Returns true if an entry was written.
func (r *Recorder) Observe(snap engine.Snapshot) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.last
	r.last = snap
	if !snap.ResultPending && !snap.Error {
		return false, nil
	}
	if snap == prev {
		return false, nil
	}
	if err := r.appendLocked(snap); err != nil {
		return false, err
	}
	return true, nil
}

// Record unconditionally appends snap.
func (r *Recorder) Record(snap engine.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appendLocked(snap)
}

func (r *Recorder) appendLocked(snap engine.Snapshot) error {
	line, err := Entry{
		ID:      r.newID(),
		Session: r.session,
		Time:    r.now(),
		History: snap.History,
		Display: snap.Display,
		Error:   snap.Error,
	}.Encode()
	if err != nil {
		return fmt.Errorf("encoding tape entry: %w", err)
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := r.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating tape dir: %w", err)
		}
	}
	f, err := r.fs.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening tape: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("writing tape: %w", err)
	}
	return nil
}

// Read decodes every entry in the tape file at path.
func Read(fs afero.Fs, path string) ([]Entry, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening tape: %w", err)
	}
	defer f.Close()
	return ReadFrom(f)
}

// ReadFrom decodes entries from r, one per line. Blank lines are skipped.
func ReadFrom(r io.Reader) ([]Entry, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		e, err := Decode(line)
		if err != nil {
			return entries, fmt.Errorf("tape line %d: %w", n, err)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return entries, fmt.Errorf("reading tape: %w", err)
	}
	return entries, nil
}

// Print writes entries as a human-readable tape.
func Print(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		history := e.History
		if history == "" {
			history = "-"
		}
		if _, err := fmt.Fprintf(w, "%s  %-24s %s\n", e.Time.Local().Format("2006-01-02 15:04:05"), history, e.Display); err != nil {
			return err
		}
	}
	return nil
}
