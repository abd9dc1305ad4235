package script

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/pocketcalc/internal/batch"
	"github.com/dshills/pocketcalc/internal/engine"
	"github.com/dshills/pocketcalc/internal/logging"
	"github.com/dshills/pocketcalc/internal/tape"
)

// DefaultTimeout bounds a run when Options.Timeout is zero.
const DefaultTimeout = 5 * time.Second

// Options configures a Host.
type Options struct {
	Timeout time.Duration
	// Output receives print output. Nil discards it.
	Output io.Writer
	Logger *logging.Logger
	// Tape, if set, records completed calculations.
	Tape *tape.Recorder
}

// Host owns a sandboxed Lua state bound to one engine.
//
// gopher-lua states are not goroutine-safe; the mutex serializes runs.
type Host struct {
	mu      sync.Mutex
	L       *lua.LState
	engine  *engine.Engine
	out     io.Writer
	timeout time.Duration
	logger  *logging.Logger
	tape    *tape.Recorder
	closed  bool
}

// New creates a host driving e.
func New(e *engine.Engine, opts Options) *Host {
	h := &Host{
		engine:  e,
		out:     opts.Output,
		timeout: opts.Timeout,
		logger:  opts.Logger,
		tape:    opts.Tape,
	}
	if h.out == nil {
		h.out = io.Discard
	}
	if h.timeout <= 0 {
		h.timeout = DefaultTimeout
	}
	if h.logger == nil {
		h.logger = logging.Null()
	}
	h.logger = h.logger.WithComponent("script")

	h.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(h.L)
	h.installCalc()
	return h
}

// openSafeLibraries opens base, table, string and math and removes the
// loaders that could read files or compile code.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Close releases the Lua state. Close is idempotent.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	h.L.Close()
}

// RunFile reads path from fs and runs it.
func (h *Host) RunFile(ctx context.Context, fs afero.Fs, path string) error {
	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return &Error{Name: path, Err: err}
	}
	return h.run(ctx, path, src)
}

// RunString runs src as a chunk named name.
func (h *Host) RunString(ctx context.Context, name, src string) error {
	return h.run(ctx, name, []byte(src))
}

func (h *Host) run(ctx context.Context, name string, src []byte) (err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}

	fn, err := h.L.Load(bytes.NewReader(src), name)
	if err != nil {
		return &Error{Name: name, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	h.L.SetContext(ctx)
	defer h.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = &Error{Name: name, Err: fmt.Errorf("lua panic: %v", r)}
		}
	}()

	start := time.Now()
	h.L.Push(fn)
	if callErr := h.L.PCall(0, lua.MultRet, nil); callErr != nil {
		h.L.SetTop(0)
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return &Error{Name: name, Err: ErrTimeout}
		case ctx.Err() != nil:
			return &Error{Name: name, Err: ctx.Err()}
		}
		return &Error{Name: name, Err: callErr}
	}
	h.L.SetTop(0)
	h.logger.Debug("ran %s in %s", name, time.Since(start))
	return nil
}

// installCalc registers the calc table and replaces print.
func (h *Host) installCalc() {
	L := h.L
	mod := L.NewTable()
	L.SetField(mod, "press", L.NewFunction(h.press))
	L.SetField(mod, "enter", L.NewFunction(h.enter))
	L.SetField(mod, "display", L.NewFunction(h.display))
	L.SetField(mod, "history", L.NewFunction(h.history))
	L.SetField(mod, "is_error", L.NewFunction(h.isError))
	L.SetField(mod, "result_pending", L.NewFunction(h.resultPending))
	L.SetField(mod, "clear", L.NewFunction(h.clear))
	L.SetGlobal("calc", mod)

	L.SetGlobal("print", L.NewFunction(h.print))
}

func (h *Host) handle(ev engine.Event) engine.Snapshot {
	snap := h.engine.HandleEvent(ev)
	h.observe(snap)
	return snap
}

func (h *Host) observe(snap engine.Snapshot) {
	if h.tape == nil {
		return
	}
	if _, err := h.tape.Observe(snap); err != nil {
		h.logger.Error("tape: %v", err)
	}
}

// press(label, ...) -> display
func (h *Host) press(L *lua.LState) int {
	snap := h.engine.Snapshot()
	for i := 1; i <= L.GetTop(); i++ {
		label := L.CheckString(i)
		ev, err := engine.ParseEvent(label)
		if err != nil {
			L.ArgError(i, err.Error())
			return 0
		}
		snap = h.handle(ev)
	}
	L.Push(lua.LString(snap.Display))
	return 1
}

// enter(line) -> display
func (h *Host) enter(L *lua.LState) int {
	line := L.CheckString(1)
	snap, err := batch.ApplyLine(h.engine, line, h.observe)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LString(snap.Display))
	return 1
}

// display() -> string
func (h *Host) display(L *lua.LState) int {
	L.Push(lua.LString(h.engine.Snapshot().Display))
	return 1
}

// history() -> string
func (h *Host) history(L *lua.LState) int {
	L.Push(lua.LString(h.engine.Snapshot().History))
	return 1
}

// is_error() -> bool
func (h *Host) isError(L *lua.LState) int {
	L.Push(lua.LBool(h.engine.Snapshot().Error))
	return 1
}

// result_pending() -> bool
func (h *Host) resultPending(L *lua.LState) int {
	L.Push(lua.LBool(h.engine.Snapshot().ResultPending))
	return 1
}

// clear() -> display
func (h *Host) clear(L *lua.LState) int {
	L.Push(lua.LString(h.handle(engine.Clear()).Display))
	return 1
}

// print(...) writes tab-separated values and a newline to the output.
func (h *Host) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	if _, err := fmt.Fprintln(h.out, strings.Join(parts, "\t")); err != nil {
		L.RaiseError("print: %s", err.Error())
	}
	return 0
}
