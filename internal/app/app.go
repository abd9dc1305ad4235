// Package app wires the calculator together for the terminal UI. It owns
// the engine, keymap, renderer and tape, and runs the single event loop.
package app

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/afero"

	"github.com/dshills/pocketcalc/internal/config"
	"github.com/dshills/pocketcalc/internal/engine"
	"github.com/dshills/pocketcalc/internal/input/keymap"
	"github.com/dshills/pocketcalc/internal/input/mouse"
	"github.com/dshills/pocketcalc/internal/logging"
	"github.com/dshills/pocketcalc/internal/renderer"
	"github.com/dshills/pocketcalc/internal/renderer/backend"
	"github.com/dshills/pocketcalc/internal/tape"
)

// DefaultFlashInterval is the step between fades of the pressed-button highlight.
const DefaultFlashInterval = 80 * time.Millisecond

// Application is the central coordinator for the terminal calculator.
type Application struct {
	mu sync.Mutex

	config  *config.Config
	fs      afero.Fs
	session string
	logger  *logging.Logger
	logFile io.Closer

	engine   *engine.Engine
	keymaps  *keymap.Registry
	theme    renderer.Theme
	tape     *tape.Recorder
	metrics  *Metrics
	backend  backend.Backend
	renderer *renderer.Renderer

	snap  engine.Snapshot
	mouse mouse.Tracker
	flash time.Duration

	running      atomic.Bool
	done         chan struct{}
	shutdownOnce sync.Once

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty uses the default.
	ConfigPath string

	// Config, if set, is used as-is instead of loading ConfigPath.
	Config *config.Config

	// Fs is the filesystem for config, log and tape files. Nil uses the OS.
	Fs afero.Fs

	// LogLevel overrides the configured logging level.
	LogLevel string

	// LeadingMinus enables LeadingMinusAsSign regardless of the config.
	LeadingMinus bool

	// TapePath overrides the configured tape file.
	TapePath string

	// Logger, if set, replaces the logger built from the config.
	Logger *logging.Logger

	// FlashInterval is the pressed-highlight fade step. Zero uses
	// DefaultFlashInterval; a negative value disables the timer.
	FlashInterval time.Duration
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		done:    make(chan struct{}),
		metrics: NewMetrics(),
		session: logging.NewSessionID(),
		flash:   opts.FlashInterval,
	}
	if app.flash == 0 {
		app.flash = DefaultFlashInterval
	}

	if err := app.bootstrap(); err != nil {
		app.closeLog()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	app.fs = app.opts.Fs
	if app.fs == nil {
		app.fs = afero.NewOsFs()
	}

	// 1. Config
	cfg := app.opts.Config
	if cfg == nil {
		var err error
		cfg, err = config.NewLoader(app.fs).Load(app.opts.ConfigPath)
		if err != nil {
			return &InitError{Component: "config", Err: err}
		}
	}
	if app.opts.LogLevel != "" {
		cfg.Logging.Level = app.opts.LogLevel
	}
	if app.opts.LeadingMinus {
		cfg.Engine.LeadingMinusAsSign = true
	}
	if app.opts.TapePath != "" {
		cfg.Tape.Path = app.opts.TapePath
	}
	if err := cfg.Validate(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.config = cfg

	// 2. Logger
	if err := app.initLogger(); err != nil {
		return &InitError{Component: "logging", Err: err}
	}

	// 3. Engine
	app.engine = engine.New(engine.WithLeadingMinusAsSign(cfg.Engine.LeadingMinusAsSign))
	app.snap = app.engine.Snapshot()

	// 4. Keymap
	keymaps, err := keymap.NewDefaultRegistry(cfg.Keymap)
	if err != nil {
		return &InitError{Component: "keymap", Err: err}
	}
	app.keymaps = keymaps

	// 5. Theme
	theme, err := cfg.ResolveTheme()
	if err != nil {
		return &InitError{Component: "theme", Err: err}
	}
	app.theme = theme

	// 6. Tape
	if cfg.Tape.Path != "" {
		app.tape = tape.NewRecorder(app.fs, config.ExpandHome(cfg.Tape.Path), app.session)
	}

	app.logger.Info("started: leading_minus=%t tape=%q", cfg.Engine.LeadingMinusAsSign, cfg.Tape.Path)
	return nil
}

// initLogger builds the session logger. In terminal mode the log must not
// reach the screen, so without a log file output is discarded.
func (app *Application) initLogger() error {
	if app.opts.Logger != nil {
		app.logger = app.opts.Logger.WithSession(app.session)
		return nil
	}

	var out io.Writer = io.Discard
	if path := app.config.Logging.File; path != "" {
		path = config.ExpandHome(path)
		if err := app.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		f, err := app.fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		out = f
		app.logFile = f
	}

	app.logger = logging.New(logging.Config{
		Level:  app.config.LogLevel(),
		Output: out,
		Prefix: "pocketcalc",
	}).WithSession(app.session)
	return nil
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Run starts the application main loop.
// Blocks until the user quits or Shutdown is called.
func (app *Application) Run() error {
	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return ErrNoBackend
	}

	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.stopped()

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	app.renderer = renderer.New(b, app.theme)
	app.draw()

	return app.eventLoop()
}

// eventLoop is the main application loop. Every handled event redraws.
func (app *Application) eventLoop() error {
	for {
		select {
		case <-app.done:
			return nil
		default:
		}

		ev := app.backend.PollEvent()

		select {
		case <-app.done:
			return nil
		default:
		}

		err := app.handleBackendEvent(ev)
		if errors.Is(err, ErrQuit) {
			app.logger.Info("quit")
			return nil
		}
		if err != nil {
			return err
		}
		app.draw()
	}
}

// stopped marks the loop as finished. If Shutdown ran while the loop was
// still live, the log is closed here, after the loop's last write.
func (app *Application) stopped() {
	app.running.Store(false)
	select {
	case <-app.done:
		app.closeLog()
	default:
	}
}

func (app *Application) draw() {
	t := StartTimer()
	app.renderer.Draw(app.snap)
	app.metrics.RecordRender(t.Elapsed())
}

// Shutdown stops the event loop and releases resources. It is idempotent
// and safe to call from any goroutine. While Run is active the log file
// stays open until the loop returns.
func (app *Application) Shutdown() {
	app.shutdownOnce.Do(func() {
		close(app.done)

		m := app.metrics.Snapshot()
		app.logger.Info("shutdown: uptime=%s keys=%d clicks=%d unbound=%d events=%d renders=%d",
			m.Uptime.Round(time.Millisecond), m.KeyCount, m.ClickCount, m.UnboundCount, m.EventCount, m.RenderCount)

		app.mu.Lock()
		b := app.backend
		app.mu.Unlock()
		if app.running.Load() {
			if b != nil {
				b.PostEvent(backend.Event{Type: backend.EventInterrupt})
			}
			return
		}
		app.closeLog()
	})
}

func (app *Application) closeLog() {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.logFile != nil {
		app.logFile.Close()
		app.logFile = nil
	}
}

// IsRunning returns true if the event loop is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the effective configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Engine returns the calculator engine.
func (app *Application) Engine() *engine.Engine {
	return app.engine
}

// Snapshot returns the last rendered engine state.
func (app *Application) Snapshot() engine.Snapshot {
	return app.snap
}

// Keymaps returns the keymap registry.
func (app *Application) Keymaps() *keymap.Registry {
	return app.keymaps
}

// Renderer returns the renderer, or nil before Run.
func (app *Application) Renderer() *renderer.Renderer {
	return app.renderer
}

// Tape returns the tape recorder, or nil when the tape is disabled.
func (app *Application) Tape() *tape.Recorder {
	return app.tape
}

// Metrics returns the session metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Session returns the session identifier.
func (app *Application) Session() string {
	return app.session
}

// Logger returns the session logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}
