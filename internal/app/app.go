package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/dshills/suggest/internal/command"
	"github.com/dshills/suggest/internal/config"
	"github.com/dshills/suggest/internal/event"
	"github.com/dshills/suggest/internal/history"
	"github.com/dshills/suggest/internal/keymap"
	"github.com/dshills/suggest/internal/log"
	"github.com/dshills/suggest/internal/provider"
	"github.com/dshills/suggest/internal/provider/word"
	"github.com/dshills/suggest/internal/snippet"
	"github.com/dshills/suggest/internal/suggest"
	"github.com/dshills/suggest/internal/textdoc"
)

// Options configures the application.
type Options struct {
	// ConfigPath locates the TOML configuration file. A missing file
	// yields defaults; set WatchConfig to pick up later edits.
	ConfigPath string

	// WatchConfig enables live configuration reload.
	WatchConfig bool

	// Surface renders the suggestion widget. Required.
	Surface suggest.Surface

	// Providers compute candidates. The buffer-word provider is
	// always appended.
	Providers []provider.Provider

	// Deliver runs engine notifications on the host's UI-logic
	// goroutine. Defaults to inline delivery.
	Deliver func(func())

	// Logger overrides the configuration-derived logger.
	Logger *log.Logger
}

// Application owns the assembled suggestion stack.
type Application struct {
	mu      sync.Mutex
	running bool
	watch   bool

	cfg     *config.Manager
	watcher *config.Watcher
	logger  *log.Logger
	bus     *event.Bus

	doc    *textdoc.Document
	cursor *textdoc.Cursor
	hist   *history.History

	engine      *provider.Engine
	coordinator *suggest.Coordinator
	commands    *command.Registry
	keymap      *keymap.Registry
	contextKeys *keymap.ContextKeys
	signal      *suggest.Signal
}

// New assembles the application. The coordinator is live on return;
// Start only attaches the optional config watcher.
func New(opts Options) (*Application, error) {
	if opts.Surface == nil {
		return nil, NewOperationError("new", "", ErrNoSurface)
	}

	mgr, err := config.NewManager(opts.ConfigPath)
	if err != nil {
		return nil, NewOperationError("new", opts.ConfigPath, err)
	}
	cfg := mgr.Current()

	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.Config{
			Level:  log.ParseLevel(cfg.Log.Level),
			Prefix: "suggest",
		})
	}

	a := &Application{
		watch:       opts.WatchConfig,
		cfg:         mgr,
		logger:      logger,
		bus:         event.NewBus(),
		doc:         textdoc.New(),
		commands:    command.NewRegistry(),
		keymap:      keymap.NewRegistry(),
		contextKeys: keymap.NewContextKeys(),
	}
	a.cursor = textdoc.NewCursor(a.doc)
	a.hist = history.New(a.doc)

	providers := append(append([]provider.Provider{}, opts.Providers...), word.New())
	engineOpts := []provider.Option{
		provider.WithLogger(logger.WithComponent("engine")),
		provider.WithMaxResults(cfg.Suggest.MaxResults),
	}
	if opts.Deliver != nil {
		engineOpts = append(engineOpts, provider.WithDelivery(opts.Deliver))
	}
	a.engine = provider.NewEngine(a.doc, a.cursor, providers, engineOpts...)

	a.coordinator = suggest.NewCoordinator(suggest.Options{
		Engine:   a.engine,
		Surface:  opts.Surface,
		Doc:      a.doc,
		Cursor:   a.cursor,
		History:  a.hist,
		Inserter: snippet.NewInserter(a.doc, a.cursor),
		Commands: a.commands,
		Bus:      a.bus,
		Errors:   &logSink{logger: logger},
		Logger:   logger.WithComponent("coordinator"),
		PageSize: cfg.Suggest.PageSize,
	})

	a.signal = suggest.NewAcceptOnEnterSignal(mgr, a.contextKeys)

	if err := a.registerActions(); err != nil {
		return nil, NewOperationError("new", "", err)
	}
	a.keymap.Bind(keymap.DefaultBindings()...)

	return a, nil
}

// registerActions wires keymap actions to coordinator operations.
func (a *Application) registerActions() error {
	c := a.coordinator
	actions := map[string]keymap.Action{
		"suggest.trigger":       func() { c.Trigger(true, false) },
		"suggest.accept":        c.AcceptFocused,
		"suggest.cancel":        c.Cancel,
		"suggest.next":          c.SelectNext,
		"suggest.previous":      c.SelectPrev,
		"suggest.nextPage":      c.SelectNextPage,
		"suggest.previousPage":  c.SelectPrevPage,
		"suggest.toggleDetails": c.ToggleDetails,
	}
	for name, fn := range actions {
		if err := a.keymap.RegisterAction(name, fn); err != nil {
			return fmt.Errorf("register actions: %w", err)
		}
	}
	return nil
}

// Start attaches the config watcher when enabled.
func (a *Application) Start(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.running {
		return ErrAlreadyRunning
	}

	if a.watcher == nil && a.shouldWatch() {
		w, err := config.NewWatcher(a.cfg, func(err error) {
			a.logger.Warn("config watch: %v", err)
		})
		if err != nil {
			return NewOperationError("start", "config watcher", err)
		}
		a.watcher = w
	}

	a.running = true
	a.logger.Info("application started")
	return nil
}

func (a *Application) shouldWatch() bool {
	// A manager built from an in-memory config has no path to watch.
	return a.watch && a.cfg.Path() != ""
}

// Stop tears the stack down. Dispose ordering follows the
// coordinator's contract: listeners first, then presentation, then
// the engine handle.
func (a *Application) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.running {
		return ErrNotRunning
	}

	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.logger.Warn("config watcher close: %v", err)
		}
		a.watcher = nil
	}

	a.signal.Dispose()
	a.coordinator.Dispose()

	a.running = false
	a.logger.Info("application stopped")
	return nil
}

// Coordinator returns the suggestion coordinator.
func (a *Application) Coordinator() *suggest.Coordinator { return a.coordinator }

// Document returns the text document.
func (a *Application) Document() *textdoc.Document { return a.doc }

// Cursor returns the document cursor.
func (a *Application) Cursor() *textdoc.Cursor { return a.cursor }

// History returns the undo history.
func (a *Application) History() *history.History { return a.hist }

// Commands returns the follow-up command registry.
func (a *Application) Commands() *command.Registry { return a.commands }

// Keymap returns the binding and action registry.
func (a *Application) Keymap() *keymap.Registry { return a.keymap }

// ContextKeys returns the keybinding context-key store.
func (a *Application) ContextKeys() *keymap.ContextKeys { return a.contextKeys }

// Bus returns the application event bus.
func (a *Application) Bus() *event.Bus { return a.bus }

// Config returns the configuration manager.
func (a *Application) Config() *config.Manager { return a.cfg }
