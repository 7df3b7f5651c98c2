// Package app wires the task store, filter selector and theme to a
// persistence backend. Both the TUI and the CLI commands drive an App.
package app

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklane/internal/config"
	"github.com/nibzard/tasklane/internal/logging"
	"github.com/nibzard/tasklane/internal/storage"
	"github.com/nibzard/tasklane/internal/theme"
	"github.com/nibzard/tasklane/internal/todo"
)

// App owns the application state for one process.
type App struct {
	store    *todo.Store
	selector *todo.Selector
	adapter  *storage.Adapter
	theme    theme.Name
	logger   *log.Logger
}

// Open opens the configured backend and hydrates the store from it.
func Open(cfg *config.Config, logger *log.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	kv, err := storage.Open(cfg.Store, cfg.StorePath())
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a := New(storage.NewAdapter(kv), theme.Parse(cfg.Theme), logger)
	a.logger.Debug("store opened", "backend", cfg.Store, "path", cfg.StorePath())
	return a, nil
}

// New builds an App over an existing adapter. fallback is the theme used
// when none has been saved.
func New(adapter *storage.Adapter, fallback theme.Name, logger *log.Logger) *App {
	if logger == nil {
		logger = logging.Discard()
	}
	a := &App{
		selector: &todo.Selector{},
		adapter:  adapter,
		logger:   logger,
	}
	a.store = todo.NewStore(adapter, a.hydrate())
	a.theme = a.loadTheme(fallback)
	a.store.Subscribe(func(tasks []todo.Task, itemsLeft int) {
		a.logger.Debug("tasks changed", "count", len(tasks), "left", itemsLeft, "order", todo.IDs(tasks))
	})
	return a
}

func (a *App) hydrate() []todo.Task {
	tasks, ok, err := a.adapter.LoadTasks()
	if err != nil {
		var perr *storage.PersistenceError
		if errors.As(err, &perr) {
			a.logger.Warn("persisted tasks unreadable, using defaults", "op", perr.Op, "err", perr.Err)
		} else {
			a.logger.Warn("load tasks", "err", err)
		}
		return todo.DefaultTasks()
	}
	if !ok {
		a.logger.Info("no saved tasks, using defaults")
		return todo.DefaultTasks()
	}
	a.logger.Debug("tasks loaded", "count", len(tasks))
	return tasks
}

func (a *App) loadTheme(fallback theme.Name) theme.Name {
	saved, ok, err := a.adapter.LoadTheme()
	if err != nil {
		a.logger.Warn("load theme", "err", err)
		return fallback
	}
	if !ok {
		return fallback
	}
	return theme.Parse(saved)
}

// Store returns the task store.
func (a *App) Store() *todo.Store {
	return a.store
}

// Selector returns the view filter selector.
func (a *App) Selector() *todo.Selector {
	return a.selector
}

// Logger returns the application logger.
func (a *App) Logger() *log.Logger {
	return a.logger
}

// Theme returns the active theme.
func (a *App) Theme() theme.Name {
	return a.theme
}

// SetTheme activates and persists n.
func (a *App) SetTheme(n theme.Name) error {
	a.theme = n
	a.logger.Debug("theme changed", "theme", n)
	if err := a.adapter.SaveTheme(string(n)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// ToggleTheme flips between dark and light and persists the result.
func (a *App) ToggleTheme() (theme.Name, error) {
	next := theme.Toggle(a.theme)
	return next, a.SetTheme(next)
}

// Visible returns the tasks matching the current filter.
func (a *App) Visible() []todo.Task {
	return a.selector.Apply(a.store.Tasks())
}

// Close releases the storage backend.
func (a *App) Close() error {
	if err := a.adapter.KV().Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}
