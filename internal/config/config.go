// Package config provides TOML-based configuration for the suggestion
// core, with change notification and optional live reload.
package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full configuration tree.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Suggest SuggestConfig `toml:"suggest"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `toml:"level"`
}

// SuggestConfig configures suggestion behavior.
type SuggestConfig struct {
	// AcceptOnEnter allows Enter to accept the focused candidate.
	AcceptOnEnter bool `toml:"accept_on_enter"`

	// PageSize is the navigation page-step size.
	PageSize int `toml:"page_size"`

	// TriggerOnType auto-triggers suggestions while typing.
	TriggerOnType bool `toml:"trigger_on_type"`

	// MaxResults caps the candidate count per session.
	MaxResults int `toml:"max_results"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info"},
		Suggest: SuggestConfig{
			AcceptOnEnter: true,
			PageSize:      10,
			TriggerOnType: true,
			MaxResults:    100,
		},
	}
}

// Load reads configuration from a TOML file, layered over defaults.
// A missing file is not an error; defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), &ParseError{Path: path, Err: err}
	}
	return cfg, nil
}

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Manager holds the current configuration and notifies observers on
// reload. All methods are thread-safe.
type Manager struct {
	mu       sync.RWMutex
	path     string
	cfg      Config
	notifier *Notifier
}

// NewManager loads the initial configuration from path.
func NewManager(path string) (*Manager, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Manager{path: path, cfg: cfg, notifier: NewNotifier()}, nil
}

// NewManagerWith creates a manager around an in-memory configuration.
func NewManagerWith(cfg Config) *Manager {
	return &Manager{cfg: cfg, notifier: NewNotifier()}
}

// Path returns the configuration file path. Empty for in-memory
// managers.
func (m *Manager) Path() string {
	return m.path
}

// Current returns the active configuration.
func (m *Manager) Current() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Notifier returns the change notifier.
func (m *Manager) Notifier() *Notifier {
	return m.notifier
}

// Reload re-reads the configuration file and notifies observers.
func (m *Manager) Reload() error {
	cfg, err := Load(m.path)
	if err != nil {
		return err
	}
	m.Update(cfg)
	return nil
}

// Update replaces the active configuration and notifies observers.
func (m *Manager) Update(cfg Config) {
	m.mu.Lock()
	old := m.cfg
	m.cfg = cfg
	m.mu.Unlock()

	m.notifier.Notify(Change{Old: old, New: cfg})
}
