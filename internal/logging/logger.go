// Package logging builds the zap loggers used by dbgh from
// config.LoggingConfig. Each subsystem logs through a named category logger
// that can be switched off in the config.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dbgh/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup and config resolution
	CategoryConfig  Category = "config"  // Config load and save
	CategoryWatcher Category = "watcher" // Config hot reload
	CategoryJournal Category = "journal" // Failure journal
	CategoryAssert  Category = "assert"  // Assertion reports from the zap executor
)

// Categories returns every category.
func Categories() []Category {
	return []Category{CategoryBoot, CategoryConfig, CategoryWatcher, CategoryJournal, CategoryAssert}
}

// New builds the root logger. verbose forces debug level.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		level = parsed
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		zc.OutputPaths = []string{cfg.File}
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Registry hands out category loggers derived from one root logger.
type Registry struct {
	root *zap.Logger
	cfg  config.LoggingConfig

	mu      sync.RWMutex
	loggers map[Category]*zap.Logger
}

// NewRegistry returns a Registry over root. A nil root discards everything.
func NewRegistry(root *zap.Logger, cfg config.LoggingConfig) *Registry {
	if root == nil {
		root = zap.NewNop()
	}
	return &Registry{
		root:    root,
		cfg:     cfg,
		loggers: make(map[Category]*zap.Logger),
	}
}

// Root returns the root logger.
func (r *Registry) Root() *zap.Logger {
	return r.root
}

// Get returns (or creates) the logger for category. Disabled categories get
// a no-op logger.
func (r *Registry) Get(category Category) *zap.Logger {
	r.mu.RLock()
	if l, ok := r.loggers[category]; ok {
		r.mu.RUnlock()
		return l
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.loggers[category]; ok {
		return l
	}

	l := zap.NewNop()
	if r.cfg.IsCategoryEnabled(string(category)) {
		l = r.root.Named(string(category))
	}
	r.loggers[category] = l
	return l
}

// Sync flushes the root logger.
func (r *Registry) Sync() error {
	return r.root.Sync()
}

var (
	defaultMu       sync.RWMutex
	defaultRegistry = NewRegistry(nil, config.LoggingConfig{})
)

// Initialize builds the process-wide registry. Until it is called every
// category logger discards output.
func Initialize(cfg config.LoggingConfig, verbose bool) (*Registry, error) {
	root, err := New(cfg, verbose)
	if err != nil {
		return nil, err
	}
	r := NewRegistry(root, cfg)
	SetDefault(r)

	boot := r.Get(CategoryBoot)
	boot.Debug("logging initialized",
		zap.String("level", root.Level().String()),
		zap.String("format", cfg.Format),
		zap.String("file", cfg.File),
	)
	return r, nil
}

// SetDefault replaces the process-wide registry.
func SetDefault(r *Registry) {
	defaultMu.Lock()
	defaultRegistry = r
	defaultMu.Unlock()
}

// Default returns the process-wide registry.
func Default() *Registry {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultRegistry
}

// Get returns the process-wide logger for category.
func Get(category Category) *zap.Logger {
	return Default().Get(category)
}

// Sync flushes the process-wide root logger.
func Sync() error {
	return Default().Sync()
}
