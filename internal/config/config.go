package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"dbgh/pkg/assert"
)

// Config holds all dbgh configuration.
type Config struct {
	// Enable flags per assertion level
	Levels LevelsConfig `yaml:"levels"`

	// Route every level through the Debug prompt
	Interactive bool `yaml:"interactive"`

	// Executor kind: console, zap, tui
	Executor string `yaml:"executor"`

	// Failure journal
	Journal JournalConfig `yaml:"journal"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LevelsConfig holds the enable flag of each assertion level.
type LevelsConfig struct {
	Warning bool `yaml:"warning"`
	Debug   bool `yaml:"debug"`
	Error   bool `yaml:"error"`
	Fatal   bool `yaml:"fatal"`
}

// JournalConfig configures the SQLite failure journal.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Executor kinds.
const (
	ExecutorConsole = "console"
	ExecutorZap     = "zap"
	ExecutorTUI     = "tui"
)

// ValidExecutors lists the supported executor kinds.
var ValidExecutors = []string{ExecutorConsole, ExecutorZap, ExecutorTUI}

// DefaultDir is the per-project directory holding dbgh files.
const DefaultDir = ".dbgh"

// DefaultConfig returns the default configuration. Level flags match a
// fresh assert.Config: everything but Fatal is on.
func DefaultConfig() *Config {
	return &Config{
		Levels: LevelsConfig{
			Warning: true,
			Debug:   true,
			Error:   true,
			Fatal:   false,
		},
		Executor: ExecutorConsole,
		Journal: JournalConfig{
			Enabled: false,
			Path:    filepath.Join(DefaultDir, "failures.db"),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultPath returns the config path under the workspace root.
func DefaultPath() string {
	root, err := FindWorkspaceRoot()
	if err != nil {
		return filepath.Join(DefaultDir, "config.yaml")
	}
	return filepath.Join(root, DefaultDir, "config.yaml")
}

// FindWorkspaceRoot walks up from the working directory looking for .dbgh
// or go.mod. If neither is found, the working directory is returned.
func FindWorkspaceRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	originalDir := dir
	for {
		if _, err := os.Stat(filepath.Join(dir, DefaultDir)); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return originalDir, nil
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults if config file doesn't exist
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	// DBGH_LEVELS lists exactly the enabled levels, e.g. "warning,error".
	// "none" disables every level.
	if v, ok := os.LookupEnv("DBGH_LEVELS"); ok && v != "" {
		levels, err := parseLevelList(v)
		if err != nil {
			return fmt.Errorf("DBGH_LEVELS: %w", err)
		}
		c.Levels = levels
	}

	if v := os.Getenv("DBGH_INTERACTIVE"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DBGH_INTERACTIVE: %w", err)
		}
		c.Interactive = on
	}

	if v := os.Getenv("DBGH_EXECUTOR"); v != "" {
		c.Executor = strings.ToLower(strings.TrimSpace(v))
	}

	// Setting a journal path turns the journal on.
	if v := os.Getenv("DBGH_JOURNAL"); v != "" {
		c.Journal.Enabled = true
		c.Journal.Path = v
	}

	return nil
}

func parseLevelList(v string) (LevelsConfig, error) {
	var levels LevelsConfig
	if strings.EqualFold(strings.TrimSpace(v), "none") {
		return levels, nil
	}
	for _, name := range strings.Split(v, ",") {
		level, err := assert.ParseLevel(name)
		if err != nil {
			return LevelsConfig{}, err
		}
		levels.set(level, true)
	}
	return levels, nil
}

// Enabled reports the flag of level.
func (l LevelsConfig) Enabled(level assert.Level) bool {
	switch level {
	case assert.LevelWarning:
		return l.Warning
	case assert.LevelDebug:
		return l.Debug
	case assert.LevelError:
		return l.Error
	case assert.LevelFatal:
		return l.Fatal
	}
	return false
}

func (l *LevelsConfig) set(level assert.Level, on bool) {
	switch level {
	case assert.LevelWarning:
		l.Warning = on
	case assert.LevelDebug:
		l.Debug = on
	case assert.LevelError:
		l.Error = on
	case assert.LevelFatal:
		l.Fatal = on
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !slices.Contains(ValidExecutors, c.Executor) {
		return fmt.Errorf("invalid executor: %s (valid: %v)", c.Executor, ValidExecutors)
	}
	if c.Journal.Enabled && c.Journal.Path == "" {
		return fmt.Errorf("journal enabled but no path configured")
	}
	return c.Logging.Validate()
}

// Apply copies the level flags and interactive mode into cfg. The executor
// is left alone; it is built by the caller from Executor and Journal.
func (c *Config) Apply(cfg *assert.Config) {
	for _, level := range assert.Levels() {
		if c.Levels.Enabled(level) {
			cfg.Enable(level)
		} else {
			cfg.Disable(level)
		}
	}
	cfg.SetInteractive(c.Interactive)
}
