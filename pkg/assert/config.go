package assert

import "sync"

// Config holds the enabled flag of every level and the installed Executor.
// A process normally uses the single instance reachable through Default;
// tests build their own with NewConfig. Config is safe for concurrent use.
type Config struct {
	mu          sync.RWMutex
	enabled     [levelCount]bool
	interactive bool
	executor    Executor
}

// NewConfig returns a Config with Warning, Debug and Error enabled, Fatal
// disabled, and a ConsoleExecutor installed.
func NewConfig() *Config {
	return &Config{
		enabled: [levelCount]bool{
			LevelWarning: true,
			LevelDebug:   true,
			LevelError:   true,
			LevelFatal:   false,
		},
		executor: NewConsoleExecutor(),
	}
}

// Enable turns on assertions of the given level.
func (c *Config) Enable(level Level) {
	c.set(level, true)
}

// Disable turns off assertions of the given level. Assertions already being
// dispatched are not affected.
func (c *Config) Disable(level Level) {
	c.set(level, false)
}

func (c *Config) set(level Level, on bool) {
	if !level.valid() {
		return
	}
	c.mu.Lock()
	c.enabled[level] = on
	c.mu.Unlock()
}

// IsActive reports whether assertions of the given level are evaluated.
func (c *Config) IsActive(level Level) bool {
	if !level.valid() {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.enabled[level]
}

// SetExecutor installs e and returns the Executor it replaces.
func (c *Config) SetExecutor(e Executor) (Executor, error) {
	if e == nil {
		return nil, ErrNilExecutor
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.executor
	c.executor = e
	return prev, nil
}

// ResetExecutor installs a fresh ConsoleExecutor and returns the Executor it
// replaces.
func (c *Config) ResetExecutor() Executor {
	prev, _ := c.SetExecutor(NewConsoleExecutor())
	return prev
}

// Executor returns the installed Executor.
func (c *Config) Executor() Executor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.executor
}

// SetInteractive routes every level through the Debug protocol when on.
// Such assertions are gated by the Debug flag and reported as DEBUG.
func (c *Config) SetInteractive(on bool) {
	c.mu.Lock()
	c.interactive = on
	c.mu.Unlock()
}

// Interactive reports whether interactive escalation is on.
func (c *Config) Interactive() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.interactive
}

// Snapshot returns the enabled flag of every level.
func (c *Config) Snapshot() map[Level]bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[Level]bool, levelCount)
	for _, l := range Levels() {
		out[l] = c.enabled[l]
	}
	return out
}
