package assert

import (
	"sync"
	"unicode"
)

// action is the outcome of the Debug prompt.
type action int

const (
	actionInvalid action = iota
	actionIgnore
	actionIgnoreForever
	actionThrow
	actionAbort
	actionDebug
)

func parseAction(ch rune) action {
	switch unicode.ToLower(ch) {
	case 'i':
		return actionIgnore
	case 'f':
		return actionIgnoreForever
	case 't':
		return actionThrow
	case 'b':
		return actionAbort
	case 'd':
		return actionDebug
	default:
		return actionInvalid
	}
}

// Dispatcher runs the failure protocol of each level against the Executor
// installed in its Config. Callers reach it only after establishing that the
// level is active and the condition is false.
type Dispatcher struct {
	cfg *Config

	mu      sync.Mutex
	ignored map[siteKey]struct{}
}

// NewDispatcher returns a Dispatcher routing through cfg.
func NewDispatcher(cfg *Config) *Dispatcher {
	return &Dispatcher{
		cfg:     cfg,
		ignored: make(map[siteKey]struct{}),
	}
}

// Config returns the Config the Dispatcher routes through.
func (d *Dispatcher) Config() *Config {
	return d.cfg
}

// Warning reports the failure and returns.
func (d *Dispatcher) Warning(site Site, message string) {
	err := site.failure(message)
	d.cfg.Executor().HandleWarning(FormatRecord(LevelWarning, err))
}

// Error reports the failure and returns the error the Executor raised.
// The caller must not continue normally when it is non-nil.
func (d *Dispatcher) Error(site Site, message string) error {
	err := site.failure(message)
	return d.cfg.Executor().HandleError(FormatRecord(LevelError, err), err)
}

// Fatal reports the failure and terminates the process through the Executor.
func (d *Dispatcher) Fatal(site Site, message string) {
	err := site.failure(message)
	d.cfg.Executor().Terminate(FormatRecord(LevelFatal, err))
}

// Debug prompts the user until a valid action is chosen. It returns nil for
// ignore and ignore-forever, an *AssertionError for throw, and ErrDebugTrap
// for debug. Abort terminates through the Executor. A site ignored forever
// returns nil immediately without touching the Executor.
func (d *Dispatcher) Debug(site Site, message string) error {
	if d.Ignored(site) {
		return nil
	}

	exec := d.cfg.Executor()
	exec.DebugPreCall()

	err := site.failure(message)
	record := FormatRecord(LevelDebug, err)
	exec.ShowMessage(record)

	for {
		exec.ShowMessage(PromptText)
		switch parseAction(exec.GetUserInput()) {
		case actionIgnore:
			return nil
		case actionIgnoreForever:
			d.ignore(site)
			return nil
		case actionThrow:
			return err
		case actionAbort:
			exec.Terminate(record)
			return nil
		case actionDebug:
			return ErrDebugTrap
		default:
			exec.ShowMessage(InvalidActionText)
		}
	}
}

// Ignored reports whether the user chose ignore-forever at site.
func (d *Dispatcher) Ignored(site Site) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.ignored[site.key()]
	return ok
}

// Forget clears an ignore-forever choice made at site.
func (d *Dispatcher) Forget(site Site) {
	d.mu.Lock()
	delete(d.ignored, site.key())
	d.mu.Unlock()
}

// Reset forgets every ignore-forever choice.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	d.ignored = make(map[siteKey]struct{})
	d.mu.Unlock()
}

func (d *Dispatcher) ignore(site Site) {
	d.mu.Lock()
	d.ignored[site.key()] = struct{}{}
	d.mu.Unlock()
}
