package assert

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// Asserter is the call-site surface. It captures the location and condition
// text of each failing assertion, checks the Config, and runs the matching
// Dispatcher protocol.
//
// Raised failures (Error level, and the throw choice of the Debug prompt)
// panic with the error returned by the Executor. Use Recover at a boundary
// to turn them back into an error value.
type Asserter struct {
	dispatcher *Dispatcher
	breakpoint func()
}

// Option configures an Asserter.
type Option func(*Asserter)

// WithBreakpoint replaces the native breakpoint run when the user chooses
// debug at the Debug prompt.
func WithBreakpoint(fn func()) Option {
	return func(a *Asserter) {
		if fn != nil {
			a.breakpoint = fn
		}
	}
}

// New returns an Asserter routing through cfg.
func New(cfg *Config, opts ...Option) *Asserter {
	a := &Asserter{
		dispatcher: NewDispatcher(cfg),
		breakpoint: Breakpoint,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Config returns the Config consulted by a.
func (a *Asserter) Config() *Config { return a.dispatcher.Config() }

// Dispatcher returns the Dispatcher used by a.
func (a *Asserter) Dispatcher() *Dispatcher { return a.dispatcher }

// Warning reports a failure when cond is false and returns.
func (a *Asserter) Warning(cond bool, msg string) {
	a.check(1, LevelWarning, "Warning", cond, msg, nil)
}

// Warningf is Warning with a formatted message.
func (a *Asserter) Warningf(cond bool, format string, args ...any) {
	a.check(1, LevelWarning, "Warningf", cond, format, args)
}

// Debug prompts the user when cond is false. Once the user picks
// ignore-forever this call site never prompts again.
func (a *Asserter) Debug(cond bool, msg string) {
	a.check(1, LevelDebug, "Debug", cond, msg, nil)
}

// Debugf is Debug with a formatted message.
func (a *Asserter) Debugf(cond bool, format string, args ...any) {
	a.check(1, LevelDebug, "Debugf", cond, format, args)
}

// DebugFunc is Debug with a lazily evaluated condition. cond is not called
// when Debug assertions are off or the site is ignored forever.
func (a *Asserter) DebugFunc(cond func() bool, msg string) {
	a.debugFunc(1, cond, msg)
}

// Error reports a failure when cond is false and panics with the error
// raised by the Executor.
func (a *Asserter) Error(cond bool, msg string) {
	a.check(1, LevelError, "Error", cond, msg, nil)
}

// Errorf is Error with a formatted message.
func (a *Asserter) Errorf(cond bool, format string, args ...any) {
	a.check(1, LevelError, "Errorf", cond, format, args)
}

// Fatal terminates the process when cond is false. Fatal assertions are
// off until enabled.
func (a *Asserter) Fatal(cond bool, msg string) {
	a.check(1, LevelFatal, "Fatal", cond, msg, nil)
}

// Fatalf is Fatal with a formatted message.
func (a *Asserter) Fatalf(cond bool, format string, args ...any) {
	a.check(1, LevelFatal, "Fatalf", cond, format, args)
}

// check is called directly by every entry point; skip counts the frames
// between check and the user's call site.
func (a *Asserter) check(skip int, level Level, entry string, cond bool, format string, args []any) {
	cfg := a.dispatcher.Config()
	if level != LevelDebug && cfg.Interactive() {
		level = LevelDebug
	}

	if level == LevelDebug {
		if cond || !cfg.IsActive(LevelDebug) {
			return
		}
		site := caller(skip + 1)
		if a.dispatcher.Ignored(site) {
			return
		}
		a.debug(site.resolve(entry), message(format, args))
		return
	}

	if cond || !cfg.IsActive(level) {
		return
	}
	site := caller(skip + 1).resolve(entry)
	msg := message(format, args)

	switch level {
	case LevelWarning:
		a.dispatcher.Warning(site, msg)
	case LevelError:
		if err := a.dispatcher.Error(site, msg); err != nil {
			panic(err)
		}
	case LevelFatal:
		a.dispatcher.Fatal(site, msg)
	}
}

func (a *Asserter) debugFunc(skip int, cond func() bool, msg string) {
	if !a.dispatcher.Config().IsActive(LevelDebug) {
		return
	}
	site := caller(skip + 1)
	if a.dispatcher.Ignored(site) || cond() {
		return
	}
	a.debug(site.resolve("DebugFunc"), msg)
}

func (a *Asserter) debug(site Site, msg string) {
	err := a.dispatcher.Debug(site, msg)
	switch {
	case err == nil:
	case errors.Is(err, ErrDebugTrap):
		a.breakpoint()
	default:
		panic(err)
	}
}

func message(format string, args []any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// Recover stops a panic raised by a failed assertion and stores the error
// in *errp. Any other panic continues. It must be deferred directly:
//
//	defer assert.Recover(&err)
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if err, ok := r.(error); ok && errors.Is(err, ErrAssertionFailed) {
		*errp = err
		return
	}
	panic(r)
}

var defaultAsserter atomic.Pointer[Asserter]

// Default returns the process-wide Asserter used by the package-level
// functions, creating it with NewConfig on first use.
func Default() *Asserter {
	if a := defaultAsserter.Load(); a != nil {
		return a
	}
	defaultAsserter.CompareAndSwap(nil, New(NewConfig()))
	return defaultAsserter.Load()
}

// SetDefault replaces the process-wide Asserter. A nil a installs a fresh
// one built from NewConfig.
func SetDefault(a *Asserter) {
	if a == nil {
		a = New(NewConfig())
	}
	defaultAsserter.Store(a)
}

// Warning reports a failure through the default Asserter.
func Warning(cond bool, msg string) {
	Default().check(1, LevelWarning, "Warning", cond, msg, nil)
}

// Warningf is Warning with a formatted message.
func Warningf(cond bool, format string, args ...any) {
	Default().check(1, LevelWarning, "Warningf", cond, format, args)
}

// Debug prompts through the default Asserter.
func Debug(cond bool, msg string) {
	Default().check(1, LevelDebug, "Debug", cond, msg, nil)
}

// Debugf is Debug with a formatted message.
func Debugf(cond bool, format string, args ...any) {
	Default().check(1, LevelDebug, "Debugf", cond, format, args)
}

// DebugFunc is Debug with a lazily evaluated condition.
func DebugFunc(cond func() bool, msg string) {
	Default().debugFunc(1, cond, msg)
}

// Error raises a failure through the default Asserter.
func Error(cond bool, msg string) {
	Default().check(1, LevelError, "Error", cond, msg, nil)
}

// Errorf is Error with a formatted message.
func Errorf(cond bool, format string, args ...any) {
	Default().check(1, LevelError, "Errorf", cond, format, args)
}

// Fatal terminates through the default Asserter.
func Fatal(cond bool, msg string) {
	Default().check(1, LevelFatal, "Fatal", cond, msg, nil)
}

// Fatalf is Fatal with a formatted message.
func Fatalf(cond bool, format string, args ...any) {
	Default().check(1, LevelFatal, "Fatalf", cond, format, args)
}
