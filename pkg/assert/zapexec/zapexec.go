// Package zapexec provides an assert.Executor that reports failures through
// a zap logger instead of writing raw records to stderr.
package zapexec

import (
	"strings"

	"go.uber.org/zap"

	"dbgh/pkg/assert"
)

// Executor logs every record through a zap logger. The Debug prompt still
// talks to the console executor, since a log sink cannot answer it.
type Executor struct {
	logger  *zap.Logger
	console *assert.ConsoleExecutor
	abort   func()
}

var _ assert.Executor = (*Executor)(nil)

// Option configures an Executor.
type Option func(*Executor)

// WithConsole sets the executor used for the Debug prompt.
func WithConsole(c *assert.ConsoleExecutor) Option {
	return func(e *Executor) {
		if c != nil {
			e.console = c
		}
	}
}

// WithAbort replaces the process abort run by Terminate.
func WithAbort(fn func()) Option {
	return func(e *Executor) { e.abort = fn }
}

// New returns an Executor writing to logger. A nil logger discards output.
func New(logger *zap.Logger, opts ...Option) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Executor{
		logger:  logger,
		console: assert.NewConsoleExecutor(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Terminate logs message at error level, flushes the logger, then aborts.
// zap's Fatal is not used because it exits with status 1 rather than
// aborting.
func (e *Executor) Terminate(message string) {
	e.logger.Error("fatal assertion", zap.String("record", trim(message)))
	_ = e.logger.Sync()
	if e.abort != nil {
		e.abort()
		return
	}
	assert.Abort()
}

// HandleWarning logs message at warn level.
func (e *Executor) HandleWarning(message string) {
	e.logger.Warn("assertion warning", zap.String("record", trim(message)))
}

// HandleError logs the failure with its call site and returns err.
func (e *Executor) HandleError(message string, err *assert.AssertionError) error {
	e.logger.Error("assertion failed",
		zap.String("what", err.Message()),
		zap.String("expression", err.Expression()),
		zap.String("file", err.File()),
		zap.Int("line", err.Line()),
		zap.String("function", err.Function()),
	)
	return err
}

// Log writes message at info level.
func (e *Executor) Log(message string) {
	e.logger.Info(trim(message))
}

// ShowMessage writes to the console.
func (e *Executor) ShowMessage(message string) {
	e.console.ShowMessage(message)
}

// GetUserInput reads from the console.
func (e *Executor) GetUserInput() rune {
	return e.console.GetUserInput()
}

// DebugPreCall notes the prompt in the log.
func (e *Executor) DebugPreCall() {
	e.logger.Debug("debug assertion prompt")
}

func trim(message string) string {
	return strings.TrimRight(message, "\n")
}
