// Package tui provides an assert.Executor that asks the Debug prompt
// question through a Bubble Tea program.
package tui

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"dbgh/pkg/assert"
)

// Executor renders the Debug prompt with lipgloss and reads the answer as a
// single keystroke. Messages shown before a prompt are queued and rendered
// together with it. Reports and termination go through the console
// executor on Stderr.
type Executor struct {
	input   io.Reader
	output  io.Writer
	styles  Styles
	console *assert.ConsoleExecutor
	options []tea.ProgramOption

	mu      sync.Mutex
	pending []string
}

var _ assert.Executor = (*Executor)(nil)

// Option configures an Executor.
type Option func(*Executor)

// WithInput sets the keystroke source. Defaults to os.Stdin.
func WithInput(r io.Reader) Option {
	return func(e *Executor) { e.input = r }
}

// WithOutput sets where the prompt is drawn. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Executor) { e.output = w }
}

// WithConsole sets the executor used for Log, reports and Terminate.
func WithConsole(c *assert.ConsoleExecutor) Option {
	return func(e *Executor) {
		if c != nil {
			e.console = c
		}
	}
}

// WithStyles overrides the prompt styling.
func WithStyles(s Styles) Option {
	return func(e *Executor) { e.styles = s }
}

// WithProgramOptions passes extra options to every tea.Program.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(e *Executor) { e.options = append(e.options, opts...) }
}

// New returns an Executor bound to the terminal.
func New(opts ...Option) *Executor {
	e := &Executor{
		input:   os.Stdin,
		output:  os.Stdout,
		styles:  DefaultStyles(),
		console: assert.NewConsoleExecutor(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Terminate reports message and aborts through the console executor.
func (e *Executor) Terminate(message string) {
	e.flush()
	e.console.Terminate(message)
}

// HandleWarning reports message.
func (e *Executor) HandleWarning(message string) {
	e.console.HandleWarning(message)
}

// HandleError reports message and returns err.
func (e *Executor) HandleError(message string, err *assert.AssertionError) error {
	return e.console.HandleError(message, err)
}

// Log writes message to the console diagnostic stream.
func (e *Executor) Log(message string) {
	e.console.Log(message)
}

// ShowMessage queues message for the next prompt.
func (e *Executor) ShowMessage(message string) {
	e.mu.Lock()
	e.pending = append(e.pending, message)
	e.mu.Unlock()
}

// GetUserInput draws the queued messages and waits for one key. Escape and
// ctrl+c answer 'i', as does a program that fails to run.
func (e *Executor) GetUserInput() rune {
	e.mu.Lock()
	defer e.mu.Unlock()

	model := newPromptModel(e.pending, e.styles)
	e.pending = nil

	opts := append([]tea.ProgramOption{
		tea.WithInput(e.input),
		tea.WithOutput(e.output),
	}, e.options...)
	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return 'i'
	}
	m, ok := final.(promptModel)
	if !ok || m.Choice() == 0 {
		return 'i'
	}
	return m.Choice()
}

// DebugPreCall drops messages left over from an earlier prompt.
func (e *Executor) DebugPreCall() {
	e.mu.Lock()
	e.pending = nil
	e.mu.Unlock()
}

// flush writes queued messages that no prompt consumed.
func (e *Executor) flush() {
	e.mu.Lock()
	pending := e.pending
	e.pending = nil
	e.mu.Unlock()
	for _, msg := range pending {
		e.console.ShowMessage(msg)
	}
}
