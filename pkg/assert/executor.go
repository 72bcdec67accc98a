package assert

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"
	"unicode"
)

// Executor performs every externally visible effect of a failed assertion.
// A host redirects assertion I/O, termination, or raising by installing its
// own Executor with Config.SetExecutor; call sites and the Dispatcher stay
// untouched.
//
// Compliant implementations never return from Terminate, and return a
// non-nil error from HandleError. Returning nil from HandleError suppresses
// the failure.
type Executor interface {
	// Terminate reports message and ends the process.
	Terminate(message string)
	// HandleWarning reports message and returns.
	HandleWarning(message string)
	// HandleError reports message and returns the error to raise.
	HandleError(message string, err *AssertionError) error
	// Log writes message to the diagnostic sink.
	Log(message string)
	// ShowMessage writes message to the user-facing sink.
	ShowMessage(message string)
	// GetUserInput blocks until the user supplies one character.
	GetUserInput() rune
	// DebugPreCall runs before the Debug protocol starts.
	DebugPreCall()
}

// ConsoleExecutor is the default Executor. Log goes to Stderr, ShowMessage
// to Stdout, and GetUserInput reads from Stdin. Nil fields fall back to the
// process streams.
type ConsoleExecutor struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	// Abort ends the process after Terminate has logged. Defaults to a
	// SIGABRT-style abort.
	Abort func()

	mu     sync.Mutex
	reader io.RuneReader
	source io.Reader
}

var _ Executor = (*ConsoleExecutor)(nil)

// NewConsoleExecutor returns a ConsoleExecutor bound to the process streams.
func NewConsoleExecutor() *ConsoleExecutor {
	return &ConsoleExecutor{}
}

// Terminate logs message and aborts the process.
func (e *ConsoleExecutor) Terminate(message string) {
	e.Log(message)
	if e.Abort != nil {
		e.Abort()
		return
	}
	Abort()
}

// HandleWarning logs message.
func (e *ConsoleExecutor) HandleWarning(message string) {
	e.Log(message)
}

// HandleError logs message and returns err so the call site raises it.
func (e *ConsoleExecutor) HandleError(message string, err *AssertionError) error {
	e.Log(message)
	return err
}

// Log writes message to Stderr.
func (e *ConsoleExecutor) Log(message string) {
	writeLine(e.stderr(), message)
}

// ShowMessage writes message to Stdout.
func (e *ConsoleExecutor) ShowMessage(message string) {
	writeLine(e.stdout(), message)
}

// GetUserInput returns the next non-space character from Stdin. Once Stdin
// is exhausted no further input can arrive, so 'i' (ignore) is returned.
func (e *ConsoleExecutor) GetUserInput() rune {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.runeReader()
	for {
		ch, _, err := r.ReadRune()
		if err != nil {
			return 'i'
		}
		if !unicode.IsSpace(ch) {
			return ch
		}
	}
}

// DebugPreCall does nothing.
func (e *ConsoleExecutor) DebugPreCall() {}

func (e *ConsoleExecutor) stdout() io.Writer {
	if e.Stdout != nil {
		return e.Stdout
	}
	return os.Stdout
}

func (e *ConsoleExecutor) stderr() io.Writer {
	if e.Stderr != nil {
		return e.Stderr
	}
	return os.Stderr
}

// runeReader must be called with e.mu held. The buffered reader is kept
// across calls so read-ahead is not lost, and rebuilt if Stdin is swapped.
func (e *ConsoleExecutor) runeReader() io.RuneReader {
	src := e.Stdin
	if src == nil {
		src = os.Stdin
	}
	if e.reader != nil && e.source == src {
		return e.reader
	}
	if rr, ok := src.(io.RuneReader); ok {
		e.reader = rr
	} else {
		e.reader = bufio.NewReader(src)
	}
	e.source = src
	return e.reader
}

func writeLine(w io.Writer, message string) {
	if strings.HasSuffix(message, "\n") {
		_, _ = io.WriteString(w, message)
		return
	}
	_, _ = io.WriteString(w, message+"\n")
}
