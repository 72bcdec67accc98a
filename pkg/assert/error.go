package assert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrAssertionFailed is matched by every *AssertionError via errors.Is.
	ErrAssertionFailed = errors.New("assertion failed")

	// ErrDebugTrap is returned by Dispatcher.Debug when the user asks to break
	// into a native debugger. The call-site layer turns it into a breakpoint
	// and never lets it escape.
	ErrDebugTrap = errors.New("start native debugger")

	// ErrInvalidArgument is the root of every argument validation failure.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNilExecutor is returned by Config.SetExecutor when given nil.
	ErrNilExecutor = fmt.Errorf("%w: executor cannot be nil", ErrInvalidArgument)
)

// AssertionError carries the context of a failed assertion. It is built once
// at the failure site and is read-only afterwards.
type AssertionError struct {
	message    string
	expression string
	file       string
	line       int
	function   string
}

// NewAssertionError captures a failure. All five fields are required by
// convention but no value is rejected.
func NewAssertionError(message, expression, file string, line int, function string) *AssertionError {
	return &AssertionError{
		message:    message,
		expression: expression,
		file:       file,
		line:       line,
		function:   function,
	}
}

// Message returns the text supplied at the call site.
func (e *AssertionError) Message() string { return e.message }

// Expression returns the source text of the failed condition.
func (e *AssertionError) Expression() string { return e.expression }

// File returns the path of the source file containing the call site.
func (e *AssertionError) File() string { return e.file }

// Line returns the line of the call site.
func (e *AssertionError) Line() int { return e.line }

// Function returns the name of the function enclosing the call site.
func (e *AssertionError) Function() string { return e.function }

// Error renders the failure on a single line.
func (e *AssertionError) Error() string {
	if e == nil {
		return ErrAssertionFailed.Error()
	}

	var sb strings.Builder
	sb.WriteString("assertion failed: ")
	sb.WriteString(e.message)
	if e.expression != "" {
		sb.WriteString(" [")
		sb.WriteString(e.expression)
		sb.WriteString("]")
	}
	if e.file != "" {
		sb.WriteString(" at ")
		sb.WriteString(e.file)
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(e.line))
	}
	if e.function != "" {
		sb.WriteString(" in ")
		sb.WriteString(e.function)
	}
	return sb.String()
}

// Unwrap returns ErrAssertionFailed.
func (e *AssertionError) Unwrap() error {
	return ErrAssertionFailed
}
