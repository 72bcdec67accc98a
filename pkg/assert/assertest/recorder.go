// Package assertest provides a recording Executor for testing code that
// uses package assert.
package assertest

import (
	"sync"

	"github.com/eapache/queue"

	"dbgh/pkg/assert"
)

// Executor method names as recorded in Call.Method.
const (
	MethodTerminate     = "Terminate"
	MethodHandleWarning = "HandleWarning"
	MethodHandleError   = "HandleError"
	MethodLog           = "Log"
	MethodShowMessage   = "ShowMessage"
	MethodGetUserInput  = "GetUserInput"
	MethodDebugPreCall  = "DebugPreCall"
)

// Call is one recorded Executor invocation.
type Call struct {
	Method  string
	Message string
	Err     *assert.AssertionError
	Input   rune
}

// Recorder is an Executor that records every call instead of touching the
// process. Terminate returns normally. HandleWarning, HandleError and
// Terminate also record a Log call, as the console executor does.
//
// Keystrokes for the Debug prompt are consumed in the order scripted; once
// the script is exhausted GetUserInput answers 'i'.
type Recorder struct {
	// Suppress makes HandleError return nil instead of the failure.
	Suppress bool

	mu    sync.Mutex
	input *queue.Queue
	calls []Call
}

var _ assert.Executor = (*Recorder)(nil)

// NewRecorder returns a Recorder with inputs scripted.
func NewRecorder(inputs ...rune) *Recorder {
	r := &Recorder{input: queue.New()}
	r.Script(inputs...)
	return r
}

// Script appends keystrokes for GetUserInput.
func (r *Recorder) Script(inputs ...rune) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, in := range inputs {
		r.input.Add(in)
	}
}

// Pending returns the number of scripted keystrokes not yet consumed.
func (r *Recorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.input.Length()
}

func (r *Recorder) record(c Call) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()
}

// Terminate records the call and returns.
func (r *Recorder) Terminate(message string) {
	r.Log(message)
	r.record(Call{Method: MethodTerminate, Message: message})
}

// HandleWarning records the call.
func (r *Recorder) HandleWarning(message string) {
	r.Log(message)
	r.record(Call{Method: MethodHandleWarning, Message: message})
}

// HandleError records the call and returns err unless Suppress is set.
func (r *Recorder) HandleError(message string, err *assert.AssertionError) error {
	r.Log(message)
	r.record(Call{Method: MethodHandleError, Message: message, Err: err})
	if r.Suppress {
		return nil
	}
	return err
}

// Log records the call.
func (r *Recorder) Log(message string) {
	r.record(Call{Method: MethodLog, Message: message})
}

// ShowMessage records the call.
func (r *Recorder) ShowMessage(message string) {
	r.record(Call{Method: MethodShowMessage, Message: message})
}

// GetUserInput returns the next scripted keystroke.
func (r *Recorder) GetUserInput() rune {
	r.mu.Lock()
	in := 'i'
	if r.input.Length() > 0 {
		in = r.input.Remove().(rune)
	}
	r.calls = append(r.calls, Call{Method: MethodGetUserInput, Input: in})
	r.mu.Unlock()
	return in
}

// DebugPreCall records the call.
func (r *Recorder) DebugPreCall() {
	r.record(Call{Method: MethodDebugPreCall})
}

// Calls returns the recorded calls of the given method, or every call when
// method is empty.
func (r *Recorder) Calls(method string) []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Call
	for _, c := range r.calls {
		if method == "" || c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many times method was called.
func (r *Recorder) Count(method string) int {
	return len(r.Calls(method))
}

// Messages returns the messages passed to method, in order.
func (r *Recorder) Messages(method string) []string {
	calls := r.Calls(method)
	out := make([]string, 0, len(calls))
	for _, c := range calls {
		out = append(out, c.Message)
	}
	return out
}

// Reset forgets recorded calls and pending keystrokes.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.input = queue.New()
}
