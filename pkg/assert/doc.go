// Package assert provides configurable runtime assertions with four
// severities and a pluggable Executor that performs every visible effect.
//
// # Levels
//
// Each level has its own failure protocol:
//
//	Warning  the record is handed to Executor.HandleWarning and execution continues
//	Debug    the record is shown and the user picks an action at a prompt
//	Error    the record is handed to Executor.HandleError and the returned error is raised
//	Fatal    the record is handed to Executor.Terminate and the process ends
//
// Warning, Debug and Error are on by default. Fatal is off until enabled:
//
//	assert.Default().Config().Enable(assert.LevelFatal)
//
// # Call sites
//
//	assert.Warning(len(queue) < limit, "queue is backing up")
//	assert.Errorf(n >= 0, "negative count %d", n)
//
// A failing call site is reported with its file, line, enclosing function
// and the literal source text of the condition:
//
//	WARNING ASSERT:
//	  [file]:       /src/app/queue.go
//	  [line]:       42
//	  [function]:   app.(*Queue).Push
//	  [expression]: len(queue) < limit
//	  [what]:       queue is backing up
//
// The condition text is read from the source file at the time of the first
// failure in that file. Binaries running without their sources report
// "<unavailable>", as do two calls of the same function on one line with
// different conditions, which cannot be told apart by line.
//
// # Debug prompt
//
// A failing Debug assertion shows its record and waits for one character:
//
//	i  ignore this failure
//	f  ignore this call site for the rest of the process
//	t  raise the failure as an *AssertionError
//	b  abort through Executor.Terminate
//	d  break into the native debugger
//
// The prompt reads
//
//	Press (I)gnore / Ignore (F)orever / (T)hrow / (D)ebug / A(b)ort:
//
// and lists all five actions. It replaces the older four-option text
// "Press (I)gnore / Ignore (A)ll / (D)ebug / A(b)ort:", whose (A) key is not
// an action; hosts matching on prompt text should compare against PromptText.
// Any other character is rejected and the prompt repeats. The prompt blocks
// the calling goroutine with no timeout.
//
// Ignore forever applies to the source position of the call, so a helper
// containing an assertion is silenced for every caller.
//
// # Raised failures
//
// Raised failures panic with the error returned by the Executor. Recover
// converts them back into errors at an API boundary:
//
//	func (s *Service) Handle(req Request) (err error) {
//		defer assert.Recover(&err)
//		assert.Error(req.ID != "", "request without id")
//		...
//	}
//
// # Executors
//
// ConsoleExecutor writes to the process streams. Install any other Executor
// with Config.SetExecutor; subpackages provide a zap-backed executor
// (zapexec), a terminal UI prompt (tui), a sqlite failure journal (journal)
// and a recording test double (assertest).
package assert
