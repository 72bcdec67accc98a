//go:build !unix

package assert

import (
	"os"
	"runtime"
)

const exitCodeAbort = 134

// Abort exits with the status of a process killed by SIGABRT.
func Abort() {
	os.Exit(exitCodeAbort)
}

// Breakpoint stops the process under an attached debugger.
func Breakpoint() {
	runtime.Breakpoint()
}
