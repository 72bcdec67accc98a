//go:build unix

package assert

import (
	"os"
	"runtime"

	"golang.org/x/sys/unix"
)

// exitCodeAbort matches the status a shell reports for a process killed by
// SIGABRT.
const exitCodeAbort = 128 + int(unix.SIGABRT)

// Abort raises SIGABRT so the runtime dumps goroutines and exits. The
// explicit exit covers hosts that installed a SIGABRT handler.
func Abort() {
	_ = unix.Kill(unix.Getpid(), unix.SIGABRT)
	os.Exit(exitCodeAbort)
}

// Breakpoint stops the process under an attached debugger. Without one the
// process receives SIGTRAP and terminates.
func Breakpoint() {
	if err := unix.Kill(unix.Getpid(), unix.SIGTRAP); err != nil {
		runtime.Breakpoint()
	}
}
