package assert

import (
	"fmt"
	"strings"
)

// Level is the severity of an assertion. It selects both the enable flag
// consulted at the call site and the protocol the Dispatcher runs on failure.
type Level int

const (
	LevelWarning Level = iota // log and continue
	LevelDebug                // prompt the user
	LevelError                // log and raise
	LevelFatal                // log and terminate

	levelCount
)

const unknownLevelName = "[Unknown assert level]"

// Levels returns every level in storage order.
func Levels() []Level {
	return []Level{LevelWarning, LevelDebug, LevelError, LevelFatal}
}

// String returns the upper-case name used in diagnostic records.
func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "WARNING"
	case LevelDebug:
		return "DEBUG"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return unknownLevelName
	}
}

func (l Level) valid() bool {
	return l >= LevelWarning && l < levelCount
}

// ParseLevel maps a level name to a Level. Matching is case-insensitive and
// "warn" is accepted for LevelWarning.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warning", "warn":
		return LevelWarning, nil
	case "debug":
		return LevelDebug, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	}
	return 0, fmt.Errorf("%w: unknown assert level %q", ErrInvalidArgument, s)
}
