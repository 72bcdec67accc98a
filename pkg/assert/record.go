package assert

import (
	"strconv"
	"strings"
)

// Text shown by the Debug protocol.
const (
	PromptText        = "Press (I)gnore / Ignore (F)orever / (T)hrow / (D)ebug / A(b)ort:"
	InvalidActionText = "ERROR: Invalid action, please try again."
)

// Site identifies one assertion call site.
type Site struct {
	PC         uintptr
	File       string
	Line       int
	Function   string
	Expression string
}

// siteKey is the source position of a call site. Inlined copies of one
// call have different PCs and must share a key.
type siteKey struct {
	file string
	line int
}

func (s Site) key() siteKey {
	return siteKey{file: s.File, line: s.Line}
}

// failure builds the error raised for a failed assertion at s.
func (s Site) failure(message string) *AssertionError {
	return NewAssertionError(message, s.Expression, s.File, s.Line, s.Function)
}

// Field labels of a record, in order.
var recordLabels = [...]string{
	"[file]:       ",
	"[line]:       ",
	"[function]:   ",
	"[expression]: ",
	"[what]:       ",
}

// FormatRecord renders the multi-line diagnostic record handed to executors.
// The record ends with an empty line.
func FormatRecord(level Level, err *AssertionError) string {
	values := [...]string{err.File(), strconv.Itoa(err.Line()), err.Function(), err.Expression(), err.Message()}

	var sb strings.Builder
	sb.WriteString(level.String())
	sb.WriteString(" ASSERT:\n")
	for i, label := range recordLabels {
		sb.WriteString("  ")
		sb.WriteString(label)
		sb.WriteString(values[i])
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

// ParseRecord recovers the level and failure from text produced by
// FormatRecord. ok is false when text is not such a record.
func ParseRecord(text string) (level Level, err *AssertionError, ok bool) {
	header, rest, found := strings.Cut(text, " ASSERT:\n")
	if !found {
		return 0, nil, false
	}
	level = Level(-1)
	for _, l := range Levels() {
		if l.String() == header {
			level = l
		}
	}
	if !level.valid() {
		return 0, nil, false
	}

	var values [len(recordLabels)]string
	for i, label := range recordLabels {
		marker := "  " + label
		if !strings.HasPrefix(rest, marker) {
			return 0, nil, false
		}
		rest = rest[len(marker):]
		if i == len(recordLabels)-1 {
			values[i] = strings.TrimSuffix(rest, "\n\n")
			break
		}
		end := strings.Index(rest, "\n  "+recordLabels[i+1])
		if end < 0 {
			return 0, nil, false
		}
		values[i] = rest[:end]
		rest = rest[end+1:]
	}

	line, convErr := strconv.Atoi(values[1])
	if convErr != nil {
		return 0, nil, false
	}
	return level, NewAssertionError(values[4], values[3], values[0], line, values[2]), true
}
