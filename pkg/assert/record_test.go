package assert

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelWarning, "WARNING"},
		{LevelDebug, "DEBUG"},
		{LevelError, "ERROR"},
		{LevelFatal, "FATAL"},
		{Level(42), "[Unknown assert level]"},
		{Level(-1), "[Unknown assert level]"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.level.String())
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"warning": LevelWarning,
		"WARN":    LevelWarning,
		" Debug ": LevelDebug,
		"error":   LevelError,
		"Fatal":   LevelFatal,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseLevel("panic")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAssertionErrorAccessors(t *testing.T) {
	err := NewAssertionError("msg", "a < b", "/src/x.go", 17, "x.F")

	require.Equal(t, "msg", err.Message())
	require.Equal(t, "a < b", err.Expression())
	require.Equal(t, "/src/x.go", err.File())
	require.Equal(t, 17, err.Line())
	require.Equal(t, "x.F", err.Function())
	require.Equal(t, "assertion failed: msg [a < b] at /src/x.go:17 in x.F", err.Error())
	require.True(t, errors.Is(err, ErrAssertionFailed))

	copied := *err
	require.Equal(t, err.Message(), copied.Message())
}

func TestFormatRecord(t *testing.T) {
	err := NewAssertionError("FAIL", "2*3 == 4", "main.go", 12, "main.main")

	want := "WARNING ASSERT:\n" +
		"  [file]:       main.go\n" +
		"  [line]:       12\n" +
		"  [function]:   main.main\n" +
		"  [expression]: 2*3 == 4\n" +
		"  [what]:       FAIL\n" +
		"\n"
	require.Equal(t, want, FormatRecord(LevelWarning, err))
	require.Contains(t, FormatRecord(Level(9), err), "[Unknown assert level] ASSERT:\n")
}

func TestParseRecord(t *testing.T) {
	original := NewAssertionError("two\nlines", "a ==\n\t\tb", "/src/x.go", 40, "x.(*T).M")

	level, err, ok := ParseRecord(FormatRecord(LevelError, original))

	require.True(t, ok)
	require.Equal(t, LevelError, level)
	require.Equal(t, *original, *err)

	for _, bad := range []string{
		"",
		"not a record",
		"[Unknown assert level] ASSERT:\n",
		"WARNING ASSERT:\n  [file]:       x.go\n",
		strings.Replace(FormatRecord(LevelDebug, original), "40", "forty", 1),
	} {
		_, _, ok := ParseRecord(bad)
		require.False(t, ok, bad)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	require.True(t, cfg.IsActive(LevelWarning))
	require.True(t, cfg.IsActive(LevelDebug))
	require.True(t, cfg.IsActive(LevelError))
	require.False(t, cfg.IsActive(LevelFatal))
	require.False(t, cfg.IsActive(Level(7)))
	require.False(t, cfg.Interactive())
	require.IsType(t, &ConsoleExecutor{}, cfg.Executor())
}

func TestConfigEnableIsIdempotent(t *testing.T) {
	once := NewConfig()
	once.Enable(LevelFatal)
	once.Disable(LevelWarning)

	twice := NewConfig()
	twice.Enable(LevelFatal)
	twice.Enable(LevelFatal)
	twice.Disable(LevelWarning)
	twice.Disable(LevelWarning)
	twice.Enable(Level(99))

	require.Equal(t, once.Snapshot(), twice.Snapshot())
}

func TestConfigSetExecutorRejectsNil(t *testing.T) {
	cfg := NewConfig()
	before := cfg.Executor()

	prev, err := cfg.SetExecutor(nil)

	require.Nil(t, prev)
	require.ErrorIs(t, err, ErrNilExecutor)
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.Same(t, before, cfg.Executor())
}

func TestPromptTextListsEveryAction(t *testing.T) {
	require.Equal(t, "Press (I)gnore / Ignore (F)orever / (T)hrow / (D)ebug / A(b)ort:", PromptText)
	for _, key := range []string{"(I)", "(F)", "(T)", "(D)", "(b)"} {
		require.Contains(t, PromptText, key)
		require.NotEqual(t, actionInvalid, parseAction(rune(key[1])), key)
	}
	require.NotContains(t, PromptText, "(A)")
}

func TestParseAction(t *testing.T) {
	for ch, want := range map[rune]action{
		'i': actionIgnore, 'I': actionIgnore,
		'f': actionIgnoreForever, 'F': actionIgnoreForever,
		't': actionThrow, 'T': actionThrow,
		'b': actionAbort, 'B': actionAbort,
		'd': actionDebug, 'D': actionDebug,
		'a': actionInvalid, 'x': actionInvalid, 0: actionInvalid,
	} {
		require.Equal(t, want, parseAction(ch), string(ch))
	}
}
