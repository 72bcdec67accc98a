package journal_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	dbgh "dbgh/pkg/assert"
	"dbgh/pkg/assert/assertest"
	"dbgh/pkg/assert/journal"
)

func steppingClock() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func openJournal(t *testing.T, opts ...journal.Option) *journal.Journal {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "failures.db")
	j, err := journal.Open(context.Background(), path, append([]journal.Option{journal.WithClock(steppingClock())}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestWrapRecordsEveryReport(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t)
	rec := assertest.NewRecorder()

	cfg := dbgh.NewConfig()
	_, err := cfg.SetExecutor(j.Wrap(rec))
	require.NoError(t, err)
	cfg.Enable(dbgh.LevelFatal)
	a := dbgh.New(cfg)

	a.Warning(1 > 2, "warn")
	func() {
		defer dbgh.Recover(&err)
		a.Errorf(len("x") == 0, "error %d", 2)
	}()
	require.ErrorIs(t, err, dbgh.ErrAssertionFailed)
	a.Fatal(false, "fatal")

	assert.Equal(t, 1, rec.Count(assertest.MethodHandleWarning))
	assert.Equal(t, 1, rec.Count(assertest.MethodHandleError))
	assert.Equal(t, 1, rec.Count(assertest.MethodTerminate))

	entries, err := j.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, dbgh.LevelFatal, entries[0].Level)
	assert.Equal(t, "fatal", entries[0].Message)
	assert.Equal(t, "false", entries[0].Expression)

	assert.Equal(t, dbgh.LevelError, entries[1].Level)
	assert.Equal(t, "error 2", entries[1].Message)
	assert.Equal(t, `len("x") == 0`, entries[1].Expression)
	assert.Equal(t, "journal_test.TestWrapRecordsEveryReport.func1", entries[1].Function)

	assert.Equal(t, dbgh.LevelWarning, entries[2].Level)
	assert.Equal(t, "1 > 2", entries[2].Expression)
	assert.Equal(t, "journal_test.TestWrapRecordsEveryReport", entries[2].Function)
	assert.Contains(t, entries[2].File, "journal_test.go")
	assert.NotZero(t, entries[2].Line)
	assert.Equal(t, rec.Messages(assertest.MethodHandleWarning)[0], entries[2].Record)

	assert.True(t, entries[0].CreatedAt.After(entries[1].CreatedAt))
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestListLimit(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t)

	for _, msg := range []string{"a", "b", "c"} {
		_, err := j.Add(ctx, dbgh.LevelWarning, "", dbgh.NewAssertionError(msg, "x", "f.go", 1, "f.F"))
		require.NoError(t, err)
	}

	entries, err := j.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "c", entries[0].Message)
	assert.Equal(t, "b", entries[1].Message)

	n, err := j.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestAddUnstructuredRecord(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t)

	e, err := j.Add(ctx, dbgh.LevelFatal, "custom shutdown text", nil)
	require.NoError(t, err)
	assert.Equal(t, dbgh.LevelFatal, e.Level)
	assert.Empty(t, e.File)

	entries, err := j.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "custom shutdown text", entries[0].Record)
}

func TestReopenKeepsEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "failures.db")

	j, err := journal.Open(ctx, path)
	require.NoError(t, err)
	_, err = j.Add(ctx, dbgh.LevelError, "", dbgh.NewAssertionError("kept", "x", "f.go", 1, "f.F"))
	require.NoError(t, err)
	require.NoError(t, j.Close())

	j, err = journal.Open(ctx, path)
	require.NoError(t, err)
	defer j.Close()
	entries, err := j.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].Message)
}

func TestClosedJournalLogsAndDelegates(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	j := openJournal(t, journal.WithLogger(zap.New(core)))
	require.NoError(t, j.Close())
	require.NoError(t, j.Close())

	_, err := j.List(context.Background(), 0)
	require.ErrorIs(t, err, journal.ErrClosed)

	rec := assertest.NewRecorder()
	j.Wrap(rec).HandleWarning("still delivered")

	assert.Equal(t, []string{"still delivered"}, rec.Messages(assertest.MethodHandleWarning))
	assert.Equal(t, 1, logs.FilterMessage("failed to journal assertion").Len())
}
