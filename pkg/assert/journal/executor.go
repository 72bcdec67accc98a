package journal

import (
	"context"

	"go.uber.org/zap"

	"dbgh/pkg/assert"
)

// Wrap returns an Executor that records every warning, error and
// termination in j before delegating to inner. Write failures are logged
// and never change what inner does.
func (j *Journal) Wrap(inner assert.Executor) assert.Executor {
	return &recordingExecutor{Executor: inner, journal: j}
}

type recordingExecutor struct {
	assert.Executor
	journal *Journal
}

func (r *recordingExecutor) add(level assert.Level, message string, err *assert.AssertionError) {
	if _, addErr := r.journal.Add(context.Background(), level, message, err); addErr != nil {
		r.journal.logger.Warn("failed to journal assertion",
			zap.String("level", level.String()),
			zap.Error(addErr),
		)
	}
}

func (r *recordingExecutor) Terminate(message string) {
	r.add(assert.LevelFatal, message, nil)
	r.Executor.Terminate(message)
}

func (r *recordingExecutor) HandleWarning(message string) {
	r.add(assert.LevelWarning, message, nil)
	r.Executor.HandleWarning(message)
}

func (r *recordingExecutor) HandleError(message string, err *assert.AssertionError) error {
	r.add(assert.LevelError, message, err)
	return r.Executor.HandleError(message, err)
}
