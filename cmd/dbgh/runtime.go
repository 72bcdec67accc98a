package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dbgh/internal/config"
	"dbgh/internal/logging"
	"dbgh/pkg/assert"
	"dbgh/pkg/assert/journal"
	"dbgh/pkg/assert/tui"
	"dbgh/pkg/assert/zapexec"
)

// session is the assertion runtime a command works with.
type session struct {
	asserter *assert.Asserter
	journal  *journal.Journal
}

// Close releases the journal, if any.
func (s *session) Close() error {
	if s.journal == nil {
		return nil
	}
	return s.journal.Close()
}

// newSession builds an Asserter from cfg bound to the command's streams and
// installs it as the process default.
func newSession(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (*session, error) {
	exec, j, err := newExecutor(ctx, cmd, cfg)
	if err != nil {
		return nil, err
	}

	ac := assert.NewConfig()
	if _, err := ac.SetExecutor(exec); err != nil {
		if j != nil {
			j.Close()
		}
		return nil, err
	}
	cfg.Apply(ac)

	s := &session{asserter: assert.New(ac), journal: j}
	assert.SetDefault(s.asserter)
	return s, nil
}

func newExecutor(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (assert.Executor, *journal.Journal, error) {
	console := &assert.ConsoleExecutor{
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		Stdin:  cmd.InOrStdin(),
	}

	var exec assert.Executor
	switch cfg.Executor {
	case config.ExecutorConsole:
		exec = console
	case config.ExecutorZap:
		exec = zapexec.New(logging.Get(logging.CategoryAssert), zapexec.WithConsole(console))
	case config.ExecutorTUI:
		exec = tui.New(
			tui.WithInput(cmd.InOrStdin()),
			tui.WithOutput(cmd.OutOrStdout()),
			tui.WithConsole(console),
		)
	default:
		return nil, nil, fmt.Errorf("invalid executor: %s (valid: %v)", cfg.Executor, config.ValidExecutors)
	}

	if !cfg.Journal.Enabled {
		return exec, nil, nil
	}
	j, err := journal.Open(ctx, cfg.Journal.Path, journal.WithLogger(logging.Get(logging.CategoryJournal)))
	if err != nil {
		return nil, nil, err
	}
	return j.Wrap(exec), j, nil
}
