package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dbgh/internal/config"
	"dbgh/internal/logging"
	"dbgh/pkg/assert"
)

const defaultWatchInterval = 2 * time.Second

var (
	watchInterval time.Duration
	watchCount    int
)

// watchCmd keeps a probe running while the config file is edited
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Fire a probe warning periodically and hot-reload level flags",
	Long: `Fires a failing warning assertion every --interval and reloads the
config file whenever it changes. Toggle levels.warning in the file to see
the probe start and stop reporting without restarting.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := newSession(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	log := logging.Get(logging.CategoryWatcher)
	w, err := config.NewWatcher(configPath, func(c *config.Config) {
		c.Apply(s.asserter.Config())
		log.Info("assertion settings reloaded", zap.Any("levels", c.Levels))
	}, log)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Stop()
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("failed to watch %s: %w", configPath, err)
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for n := 1; watchCount == 0 || n <= watchCount; n++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			assert.Warningf(false, "probe %d", n)
		}
	}
	return nil
}
