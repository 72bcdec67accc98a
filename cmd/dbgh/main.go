package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dbgh/internal/config"
	"dbgh/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Resolved in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dbgh",
	Short: "dbgh - leveled runtime assertions with an interactive debug prompt",
	Long: `dbgh drives the assertion facility from the command line.

Assertions come in four levels: warning (log and continue), debug (ask
what to do), error (log and raise) and fatal (log and abort). Level flags,
interactive mode, the executor and the failure journal are read from
.dbgh/config.yaml and DBGH_* environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath == "" {
			configPath = config.DefaultPath()
		}

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", configPath, err)
		}
		cfg = loaded

		if _, err := logging.Initialize(cfg.Logging, verbose); err != nil {
			return err
		}
		logger = logging.Get(logging.CategoryBoot)
		logger.Debug("config resolved",
			zap.String("path", configPath),
			zap.String("executor", cfg.Executor),
			zap.Bool("interactive", cfg.Interactive),
			zap.Bool("journal", cfg.Journal.Enabled),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default .dbgh/config.yaml in the workspace root)")

	demoCmd.Flags().IntVar(&demoRepeat, "repeat", 5, "How many times the shared debug site is hit")

	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd, configShowCmd)

	journalListCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "Maximum entries to print (0 = all)")
	journalCmd.AddCommand(journalListCmd)

	watchCmd.Flags().DurationVar(&watchInterval, "interval", defaultWatchInterval, "Time between probe assertions")
	watchCmd.Flags().IntVar(&watchCount, "count", 0, "Stop after this many probes (0 = until interrupted)")

	rootCmd.AddCommand(demoCmd, levelsCmd, configCmd, journalCmd, watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
