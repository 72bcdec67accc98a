package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"dbgh/pkg/assert"
)

// levelsCmd prints the effective assertion settings
var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show which assertion levels are active",
	RunE:  runLevels,
}

func runLevels(cmd *cobra.Command, args []string) error {
	ac := assert.NewConfig()
	cfg.Apply(ac)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LEVEL\tACTIVE")
	for _, level := range assert.Levels() {
		fmt.Fprintf(w, "%s\t%s\n", level, onOff(ac.IsActive(level)))
	}
	fmt.Fprintf(w, "\ninteractive\t%s\n", onOff(ac.Interactive()))
	fmt.Fprintf(w, "executor\t%s\n", cfg.Executor)
	journal := "off"
	if cfg.Journal.Enabled {
		journal = cfg.Journal.Path
	}
	fmt.Fprintf(w, "journal\t%s\n", journal)
	return w.Flush()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
