package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"dbgh/internal/logging"
	"dbgh/pkg/assert/journal"
)

var journalLimit int

// journalCmd groups failure journal commands
var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect the failure journal",
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded failures, newest first",
	RunE:  runJournalList,
}

func runJournalList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	j, err := journal.Open(ctx, cfg.Journal.Path, journal.WithLogger(logging.Get(logging.CategoryJournal)))
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.List(ctx, journalLimit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No failures recorded.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tLEVEL\tLOCATION\tFUNCTION\tEXPRESSION\tMESSAGE")
	for _, e := range entries {
		location := "-"
		if e.File != "" {
			location = fmt.Sprintf("%s:%d", e.File, e.Line)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.Local().Format(time.DateTime), e.Level, location, e.Function, e.Expression, e.Message)
	}
	return w.Flush()
}
