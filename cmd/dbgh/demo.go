package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dbgh/pkg/assert"
)

var demoRepeat int

// demoCmd fires every assertion level, passing and failing
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Fire one passing and one failing assertion of every level",
	Long: `Runs a fixed sequence of assertions through the configured executor.

A shared debug site is hit --repeat times from a loop and then twice more
from other lines, so choosing "ignore forever" at its prompt silences every
remaining hit. Fatal assertions only
fire when enabled in the config, and abort the process when they do.`,
	RunE: runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd.Context(), cmd, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	for i := 0; i < demoRepeat; i++ {
		sharedDebugSite()
	}
	sharedDebugSite()
	sharedDebugSite()

	assert.Warning(5 == 6, "Error")
	assert.Warning(5 != 6, "Error")
	assert.Debug(5 == 6, "Error")
	assert.Debug(5 != 6, "Error")
	assert.Debugf(5 == 6, "Error %d", 2)

	if err := raise(func() { assert.Error(5 == 6, "Error") }); err != nil {
		fmt.Fprintf(out, "raised: %v\n", err)
	}
	if err := raise(func() { assert.Error(5 != 6, "Error") }); err != nil {
		fmt.Fprintf(out, "raised: %v\n", err)
	}

	assert.Fatal(5 == 6, "Error")
	assert.Fatal(5 != 6, "Error")

	fmt.Fprintln(out, "__END__")
	return nil
}

func sharedDebugSite() {
	assert.Debug(5 == 6, "Error")
}

// raise runs fn and returns the assertion failure it raised.
func raise(fn func()) (err error) {
	defer assert.Recover(&err)
	fn()
	return nil
}
