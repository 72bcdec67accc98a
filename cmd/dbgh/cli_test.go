package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbgh/internal/config"
	dbgh "dbgh/pkg/assert"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return executeEnv(t, nil, stdin, args...)
}

func executeEnv(t *testing.T, env map[string]string, stdin string, args ...string) (string, string, error) {
	t.Helper()
	for _, name := range []string{"DBGH_LEVELS", "DBGH_INTERACTIVE", "DBGH_EXECUTOR", "DBGH_JOURNAL"} {
		t.Setenv(name, env[name])
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		configForce = false
		demoRepeat = 5
		watchCount = 0
		watchInterval = defaultWatchInterval
		dbgh.SetDefault(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T, mutate func(*config.Config)) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	c := config.DefaultConfig()
	c.Journal.Path = filepath.Join(dir, "failures.db")
	c.Logging.Level = "error"
	mutate(c)
	require.NoError(t, c.Save(path))
	return path
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".dbgh", "config.yaml")

	out, _, err := execute(t, "", "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, _, err = execute(t, "", "--config", path, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	_, _, err = execute(t, "", "--config", path, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestConfigShowIncludesEnvOverrides(t *testing.T) {
	path := writeConfig(t, func(c *config.Config) {})

	out, _, err := executeEnv(t, map[string]string{"DBGH_EXECUTOR": "zap"}, "", "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "executor: zap")
}

func TestLevels(t *testing.T) {
	path := writeConfig(t, func(c *config.Config) {
		c.Levels.Fatal = true
		c.Levels.Warning = false
		c.Interactive = true
	})

	out, _, err := execute(t, "", "--config", path, "levels")
	require.NoError(t, err)

	assert.Regexp(t, `WARNING\s+off`, out)
	assert.Regexp(t, `DEBUG\s+on`, out)
	assert.Regexp(t, `FATAL\s+on`, out)
	assert.Regexp(t, `interactive\s+on`, out)
	assert.Regexp(t, `journal\s+off`, out)
}

func TestInvalidConfigFailsEarly(t *testing.T) {
	path := writeConfig(t, func(c *config.Config) { c.Executor = "gui" })

	_, _, err := execute(t, "", "--config", path, "levels")
	assert.ErrorContains(t, err, "invalid executor")
}

func TestDemoRecordsToJournal(t *testing.T) {
	path := writeConfig(t, func(c *config.Config) {
		c.Levels.Debug = false
		c.Journal.Enabled = true
	})

	out, stderr, err := execute(t, "", "--config", path, "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "raised: assertion failed: Error [5 == 6]")
	assert.Equal(t, 1, strings.Count(out, "raised:"))
	assert.Contains(t, out, "__END__")
	assert.NotContains(t, out, dbgh.PromptText)
	assert.Equal(t, 1, strings.Count(stderr, "WARNING ASSERT:\n"))
	assert.Equal(t, 1, strings.Count(stderr, "ERROR ASSERT:\n"))

	out, _, err = execute(t, "", "--config", path, "journal", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "EXPRESSION")
	assert.Contains(t, lines[1], "ERROR")
	assert.Contains(t, lines[1], "demo.go")
	assert.Contains(t, lines[2], "WARNING")
	assert.Contains(t, lines[2], "5 == 6")
}

func TestJournalListEmpty(t *testing.T) {
	path := writeConfig(t, func(c *config.Config) {})

	out, _, err := execute(t, "", "--config", path, "journal", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No failures recorded.")
}

func TestDemoDebugPrompt(t *testing.T) {
	path := writeConfig(t, func(c *config.Config) {})

	out, _, err := execute(t, "f\n", "--config", path, "demo")
	require.NoError(t, err)

	// The shared site prompts once although it is reached from three lines,
	// then the two other failing debug sites
	// each prompt and read end of input as ignore.
	assert.Equal(t, 3, strings.Count(out, dbgh.PromptText))
	assert.Equal(t, 3, strings.Count(out, "DEBUG ASSERT:\n"))
	assert.Contains(t, out, "[what]:       Error 2")
	assert.Contains(t, out, "__END__")
}

func TestWatchProbes(t *testing.T) {
	path := writeConfig(t, func(c *config.Config) {})

	_, stderr, err := execute(t, "", "--config", path, "watch", "--interval", "10ms", "--count", "3")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(stderr, "WARNING ASSERT:\n"))
	assert.Contains(t, stderr, "[what]:       probe 3")
}
