package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "calmerge", cmd.Use)
	assert.Contains(t, cmd.Long, "date, time and offset")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"merge", "rules", "validate", "test", "history", "replay"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
			assert.True(t, subCmd.SilenceUsage)
			assert.True(t, subCmd.SilenceErrors)
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	dbFlag := cmd.PersistentFlags().Lookup("db")
	require.NotNil(t, dbFlag)
	assert.Equal(t, "", dbFlag.DefValue)

	chronologyFlag := cmd.PersistentFlags().Lookup("chronology")
	require.NotNil(t, chronologyFlag)
	assert.Equal(t, "[]", chronologyFlag.DefValue)
}

func TestMergeCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	mergeCmd, _, err := cmd.Find([]string{"merge"})
	require.NoError(t, err)

	for _, name := range []string{"lenient", "no-check-unused", "zone", "resolver", "max-passes", "record"} {
		assert.NotNil(t, mergeCmd.Flags().Lookup(name), "merge should have --%s", name)
	}
	assert.Equal(t, "false", mergeCmd.Flags().Lookup("lenient").DefValue)
}

func TestTestCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	testCmd, _, err := cmd.Find([]string{"test"})
	require.NoError(t, err)

	assert.NotNil(t, testCmd.Flags().Lookup("update"))
	assert.NotNil(t, testCmd.Flags().Lookup("filter"))
	assert.NotNil(t, testCmd.Flags().Lookup("golden"))
	assert.Equal(t, "4", testCmd.Flags().Lookup("parallel").DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := executeCommand(t, "--format", "xml", "rules")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRootOptions_Logger(t *testing.T) {
	buf := &bytes.Buffer{}

	quiet := &RootOptions{}
	quiet.Logger(buf).Debug("hidden")
	assert.Empty(t, buf.String())

	verbose := &RootOptions{Verbose: true}
	verbose.Logger(buf).Debug("merge pass", "pass", 1)
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "merge pass")
}
