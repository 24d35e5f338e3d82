package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout and the error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default, since rootCmd is shared between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func exitCode(err error) int {
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	if err != nil {
		return 1
	}
	return 0
}

func TestRunCommand_Accepted(t *testing.T) {
	out, err := execute(t, "run", "order", "pizza,toppings", "done", "done", "pay")
	require.NoError(t, err)
	assert.Contains(t, out, "ACCEPTED")
	assert.Contains(t, out, "q_done")
}

func TestRunCommand_UpperCaseInput(t *testing.T) {
	out, err := execute(t, "run", "--format", "text", "ORDER", "Pizza", "TOPPINGS", "DONE", "DONE", "PAY")
	require.NoError(t, err)
	assert.Contains(t, out, "ACCEPTED")
}

func TestRunCommand_Rejected(t *testing.T) {
	out, err := execute(t, "run", "--format", "text", "--example", "invalid")
	assert.Equal(t, 2, exitCode(err))
	assert.Contains(t, out, "REJECTED")
	assert.Contains(t, out, "stuck at step 3")
}

func TestRunCommand_JSON(t *testing.T) {
	out, err := execute(t, "run", "--format", "json", "order", "pay")
	require.NoError(t, err)
	assert.Contains(t, out, `"outcome": "accepted"`)
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", "--table", "")
	require.NoError(t, err)
	assert.Contains(t, out, `Table "pizza-bot" is valid!`)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(`
initial: q0
accepting: [q1]
rules:
  - {from: q0, input: a, top: Z0, to: q1, action: pop}
  - {from: q0, input: a, top: Z0, to: q0, action: none}
`), 0644))
	out, err = execute(t, "validate", "--table", bad)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out, "Table is invalid:")
	assert.Contains(t, out, "[bottom_marker_misuse]")
	assert.Contains(t, out, "[duplicate_rule]")
}

func TestGraphCommand(t *testing.T) {
	out, err := execute(t, "graph", "--table", "", "--format", "dot", "--example", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `digraph "pizza-bot"`))

	out, err = execute(t, "graph", "--format", "mermaid", "--example", "valid")
	require.NoError(t, err)
	assert.Contains(t, out, "class q_done current;")
}

func TestExamplesCommand(t *testing.T) {
	out, err := execute(t, "examples")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "toppings-open")
}

func TestRunsCommand(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "run", "--store", "file", "--store-dir", dir, "--format", "json", "order", "pay")
	require.NoError(t, err)

	out, err := execute(t, "runs", "--store", "file", "--store-dir", dir, "--format", "text")
	require.NoError(t, err)
	ids := strings.Fields(out)
	require.Len(t, ids, 1)

	out, err = execute(t, "runs", "--store", "file", "--store-dir", dir, "--format", "json", ids[0])
	require.NoError(t, err)
	assert.Contains(t, out, ids[0])

	_, err = execute(t, "runs", "--store", "none")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pushdown version")
}
