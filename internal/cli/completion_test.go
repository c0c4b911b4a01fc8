package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionBashGeneration(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, rootCmd.GenBashCompletion(&buf))

	output := buf.String()
	assert.Contains(t, output, "# bash completion for datadash")
	assert.Contains(t, output, "__start_datadash")
	assert.Contains(t, output, "_datadash_simulate()")
	assert.Contains(t, output, "_datadash_analyze()")
}

func TestCompletionZshGeneration(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, rootCmd.GenZshCompletion(&buf))
	assert.Contains(t, buf.String(), "#compdef datadash")
}

func TestCompletionFishGeneration(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, rootCmd.GenFishCompletion(&buf, true))
	assert.Contains(t, buf.String(), "complete -c datadash")
}

func TestCompletionCommand_RejectsUnknownShell(t *testing.T) {
	err := completionCmd.Args(completionCmd, []string{"tcsh"})
	assert.Error(t, err)
}
