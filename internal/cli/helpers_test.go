package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/datadash/datadash/internal/config"
	"github.com/datadash/datadash/internal/simulator"
	"github.com/stretchr/testify/require"
)

// writeConfig writes content to a fresh .datadash.yaml and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// useConfigFile points the --config flag at path for the test.
func useConfigFile(t *testing.T, path string) {
	t.Helper()
	old := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = old })
}

func seededSimulator() *simulator.Simulator {
	sim := simulator.NewSeeded(1)
	sim.Sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	return sim
}
