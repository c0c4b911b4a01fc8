package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/datadash/datadash/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)

	assert.Equal(t, "0.0.0.0:8080", cfg.Redirect.Addr)
	assert.Equal(t, DefaultRedirectTarget, cfg.Redirect.Target)
	assert.Equal(t, "Streamlit App Redirect", cfg.Redirect.Title)

	assert.Equal(t, ":5000", cfg.Chart.Addr)
	assert.Equal(t, int64(42), cfg.Chart.Seed)
	assert.Equal(t, "2024-01-01", cfg.Chart.Start)
	assert.Equal(t, "2024-12-31", cfg.Chart.End)
	assert.Equal(t, 100.0, cfg.Chart.Mean)
	assert.Equal(t, 15.0, cfg.Chart.StdDev)
	assert.Equal(t, "Time Series Analysis", cfg.Chart.Title)
	assert.Equal(t, []string{"*"}, cfg.Chart.AllowedOrigins)

	assert.Equal(t, 100, cfg.Simulator.Steps)
	assert.Equal(t, 100*time.Millisecond, cfg.Simulator.Interval)

	assert.Equal(t, 20, cfg.Dashboard.SampleRows)
	assert.Equal(t, 50, cfg.Dashboard.ChartPoints)

	require.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".datadash.yaml")

	content := `
version: 1
redirect:
  addr: 127.0.0.1:9090
  target: https://example.com/app
chart:
  seed: 7
  start: "2023-06-01"
  end: "2023-06-30"
  allowed_origins:
    - https://a.example.com
    - https://b.example.com
simulator:
  steps: 25
  interval: 250ms
dashboard:
  sample_rows: 10
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Redirect.Addr)
	assert.Equal(t, "https://example.com/app", cfg.Redirect.Target)
	// Unset keys keep their defaults.
	assert.Equal(t, "Streamlit App Redirect", cfg.Redirect.Title)
	assert.Equal(t, ":5000", cfg.Chart.Addr)

	assert.Equal(t, int64(7), cfg.Chart.Seed)
	assert.Equal(t, "2023-06-01", cfg.Chart.Start)
	assert.Equal(t, "2023-06-30", cfg.Chart.End)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Chart.AllowedOrigins)

	assert.Equal(t, 25, cfg.Simulator.Steps)
	assert.Equal(t, 250*time.Millisecond, cfg.Simulator.Interval)
	assert.Equal(t, 10, cfg.Dashboard.SampleRows)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".datadash.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("chart:\n  seed: 7\n"), 0644))

	t.Setenv("DATADASH_CHART_SEED", "99")
	t.Setenv("DATADASH_SIMULATOR_INTERVAL", "2s")

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, int64(99), cfg.Chart.Seed)
	assert.Equal(t, 2*time.Second, cfg.Simulator.Interval)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".datadash.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("chart: [unclosed"), 0644))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFind(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0644))

		found, err := Find(path)
		require.NoError(t, err)
		assert.Equal(t, path, found)
	})

	t.Run("explicit path missing", func(t *testing.T) {
		_, err := Find(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Specified config file not found")
	})

	t.Run("current directory", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("HOME", t.TempDir())
		require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("version: 1\n"), 0644))
		t.Chdir(dir)

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, ConfigFileName, filepath.Base(found))
	})

	t.Run("parent directory", func(t *testing.T) {
		root := t.TempDir()
		t.Setenv("HOME", t.TempDir())
		require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("version: 1\n"), 0644))
		sub := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(sub, 0755))
		t.Chdir(sub)

		found, err := Find("")
		require.NoError(t, err)
		want, err := filepath.EvalSymlinks(filepath.Join(root, ConfigFileName))
		require.NoError(t, err)
		got, err := filepath.EvalSymlinks(found)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("stops at git root", func(t *testing.T) {
		outer := t.TempDir()
		t.Setenv("HOME", t.TempDir())
		require.NoError(t, os.WriteFile(filepath.Join(outer, ConfigFileName), []byte("version: 1\n"), 0644))
		repo := filepath.Join(outer, "repo")
		require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0755))
		t.Chdir(repo)

		found, err := Find("")
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("global config", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		globalDir := filepath.Join(home, GlobalConfigDir)
		require.NoError(t, os.MkdirAll(globalDir, 0755))
		globalPath := filepath.Join(globalDir, GlobalConfigFile)
		require.NoError(t, os.WriteFile(globalPath, []byte("version: 1\n"), 0644))

		repo := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(repo, ".git"), 0755))
		t.Chdir(repo)

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, globalPath, found)
	})
}

func TestResolve(t *testing.T) {
	t.Run("defaults with env when no file", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("HOME", t.TempDir())
		require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))
		t.Chdir(dir)
		t.Setenv("DATADASH_SIMULATOR_STEPS", "12")

		cfg, path, err := Resolve("")
		require.NoError(t, err)
		assert.Empty(t, path)
		assert.Equal(t, 12, cfg.Simulator.Steps)
		assert.Equal(t, int64(42), cfg.Chart.Seed)
	})

	t.Run("dotenv feeds overrides", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("HOME", t.TempDir())
		require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, DotEnvFile), []byte("DATADASH_CHART_ADDR=:6000\n"), 0644))
		t.Chdir(dir)
		// Registered so the variable godotenv sets is removed after the test.
		t.Setenv("DATADASH_CHART_ADDR", "")
		os.Unsetenv("DATADASH_CHART_ADDR")

		cfg, _, err := Resolve("")
		require.NoError(t, err)
		assert.Equal(t, ":6000", cfg.Chart.Addr)
	})

	t.Run("explicit file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("simulator:\n  steps: 3\n"), 0644))

		cfg, found, err := Resolve(path)
		require.NoError(t, err)
		assert.Equal(t, path, found)
		assert.Equal(t, 3, cfg.Simulator.Steps)
	})
}

func TestChartRange(t *testing.T) {
	start, end, err := DefaultConfig().Chart.ChartRange()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), end)

	_, _, err = ChartConfig{Start: "nope", End: "2024-01-01"}.ChartRange()
	assert.Error(t, err)
}
