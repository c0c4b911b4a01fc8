package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/datadash/datadash/internal/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".datadash.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/datadash"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. DATADASH_CHART_SEED.
	EnvPrefix = "DATADASH"
	// DotEnvFile is loaded from the working directory when present.
	DotEnvFile = ".env"
)

// Load reads config from the specified path. Environment overrides apply on
// top of the file.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'datadash init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .datadash.yaml in current directory
// 3. .datadash.yaml in parent directories (stops at git root or home)
// 4. ~/.config/datadash/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	if path := findUpward(cwd); path != "" {
		return path, nil
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// findUpward checks dir and its parents for ConfigFileName. It stops at the
// home directory, the filesystem root, or the first directory holding .git.
func findUpward(dir string) string {
	home, _ := os.UserHomeDir()
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return ""
		}

		parent := filepath.Dir(dir)
		if parent == dir || (home != "" && parent == home) {
			return ""
		}
		dir = parent
	}
}

// Resolve loads .env, finds the config file, and returns the merged config
// along with the path it came from ("" when running on defaults).
// Missing config is not an error: defaults plus environment overrides apply.
func Resolve(explicit string) (*Config, string, error) {
	if err := LoadDotEnv(DotEnvFile); err != nil {
		return nil, "", err
	}

	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		cfg, err := parseConfig(newViper(), "environment")
		return cfg, "", err
	}

	cfg, err := Load(path)
	return cfg, path, err
}

// LoadDotEnv exports the variables in path into the process environment.
// Variables that are already set win. A missing file is ignored.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read "+path,
			"Each line should look like KEY=value")
	}
	return nil
}

// newViper returns a viper instance with defaults registered and DATADASH_*
// environment overrides enabled. Every key needs a default so AutomaticEnv
// can see it during Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, source string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the values in "+source)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("version", d.Version)

	v.SetDefault("redirect.addr", d.Redirect.Addr)
	v.SetDefault("redirect.target", d.Redirect.Target)
	v.SetDefault("redirect.title", d.Redirect.Title)

	v.SetDefault("chart.addr", d.Chart.Addr)
	v.SetDefault("chart.seed", d.Chart.Seed)
	v.SetDefault("chart.start", d.Chart.Start)
	v.SetDefault("chart.end", d.Chart.End)
	v.SetDefault("chart.mean", d.Chart.Mean)
	v.SetDefault("chart.stddev", d.Chart.StdDev)
	v.SetDefault("chart.title", d.Chart.Title)
	v.SetDefault("chart.allowed_origins", d.Chart.AllowedOrigins)
	v.SetDefault("chart.max_upload_bytes", d.Chart.MaxUploadBytes)

	v.SetDefault("simulator.steps", d.Simulator.Steps)
	v.SetDefault("simulator.interval", d.Simulator.Interval.String())

	v.SetDefault("dashboard.sample_rows", d.Dashboard.SampleRows)
	v.SetDefault("dashboard.seed", d.Dashboard.Seed)
	v.SetDefault("dashboard.chart_points", d.Dashboard.ChartPoints)
}
