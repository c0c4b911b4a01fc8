package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/datadash/datadash/internal/config"
	"github.com/datadash/datadash/internal/errors"
	"github.com/datadash/datadash/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configCmd groups config subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
}

// configShowCmd prints the effective configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after defaults, the config file, .env and
DATADASH_* environment overrides have been applied.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowCommand(cmd.OutOrStdout())
	},
}

// configSetCmd writes one key into the config file
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one configuration value",
	Long: `Set a dotted key in the config file, keeping comments and layout.
The file is created if it does not exist.

Examples:
  datadash config set chart.seed 7
  datadash config set simulator.interval 250ms
  datadash config set chart.allowed_origins https://a.example,https://b.example`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return configSetCommand(cmd.OutOrStdout(), args[0], args[1])
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func configShowCommand(w io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}
	return enc.Close()
}

// configSetCommand updates the config file in use, or ./.datadash.yaml when
// there is none. The result must still validate; otherwise the file is
// restored.
func configSetCommand(w io.Writer, key, value string) error {
	path := cfgFile
	if path == "" {
		found, err := config.Find("")
		if err != nil {
			return err
		}
		path = found
	}
	if path == "" {
		path = filepath.Join(".", config.ConfigFileName)
	}

	original, readErr := os.ReadFile(path)

	if err := config.SetValue(path, key, value); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to set %s", key),
			"Keys are dotted paths like chart.seed or simulator.steps")
	}

	cfg, err := config.Load(path)
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		if readErr == nil {
			_ = os.WriteFile(path, original, 0644)
		} else {
			_ = os.Remove(path)
		}
		return err
	}

	fmt.Fprintf(w, "%s %s = %s  %s\n",
		ui.SuccessStyle().Render(ui.SymbolSuccess), key, value,
		ui.MutedStyle().Render("("+path+")"))
	return nil
}
