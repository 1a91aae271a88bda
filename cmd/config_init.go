package cmd

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/envc/internal/configs"
	kerrors "github.com/PolarWolf314/envc/internal/errors"
	"github.com/PolarWolf314/envc/internal/ui"
	"github.com/spf13/cobra"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")
	ConfigCmd.AddCommand(configInitCmd)
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitForce = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Writes the default configuration file",
	Long: `Writes a config file with every setting at its default value.

Refuses to replace an existing file unless --force is given.

Examples:
  envc config init
  envc config init --config ./envc.toml --force`,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := effectiveConfigPath()
		Logger.Infof("Starting config init command for %s", path)

		if _, err := os.Stat(path); err == nil && !configInitForce {
			fmt.Println(ui.Error.Sprint(ui.SymbolFailure) + " Config already exists at " + ui.Path.Sprint(path))
			fmt.Println(ui.Info.Sprint(ui.SymbolArrow) + " Run again with " + ui.Flag.Sprint("--force") + " to replace it")
			return fmt.Errorf("%w: %s", kerrors.ErrOutputExists, path)
		}

		if err := configs.SaveConfig(path, configs.DefaultConfig()); err != nil {
			return Logger.ErrorfAndReturn("Failed to write config: %w", err)
		}

		fmt.Println(ui.Success.Sprint(ui.SymbolSuccess) + " Wrote default config to " + ui.Path.Sprint(path))
		return nil
	},
}
