package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage envc configuration",
	Long: `Provides commands for viewing and creating the envc configuration file.

The file lives at $XDG_CONFIG_HOME/envc/config.toml unless --config is given.

Examples:
  # Write the default configuration
  envc config init

  # Show the effective configuration
  envc config show`,
}

// resetConfigCommandState resets all config command global variables to their default values for testing.
func resetConfigCommandState() {
	resetConfigInitState()
	resetConfigShowState()
}
