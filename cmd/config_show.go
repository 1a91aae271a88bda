package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/PolarWolf314/envc/internal/configs"
	"github.com/PolarWolf314/envc/internal/ui"
	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
	ConfigCmd.AddCommand(configShowCmd)
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Displays the configuration envc runs with: the config file merged over
the defaults.

Examples:
  envc config show
  envc config show --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")
		path := effectiveConfigPath()

		if configShowJSON {
			output, err := json.MarshalIndent(struct {
				Path   string          `json:"path"`
				Exists bool            `json:"exists"`
				Config *configs.Config `json:"config"`
			}{path, fileExists(path), Config}, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal config to JSON: %w", err)
			}
			fmt.Println(string(output))
			return nil
		}

		source := ui.Path.Sprint(path)
		if !fileExists(path) {
			source += " " + ui.Muted.Sprint("not found, using defaults")
		}
		fmt.Println(ui.Info.Sprint("Configuration") + " " + source + ":")
		fmt.Println()
		fmt.Printf("  %-20s %s\n", "password_env:", ui.Highlight.Sprint(Config.PasswordEnv))
		fmt.Printf("  %-20s %d\n", "concurrency:", Config.Concurrency)
		fmt.Printf("  %-20s %t\n", "offer_gitignore:", Config.OfferGitignore)
		fmt.Printf("  %-20s %s\n", "file_mode_plain:", Config.FileModePlain)
		fmt.Printf("  %-20s %s\n", "file_mode_encrypted:", Config.FileModeEncrypted)
		fmt.Printf("  %-20s %t\n", "audit.enabled:", Config.Audit.Enabled)
		fmt.Printf("  %-20s %s\n", "audit.path:", ui.Path.Sprint(Config.AuditPath(configs.EnvcSettings.AuditPath)))
		return nil
	},
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
