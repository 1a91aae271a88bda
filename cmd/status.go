package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/envc/internal/ui"
	"github.com/PolarWolf314/envc/internal/workflows"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	statusJSON bool
	statusYAML bool
)

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output in JSON format")
	statusCmd.Flags().BoolVar(&statusYAML, "yaml", false, "output in YAML format")
}

// resetStatusCommandState resets the status command's global state for testing.
func resetStatusCommandState() {
	statusJSON = false
	statusYAML = false
}

var statusCmd = &cobra.Command{
	Use:   "status [dir]",
	Short: "Lists plain and encrypted .env files in a directory",
	Long: `Lists the plain and encrypted .env files in a directory (the current one
by default) with their variable counts and counterparts.

Examples:
  envc status
  envc status services/api
  envc status --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting status command")

		if statusJSON && statusYAML {
			return fmt.Errorf("--json and --yaml cannot be used together")
		}

		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		report, err := workflows.Status(appFs, dir)
		if err != nil {
			return err
		}
		Logger.Debugf("Found %d plain and %d encrypted files", len(report.Plain), len(report.Encrypted))

		switch {
		case statusJSON:
			output, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal status to JSON: %w", err)
			}
			fmt.Println(string(output))
			return nil
		case statusYAML:
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			if err := enc.Encode(report); err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal status to YAML: %w", err)
			}
			return enc.Close()
		}

		printStatus(report)
		return nil
	},
}

func printStatus(report *workflows.StatusReport) {
	fmt.Println(ui.Info.Sprint("Directory:") + " " + ui.Path.Sprint(report.Dir))

	if len(report.Plain) == 0 && len(report.Encrypted) == 0 {
		fmt.Println()
		fmt.Println(ui.Warning.Sprint("⚠") + " No .env files found")
		return
	}

	printStatusSection("Plain files", report.Plain, "not encrypted yet")
	printStatusSection("Encrypted files", report.Encrypted, "not decrypted")
}

func printStatusSection(title string, files []workflows.StatusFile, missingNote string) {
	if len(files) == 0 {
		return
	}

	fmt.Println()
	fmt.Println(ui.Info.Sprint(title + ":"))
	for _, f := range files {
		symbol := ui.Success.Sprint(ui.SymbolSuccess)
		note := ""
		if !f.CounterpartExists {
			symbol = ui.Warning.Sprint(ui.SymbolBullet)
			note = " " + ui.Muted.Sprint(missingNote)
		}
		fmt.Printf("  %s %-24s %-8s %s %s%s\n", symbol, f.Name, varsLabel(f.Variables),
			ui.Info.Sprint(ui.SymbolArrow), ui.Path.Sprint(filepath.Base(f.Counterpart)), note)
	}
}
