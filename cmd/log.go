package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/PolarWolf314/envc/internal/audit"
	kerrors "github.com/PolarWolf314/envc/internal/errors"
	"github.com/PolarWolf314/envc/internal/ui"
	"github.com/PolarWolf314/envc/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logOperation string
	logSince     string
	logUntil     string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logOperation = ""
	logSince = ""
	logUntil = ""
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of encrypt, decrypt and setenv runs.

Entries record which files were processed and how many keys were touched,
never the values or the password.

Examples:
  envc log                              # View full log
  envc log -n 10                        # Last 10 entries
  envc log --reverse                    # Most recent first
  envc log --operation encrypt,decrypt  # Filter by operation
  envc log --since 2024-01-01           # Filter by date
  envc log --json                       # JSON output`,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	path := auditPath()
	if path == "" {
		fmt.Println(ui.Warning.Sprint("⚠") + " Audit logging is disabled in the config")
		return nil
	}
	Logger.Debugf("Reading audit log from %s", path)

	result, err := workflows.Log(workflows.LogOptions{
		Path:       path,
		Limit:      logLimit,
		Reverse:    logReverse,
		Operations: logOperation,
		Since:      logSince,
		Until:      logUntil,
	})
	if err != nil {
		if errors.Is(err, kerrors.ErrInvalidDateFormat) {
			return err
		}
		return Logger.ErrorfAndReturn("Failed to read audit log: %w", err)
	}

	Logger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if logJSON {
		return outputLogJSON(result.Entries)
	}

	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Println("No audit log entries found.")
		} else {
			fmt.Println("No audit log entries found matching the filters.")
		}
		return nil
	}

	for _, e := range result.Entries {
		op := fmt.Sprintf("%-8s", e.Operation)
		if e.Error != "" {
			op = ui.Error.Sprint(op)
		}
		fmt.Printf("%-19s  %s  %s\n", workflows.FormatDateTime(e.Timestamp), op, workflows.FormatDetails(e))
	}
	return nil
}

func outputLogJSON(entries []audit.Entry) error {
	if entries == nil {
		entries = []audit.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
