package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/envc/internal/audit"
	"github.com/PolarWolf314/envc/internal/engine"
	kerrors "github.com/PolarWolf314/envc/internal/errors"
	"github.com/PolarWolf314/envc/internal/scanner"
	"github.com/PolarWolf314/envc/internal/setenv"
	"github.com/PolarWolf314/envc/internal/ui"
	"github.com/PolarWolf314/envc/internal/utils"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	setenvYes bool

	newSetter = setenv.DefaultSetter
)

func init() {
	setenvCmd.Flags().BoolVarP(&setenvYes, "yes", "y", false, "set the variables without asking")
}

// resetSetenvCommandState resets the setenv command's global state for testing.
func resetSetenvCommandState() {
	setenvYes = false
}

var setenvCmd = &cobra.Command{
	Use:   "setenv [file]",
	Short: "Persists the variables of a plain .env file as user environment variables",
	Long: `Reads KEY=VALUE assignments from a plain .env file and makes them
permanent for your user.

On Linux and macOS each variable is appended as an export line to ~/.zshrc
when $SHELL is zsh, or ~/.bashrc otherwise. On Windows each variable is set
with setx.

With no file on a terminal, asks which .env file in the current directory
to use.

Examples:
  envc setenv .env
  envc setenv .env.local --yes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSetenv,
}

func runSetenv(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting setenv command")
	interactive := isInteractive()

	path, err := setenvInput(args, interactive)
	if err != nil {
		return err
	}
	Logger.Debugf("Reading variables from %s", path)

	data, err := afero.ReadFile(appFs, path)
	if err != nil {
		return kerrors.NewFileError(path, kerrors.StageRead, err)
	}

	vars := setenv.ParseAssignments(string(data))
	if len(vars) == 0 {
		return &kerrors.FileError{Path: path, Stage: kerrors.StageValidate, Err: kerrors.ErrNoVariables}
	}

	setter, err := newSetter(appFs)
	if err != nil {
		return err
	}

	fmt.Printf("Found %d %s in %s:\n", len(vars), utils.Pluralize(len(vars), "variable", "variables"), ui.Path.Sprint(displayPath(path)))
	for _, v := range vars {
		fmt.Printf("  %s = %s\n", ui.Key.Sprint(v.Key), setenv.Preview(v.Value))
	}
	fmt.Println()

	if !setenvYes {
		if !interactive {
			return fmt.Errorf("refusing to modify %s without confirmation, pass --yes", setter.Target())
		}
		ok, err := confirm(fmt.Sprintf("Set these variables in %s?", setter.Target()), false)
		if err != nil {
			return err
		}
		if !ok {
			return kerrors.ErrCancelled
		}
	}

	outcomes := setenv.Apply(setter, vars)
	failed := setenv.Failed(outcomes)

	for _, o := range outcomes {
		if o.Err != nil {
			fmt.Printf("  %s %s: %v\n", ui.Error.Sprint(ui.SymbolFailure), ui.Key.Sprint(o.Key), o.Err)
			continue
		}
		fmt.Printf("  %s %s\n", ui.Success.Sprint(ui.SymbolSuccess), ui.Key.Sprint(o.Key))
	}
	fmt.Println()

	recordSetenvAudit(path, len(outcomes)-len(failed), failed)

	if len(failed) > 0 {
		return fmt.Errorf("failed to set %d of %d variables", len(failed), len(outcomes))
	}

	fmt.Println(ui.Success.Sprint(ui.SymbolSuccess) + " Set " + ui.Highlight.Sprintf("%d", len(outcomes)) + " " +
		utils.Pluralize(len(outcomes), "variable", "variables") + " in " + ui.Path.Sprint(setter.Target()))
	fmt.Println(ui.Info.Sprint(ui.SymbolArrow) + " " + setter.ApplyHint())
	return nil
}

// setenvInput returns the file to read, asking when none was given.
func setenvInput(args []string, interactive bool) (string, error) {
	if len(args) == 1 {
		return filepath.Abs(args[0])
	}

	if !interactive {
		return "", fmt.Errorf("%w: pass the .env file to read", kerrors.ErrNoInput)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	records, err := scanner.ScanDirectory(appFs, cwd, engine.ModeEncrypt)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", fmt.Errorf("%w in %s", kerrors.ErrNoCandidateFiles, cwd)
	}

	return selectFile(records, "Which file's variables do you want to set?")
}

func recordSetenvAudit(path string, keys int, failed []setenv.Outcome) {
	logPath := auditPath()
	if logPath == "" {
		return
	}

	entry := audit.NewEntry("setenv")
	entry.Files = []string{path}
	entry.KeysCount = keys
	if len(failed) > 0 {
		entry.Error = fmt.Sprintf("%d variables failed", len(failed))
	}

	if err := audit.Log(logPath, entry); err != nil {
		Logger.WarnfAlways("failed to write audit log %s: %v", logPath, err)
	}
}
