package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/envc/internal/engine"
	kerrors "github.com/PolarWolf314/envc/internal/errors"
	"github.com/PolarWolf314/envc/internal/scanner"
	"github.com/PolarWolf314/envc/internal/ui"
	"github.com/PolarWolf314/envc/internal/utils"
	"github.com/PolarWolf314/envc/internal/workflows"
	"github.com/spf13/cobra"
)

// runProcess drives encrypt and decrypt: pick inputs, show the plan, get
// the password, run the batch and report.
func runProcess(cmd *cobra.Command, args []string, mode engine.Mode, flags *processFlags) error {
	Logger.Infof("Starting %s command", mode)

	if err := flags.validate(); err != nil {
		return err
	}

	interactive := !flags.nonInteractive && isInteractive()
	Logger.Debugf("Interactive: %t", interactive)

	cwd, err := os.Getwd()
	if err != nil {
		return Logger.ErrorfAndReturn("failed to get working directory: %w", err)
	}

	patterns := append(append([]string{}, flags.inputs...), args...)
	files, err := resolveInputs(patterns, cwd, mode, interactive)
	if err != nil {
		return err
	}
	Logger.Debugf("Resolved %d input files", len(files))

	concurrency := flags.concurrency
	if concurrency == 0 {
		concurrency = Config.Concurrency
	}

	opts := workflows.Options{
		Mode:           mode,
		Files:          files,
		Output:         flags.output,
		Overwrite:      flags.yes,
		SkipValidation: flags.skipValidation,
		Concurrency:    concurrency,
		PlainMode:      Config.PlainMode(),
		EncryptedMode:  Config.EncryptedMode(),
		AuditPath:      auditPath(),
		Fs:             appFs,
		Logger:         Logger,
	}

	planOpts := opts
	planOpts.DryRun = true
	plan, err := workflows.Process(cmd.Context(), planOpts)
	if err != nil {
		return err
	}

	if flags.dryRun {
		printDryRun(plan)
		return nil
	}

	if mode == engine.ModeDecrypt && !flags.skipValidation {
		Logger.Debugf("Checking that inputs look encrypted")
		if err := workflows.CheckEncrypted(appFs, files); err != nil {
			return err
		}
	}

	existing := existingOutputs(plan)
	if interactive {
		printPlan(plan)
		ok, err := confirm("Proceed with these output files?", true)
		if err != nil {
			return err
		}
		if !ok {
			return kerrors.ErrCancelled
		}

		if len(existing) > 0 && !flags.yes {
			fmt.Println(ui.Warning.Sprint("⚠") + " These files already exist:" + utils.FormatPaths(displayPaths(existing)))
			ok, err := confirm("Overwrite these files?", false)
			if err != nil {
				return err
			}
			if !ok {
				return kerrors.ErrCancelled
			}
			opts.Overwrite = true
		}
	} else if len(existing) > 0 && !flags.yes {
		return &kerrors.FileError{Path: existing[0], Stage: kerrors.StageWrite, Err: kerrors.ErrOutputExists}
	}

	password, prompted, err := readPassword(cmd, mode, flags)
	if err != nil {
		return err
	}
	defer password.Wipe()
	opts.Password = password

	result, err := runBatch(cmd, mode, opts)
	if err != nil {
		return err
	}

	if mode == engine.ModeEncrypt && interactive && Config.OfferGitignore {
		if err := offerGitignore(cwd, result); err != nil {
			Logger.WarnfAlways("Failed to update .gitignore: %v", err)
		}
	}

	if prompted {
		fmt.Println(ui.Info.Sprint(ui.SymbolArrow) + " Tip: set " + ui.Code.Sprint(Config.PasswordEnv) + " to skip the password prompt next time")
	}

	return nil
}

// resolveInputs expands patterns, or scans dir when there are none.
func resolveInputs(patterns []string, dir string, mode engine.Mode, interactive bool) ([]string, error) {
	if len(patterns) > 0 {
		return scanner.ResolveFiles(appFs, patterns, dir, mode)
	}

	records, err := scanner.ScanDirectory(appFs, dir, mode)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w in %s", kerrors.ErrNoCandidateFiles, dir)
	}

	if !interactive {
		paths := make([]string, len(records))
		for i, r := range records {
			paths[i] = r.Path
		}
		return paths, nil
	}

	fmt.Printf("Found %d %s to %s:\n", len(records), utils.Pluralize(len(records), "file", "files"), mode)
	for _, r := range records {
		fmt.Printf("  %s %s %s\n", ui.SymbolBullet, ui.Path.Sprint(r.Name), ui.Muted.Sprint(varsLabel(r.Variables)))
	}
	fmt.Println()

	return selectFiles(records, mode)
}

func readPassword(cmd *cobra.Command, mode engine.Mode, flags *processFlags) (engine.Secret, bool, error) {
	prompted := false
	src := workflows.PasswordSources{
		Flag:    flags.password,
		FlagSet: flags.password != "" || cmd.Flags().Changed("password"),
		EnvVar:  Config.PasswordEnv,
		Confirm: mode == engine.ModeEncrypt,
	}
	if flags.passwordStdin {
		src.Stdin = utils.ReadStdin
	}
	if utils.IsTerminal() {
		src.Prompt = func(prompt string) ([]byte, error) {
			prompted = true
			return utils.ReadPassphrase(prompt)
		}
	}

	password, err := workflows.ResolvePassword(src)
	if err != nil {
		return engine.Secret{}, false, err
	}
	return password, prompted, nil
}

// runBatch processes the files under a spinner and reports each file.
func runBatch(cmd *cobra.Command, mode engine.Mode, opts workflows.Options) (*workflows.Result, error) {
	spinner, cleanup := startSpinner(fmt.Sprintf("%s %d %s...", progressVerb(mode), len(opts.Files), utils.Pluralize(len(opts.Files), "file", "files")), verbose)
	defer cleanup()

	result, err := workflows.Process(cmd.Context(), opts)

	var lines []string
	if result != nil {
		for _, f := range result.Files {
			lines = append(lines, fmt.Sprintf("  %s %s %s %s %s",
				ui.Success.Sprint(ui.SymbolSuccess), ui.Path.Sprint(displayPath(f.Input)),
				ui.Info.Sprint(ui.SymbolArrow), ui.Path.Sprint(displayPath(f.Output)),
				ui.Muted.Sprint(varsLabel(len(f.Keys)))))
		}
	}

	if err != nil {
		if len(lines) > 0 {
			spinner.FinalMSG = "Written before the failure:\n" + strings.Join(lines, "\n")
		}
		return nil, err
	}

	spinner.FinalMSG = ui.Success.Sprint(ui.SymbolSuccess) + " " + pastVerb(mode) + " " +
		ui.Highlight.Sprintf("%d", len(result.Files)) + " " + utils.Pluralize(len(result.Files), "file", "files") +
		" (" + varsLabel(result.KeysCount()) + ")\n" + strings.Join(lines, "\n")
	return result, nil
}

func offerGitignore(dir string, result *workflows.Result) error {
	inputs := make([]string, len(result.Files))
	for i, f := range result.Files {
		inputs[i] = f.Input
	}

	path := filepath.Join(dir, ".gitignore")
	missing, err := workflows.MissingFromGitignore(appFs, path, inputs)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println(ui.Warning.Sprint("⚠") + " These plain files are not in .gitignore:" + utils.FormatPaths(missing))
	ok, err := confirm("Add them to .gitignore?", true)
	if err != nil {
		if errors.Is(err, kerrors.ErrCancelled) {
			return nil
		}
		return err
	}
	if !ok {
		return nil
	}

	added, err := workflows.AddToGitignore(appFs, path, inputs)
	if err != nil {
		return err
	}
	fmt.Println(ui.Success.Sprint(ui.SymbolSuccess) + " Added " + ui.Highlight.Sprintf("%d", len(added)) + " " +
		utils.Pluralize(len(added), "entry", "entries") + " to " + ui.Path.Sprint(displayPath(path)))
	return nil
}

func printPlan(plan *workflows.Result) {
	fmt.Println("Output files:")
	for _, f := range plan.Files {
		note := ""
		if f.OutputExisted {
			note = " " + ui.Warning.Sprint("(exists)")
		}
		fmt.Printf("  %s %s %s%s\n", ui.Path.Sprint(displayPath(f.Input)), ui.Info.Sprint(ui.SymbolArrow), ui.Path.Sprint(displayPath(f.Output)), note)
	}
	fmt.Println()
}

func printDryRun(plan *workflows.Result) {
	fmt.Println(ui.Warning.Sprint("[dry-run]") + " Would " + plan.Mode.String() + " " +
		ui.Highlight.Sprintf("%d", len(plan.Files)) + " " + utils.Pluralize(len(plan.Files), "file", "files") + ":")
	for _, f := range plan.Files {
		note := ""
		if f.OutputExisted {
			note = " " + ui.Warning.Sprint("(overwrites existing file)")
		}
		fmt.Printf("  %s %s %s%s\n", ui.Path.Sprint(displayPath(f.Input)), ui.Info.Sprint(ui.SymbolArrow), ui.Path.Sprint(displayPath(f.Output)), note)
	}
	fmt.Println()
	fmt.Println(ui.Info.Sprint("No changes made.") + " Run without " + ui.Flag.Sprint("--dry-run") + " to write the files.")
}

func existingOutputs(plan *workflows.Result) []string {
	var existing []string
	for _, f := range plan.Files {
		if f.OutputExisted {
			existing = append(existing, f.Output)
		}
	}
	return existing
}

func displayPaths(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = displayPath(p)
	}
	return out
}

func progressVerb(mode engine.Mode) string {
	if mode == engine.ModeEncrypt {
		return "Encrypting"
	}
	return "Decrypting"
}

func pastVerb(mode engine.Mode) string {
	if mode == engine.ModeEncrypt {
		return "Encrypted"
	}
	return "Decrypted"
}
