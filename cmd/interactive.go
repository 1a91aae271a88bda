package cmd

import (
	"errors"
	"fmt"

	"github.com/PolarWolf314/envc/internal/engine"
	kerrors "github.com/PolarWolf314/envc/internal/errors"
	"github.com/PolarWolf314/envc/internal/scanner"
	"github.com/charmbracelet/huh"
)

const (
	choiceAll    = "all"
	choiceSelect = "select"
	choiceQuit   = "quit"
)

// Prompts are package variables so tests can answer them.
var (
	selectFiles = promptSelectFiles
	selectFile  = promptSelectFile
	confirm     = promptConfirm
)

func resetPrompts() {
	selectFiles = promptSelectFiles
	selectFile = promptSelectFile
	confirm = promptConfirm
}

// promptSelectFiles offers All, Select individual or Quit over records.
func promptSelectFiles(records []scanner.FileRecord, mode engine.Mode) ([]string, error) {
	choice := choiceAll
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("Which files do you want to %s?", mode)).
				Options(
					huh.NewOption(fmt.Sprintf("All (%d files)", len(records)), choiceAll),
					huh.NewOption("Select individual files", choiceSelect),
					huh.NewOption("Quit", choiceQuit),
				).
				Value(&choice),
		),
	)
	if err := runForm(form); err != nil {
		return nil, err
	}

	switch choice {
	case choiceQuit:
		return nil, kerrors.ErrCancelled
	case choiceAll:
		paths := make([]string, len(records))
		for i, r := range records {
			paths[i] = r.Path
		}
		return paths, nil
	}

	options := make([]huh.Option[string], len(records))
	for i, r := range records {
		options[i] = huh.NewOption(fmt.Sprintf("%s (%s)", r.Name, varsLabel(r.Variables)), r.Path)
	}

	var picked []string
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Select files").
				Options(options...).
				Value(&picked),
		),
	)
	if err := runForm(form); err != nil {
		return nil, err
	}
	if len(picked) == 0 {
		return nil, kerrors.ErrCancelled
	}
	return picked, nil
}

// promptSelectFile picks a single file from records.
func promptSelectFile(records []scanner.FileRecord, title string) (string, error) {
	options := make([]huh.Option[string], len(records))
	for i, r := range records {
		options[i] = huh.NewOption(fmt.Sprintf("%s (%s)", r.Name, varsLabel(r.Variables)), r.Path)
	}

	var picked string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(options...).
				Value(&picked),
		),
	)
	if err := runForm(form); err != nil {
		return "", err
	}
	return picked, nil
}

func promptConfirm(title string, defaultValue bool) (bool, error) {
	value := defaultValue
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&value),
		),
	)
	if err := runForm(form); err != nil {
		return false, err
	}
	return value, nil
}

func runForm(form *huh.Form) error {
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return kerrors.ErrCancelled
		}
		return err
	}
	return nil
}
