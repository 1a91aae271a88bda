package cmd

import (
	"errors"

	kerrors "github.com/PolarWolf314/envc/internal/errors"
	"github.com/PolarWolf314/envc/internal/ui"
)

// FormatError renders err for the terminal with a hint on how to recover
// when one is known.
func FormatError(err error) string {
	msg := ui.Error.Sprint(ui.SymbolFailure) + " " + err.Error()

	hint := errorHint(err)
	if hint == "" {
		return msg
	}
	return msg + "\n" + ui.Info.Sprint(ui.SymbolArrow) + " " + hint
}

func errorHint(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrDuplicateOutput):
		return "Process these files one at a time and choose a path with " + ui.Flag.Sprint("--output")
	case errors.Is(err, kerrors.ErrOutputExists):
		return "Run again with " + ui.Flag.Sprint("--yes") + " to overwrite, or choose a path with " + ui.Flag.Sprint("--output")
	case errors.Is(err, kerrors.ErrAppearsUnencrypted):
		return "Decrypt only files created by " + ui.Code.Sprint("envc encrypt") + ", or pass " + ui.Flag.Sprint("--skip-validation")
	case errors.Is(err, kerrors.ErrDecryptionFailed):
		return "Check the password. Outputs of files that failed were not written"
	case errors.Is(err, kerrors.ErrNoCandidateFiles):
		return "Pass a file explicitly, or run " + ui.Code.Sprint("envc status") + " to see what envc recognizes"
	case errors.Is(err, kerrors.ErrPasswordMismatch):
		return "Enter the same password twice"
	case errors.Is(err, kerrors.ErrInvalidDateFormat):
		return "Use dates like " + ui.Code.Sprint("2024-01-31")
	default:
		return ""
	}
}

// IsCancelled reports whether err means the user stopped the command.
func IsCancelled(err error) bool {
	return errors.Is(err, kerrors.ErrCancelled)
}
