package workflows

import (
	"github.com/PolarWolf314/envc/internal/engine"
	kerrors "github.com/PolarWolf314/envc/internal/errors"
	"github.com/spf13/afero"
)

// CheckEncrypted verifies that every file looks encrypted before a password
// is requested. It stops at the first file that does not.
//
// Returns a FileError at StageRead wrapping ErrIO if a file cannot be read.
// Returns a FileError at StageValidate wrapping ErrAppearsUnencrypted or
// ErrNoVariables otherwise.
func CheckEncrypted(fsys afero.Fs, files []string) error {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	for _, path := range files {
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			return kerrors.NewFileError(path, kerrors.StageRead, err)
		}
		if err := engine.ValidateLooksEncrypted(string(data)); err != nil {
			return kerrors.NewFileError(path, kerrors.StageValidate, err)
		}
	}
	return nil
}
