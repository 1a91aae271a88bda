// Package errors provides typed error values for envc.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Crypto errors: ErrDecryptionFailed, ErrEncryptionFailed
//   - Validation errors: ErrNoVariables, ErrAppearsUnencrypted (both match ErrValidationFailed)
//   - File errors: ErrIO, ErrNoCandidateFiles, ErrFileNotFound, ErrOutputExists,
//     ErrDuplicateOutput
//   - Input errors: ErrNoInput, ErrEmptyPassword, ErrPasswordMismatch, ErrCancelled
//
// ErrDecryptionFailed is deliberately the same value whether the password was
// wrong or the ciphertext was malformed.
//
// # File Errors
//
// Batch operations report failures as *FileError, which names the file and
// the stage (read, validate, transform, write) that failed:
//
//	var fe *kerrors.FileError
//	if errors.As(err, &fe) {
//	    fmt.Printf("%s failed during %s\n", fe.Path, fe.Stage)
//	}
package errors
