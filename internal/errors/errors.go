package errors

import (
	"errors"
	"fmt"
)

// Cryptographic errors indicate failures during encryption or decryption operations.
var (
	// ErrDecryptionFailed indicates a value could not be decrypted. A wrong
	// password and malformed ciphertext both produce this error and are not
	// distinguished.
	ErrDecryptionFailed = errors.New("wrong password or invalid encrypted data")

	// ErrEncryptionFailed indicates a value could not be encrypted.
	ErrEncryptionFailed = errors.New("failed to encrypt value")
)

// Validation errors indicate the file content does not match the requested operation.
var (
	// ErrValidationFailed is the parent of every validation error.
	ErrValidationFailed = errors.New("validation failed")

	// ErrNoVariables indicates the file contains no KEY=VALUE lines.
	ErrNoVariables = fmt.Errorf("%w: file contains no environment variables", ErrValidationFailed)

	// ErrAppearsUnencrypted indicates none of the file's values look encrypted.
	ErrAppearsUnencrypted = fmt.Errorf("%w: this file appears to be unencrypted", ErrValidationFailed)
)

// File errors indicate issues with file discovery or access.
var (
	// ErrIO indicates a read or write failure on the local filesystem.
	ErrIO = errors.New("i/o failure")

	// ErrNoCandidateFiles indicates a directory scan found nothing for the requested mode.
	ErrNoCandidateFiles = errors.New("no matching .env files found")

	// ErrFileNotFound indicates a specific file could not be located.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidFileType indicates the file is not of the expected type.
	ErrInvalidFileType = errors.New("invalid file type")

	// ErrOutputExists indicates the output file exists and overwriting was not allowed.
	ErrOutputExists = errors.New("output file already exists")

	// ErrDuplicateOutput indicates two inputs of one batch would write the same output.
	ErrDuplicateOutput = fmt.Errorf("%w: more than one input writes to it", ErrOutputExists)
)

// Input errors indicate issues with what the user supplied.
var (
	// ErrNoInput indicates no input file was given and none could be selected.
	ErrNoInput = errors.New("no input file given")

	// ErrEmptyPassword indicates the password is empty.
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrPasswordMismatch indicates the password confirmation did not match.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrCancelled indicates the user aborted the operation.
	ErrCancelled = errors.New("operation cancelled")

	// ErrInvalidDateFormat indicates a date filter is not in YYYY-MM-DD format.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// Stage names the step of a single-file operation that failed.
type Stage string

const (
	StageRead      Stage = "read"
	StageValidate  Stage = "validate"
	StageTransform Stage = "transform"
	StageWrite     Stage = "write"
)

// FileError ties a failure to the file and stage it happened in.
type FileError struct {
	Path  string
	Stage Stage
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileError wraps err with path and stage. Read and write failures also
// match ErrIO.
func NewFileError(path string, stage Stage, err error) *FileError {
	if (stage == StageRead || stage == StageWrite) && !errors.Is(err, ErrIO) {
		err = fmt.Errorf("%w: %w", ErrIO, err)
	}
	return &FileError{Path: path, Stage: stage, Err: err}
}
