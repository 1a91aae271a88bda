// Package workflows provides high-level orchestration for envc commands.
//
// Workflows connect the scanner, the engine, the audit log and the
// filesystem to implement complete user-facing features, independent of
// CLI concerns like flag parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Resolves files and the password
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// # Available Workflows
//
//   - Encrypt, Decrypt, Process: transform a batch of files in parallel
//   - Status: list plain and encrypted files with their counterparts
//   - ResolvePassword: pick the password from flag, stdin, environment or prompt
//   - MissingFromGitignore, AddToGitignore: keep plain files out of git
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package. Per-file
// failures are *kerrors.FileError values naming the path and stage:
//
//	result, err := workflows.Decrypt(ctx, opts)
//	var fileErr *kerrors.FileError
//	if errors.As(err, &fileErr) && errors.Is(err, kerrors.ErrDecryptionFailed) {
//	    // Wrong password for fileErr.Path
//	}
//
// # Context Usage
//
// Batch workflows accept a context.Context as their first parameter.
// Cancelling it stops files that have not started yet.
package workflows
