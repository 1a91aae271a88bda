// Package utils provides shared helpers for the envc commands.
//
// # Filesystem Utilities
//
//   - WriteFileAtomic: writes through a temporary file and a rename
//   - IsOsFs: reports whether an afero.Fs is the real filesystem
//
// # String Utilities
//
//   - FormatPaths: formats file paths for human-readable output
//   - Truncate: shortens values for previews
//
// # I/O Utilities
//
//   - ReadStdin: reads a piped password from standard input
//
// # Terminal Utilities
//
//   - ReadPassphrase: reads a password without echo (golang.org/x/term)
//   - IsTerminal, IsInteractive: terminal detection (mattn/go-isatty)
package utils
