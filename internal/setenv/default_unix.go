//go:build !windows

package setenv

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// DefaultSetter appends to the current user's shell startup file.
func DefaultSetter(fsys afero.Fs) (Setter, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to find home directory: %w", err)
	}
	return NewShellRCSetter(fsys, home, os.Getenv("SHELL")), nil
}
