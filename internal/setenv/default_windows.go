//go:build windows

package setenv

import "github.com/spf13/afero"

// DefaultSetter uses setx, which stores variables in the user's registry
// environment. fsys is unused.
func DefaultSetter(fsys afero.Fs) (Setter, error) {
	return SetxSetter{}, nil
}
