package setenv

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// RCFile returns the shell startup file for shell: ~/.zshrc when shell
// mentions zsh, ~/.bashrc otherwise.
func RCFile(home, shell string) string {
	if strings.Contains(shell, "zsh") {
		return filepath.Join(home, ".zshrc")
	}
	return filepath.Join(home, ".bashrc")
}

// ShellRCSetter appends export lines to a shell startup file.
type ShellRCSetter struct {
	Fs   afero.Fs
	Path string
}

func NewShellRCSetter(fsys afero.Fs, home, shell string) *ShellRCSetter {
	return &ShellRCSetter{Fs: fsys, Path: RCFile(home, shell)}
}

// Set appends `export KEY="VALUE"`. The value is escaped so the shell sees
// it literally.
func (s *ShellRCSetter) Set(key, value string) error {
	if !identifierPattern.MatchString(key) {
		return fmt.Errorf("%q is not a valid shell variable name", key)
	}

	f, err := s.Fs.OpenFile(s.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.Path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "export %s=\"%s\"\n", key, escapeDoubleQuoted(value)); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	return nil
}

func (s *ShellRCSetter) Target() string {
	return s.Path
}

func (s *ShellRCSetter) ApplyHint() string {
	return "Run 'source " + s.Path + "' or open a new terminal to apply changes."
}

var doubleQuoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`")

func escapeDoubleQuoted(value string) string {
	return doubleQuoteEscaper.Replace(value)
}
