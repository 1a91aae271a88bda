package workflows

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/envc/internal/utils"
	"github.com/gofrs/flock"
	"github.com/spf13/afero"
)

const gitignoreHeader = "# Plain .env files (secrets - do not commit)"

// MissingFromGitignore returns the base names of files that have no exact
// line (ignoring surrounding whitespace) in the .gitignore at path. A
// missing .gitignore means every name is missing.
func MissingFromGitignore(fsys afero.Fs, path string, files []string) ([]string, error) {
	content, err := readGitignore(fsys, path)
	if err != nil {
		return nil, err
	}
	return missingNames(content, files), nil
}

// AddToGitignore appends the names from files that are not yet listed in
// the .gitignore at path, under a comment header. It returns the names it
// added. The file is created if needed.
func AddToGitignore(fsys afero.Fs, path string, files []string) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	// Concurrent envc runs in one repository append to the same file.
	if utils.IsOsFs(fsys) {
		lock := flock.New(path, flock.SetPermissions(0644))
		if err := lock.Lock(); err != nil {
			return nil, fmt.Errorf("failed to lock %s: %w", path, err)
		}
		defer lock.Unlock()
	}

	content, err := readGitignore(fsys, path)
	if err != nil {
		return nil, err
	}

	missing := missingNames(content, files)
	if len(missing) == 0 {
		return nil, nil
	}

	var b strings.Builder
	if content != "" && !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(gitignoreHeader)
	b.WriteString("\n")
	for _, name := range missing {
		b.WriteString(name)
		b.WriteString("\n")
	}

	f, err := fsys.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(b.String()); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return missing, nil
}

func readGitignore(fsys afero.Fs, path string) (string, error) {
	data, err := afero.ReadFile(fsys, path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func missingNames(content string, files []string) []string {
	present := make(map[string]bool)
	for _, line := range strings.Split(content, "\n") {
		present[strings.TrimSpace(line)] = true
	}

	var missing []string
	for _, f := range files {
		name := filepath.Base(f)
		if name == "" || present[name] {
			continue
		}
		present[name] = true
		missing = append(missing, name)
	}
	return missing
}
