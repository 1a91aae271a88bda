package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PolarWolf314/envc/internal/engine"
	"github.com/spf13/afero"
)

// FileRecord describes a candidate file found by a scan.
type FileRecord struct {
	Path      string   `json:"path" yaml:"path"`
	Name      string   `json:"name" yaml:"name"`
	Category  Category `json:"category" yaml:"category"`
	Variables int      `json:"variables" yaml:"variables"`
}

// ScanDirectory lists the regular files directly inside dir that are valid
// inputs for mode, sorted by name. Symlinks count when their target is a
// regular file.
func ScanDirectory(fsys afero.Fs, dir string, mode engine.Mode) ([]FileRecord, error) {
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var records []FileRecord
	for _, info := range infos {
		name := info.Name()
		if Classify(name, mode) == Neither {
			continue
		}

		path := filepath.Join(dir, name)
		if !isRegularFile(fsys, path, info) {
			continue
		}

		records = append(records, FileRecord{
			Path:      path,
			Name:      name,
			Category:  Categorize(name),
			Variables: CountVariables(fsys, path),
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})

	return records, nil
}

// CountVariables counts the variable lines of the file at path. Read errors
// count as zero.
func CountVariables(fsys afero.Fs, path string) int {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return 0
	}
	return CountVariablesIn(string(data))
}

// CountVariablesIn counts non-blank, non-comment lines that contain '='.
func CountVariablesIn(content string) int {
	count := 0
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.Contains(trimmed, "=") {
			count++
		}
	}
	return count
}

func isRegularFile(fsys afero.Fs, path string, info os.FileInfo) bool {
	if info.Mode()&os.ModeSymlink != 0 {
		target, err := fsys.Stat(path)
		if err != nil {
			return false
		}
		info = target
	}
	return info.Mode().IsRegular()
}
