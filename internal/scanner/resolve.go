package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PolarWolf314/envc/internal/engine"
	kerrors "github.com/PolarWolf314/envc/internal/errors"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// ResolveFiles turns user-provided paths, directories and globs into a list
// of input files for mode. Relative patterns are resolved against dir.
//
// Literal file paths are accepted whatever their name; directories are
// scanned with ScanDirectory and glob matches are filtered with Classify.
// The result is deduplicated and keeps pattern order.
func ResolveFiles(fsys afero.Fs, patterns []string, dir string, mode engine.Mode) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		resolved, err := resolvePattern(fsys, pattern, dir, mode)
		if err != nil {
			return nil, err
		}

		for _, f := range resolved {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	if len(files) == 0 {
		return nil, kerrors.ErrNoCandidateFiles
	}

	return files, nil
}

func resolvePattern(fsys afero.Fs, pattern string, dir string, mode engine.Mode) ([]string, error) {
	path := pattern
	if !filepath.IsAbs(pattern) {
		path = filepath.Join(dir, pattern)
	}

	info, err := fsys.Stat(path)
	if err == nil && info.IsDir() {
		records, err := ScanDirectory(fsys, path, mode)
		if err != nil {
			return nil, err
		}
		files := make([]string, len(records))
		for i, r := range records {
			files[i] = r.Path
		}
		return files, nil
	}

	if strings.ContainsAny(pattern, "*?[{") {
		return expandGlob(fsys, pattern, dir, mode)
	}

	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, pattern)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", pattern, err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", kerrors.ErrInvalidFileType, pattern)
	}

	return []string{path}, nil
}

func expandGlob(fsys afero.Fs, pattern string, dir string, mode engine.Mode) ([]string, error) {
	root := dir
	rel := filepath.ToSlash(pattern)
	if filepath.IsAbs(pattern) {
		var base string
		base, rel = doublestar.SplitPattern(rel)
		root = filepath.FromSlash(base)
	}

	matches, err := doublestar.Glob(afero.NewIOFS(afero.NewBasePathFs(fsys, root)), rel)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var filtered []string
	for _, m := range matches {
		path := filepath.Join(root, filepath.FromSlash(m))

		info, err := fsys.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		if Classify(filepath.Base(path), mode) != Neither {
			filtered = append(filtered, path)
		}
	}

	sort.Strings(filtered)
	return filtered, nil
}
