package workflows

import (
	"fmt"
	"path/filepath"

	"github.com/PolarWolf314/envc/internal/engine"
	"github.com/PolarWolf314/envc/internal/scanner"
	"github.com/spf13/afero"
)

// StatusFile is a candidate file and its counterpart in the other mode.
type StatusFile struct {
	scanner.FileRecord `yaml:",inline"`

	Counterpart       string `json:"counterpart" yaml:"counterpart"`
	CounterpartExists bool   `json:"counterpart_exists" yaml:"counterpart_exists"`
}

// StatusReport lists the plain and encrypted files of a directory.
type StatusReport struct {
	Dir       string       `json:"dir" yaml:"dir"`
	Plain     []StatusFile `json:"plain" yaml:"plain"`
	Encrypted []StatusFile `json:"encrypted" yaml:"encrypted"`
}

// Status scans dir for plain and encrypted .env files.
func Status(fsys afero.Fs, dir string) (*StatusReport, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	report := &StatusReport{Dir: abs}

	report.Plain, err = statusFiles(fsys, abs, engine.ModeEncrypt)
	if err != nil {
		return nil, err
	}
	report.Encrypted, err = statusFiles(fsys, abs, engine.ModeDecrypt)
	if err != nil {
		return nil, err
	}

	return report, nil
}

func statusFiles(fsys afero.Fs, dir string, mode engine.Mode) ([]StatusFile, error) {
	records, err := scanner.ScanDirectory(fsys, dir, mode)
	if err != nil {
		return nil, err
	}

	files := make([]StatusFile, 0, len(records))
	for _, r := range records {
		counterpart := scanner.DeriveOutputName(r.Path, mode)
		exists, _ := afero.Exists(fsys, counterpart)
		files = append(files, StatusFile{
			FileRecord:        r,
			Counterpart:       counterpart,
			CounterpartExists: exists && counterpart != r.Path,
		})
	}
	return files, nil
}
