package cmd

import (
	"fmt"

	"github.com/PolarWolf314/envc/internal/engine"
	"github.com/spf13/pflag"
)

// processFlags holds the flags shared by encrypt and decrypt.
type processFlags struct {
	password       string
	passwordStdin  bool
	inputs         []string
	output         string
	yes            bool
	dryRun         bool
	concurrency    int
	nonInteractive bool
	skipValidation bool
}

var (
	encryptFlags processFlags
	decryptFlags processFlags
)

func (f *processFlags) register(fs *pflag.FlagSet, mode engine.Mode) {
	fs.StringVarP(&f.password, "password", "p", "", "password to use (visible in shell history, prefer the environment variable)")
	fs.BoolVar(&f.passwordStdin, "password-stdin", false, "read the password from stdin")
	fs.StringArrayVarP(&f.inputs, "input", "i", nil, "file, directory or glob to "+mode.String()+" (repeatable)")
	fs.StringVarP(&f.output, "output", "o", "", "output path (single input only)")
	fs.BoolVarP(&f.yes, "yes", "y", false, "overwrite existing outputs without asking")
	fs.BoolVar(&f.dryRun, "dry-run", false, "show what would be written without writing")
	fs.IntVarP(&f.concurrency, "concurrency", "j", 0, "number of files processed at once (default from config)")
	fs.BoolVar(&f.nonInteractive, "non-interactive", false, "never prompt, process every candidate when no input is given")

	if mode == engine.ModeDecrypt {
		fs.BoolVar(&f.skipValidation, "skip-validation", false, "decrypt even if the file does not look encrypted")
	}
}

func (f *processFlags) validate() error {
	if f.password != "" && f.passwordStdin {
		return fmt.Errorf("--password and --password-stdin cannot be used together")
	}
	if f.concurrency < 0 {
		return fmt.Errorf("--concurrency must be at least 1, got %d", f.concurrency)
	}
	return nil
}

func (f *processFlags) reset() {
	*f = processFlags{}
}
