package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/envc/internal/audit"
	"github.com/PolarWolf314/envc/internal/configs"
	"github.com/PolarWolf314/envc/internal/engine"
	kerrors "github.com/PolarWolf314/envc/internal/errors"
	logger "github.com/PolarWolf314/envc/internal/logging"
	"github.com/PolarWolf314/envc/internal/scanner"
	"github.com/PolarWolf314/envc/internal/utils"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Options configures an encrypt or decrypt batch.
type Options struct {
	// Mode selects the direction. Encrypt and Decrypt set it.
	Mode engine.Mode

	// Files lists the input paths, already resolved. See scanner.ResolveFiles.
	Files []string

	// Output overrides the derived output path. Only valid with one file.
	Output string

	// Password is the user's secret. It is not wiped by the workflow.
	Password engine.Secret

	// Overwrite allows replacing existing output files.
	Overwrite bool

	// DryRun reports the plan without reading inputs or writing outputs.
	DryRun bool

	// SkipValidation disables the looks-encrypted check before decrypting.
	SkipValidation bool

	// Concurrency caps the number of files processed at once. Zero uses
	// configs.DefaultConcurrency.
	Concurrency int

	// PlainMode and EncryptedMode are the permissions of written files.
	// Zero uses 0644 and 0600.
	PlainMode     os.FileMode
	EncryptedMode os.FileMode

	// AuditPath is the audit log to append to. Empty disables auditing.
	AuditPath string

	// Fs is the filesystem to work on. Nil uses the OS filesystem.
	Fs afero.Fs

	Logger logger.Logger
}

// FileResult is the outcome for one input file.
type FileResult struct {
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`

	// Keys lists the keys touched, in order of appearance.
	Keys []string `json:"keys,omitempty" yaml:"keys,omitempty"`

	// OutputExisted reports whether Output was present before the run.
	OutputExisted bool `json:"output_existed" yaml:"output_existed"`
}

// Result contains the outcome of a batch.
type Result struct {
	Mode   engine.Mode
	RunID  string
	DryRun bool

	// Files holds one entry per input, in input order. After a failure only
	// the files that were written are included.
	Files []FileResult
}

// KeysCount returns the total number of keys touched across all files.
func (r *Result) KeysCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Keys)
	}
	return n
}

// Encrypt encrypts every file in opts.Files to its ".enc" sibling.
func Encrypt(ctx context.Context, opts Options) (*Result, error) {
	opts.Mode = engine.ModeEncrypt
	return Process(ctx, opts)
}

// Decrypt decrypts every file in opts.Files to the name without its
// encrypted suffix.
//
// Returns an error matching ErrAppearsUnencrypted or ErrNoVariables when an
// input does not look encrypted, unless opts.SkipValidation is set.
// Returns ErrDecryptionFailed on a wrong password or corrupt value.
func Decrypt(ctx context.Context, opts Options) (*Result, error) {
	opts.Mode = engine.ModeDecrypt
	return Process(ctx, opts)
}

// Process runs opts.Files through the engine in parallel.
//
// Each file is read, optionally validated, transformed and then written to
// a temporary file that is renamed over the output, so a failing file
// never leaves a partial output. The first failure cancels files that have
// not started; outputs already written are kept.
//
// Returns ErrNoInput if there are no files.
// Returns a FileError wrapping ErrDuplicateOutput if two inputs derive the
// same output, even in a dry run.
// Returns a FileError wrapping ErrOutputExists if an output exists and
// opts.Overwrite is false. Nothing is written in that case.
// Returns ErrEmptyPassword if the password is empty and this is not a dry run.
func Process(ctx context.Context, opts Options) (*Result, error) {
	if len(opts.Files) == 0 {
		return nil, kerrors.ErrNoInput
	}
	if opts.Output != "" && len(opts.Files) > 1 {
		return nil, fmt.Errorf("an output path can only be given for a single file, got %d files", len(opts.Files))
	}

	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	entry := audit.NewEntry(opts.Mode.String())
	result := &Result{
		Mode:   opts.Mode,
		RunID:  entry.RunID,
		DryRun: opts.DryRun,
	}

	plan := make([]FileResult, len(opts.Files))
	writers := make(map[string]string, len(opts.Files))
	for i, input := range opts.Files {
		output := opts.Output
		if output == "" {
			output = scanner.DeriveOutputName(input, opts.Mode)
		}

		if prev, ok := writers[filepath.Clean(output)]; ok {
			return nil, &kerrors.FileError{
				Path:  output,
				Stage: kerrors.StageWrite,
				Err:   fmt.Errorf("%w (%s and %s)", kerrors.ErrDuplicateOutput, prev, input),
			}
		}
		writers[filepath.Clean(output)] = input

		_, err := fsys.Stat(output)
		plan[i] = FileResult{
			Input:         input,
			Output:        output,
			OutputExisted: err == nil,
		}
	}

	if opts.DryRun {
		result.Files = plan
		opts.Logger.Infof("Dry run: %d file(s) would be %sed", len(plan), opts.Mode)
		return result, nil
	}

	if !opts.Overwrite {
		for _, p := range plan {
			if p.OutputExisted {
				return nil, &kerrors.FileError{Path: p.Output, Stage: kerrors.StageWrite, Err: kerrors.ErrOutputExists}
			}
		}
	}

	if opts.Password.IsEmpty() {
		return nil, kerrors.ErrEmptyPassword
	}

	cipher := engine.NewCipher(opts.Password)
	defer cipher.Close()

	limit := opts.Concurrency
	if limit < 1 {
		limit = configs.DefaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	done := make([]bool, len(plan))
	for i := range plan {
		i := i // per-iteration copy (Go <1.22 loop variable semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			keys, err := processFile(fsys, cipher, plan[i], opts)
			if err != nil {
				return err
			}

			plan[i].Keys = keys
			done[i] = true
			opts.Logger.Debugf("%sed %s -> %s (%d keys)", opts.Mode, plan[i].Input, plan[i].Output, len(keys))
			return nil
		})
	}

	err := g.Wait()

	for i, p := range plan {
		if done[i] {
			result.Files = append(result.Files, p)
		}
	}

	recordAudit(entry, result, err, opts)

	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return result, kerrors.ErrCancelled
		}
		return result, err
	}

	return result, nil
}

func processFile(fsys afero.Fs, cipher *engine.Cipher, file FileResult, opts Options) ([]string, error) {
	data, err := afero.ReadFile(fsys, file.Input)
	if err != nil {
		return nil, kerrors.NewFileError(file.Input, kerrors.StageRead, err)
	}
	content := string(data)

	if opts.Mode == engine.ModeDecrypt && !opts.SkipValidation {
		if err := engine.ValidateLooksEncrypted(content); err != nil {
			return nil, kerrors.NewFileError(file.Input, kerrors.StageValidate, err)
		}
	}

	transformed, err := cipher.ProcessFile(content, opts.Mode)
	if err != nil {
		return nil, kerrors.NewFileError(file.Input, kerrors.StageTransform, err)
	}

	if err := utils.WriteFileAtomic(fsys, file.Output, []byte(transformed.Content), outputMode(opts)); err != nil {
		return nil, kerrors.NewFileError(file.Output, kerrors.StageWrite, err)
	}

	return transformed.Keys, nil
}

func outputMode(opts Options) os.FileMode {
	if opts.Mode == engine.ModeEncrypt {
		if opts.EncryptedMode != 0 {
			return opts.EncryptedMode
		}
		return 0600
	}
	if opts.PlainMode != 0 {
		return opts.PlainMode
	}
	return 0644
}

func recordAudit(entry audit.Entry, result *Result, err error, opts Options) {
	if opts.AuditPath == "" {
		return
	}

	for _, f := range result.Files {
		entry.Files = append(entry.Files, f.Input)
		entry.Outputs = append(entry.Outputs, f.Output)
	}
	entry.KeysCount = result.KeysCount()
	if err != nil {
		entry.Error = err.Error()
	}

	if logErr := audit.Log(opts.AuditPath, entry); logErr != nil {
		opts.Logger.WarnfAlways("failed to write audit log %s: %v", opts.AuditPath, logErr)
	}
}
