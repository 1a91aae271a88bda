package workflows

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/envc/internal/audit"
	"github.com/PolarWolf314/envc/internal/engine"
	kerrors "github.com/PolarWolf314/envc/internal/errors"
	"github.com/spf13/afero"
)

const (
	testPassword = "correct horse battery staple"
	envContent   = "# database\nDB_HOST=localhost\n\nDB_PASS=s3cr3t\n"
	localContent = "API_KEY=abc123\nDEBUG=true\n"
)

func newTestFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fsys := afero.NewMemMapFs()
	for path, content := range files {
		if err := afero.WriteFile(fsys, path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
	return fsys
}

func readFile(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	fsys := newTestFs(t, map[string]string{
		"/app/.env":       envContent,
		"/app/.env.local": localContent,
	})
	ctx := context.Background()

	encResult, err := Encrypt(ctx, Options{
		Files:    []string{"/app/.env", "/app/.env.local"},
		Password: engine.NewSecret(testPassword),
		Fs:       fsys,
	})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if len(encResult.Files) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(encResult.Files))
	}
	if encResult.Files[0].Output != "/app/.env.enc" || encResult.Files[1].Output != "/app/.env.local.enc" {
		t.Errorf("Unexpected outputs: %+v", encResult.Files)
	}
	if got := strings.Join(encResult.Files[0].Keys, ","); got != "DB_HOST,DB_PASS" {
		t.Errorf("Expected keys DB_HOST,DB_PASS, got %s", got)
	}
	if encResult.KeysCount() != 4 {
		t.Errorf("Expected 4 keys in total, got %d", encResult.KeysCount())
	}

	encrypted := readFile(t, fsys, "/app/.env.enc")
	if strings.Contains(encrypted, "s3cr3t") || strings.Contains(encrypted, "localhost") {
		t.Errorf("Encrypted file contains plaintext values: %q", encrypted)
	}
	if !strings.HasPrefix(encrypted, "# database\nDB_HOST=") {
		t.Errorf("Encrypted file lost its structure: %q", encrypted)
	}

	info, err := fsys.Stat("/app/.env.enc")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected encrypted file mode 0600, got %v", info.Mode().Perm())
	}

	if err := fsys.Remove("/app/.env"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	decResult, err := Decrypt(ctx, Options{
		Files:     []string{"/app/.env.enc"},
		Password:  engine.NewSecret(testPassword),
		Fs:        fsys,
		PlainMode: 0640,
	})
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if decResult.Files[0].Output != "/app/.env" {
		t.Errorf("Expected output /app/.env, got %s", decResult.Files[0].Output)
	}

	want := strings.TrimSuffix(envContent, "\n")
	if got := readFile(t, fsys, "/app/.env"); got != want {
		t.Errorf("Round trip mismatch:\nwant %q\ngot  %q", want, got)
	}

	info, err = fsys.Stat("/app/.env")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0640 {
		t.Errorf("Expected plain file mode 0640, got %v", info.Mode().Perm())
	}
}

func TestProcess_ExistingOutputWithoutOverwrite(t *testing.T) {
	fsys := newTestFs(t, map[string]string{
		"/app/.env":           envContent,
		"/app/.env.local":     localContent,
		"/app/.env.local.enc": "OLD=1",
	})

	_, err := Encrypt(context.Background(), Options{
		Files:    []string{"/app/.env", "/app/.env.local"},
		Password: engine.NewSecret(testPassword),
		Fs:       fsys,
	})

	if !errors.Is(err, kerrors.ErrOutputExists) {
		t.Fatalf("Expected ErrOutputExists, got %v", err)
	}

	var fileErr *kerrors.FileError
	if !errors.As(err, &fileErr) || fileErr.Path != "/app/.env.local.enc" {
		t.Errorf("Expected FileError for /app/.env.local.enc, got %v", err)
	}

	if exists, _ := afero.Exists(fsys, "/app/.env.enc"); exists {
		t.Error("Expected no output to be written when any output exists")
	}
	if got := readFile(t, fsys, "/app/.env.local.enc"); got != "OLD=1" {
		t.Errorf("Existing output was modified: %q", got)
	}
}

func TestDecrypt_DuplicateOutputs(t *testing.T) {
	fsys := newTestFs(t, map[string]string{
		"/p/.env.enc":       "A=x",
		"/p/.env.encrypted": "B=y",
	})

	for _, dryRun := range []bool{false, true} {
		_, err := Decrypt(context.Background(), Options{
			Files:          []string{"/p/.env.enc", "/p/.env.encrypted"},
			Password:       engine.NewSecret(testPassword),
			Fs:             fsys,
			DryRun:         dryRun,
			SkipValidation: true,
		})

		if !errors.Is(err, kerrors.ErrDuplicateOutput) || !errors.Is(err, kerrors.ErrOutputExists) {
			t.Fatalf("dry run %v: expected ErrDuplicateOutput, got %v", dryRun, err)
		}
		if !strings.Contains(err.Error(), "/p/.env.enc") || !strings.Contains(err.Error(), "/p/.env.encrypted") {
			t.Errorf("expected both inputs in the error, got %v", err)
		}

		var fileErr *kerrors.FileError
		if !errors.As(err, &fileErr) || fileErr.Path != "/p/.env" || fileErr.Stage != kerrors.StageWrite {
			t.Errorf("expected write FileError for /p/.env, got %v", err)
		}
	}

	if exists, _ := afero.Exists(fsys, "/p/.env"); exists {
		t.Error("expected no output to be written")
	}
}

func TestProcess_Overwrite(t *testing.T) {
	fsys := newTestFs(t, map[string]string{
		"/app/.env":     envContent,
		"/app/.env.enc": "OLD=1",
	})

	result, err := Encrypt(context.Background(), Options{
		Files:     []string{"/app/.env"},
		Password:  engine.NewSecret(testPassword),
		Fs:        fsys,
		Overwrite: true,
	})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if !result.Files[0].OutputExisted {
		t.Error("Expected OutputExisted to be reported")
	}
	if got := readFile(t, fsys, "/app/.env.enc"); strings.Contains(got, "OLD=1") {
		t.Errorf("Output was not overwritten: %q", got)
	}
}

func TestProcess_DryRun(t *testing.T) {
	fsys := newTestFs(t, map[string]string{
		"/app/.env":           envContent,
		"/app/.env.local":     localContent,
		"/app/.env.local.enc": "OLD=1",
	})

	result, err := Encrypt(context.Background(), Options{
		Files:  []string{"/app/.env", "/app/.env.local"},
		Fs:     fsys,
		DryRun: true,
	})
	if err != nil {
		t.Fatalf("Dry run failed: %v", err)
	}

	if !result.DryRun || len(result.Files) != 2 {
		t.Fatalf("Unexpected dry run result: %+v", result)
	}
	if result.Files[0].OutputExisted || !result.Files[1].OutputExisted {
		t.Errorf("Unexpected OutputExisted flags: %+v", result.Files)
	}
	if exists, _ := afero.Exists(fsys, "/app/.env.enc"); exists {
		t.Error("Dry run must not write outputs")
	}
}

func TestProcess_ExplicitOutput(t *testing.T) {
	fsys := newTestFs(t, map[string]string{"/app/.env": envContent})

	result, err := Encrypt(context.Background(), Options{
		Files:    []string{"/app/.env"},
		Output:   "/app/secrets.env.enc",
		Password: engine.NewSecret(testPassword),
		Fs:       fsys,
	})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if result.Files[0].Output != "/app/secrets.env.enc" {
		t.Errorf("Expected explicit output, got %s", result.Files[0].Output)
	}
	if exists, _ := afero.Exists(fsys, "/app/secrets.env.enc"); !exists {
		t.Error("Explicit output was not written")
	}
}

func TestProcess_InvalidOptions(t *testing.T) {
	fsys := newTestFs(t, map[string]string{
		"/app/.env":       envContent,
		"/app/.env.local": localContent,
	})

	tests := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{
			name:    "no files",
			opts:    Options{Fs: fsys, Password: engine.NewSecret(testPassword)},
			wantErr: kerrors.ErrNoInput,
		},
		{
			name:    "empty password",
			opts:    Options{Fs: fsys, Files: []string{"/app/.env"}},
			wantErr: kerrors.ErrEmptyPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encrypt(context.Background(), tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("output with several files", func(t *testing.T) {
		_, err := Encrypt(context.Background(), Options{
			Fs:       fsys,
			Files:    []string{"/app/.env", "/app/.env.local"},
			Output:   "/app/out.enc",
			Password: engine.NewSecret(testPassword),
		})
		if err == nil {
			t.Fatal("Expected error for output with several files")
		}
	})
}

func TestDecrypt_RejectsPlainFile(t *testing.T) {
	fsys := newTestFs(t, map[string]string{"/app/.env.enc": envContent})

	_, err := Decrypt(context.Background(), Options{
		Files:    []string{"/app/.env.enc"},
		Password: engine.NewSecret(testPassword),
		Fs:       fsys,
	})

	if !errors.Is(err, kerrors.ErrAppearsUnencrypted) {
		t.Fatalf("Expected ErrAppearsUnencrypted, got %v", err)
	}

	var fileErr *kerrors.FileError
	if !errors.As(err, &fileErr) || fileErr.Stage != kerrors.StageValidate {
		t.Errorf("Expected validate stage FileError, got %v", err)
	}
	if exists, _ := afero.Exists(fsys, "/app/.env"); exists {
		t.Error("No output should be written for a rejected file")
	}
}

func TestDecrypt_WrongPasswordLeavesNoOutput(t *testing.T) {
	fsys := newTestFs(t, map[string]string{"/app/.env": envContent})
	ctx := context.Background()

	if _, err := Encrypt(ctx, Options{
		Files:    []string{"/app/.env"},
		Password: engine.NewSecret(testPassword),
		Fs:       fsys,
	}); err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if err := fsys.Remove("/app/.env"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	result, err := Decrypt(ctx, Options{
		Files:    []string{"/app/.env.enc"},
		Password: engine.NewSecret("not-the-password"),
		Fs:       fsys,
	})

	if !errors.Is(err, kerrors.ErrDecryptionFailed) {
		t.Fatalf("Expected ErrDecryptionFailed, got %v", err)
	}
	if len(result.Files) != 0 {
		t.Errorf("Expected no completed files, got %+v", result.Files)
	}

	var fileErr *kerrors.FileError
	if !errors.As(err, &fileErr) || fileErr.Stage != kerrors.StageTransform || fileErr.Path != "/app/.env.enc" {
		t.Errorf("Expected transform stage FileError for /app/.env.enc, got %v", err)
	}
	if strings.Contains(err.Error(), "not-the-password") {
		t.Errorf("Error message leaks the password: %v", err)
	}

	if exists, _ := afero.Exists(fsys, "/app/.env"); exists {
		t.Error("Failed decrypt must not leave an output file")
	}
}

func TestProcess_MissingInput(t *testing.T) {
	fsys := newTestFs(t, nil)

	_, err := Encrypt(context.Background(), Options{
		Files:    []string{"/app/.env"},
		Password: engine.NewSecret(testPassword),
		Fs:       fsys,
	})

	if !errors.Is(err, kerrors.ErrIO) {
		t.Fatalf("Expected ErrIO, got %v", err)
	}

	var fileErr *kerrors.FileError
	if !errors.As(err, &fileErr) || fileErr.Stage != kerrors.StageRead {
		t.Errorf("Expected read stage FileError, got %v", err)
	}
}

func TestProcess_CancelledContext(t *testing.T) {
	fsys := newTestFs(t, map[string]string{"/app/.env": envContent})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Encrypt(ctx, Options{
		Files:    []string{"/app/.env"},
		Password: engine.NewSecret(testPassword),
		Fs:       fsys,
	})

	if !errors.Is(err, kerrors.ErrCancelled) {
		t.Fatalf("Expected ErrCancelled, got %v", err)
	}
	if exists, _ := afero.Exists(fsys, "/app/.env.enc"); exists {
		t.Error("Cancelled batch must not write outputs")
	}
}

func TestProcess_ManyFilesKeepInputOrder(t *testing.T) {
	files := map[string]string{}
	var inputs []string
	for _, name := range []string{".env.a", ".env.b", ".env.c", ".env.d", ".env.e", ".env.f"} {
		path := "/app/" + name
		files[path] = "NAME=" + name + "\n"
		inputs = append(inputs, path)
	}
	fsys := newTestFs(t, files)

	result, err := Encrypt(context.Background(), Options{
		Files:       inputs,
		Password:    engine.NewSecret(testPassword),
		Fs:          fsys,
		Concurrency: 3,
	})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	for i, f := range result.Files {
		if f.Input != inputs[i] {
			t.Errorf("Result %d: expected input %s, got %s", i, inputs[i], f.Input)
		}
	}
}

func TestProcess_WritesAuditEntry(t *testing.T) {
	fsys := newTestFs(t, map[string]string{"/app/.env": envContent})
	auditPath := filepath.Join(t.TempDir(), "audit.jsonl")

	result, err := Encrypt(context.Background(), Options{
		Files:     []string{"/app/.env"},
		Password:  engine.NewSecret(testPassword),
		Fs:        fsys,
		AuditPath: auditPath,
	})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	entries, err := audit.ReadEntries(auditPath)
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 audit entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.Operation != "encrypt" || entry.RunID != result.RunID || entry.KeysCount != 2 {
		t.Errorf("Unexpected audit entry: %+v", entry)
	}
	if len(entry.Files) != 1 || entry.Files[0] != "/app/.env" {
		t.Errorf("Unexpected audit files: %v", entry.Files)
	}

	raw, err := os.ReadFile(auditPath)
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}
	for _, secret := range []string{"s3cr3t", "localhost", testPassword} {
		if strings.Contains(string(raw), secret) {
			t.Errorf("Audit log contains %q", secret)
		}
	}
}
