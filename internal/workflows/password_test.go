package workflows

import (
	"errors"
	"testing"

	"github.com/PolarWolf314/envc/internal/engine"
	kerrors "github.com/PolarWolf314/envc/internal/errors"
)

func envLookup(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func promptReturning(answers ...string) (func(string) ([]byte, error), *int) {
	calls := 0
	return func(string) ([]byte, error) {
		if calls >= len(answers) {
			return nil, errors.New("unexpected prompt")
		}
		answer := answers[calls]
		calls++
		return []byte(answer), nil
	}, &calls
}

func TestResolvePassword_Precedence(t *testing.T) {
	prompt, _ := promptReturning("from-prompt")
	env := envLookup(map[string]string{"ENVC_PASSWORD": "from-env"})

	tests := []struct {
		name string
		src  PasswordSources
		want string
	}{
		{
			name: "flag wins",
			src:  PasswordSources{Flag: "from-flag", FlagSet: true, EnvVar: "ENVC_PASSWORD", LookupEnv: env, Prompt: prompt},
			want: "from-flag",
		},
		{
			name: "stdin before env",
			src: PasswordSources{
				Stdin:     func() ([]byte, error) { return []byte("from-stdin"), nil },
				EnvVar:    "ENVC_PASSWORD",
				LookupEnv: env,
			},
			want: "from-stdin",
		},
		{
			name: "env before prompt",
			src:  PasswordSources{EnvVar: "ENVC_PASSWORD", LookupEnv: env, Prompt: prompt},
			want: "from-env",
		},
		{
			name: "custom env var",
			src:  PasswordSources{EnvVar: "APP_KEY", LookupEnv: envLookup(map[string]string{"APP_KEY": "custom"})},
			want: "custom",
		},
		{
			name: "empty env falls through to prompt",
			src:  PasswordSources{EnvVar: "ENVC_PASSWORD", LookupEnv: envLookup(map[string]string{"ENVC_PASSWORD": ""}), Prompt: prompt},
			want: "from-prompt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePassword(tt.src)
			if err != nil {
				t.Fatalf("ResolvePassword failed: %v", err)
			}
			if !got.Equal(engine.NewSecret(tt.want)) {
				t.Errorf("Expected password from %q source", tt.want)
			}
		})
	}
}

func TestResolvePassword_Errors(t *testing.T) {
	noEnv := envLookup(nil)

	tests := []struct {
		name    string
		src     func() PasswordSources
		wantErr error
	}{
		{
			name:    "empty flag",
			src:     func() PasswordSources { return PasswordSources{FlagSet: true, LookupEnv: noEnv} },
			wantErr: kerrors.ErrEmptyPassword,
		},
		{
			name:    "no source",
			src:     func() PasswordSources { return PasswordSources{EnvVar: "ENVC_PASSWORD", LookupEnv: noEnv} },
			wantErr: kerrors.ErrNoInput,
		},
		{
			name: "empty prompt",
			src: func() PasswordSources {
				prompt, _ := promptReturning("")
				return PasswordSources{LookupEnv: noEnv, Prompt: prompt}
			},
			wantErr: kerrors.ErrEmptyPassword,
		},
		{
			name: "confirmation mismatch",
			src: func() PasswordSources {
				prompt, _ := promptReturning("first", "second")
				return PasswordSources{LookupEnv: noEnv, Prompt: prompt, Confirm: true}
			},
			wantErr: kerrors.ErrPasswordMismatch,
		},
		{
			name: "empty stdin",
			src: func() PasswordSources {
				return PasswordSources{LookupEnv: noEnv, Stdin: func() ([]byte, error) { return nil, nil }}
			},
			wantErr: kerrors.ErrEmptyPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolvePassword(tt.src())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestResolvePassword_ConfirmPrompt(t *testing.T) {
	prompt, calls := promptReturning("same", "same")

	got, err := ResolvePassword(PasswordSources{LookupEnv: envLookup(nil), Prompt: prompt, Confirm: true})
	if err != nil {
		t.Fatalf("ResolvePassword failed: %v", err)
	}

	if *calls != 2 {
		t.Errorf("Expected 2 prompts, got %d", *calls)
	}
	if !got.Equal(engine.NewSecret("same")) {
		t.Error("Unexpected password")
	}
}

func TestResolvePassword_NoConfirmPromptsOnce(t *testing.T) {
	prompt, calls := promptReturning("only")

	if _, err := ResolvePassword(PasswordSources{LookupEnv: envLookup(nil), Prompt: prompt}); err != nil {
		t.Fatalf("ResolvePassword failed: %v", err)
	}
	if *calls != 1 {
		t.Errorf("Expected 1 prompt, got %d", *calls)
	}
}
