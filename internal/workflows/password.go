package workflows

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/envc/internal/engine"
	kerrors "github.com/PolarWolf314/envc/internal/errors"
)

// PasswordSources lists where a password may come from, in order of
// precedence: flag, stdin, environment, prompt.
type PasswordSources struct {
	// Flag is the value of --password. FlagSet distinguishes an empty flag
	// from an absent one.
	Flag    string
	FlagSet bool

	// Stdin reads a piped password for --password-stdin. Nil when not requested.
	Stdin func() ([]byte, error)

	// EnvVar names the environment variable to check.
	EnvVar string

	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)

	// Prompt reads a password interactively. Nil when no terminal is available.
	Prompt func(prompt string) ([]byte, error)

	// Confirm asks for the password twice when prompting.
	Confirm bool
}

// ResolvePassword returns the password from the first available source.
// An empty environment variable counts as unset.
//
// Returns ErrEmptyPassword if the chosen source yields an empty password.
// Returns ErrPasswordMismatch if the confirmation prompt does not match.
// Returns ErrNoInput if no source is available.
func ResolvePassword(src PasswordSources) (engine.Secret, error) {
	if src.FlagSet {
		if src.Flag == "" {
			return engine.Secret{}, kerrors.ErrEmptyPassword
		}
		return engine.NewSecret(src.Flag), nil
	}

	if src.Stdin != nil {
		data, err := src.Stdin()
		if err != nil {
			return engine.Secret{}, fmt.Errorf("reading password from stdin: %w", err)
		}
		return secretFromInput(data)
	}

	lookup := src.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if src.EnvVar != "" {
		if value, ok := lookup(src.EnvVar); ok && value != "" {
			return engine.NewSecret(value), nil
		}
	}

	if src.Prompt == nil {
		return engine.Secret{}, fmt.Errorf("%w: pass --password, set $%s, or run in a terminal", kerrors.ErrNoInput, src.EnvVar)
	}

	first, err := src.Prompt("Enter password: ")
	if err != nil {
		return engine.Secret{}, err
	}
	password, err := secretFromInput(first)
	if err != nil {
		return engine.Secret{}, err
	}

	if !src.Confirm {
		return password, nil
	}

	second, err := src.Prompt("Confirm password: ")
	if err != nil {
		password.Wipe()
		return engine.Secret{}, err
	}
	confirmation := engine.SecretFromBytes(second)
	defer confirmation.Wipe()

	if !password.Equal(confirmation) {
		password.Wipe()
		return engine.Secret{}, kerrors.ErrPasswordMismatch
	}

	return password, nil
}

// secretFromInput takes ownership of data.
func secretFromInput(data []byte) (engine.Secret, error) {
	if len(data) == 0 {
		return engine.Secret{}, kerrors.ErrEmptyPassword
	}
	return engine.SecretFromBytes(data), nil
}
