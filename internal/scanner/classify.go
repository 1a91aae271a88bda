package scanner

import (
	"strings"

	"github.com/PolarWolf314/envc/internal/engine"
)

const (
	envMarker       = ".env"
	encryptedSuffix = ".enc"
)

// EncryptedSuffixes are the filename endings that mark an encrypted file.
var EncryptedSuffixes = []string{".enc", ".encrypted"}

// Category is the kind of .env file a filename denotes.
type Category int

const (
	Neither Category = iota
	Plain
	Encrypted
)

func (c Category) String() string {
	switch c {
	case Plain:
		return "plain"
	case Encrypted:
		return "encrypted"
	default:
		return "neither"
	}
}

// MarshalText renders the category by name in JSON and YAML output.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// IsPlainEnvFile reports whether name starts with ".env" and has no
// encrypted suffix.
func IsPlainEnvFile(name string) bool {
	return strings.HasPrefix(name, envMarker) && !hasEncryptedSuffix(name)
}

// IsEncryptedEnvFile reports whether name contains ".env" and ends with an
// encrypted suffix.
func IsEncryptedEnvFile(name string) bool {
	return strings.Contains(name, envMarker) && hasEncryptedSuffix(name)
}

// Categorize returns the category of name regardless of mode.
func Categorize(name string) Category {
	switch {
	case IsPlainEnvFile(name):
		return Plain
	case IsEncryptedEnvFile(name):
		return Encrypted
	default:
		return Neither
	}
}

// Classify returns Plain or Encrypted when name is a valid input for mode,
// and Neither otherwise.
func Classify(name string, mode engine.Mode) Category {
	switch {
	case mode == engine.ModeEncrypt && IsPlainEnvFile(name):
		return Plain
	case mode == engine.ModeDecrypt && IsEncryptedEnvFile(name):
		return Encrypted
	default:
		return Neither
	}
}

// DeriveOutputName returns the counterpart path for mode. Encrypt appends
// ".enc"; decrypt strips ".enc", else ".encrypted", else returns path
// unchanged.
func DeriveOutputName(path string, mode engine.Mode) string {
	if mode == engine.ModeEncrypt {
		return path + encryptedSuffix
	}

	for _, suffix := range EncryptedSuffixes {
		if strings.HasSuffix(path, suffix) {
			return strings.TrimSuffix(path, suffix)
		}
	}

	return path
}

func hasEncryptedSuffix(name string) bool {
	for _, suffix := range EncryptedSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
