package engine

import "crypto/subtle"

const redacted = "[REDACTED]"

// Secret holds a password. It formats as [REDACTED] so it cannot end up in
// logs or error messages by accident.
type Secret struct {
	value []byte
}

// NewSecret copies s into a Secret.
func NewSecret(s string) Secret {
	return Secret{value: []byte(s)}
}

// SecretFromBytes takes ownership of b; Wipe zeroes it.
func SecretFromBytes(b []byte) Secret {
	return Secret{value: b}
}

// IsEmpty reports whether the secret has no content.
func (s Secret) IsEmpty() bool {
	return len(s.value) == 0
}

// Equal compares two secrets in constant time.
func (s Secret) Equal(other Secret) bool {
	return subtle.ConstantTimeCompare(s.value, other.value) == 1
}

// Wipe zeroes the secret's bytes.
func (s Secret) Wipe() {
	zeroize(s.value)
}

func (s Secret) String() string {
	return redacted
}

func (s Secret) GoString() string {
	return redacted
}

func (s Secret) bytes() []byte {
	return s.value
}

func zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
