package engine

import (
	"encoding/base64"
	"strings"

	kerrors "github.com/PolarWolf314/envc/internal/errors"
)

const minEncodedLength = 8

// IsLikelyEncrypted reports whether value looks like ciphertext: non-empty,
// valid standard base64 and at least eight characters long.
func IsLikelyEncrypted(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}

	if _, err := base64.StdEncoding.DecodeString(trimmed); err != nil {
		return false
	}

	return len(trimmed) >= minEncodedLength
}

// ValidateLooksEncrypted checks that content has at least one assignment and
// that at least one assignment value looks encrypted.
func ValidateLooksEncrypted(content string) error {
	var variables, encrypted int

	for _, line := range SplitLines(content) {
		parsed := ParseLine(line)
		if parsed.Kind != LineAssignment {
			continue
		}

		variables++
		if IsLikelyEncrypted(parsed.Value) {
			encrypted++
		}
	}

	if variables == 0 {
		return kerrors.ErrNoVariables
	}
	if encrypted == 0 {
		return kerrors.ErrAppearsUnencrypted
	}

	return nil
}
