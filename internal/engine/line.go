package engine

import (
	"fmt"
	"strings"
)

// Mode selects the cipher direction.
type Mode int

const (
	ModeEncrypt Mode = iota
	ModeDecrypt
)

func (m Mode) String() string {
	switch m {
	case ModeEncrypt:
		return "encrypt"
	case ModeDecrypt:
		return "decrypt"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// LineKind classifies a single line of a .env file.
type LineKind int

const (
	LineBlank LineKind = iota
	LineComment
	LineAssignment
	LineUnparsed
)

// Line is one parsed line. Key and Value are only set for assignments and
// are the raw spans either side of the first '='.
type Line struct {
	Raw   string
	Kind  LineKind
	Key   string
	Value string
}

// ParseLine classifies raw without modifying it.
func ParseLine(raw string) Line {
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "":
		return Line{Raw: raw, Kind: LineBlank}
	case strings.HasPrefix(trimmed, "#"):
		return Line{Raw: raw, Kind: LineComment}
	}

	key, value, found := strings.Cut(raw, "=")
	if !found {
		return Line{Raw: raw, Kind: LineUnparsed}
	}

	return Line{Raw: raw, Kind: LineAssignment, Key: key, Value: value}
}

// ProcessLine transforms the value of an assignment line. Every other line
// is returned unchanged.
func (c *Cipher) ProcessLine(line string, mode Mode) (string, error) {
	parsed := ParseLine(line)
	if parsed.Kind != LineAssignment {
		return line, nil
	}

	var (
		value string
		err   error
	)
	switch mode {
	case ModeEncrypt:
		value, err = c.Encrypt(parsed.Value)
	case ModeDecrypt:
		value, err = c.Decrypt(parsed.Value)
	default:
		return "", fmt.Errorf("unknown mode %v", mode)
	}
	if err != nil {
		return "", err
	}

	return parsed.Key + "=" + value, nil
}

// ProcessLine transforms a single line with a throwaway Cipher.
func ProcessLine(line string, password Secret, mode Mode) (string, error) {
	c := NewCipher(password)
	defer c.Close()
	return c.ProcessLine(line, mode)
}
