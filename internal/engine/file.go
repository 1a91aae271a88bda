package engine

import (
	"fmt"
	"strings"
)

// Result is the outcome of processing a whole file.
type Result struct {
	// Content is the transformed text, joined with '\n' and without a
	// trailing newline.
	Content string

	// Keys lists the trimmed keys of every assignment line in file order.
	// Repeated keys appear once per occurrence.
	Keys []string
}

// SplitLines splits content on '\n', drops a trailing '\r' from each line
// and does not report an empty line after a final newline.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}

	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}

// ProcessFile transforms every assignment value in content. It fails on the
// first line that cannot be transformed and returns no partial output.
func (c *Cipher) ProcessFile(content string, mode Mode) (Result, error) {
	lines := SplitLines(content)
	out := make([]string, 0, len(lines))
	var keys []string

	for i, line := range lines {
		processed, err := c.ProcessLine(line, mode)
		if err != nil {
			parsed := ParseLine(line)
			return Result{}, fmt.Errorf("line %d (%s): %w", i+1, strings.TrimSpace(parsed.Key), err)
		}

		if parsed := ParseLine(line); parsed.Kind == LineAssignment {
			keys = append(keys, strings.TrimSpace(parsed.Key))
		}

		out = append(out, processed)
	}

	return Result{Content: strings.Join(out, "\n"), Keys: keys}, nil
}

// ProcessFile transforms content with a throwaway Cipher.
func ProcessFile(content string, password Secret, mode Mode) (Result, error) {
	c := NewCipher(password)
	defer c.Close()
	return c.ProcessFile(content, mode)
}
