package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter renders one kind of CLI output. Without color it falls back to
// prefix and suffix decorations.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

func plain(attrs ...color.Attribute) Formatter {
	return Formatter{color: color.New(attrs...)}
}

func decorated(prefix, suffix string, attrs ...color.Attribute) Formatter {
	return Formatter{color: color.New(attrs...), prefix: prefix, suffix: suffix}
}

func (f Formatter) render(text string) string {
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// Sprint renders the operands like fmt.Sprint.
func (f Formatter) Sprint(a ...interface{}) string {
	return f.render(fmt.Sprint(a...))
}

// Sprintf renders like fmt.Sprintf.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	return f.render(fmt.Sprintf(format, a...))
}

// EnsureNewline appends '\n' to s unless it already ends with one.
func EnsureNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		return s
	}
	return s + "\n"
}

// noColor honours NO_COLOR and fatih/color's own terminal detection.
func noColor() bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return true
	}
	return color.NoColor
}

// Names the user types or reads back: commands, paths, flags, variable names
// and file counts.
var (
	Code      = decorated("`", "`", color.FgYellow)
	Path      = plain(color.FgYellow)
	Flag      = plain(color.FgYellow)
	Key       = plain(color.FgYellow, color.Bold)
	Highlight = decorated("'", "'", color.FgCyan)
)

// Outcome and hint styles. Muted is for the (n vars) style annotations
// next to file names.
var (
	Success = plain(color.FgGreen)
	Error   = plain(color.FgRed)
	Warning = plain(color.FgYellow)
	Info    = plain(color.FgCyan)
	Muted   = decorated("(", ")", color.FgHiBlack)
)

// Symbols printed before per-file and per-variable results.
const (
	SymbolSuccess = "✓"
	SymbolFailure = "✗"
	SymbolArrow   = "→"
	SymbolBullet  = "•"
)
