package setenv

import (
	"strings"

	"github.com/PolarWolf314/envc/internal/utils"
)

// PreviewLength is how many characters of a value Preview shows.
const PreviewLength = 20

// Variable is one assignment to persist.
type Variable struct {
	Key   string
	Value string
}

// Setter persists variables for future sessions.
type Setter interface {
	Set(key, value string) error
	// Target describes where variables go, for confirmation prompts.
	Target() string
	// ApplyHint tells the user how to load the new variables.
	ApplyHint() string
}

// Outcome is the result of setting one variable.
type Outcome struct {
	Key string
	Err error
}

// ParseAssignments extracts KEY=VALUE pairs from .env content. Blank lines,
// comments and lines without '=' are skipped. Key and value are trimmed,
// one pair of matching surrounding quotes is removed from the value and
// assignments with an empty key are dropped.
func ParseAssignments(content string) []Variable {
	var vars []Variable

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		vars = append(vars, Variable{Key: key, Value: unquote(strings.TrimSpace(value))})
	}

	return vars
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if (first == '"' || first == '\'') && first == last {
		return value[1 : len(value)-1]
	}
	return value
}

// Preview shortens a value for display before confirmation.
func Preview(value string) string {
	return utils.Truncate(value, PreviewLength)
}

// Apply sets every variable and reports each outcome in order. A failure
// does not stop the remaining variables.
func Apply(setter Setter, vars []Variable) []Outcome {
	outcomes := make([]Outcome, len(vars))
	for i, v := range vars {
		outcomes[i] = Outcome{Key: v.Key, Err: setter.Set(v.Key, v.Value)}
	}
	return outcomes
}

// Failed returns the outcomes that have an error.
func Failed(outcomes []Outcome) []Outcome {
	var failed []Outcome
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}
