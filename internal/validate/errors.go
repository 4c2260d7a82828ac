package validate

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrValidation matches any accumulated validation failure via errors.Is.
var ErrValidation = errors.New("talk validation failed")

// ValidationError is one rejected field on one CSV row.
type ValidationError struct {
	Line    int
	ID      string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	id := e.ID
	if id == "" {
		id = "(no id)"
	}
	return fmt.Sprintf("line %d: %s: %s: %s", e.Line, id, e.Field, e.Message)
}

// Unwrap ties a single ValidationError to ErrValidation.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// Errors is every validation failure of a run.
type Errors []*ValidationError

// Error prints one failure per line.
func (e Errors) Error() string {
	lines := make([]string, len(e))
	for i, err := range e {
		lines[i] = err.Error()
	}
	return strings.Join(lines, "\n")
}

// Is reports ErrValidation for non-empty error lists.
func (e Errors) Is(target error) bool {
	return target == ErrValidation && len(e) > 0
}

// Err returns nil when there are no failures, so callers can write
// `if err := res.Errors.Err(); err != nil`.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// ForID returns the failures recorded for one talk id.
func (e Errors) ForID(id string) Errors {
	var out Errors
	for _, err := range e {
		if err.ID == id {
			out = append(out, err)
		}
	}
	return out
}

func (e Errors) sort() {
	sort.SliceStable(e, func(i, j int) bool {
		if e[i].Line != e[j].Line {
			return e[i].Line < e[j].Line
		}
		return e[i].Field < e[j].Field
	})
}
