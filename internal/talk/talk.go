// Package talk defines the validated talk record and the normalization rules
// applied to spreadsheet cells before validation.
package talk

import (
	"strings"
)

// Talk is one conference engagement. Values are built once by the validator
// and never mutated afterwards.
type Talk struct {
	ID          string
	Title       string
	Meeting     string
	MeetingLink string
	Location    string
	StartDate   Date
	EndDate     Date
	TalkDate    Date
	StartTime   string
	TimeZone    string
	Duration    string
	Session     string
	City        string
	Country     string
	Abstract    string
	Slides      string
	Recording   string
	Status      Status
	Tags        Tags
	Types       []Type
	Visibility  Visibility
}

// IsPublic reports whether the talk may appear in generated output.
func (t Talk) IsPublic() bool {
	return t.Visibility == VisibilityPublic
}

// DisplayTitle falls back to the id when the title is empty.
func (t Talk) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return t.ID
}

// Place joins city and country, skipping empty parts.
func (t Talk) Place() string {
	return joinNonEmpty(", ", t.City, t.Country)
}

// When returns the start time with its zone, or "" when no time is set.
func (t Talk) When() string {
	if t.StartTime == "" {
		return ""
	}
	return joinNonEmpty(" ", t.StartTime, t.TimeZone)
}

// TimeKey orders talks within a day; talks without a time sort last.
func (t Talk) TimeKey() string {
	if t.StartTime == "" {
		return "99:99"
	}
	return t.StartTime
}

// HasType reports whether the talk carries the given type.
func (t Talk) HasType(want Type) bool {
	for _, typ := range t.Types {
		if typ == want {
			return true
		}
	}
	return false
}

// TypeStrings returns the canonical spellings of the talk's types.
func (t Talk) TypeStrings() []string {
	out := make([]string, 0, len(t.Types))
	for _, typ := range t.Types {
		out = append(out, typ.String())
	}
	return out
}

// TypeLabel joins the display labels of every type.
func (t Talk) TypeLabel() string {
	labels := make([]string, 0, len(t.Types))
	for _, typ := range t.Types {
		labels = append(labels, typ.Label())
	}
	return strings.Join(labels, ", ")
}

// Less orders talks by date, time, meeting then title.
func Less(a, b Talk) bool {
	if c := a.TalkDate.Compare(b.TalkDate); c != 0 {
		return c < 0
	}
	if a.TimeKey() != b.TimeKey() {
		return a.TimeKey() < b.TimeKey()
	}
	if a.Meeting != b.Meeting {
		return a.Meeting < b.Meeting
	}
	if a.Title != b.Title {
		return a.Title < b.Title
	}
	return a.ID < b.ID
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
