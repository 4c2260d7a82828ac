package talk

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for enumeration parsing.
var (
	ErrUnknownStatus     = errors.New("unknown status")
	ErrUnknownVisibility = errors.New("unknown visibility")
	ErrUnknownType       = errors.New("unknown talk type")
)

// Status is the lifecycle state of an engagement.
type Status int

const (
	StatusUnspecified Status = iota
	StatusCompleted
	StatusScheduled
	StatusCancelled
	StatusTentative
)

// Statuses lists every specified status in display order.
var Statuses = []Status{StatusScheduled, StatusTentative, StatusCompleted, StatusCancelled}

// ParseStatus maps a CSV cell to a Status. Matching is case-insensitive and
// the American spelling "canceled" is accepted. An empty cell is unspecified.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(Norm(s)) {
	case "":
		return StatusUnspecified, nil
	case "completed":
		return StatusCompleted, nil
	case "scheduled":
		return StatusScheduled, nil
	case "cancelled", "canceled":
		return StatusCancelled, nil
	case "tentative":
		return StatusTentative, nil
	default:
		return StatusUnspecified, fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// String returns the canonical lowercase spelling.
func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusScheduled:
		return "scheduled"
	case StatusCancelled:
		return "cancelled"
	case StatusTentative:
		return "tentative"
	case StatusUnspecified:
		return ""
	}
	return ""
}

// Label returns the title-cased display label.
func (s Status) Label() string {
	switch s {
	case StatusCompleted:
		return "Completed"
	case StatusScheduled:
		return "Scheduled"
	case StatusCancelled:
		return "Cancelled"
	case StatusTentative:
		return "Tentative"
	case StatusUnspecified:
		return ""
	}
	return ""
}

// Visibility controls whether a talk appears in public output.
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityPrivate
)

// ParseVisibility maps a CSV cell to a Visibility. An empty cell is public.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(Norm(s)) {
	case "", "public":
		return VisibilityPublic, nil
	case "private":
		return VisibilityPrivate, nil
	default:
		return VisibilityPublic, fmt.Errorf("%w: %q", ErrUnknownVisibility, s)
	}
}

func (v Visibility) String() string {
	switch v {
	case VisibilityPrivate:
		return "private"
	case VisibilityPublic:
		return "public"
	}
	return "public"
}

// Type is the format of an engagement.
type Type int

const (
	TypeOral Type = iota + 1
	TypePanel
	TypeRemote
	TypePoster
	TypeSOC
	TypeLOC
)

// Types lists every talk type in display order.
var Types = []Type{TypeOral, TypePanel, TypeRemote, TypePoster, TypeSOC, TypeLOC}

// ParseType maps a single token to a Type, case-insensitively.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(Norm(s)) {
	case "oral":
		return TypeOral, nil
	case "panel":
		return TypePanel, nil
	case "remote":
		return TypeRemote, nil
	case "poster":
		return TypePoster, nil
	case "soc":
		return TypeSOC, nil
	case "loc":
		return TypeLOC, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

// ParseTypes splits a comma-separated cell into an ordered, deduplicated set
// of types. Every unknown token is reported in the joined error.
func ParseTypes(s string) ([]Type, error) {
	var (
		out  []Type
		errs []error
		seen = map[Type]bool{}
	)
	for _, part := range strings.Split(s, ",") {
		if Norm(part) == "" {
			continue
		}
		t, err := ParseType(part)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out, errors.Join(errs...)
}

// String returns the canonical spelling used in front matter.
func (t Type) String() string {
	switch t {
	case TypeOral:
		return "oral"
	case TypePanel:
		return "panel"
	case TypeRemote:
		return "remote"
	case TypePoster:
		return "poster"
	case TypeSOC:
		return "SOC"
	case TypeLOC:
		return "LOC"
	}
	return ""
}

// Label returns the display label.
func (t Type) Label() string {
	switch t {
	case TypeOral:
		return "Oral"
	case TypePanel:
		return "Panel"
	case TypeRemote:
		return "Remote"
	case TypePoster:
		return "Poster"
	case TypeSOC:
		return "SOC"
	case TypeLOC:
		return "LOC"
	}
	return ""
}

// Slug returns the lowercase path segment for the type.
func (t Type) Slug() string {
	return strings.ToLower(t.String())
}
