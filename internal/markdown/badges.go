package markdown

import (
	"html"

	"github.com/alnah/go-talksite/internal/talk"
)

var statusColors = map[talk.Status]string{
	talk.StatusScheduled: "#2e7d32",
	talk.StatusCompleted: "#1565c0",
	talk.StatusTentative: "#ef6c00",
	talk.StatusCancelled: "#c62828",
}

var typeColors = map[talk.Type]string{
	talk.TypeOral:   "#5c35a3",
	talk.TypePanel:  "#00838f",
	talk.TypeRemote: "#455a64",
	talk.TypePoster: "#ad1457",
	talk.TypeSOC:    "#6d4c41",
	talk.TypeLOC:    "#283593",
}

// StatusBadge renders the status as an inline HTML badge, or "" when the
// status is unspecified.
func StatusBadge(s talk.Status) string {
	if s == talk.StatusUnspecified {
		return ""
	}
	return badge(s.Label(), statusColors[s])
}

// TypeBadge renders the talk's types as one badge coloured after the first
// type, or "" when the talk has none.
func TypeBadge(types []talk.Type) string {
	if len(types) == 0 {
		return ""
	}
	t := talk.Talk{Types: types}
	return badge(t.TypeLabel(), typeColors[types[0]])
}

func badge(label, color string) string {
	if color == "" {
		return `<span class="badge">` + html.EscapeString(label) + `</span>`
	}
	return `<span class="badge" style="background:` + color + `">` + html.EscapeString(label) + `</span>`
}

func button(label, href string) string {
	return `<a class="btn" href="` + html.EscapeString(href) + `">` + html.EscapeString(label) + `</a>`
}

func anchor(label, href string) string {
	return `<a href="` + html.EscapeString(href) + `">` + html.EscapeString(label) + `</a>`
}
