package markdown

import (
	"strings"

	"github.com/alnah/go-talksite/internal/index"
	"github.com/alnah/go-talksite/internal/talk"
)

// Listing defaults.
const (
	DefaultDateLayout      = "January 2, 2006"
	DefaultRecentLimit     = 12
	DefaultAbstractPreview = 200
	DefaultTitle           = "Talks"
)

// metaSep joins the pieces of a meta line.
const metaSep = " • "

// Options tune the rendered text. Zero fields take the defaults above.
type Options struct {
	// DateLayout is a Go time layout for long dates.
	DateLayout      string
	RecentLimit     int
	AbstractPreview int
	// Title heads the landing page.
	Title string
}

func (o Options) withDefaults() Options {
	if o.DateLayout == "" {
		o.DateLayout = DefaultDateLayout
	}
	if o.RecentLimit <= 0 {
		o.RecentLimit = DefaultRecentLimit
	}
	if o.AbstractPreview <= 0 {
		o.AbstractPreview = DefaultAbstractPreview
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	return o
}

// Emitter turns talks and indexes into pages.
type Emitter struct {
	opts Options
}

// New returns an Emitter.
func New(opts Options) *Emitter {
	return &Emitter{opts: opts.withDefaults()}
}

// TalkPath returns the content path of a talk page.
func TalkPath(id string) string {
	return id + "/index.md"
}

// TalkPage renders one public talk.
func (e *Emitter) TalkPage(t talk.Talk) Page {
	return Page{
		Path:  TalkPath(t.ID),
		Front: FrontMatterOf(t),
		Body:  e.talkBody(t),
	}
}

// TalkPages renders every public talk, skipping private ones.
func (e *Emitter) TalkPages(talks []talk.Talk) []Page {
	var pages []Page
	for _, t := range talks {
		if t.IsPublic() {
			pages = append(pages, e.TalkPage(t))
		}
	}
	return pages
}

func (e *Emitter) talkBody(t talk.Talk) string {
	var b strings.Builder

	b.WriteString("[← All talks](../)\n\n")

	if meta := e.metaLine(t); meta != "" {
		b.WriteString("> " + meta + "\n\n")
	}

	var facts []string
	if t.Session != "" {
		facts = append(facts, "**Session:** "+EscapeInline(t.Session))
	}
	if t.Location != "" {
		facts = append(facts, "**Location:** "+EscapeInline(t.Location))
	}
	if dates := meetingDates(t); dates != "" {
		facts = append(facts, dates)
	}
	if len(t.Tags) > 0 {
		links := make([]string, len(t.Tags))
		for i, tag := range t.Tags {
			links[i] = link(tag, "../tags/"+talk.Slug(tag)+"/")
		}
		facts = append(facts, "**Tags:** "+strings.Join(links, " "))
	}
	for _, f := range facts {
		b.WriteString("- " + f + "\n")
	}
	if len(facts) > 0 {
		b.WriteString("\n")
	}

	if t.Abstract != "" {
		b.WriteString("## Abstract\n\n")
		b.WriteString(EscapeText(t.Abstract))
		b.WriteString("\n\n")
	}

	var buttons []string
	if t.Slides != "" {
		buttons = append(buttons, button("Slides", t.Slides))
	}
	if t.Recording != "" {
		buttons = append(buttons, button("Recording", t.Recording))
	}
	if len(buttons) > 0 {
		b.WriteString("## Links\n\n")
		b.WriteString(strings.Join(buttons, " "))
		b.WriteString("\n")
	}

	return b.String()
}

// metaLine renders meeting, place, date, time, duration and badges joined
// by bullets.
func (e *Emitter) metaLine(t talk.Talk) string {
	var pieces []string
	if t.Meeting != "" {
		pieces = append(pieces, link(t.Meeting, t.MeetingLink))
	}
	if place := t.Place(); place != "" {
		pieces = append(pieces, withFlag(t.Country, EscapeInline(place)))
	}
	if !t.TalkDate.IsZero() {
		pieces = append(pieces, t.TalkDate.Format(e.opts.DateLayout))
	}
	if when := t.When(); when != "" {
		pieces = append(pieces, EscapeInline(when))
	}
	if t.Duration != "" {
		pieces = append(pieces, EscapeInline(t.Duration)+" min")
	}
	if b := StatusBadge(t.Status); b != "" {
		pieces = append(pieces, b)
	}
	if b := TypeBadge(t.Types); b != "" {
		pieces = append(pieces, b)
	}
	return strings.Join(pieces, metaSep)
}

func meetingDates(t talk.Talk) string {
	start, end := t.StartDate.String(), t.EndDate.String()
	switch {
	case start != "" && end != "" && start != end:
		return "**Meeting dates:** " + start + " – " + end
	case start != "":
		return "**Meeting date:** " + start
	case end != "":
		return "**Meeting date:** " + end
	}
	return ""
}

func withFlag(country, text string) string {
	if flag := index.Flag(country); flag != "" {
		return flag + " " + text
	}
	return text
}
