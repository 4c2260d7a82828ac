package markdown

import (
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-talksite/internal/index"
	"github.com/alnah/go-talksite/internal/talk"
)

// Listing page paths, relative to the content root.
const (
	IndexPath     = "index.md"
	PastPath      = "past/index.md"
	TagsIndexPath = "tags/index.md"
	TypesPath     = "types/index.md"
)

// TagPath returns the content path of one tag page.
func TagPath(slug string) string { return "tags/" + slug + "/index.md" }

// TypePath returns the content path of one type page.
func TypePath(slug string) string { return "types/" + slug + "/index.md" }

// Listings renders the landing page, the past page and the tag and type
// indexes, in that order.
func (e *Emitter) Listings(idx *index.Index) []Page {
	pages := []Page{e.indexPage(idx), e.pastPage(idx), e.tagsPage(idx)}
	for _, entry := range idx.Tags {
		pages = append(pages, e.tagPage(idx, entry))
	}
	pages = append(pages, e.typesPage(idx))
	for _, entry := range idx.Types {
		pages = append(pages, e.typePage(entry))
	}
	return pages
}

// Pages renders every talk page followed by the listings.
func (e *Emitter) Pages(idx *index.Index) []Page {
	return append(e.TalkPages(idx.Talks), e.Listings(idx)...)
}

func listingFront(title string) FrontMatter {
	return FrontMatter{Title: title, Section: Section, Layout: LayoutListing, Generated: true}
}

func (e *Emitter) indexPage(idx *index.Index) Page {
	var b strings.Builder

	b.WriteString(statsBar(idx.Stats))
	b.WriteString("\n\n## Upcoming\n\n")
	if len(idx.Upcoming) == 0 {
		b.WriteString("_No upcoming talks listed._\n")
	} else {
		b.WriteString(e.upcomingCards(idx.Upcoming))
		b.WriteString("\n")
	}

	b.WriteString("\n## Recently completed\n\n")
	recent := idx.Recent(talk.StatusCompleted, e.opts.RecentLimit)
	if len(recent) == 0 {
		b.WriteString("_No completed talks listed._\n")
	} else {
		for _, t := range recent {
			b.WriteString(listItem(t, ""))
		}
		b.WriteString("\n[See all past talks](past/)\n")
	}

	if cancelled := cancelledTalks(idx.Talks); len(cancelled) > 0 {
		b.WriteString("\n<details>\n<summary>Cancelled</summary>\n\n")
		for _, t := range cancelled {
			b.WriteString(listItem(t, ""))
		}
		b.WriteString("\n</details>\n")
	}

	return Page{Path: IndexPath, Front: listingFront(e.opts.Title), Body: b.String()}
}

// cancelledTalks returns the cancelled talks, most recent first.
func cancelledTalks(talks []talk.Talk) []talk.Talk {
	var out []talk.Talk
	for _, t := range talks {
		if t.Status == talk.StatusCancelled {
			out = append(out, t)
		}
	}
	sortTalks(out, true)
	return out
}

func (e *Emitter) pastPage(idx *index.Index) Page {
	var b strings.Builder

	if m := WorldMap(idx.MapPoints); m != "" {
		b.WriteString(m)
		b.WriteString("\n\n")
	}
	if len(idx.Years) == 0 {
		b.WriteString("_No past talks listed._\n")
	}
	for i, y := range idx.Years {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %d\n\n", y.Year)
		for _, t := range y.Talks {
			b.WriteString(listItem(t, "../"))
		}
	}

	return Page{Path: PastPath, Front: listingFront("Past talks"), Body: b.String()}
}

func (e *Emitter) tagsPage(idx *index.Index) Page {
	chips := make([]chip, len(idx.Tags))
	for i, entry := range idx.Tags {
		chips[i] = chip{Label: entry.Tag, Href: entry.Slug + "/", Count: len(entry.IDs), Weight: entry.Weight}
	}
	return Page{Path: TagsIndexPath, Front: listingFront("Talk tags"), Body: chipCloud(chips) + "\n"}
}

func (e *Emitter) tagPage(idx *index.Index, entry index.TagEntry) Page {
	var upcoming, past, undated []talk.Talk
	for _, t := range entry.Talks {
		switch {
		case t.TalkDate.IsZero():
			undated = append(undated, t)
		case t.TalkDate.Before(idx.BuildDate):
			past = append(past, t)
		default:
			upcoming = append(upcoming, t)
		}
	}
	sortTalks(upcoming, false)
	sortTalks(past, true)

	var b strings.Builder
	b.WriteString("## Upcoming\n\n")
	writeList(&b, upcoming, "../../")
	b.WriteString("\n## Past\n\n")
	writeList(&b, past, "../../")
	if len(undated) > 0 {
		b.WriteString("\n## Undated\n\n")
		writeList(&b, undated, "../../")
	}

	return Page{Path: TagPath(entry.Slug), Front: listingFront("Tag: " + entry.Tag), Body: b.String()}
}

func (e *Emitter) typesPage(idx *index.Index) Page {
	chips := make([]chip, len(idx.Types))
	for i, entry := range idx.Types {
		chips[i] = chip{Label: entry.Label, Href: entry.Slug + "/", Count: len(entry.IDs), Weight: entry.Weight}
	}
	return Page{Path: TypesPath, Front: listingFront("Talk types"), Body: chipCloud(chips) + "\n"}
}

func (e *Emitter) typePage(entry index.TypeEntry) Page {
	talks := append([]talk.Talk(nil), entry.Talks...)
	sortTalks(talks, true)

	var b strings.Builder
	writeList(&b, talks, "../../")
	return Page{Path: TypePath(entry.Slug), Front: listingFront("Type: " + entry.Label), Body: b.String()}
}

// listItem renders a compact multi-line list entry. root is the relative
// path from the page to the content root.
func listItem(t talk.Talk, root string) string {
	var bits []string
	if !t.TalkDate.IsZero() {
		bits = append(bits, t.TalkDate.String())
	}
	if when := t.When(); when != "" {
		bits = append(bits, EscapeInline(when))
	}
	if place := t.Place(); place != "" {
		bits = append(bits, EscapeInline(place))
	}
	if t.Status != talk.StatusUnspecified {
		bits = append(bits, t.Status.Label())
	}

	lines := []string{"- **" + link(t.DisplayTitle(), root+t.ID+"/") + "**"}
	if len(bits) > 0 {
		lines = append(lines, strings.Join(bits, metaSep))
	}
	if t.Meeting != "" {
		lines = append(lines, link(t.Meeting, t.MeetingLink))
	}
	if len(t.Tags) > 0 {
		links := make([]string, len(t.Tags))
		for i, tag := range t.Tags {
			links[i] = link(tag, root+"tags/"+talk.Slug(tag)+"/")
		}
		lines = append(lines, strings.Join(links, " "))
	}
	return strings.Join(lines, "\\\n  ") + "\n"
}

func writeList(b *strings.Builder, talks []talk.Talk, root string) {
	if len(talks) == 0 {
		b.WriteString("_None._\n")
		return
	}
	for _, t := range talks {
		b.WriteString(listItem(t, root))
	}
}

// sortTalks orders by date, then time, title and id; desc reverses it.
// Undated talks always go last.
func sortTalks(talks []talk.Talk, desc bool) {
	sort.SliceStable(talks, func(i, j int) bool {
		a, b := talks[i], talks[j]
		if a.TalkDate.IsZero() != b.TalkDate.IsZero() {
			return b.TalkDate.IsZero()
		}
		if desc {
			return talk.Less(b, a)
		}
		return talk.Less(a, b)
	})
}

// Raw HTML fragments below are emitted without blank lines, so each one stays
// a single HTML block for the Markdown converter.

func statsBar(s index.Stats) string {
	items := []struct {
		value int
		label string
	}{
		{s.Total, "talks"},
		{s.Upcoming, "upcoming"},
		{s.Past, "past"},
		{s.Countries, "countries"},
		{s.Cities, "cities"},
	}
	var b strings.Builder
	b.WriteString(`<div class="stats-bar">` + "\n")
	for _, it := range items {
		fmt.Fprintf(&b, `<div class="stat"><span class="stat-value">%d</span><span class="stat-label">%s</span></div>`+"\n", it.value, it.label)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func (e *Emitter) upcomingCards(months []index.Month) string {
	var b strings.Builder
	b.WriteString(`<div class="upcoming">` + "\n")
	for _, m := range months {
		fmt.Fprintf(&b, `<h3 class="month-label" id="m-%s">%s</h3>`+"\n", m.Key(), html.EscapeString(m.Label()))
		b.WriteString(`<div class="card-grid">` + "\n")
		for _, t := range m.Talks {
			b.WriteString(e.card(t))
		}
		b.WriteString(`</div>` + "\n")
	}
	b.WriteString(`</div>`)
	return b.String()
}

func (e *Emitter) card(t talk.Talk) string {
	var b strings.Builder
	b.WriteString(`<article class="talk-card">` + "\n")

	date := t.TalkDate.Format("Jan 2")
	if when := t.When(); when != "" {
		date += " · " + when
	}
	b.WriteString(`<div class="card-date">` + html.EscapeString(date) + `</div>` + "\n")
	b.WriteString(`<h4 class="card-title">` + anchor(t.DisplayTitle(), t.ID+"/") + `</h4>` + "\n")

	var meta []string
	if t.Meeting != "" {
		if t.MeetingLink != "" {
			meta = append(meta, anchor(t.Meeting, t.MeetingLink))
		} else {
			meta = append(meta, html.EscapeString(t.Meeting))
		}
	}
	if place := t.Place(); place != "" {
		meta = append(meta, withFlag(t.Country, html.EscapeString(place)))
	}
	if len(meta) > 0 {
		b.WriteString(`<div class="card-meta">` + strings.Join(meta, metaSep) + `</div>` + "\n")
	}

	badges := strings.TrimSpace(StatusBadge(t.Status) + " " + TypeBadge(t.Types))
	if badges != "" {
		b.WriteString(`<div class="card-badges">` + badges + `</div>` + "\n")
	}
	if t.Abstract != "" {
		preview := Truncate(talk.Norm(t.Abstract), e.opts.AbstractPreview)
		b.WriteString(`<details class="card-abstract"><summary>Abstract</summary><p>` + html.EscapeString(preview) + `</p></details>` + "\n")
	}
	b.WriteString(`</article>` + "\n")
	return b.String()
}

type chip struct {
	Label  string
	Href   string
	Count  int
	Weight int
}

func chipCloud(chips []chip) string {
	var b strings.Builder
	b.WriteString(`<div class="chip-cloud">` + "\n")
	for _, c := range chips {
		b.WriteString(`<a class="chip chip-w` + strconv.Itoa(c.Weight) + `" href="` + html.EscapeString(c.Href) + `">`)
		b.WriteString(html.EscapeString(c.Label))
		b.WriteString(` <span class="chip-count">` + strconv.Itoa(c.Count) + `</span></a>` + "\n")
	}
	b.WriteString(`</div>`)
	return b.String()
}

// Truncate shortens s to at most n runes, appending an ellipsis when text
// was cut.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:n]), " ") + "…"
}
