// Package index groups public talks into the listings behind the site's
// auxiliary pages: upcoming talks by month, past talks by year with map
// points, and the tag and type indexes.
package index

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alnah/go-talksite/internal/talk"
)

// MaxWeight is the largest chip weight. Weights range from 1 to MaxWeight.
const MaxWeight = 5

// UnspecifiedType is the slug of the type group holding talks without a type.
const UnspecifiedType = "unspecified"

// Month is one year-month bucket of upcoming talks.
type Month struct {
	Year  int
	Month time.Month
	Talks []talk.Talk
}

// Label returns the heading for the bucket, e.g. "March 2026".
func (m Month) Label() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// Key returns the bucket as "YYYY-MM".
func (m Month) Key() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Located is a past talk with the coordinates of its city, when known.
type Located struct {
	Talk  talk.Talk
	Coord *Coord
}

// Year is one year of past talks, most recent first.
type Year struct {
	Year  int
	Talks []talk.Talk
}

// MapPoint aggregates past talks held in the same city.
type MapPoint struct {
	City  string
	Coord Coord
	Count int
}

// Label returns the tooltip text, e.g. "Pune (2)".
func (p MapPoint) Label() string {
	if p.Count > 1 {
		return fmt.Sprintf("%s (%d)", p.City, p.Count)
	}
	return p.City
}

// TagEntry lists the talks carrying one tag.
type TagEntry struct {
	Tag    string
	Slug   string
	IDs    []string
	Talks  []talk.Talk
	Weight int
}

// TypeEntry lists the talks of one type. Type is zero for the unspecified
// group.
type TypeEntry struct {
	Type   talk.Type
	Slug   string
	Label  string
	IDs    []string
	Talks  []talk.Talk
	Weight int
}

// Stats feeds the stats bar. Each talk counts once, whatever its types.
type Stats struct {
	Total     int
	Upcoming  int
	Past      int
	Countries int
	Cities    int
}

// Warning is a non-fatal problem found while grouping.
type Warning struct {
	ID      string
	Message string
}

func (w Warning) String() string {
	return w.ID + ": " + w.Message
}

// Index is the grouped view of one build.
type Index struct {
	BuildDate talk.Date
	Talks     []talk.Talk
	Upcoming  []Month
	Past      []Located
	Years     []Year
	MapPoints []MapPoint
	Tags      []TagEntry
	Types     []TypeEntry
	Stats     Stats
	Warnings  []Warning
}

// Build groups talks relative to buildDate. Private talks are ignored. A talk
// whose date equals buildDate is upcoming.
func Build(talks []talk.Talk, buildDate talk.Date) *Index {
	idx := &Index{BuildDate: buildDate}

	for _, t := range talks {
		if t.IsPublic() {
			idx.Talks = append(idx.Talks, t)
		}
	}
	sort.SliceStable(idx.Talks, func(i, j int) bool { return talk.Less(idx.Talks[i], idx.Talks[j]) })

	var upcoming, past []talk.Talk
	for _, t := range idx.Talks {
		switch {
		case t.TalkDate.IsZero():
			idx.Warnings = append(idx.Warnings, Warning{ID: t.ID, Message: "no talk date; left out of upcoming and past listings"})
		case t.TalkDate.Before(buildDate):
			past = append(past, t)
		default:
			upcoming = append(upcoming, t)
		}
	}

	idx.Upcoming = groupByMonth(upcoming)
	idx.buildPast(past)
	idx.Tags = buildTags(idx.Talks)
	idx.Types = buildTypes(idx.Talks)
	idx.Stats = buildStats(idx.Talks, len(upcoming), len(past))
	return idx
}

// Recent returns up to limit past talks with the given status, most recent
// first. A non-positive limit returns all of them.
func (idx *Index) Recent(status talk.Status, limit int) []talk.Talk {
	var out []talk.Talk
	for _, p := range idx.Past {
		if p.Talk.Status != status {
			continue
		}
		out = append(out, p.Talk)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// UpcomingTalks flattens the month buckets in chronological order.
func (idx *Index) UpcomingTalks() []talk.Talk {
	var out []talk.Talk
	for _, m := range idx.Upcoming {
		out = append(out, m.Talks...)
	}
	return out
}

func groupByMonth(talks []talk.Talk) []Month {
	var months []Month
	for _, t := range talks {
		n := len(months)
		if n == 0 || months[n-1].Year != t.TalkDate.Year() || months[n-1].Month != t.TalkDate.Month() {
			months = append(months, Month{Year: t.TalkDate.Year(), Month: t.TalkDate.Month()})
			n++
		}
		months[n-1].Talks = append(months[n-1].Talks, t)
	}
	return months
}

func (idx *Index) buildPast(past []talk.Talk) {
	points := map[string]int{}
	for i := len(past) - 1; i >= 0; i-- {
		t := past[i]
		coord := Lookup(t.City)
		idx.Past = append(idx.Past, Located{Talk: t, Coord: coord})

		if n := len(idx.Years); n == 0 || idx.Years[n-1].Year != t.TalkDate.Year() {
			idx.Years = append(idx.Years, Year{Year: t.TalkDate.Year()})
		}
		idx.Years[len(idx.Years)-1].Talks = append(idx.Years[len(idx.Years)-1].Talks, t)

		if coord == nil {
			continue
		}
		key := strings.ToLower(t.City)
		if at, ok := points[key]; ok {
			idx.MapPoints[at].Count++
			continue
		}
		points[key] = len(idx.MapPoints)
		idx.MapPoints = append(idx.MapPoints, MapPoint{City: t.City, Coord: *coord, Count: 1})
	}
	sort.SliceStable(idx.MapPoints, func(i, j int) bool {
		return strings.ToLower(idx.MapPoints[i].City) < strings.ToLower(idx.MapPoints[j].City)
	})
}

func buildTags(talks []talk.Talk) []TagEntry {
	at := map[string]int{}
	var entries []TagEntry
	for _, t := range talks {
		// Tags sharing a slug share a page, under the first spelling seen.
		for _, tag := range t.Tags {
			slug := talk.Slug(tag)
			i, ok := at[slug]
			if !ok {
				i = len(entries)
				at[slug] = i
				entries = append(entries, TagEntry{Tag: tag, Slug: slug})
			} else if last := entries[i].IDs[len(entries[i].IDs)-1]; last == t.ID {
				continue
			}
			entries[i].IDs = append(entries[i].IDs, t.ID)
			entries[i].Talks = append(entries[i].Talks, t)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Slug < entries[j].Slug })

	counts := make([]int, len(entries))
	for i, e := range entries {
		counts[i] = len(e.IDs)
	}
	for i := range entries {
		entries[i].Weight = Weight(counts[i], maxOf(counts))
	}
	return entries
}

func buildTypes(talks []talk.Talk) []TypeEntry {
	byType := map[talk.Type][]talk.Talk{}
	var untyped []talk.Talk
	for _, t := range talks {
		if len(t.Types) == 0 {
			untyped = append(untyped, t)
			continue
		}
		for _, typ := range t.Types {
			byType[typ] = append(byType[typ], t)
		}
	}

	var entries []TypeEntry
	for _, typ := range talk.Types {
		if len(byType[typ]) == 0 {
			continue
		}
		entries = append(entries, TypeEntry{Type: typ, Slug: typ.Slug(), Label: typ.Label(), Talks: byType[typ]})
	}
	if len(untyped) > 0 {
		entries = append(entries, TypeEntry{Slug: UnspecifiedType, Label: "Unspecified", Talks: untyped})
	}

	counts := make([]int, len(entries))
	for i := range entries {
		entries[i].IDs = ids(entries[i].Talks)
		counts[i] = len(entries[i].Talks)
	}
	for i := range entries {
		entries[i].Weight = Weight(counts[i], maxOf(counts))
	}
	return entries
}

func buildStats(talks []talk.Talk, upcoming, past int) Stats {
	countries := map[string]bool{}
	cities := map[string]bool{}
	for _, t := range talks {
		if t.Country != "" {
			countries[strings.ToLower(t.Country)] = true
		}
		if t.City != "" {
			cities[strings.ToLower(t.Place())] = true
		}
	}
	return Stats{
		Total:     len(talks),
		Upcoming:  upcoming,
		Past:      past,
		Countries: len(countries),
		Cities:    len(cities),
	}
}

// Weight maps a count to a chip weight between 1 and MaxWeight. It never
// decreases as count grows, and the most frequent entry gets MaxWeight.
func Weight(count, highest int) int {
	if count <= 0 {
		return 0
	}
	if highest <= 1 {
		return 1
	}
	if count > highest {
		count = highest
	}
	return 1 + (count-1)*(MaxWeight-1)/(highest-1)
}

func maxOf(counts []int) int {
	highest := 0
	for _, c := range counts {
		if c > highest {
			highest = c
		}
	}
	return highest
}

func ids(talks []talk.Talk) []string {
	out := make([]string, len(talks))
	for i, t := range talks {
		out[i] = t.ID
	}
	return out
}
