// Package calendar writes the iCalendar feed of upcoming talks.
package calendar

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/alnah/go-talksite/internal/talk"
)

// Sentinel errors for feed encoding.
var (
	ErrNoEvents = errors.New("calendar: no dated talks to encode")
	ErrEncode   = errors.New("calendar: encoding failed")
)

// FileName is the feed path relative to the site root.
const FileName = "upcoming.ics"

// PropCalendarName is the calendar display name understood by most clients.
const PropCalendarName = "X-WR-CALNAME"

// Defaults applied by Options.
const (
	DefaultHost    = "talksite.invalid"
	DefaultName    = "Talks"
	DefaultProduct = "-//go-talksite//talksite//EN"
)

// Options control the feed. Stamp is written as DTSTAMP on every event so a
// rebuild on the same build date produces the same bytes.
type Options struct {
	// Host is the UID domain: each event gets "<id>@<host>".
	Host string
	// BaseURL, when set, gives every event a URL pointing at its talk page.
	BaseURL string
	Name    string
	Stamp   time.Time
}

func (o Options) withDefaults() Options {
	if o.Host == "" {
		o.Host = DefaultHost
	}
	if o.Name == "" {
		o.Name = DefaultName
	}
	return o
}

// Encode writes one all-day VEVENT per talk with a date, in the given order.
// Talks without a date are skipped; ErrNoEvents is returned when none remain
// because a calendar without components is not valid iCalendar.
func Encode(w io.Writer, talks []talk.Talk, opts Options) error {
	opts = opts.withDefaults()

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, DefaultProduct)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	cal.Props.Set(textProp(PropCalendarName, opts.Name))

	for _, t := range talks {
		if t.TalkDate.IsZero() || !t.IsPublic() {
			continue
		}
		event, err := newEvent(t, opts)
		if err != nil {
			return err
		}
		cal.Children = append(cal.Children, event.Component)
	}
	if len(cal.Children) == 0 {
		return ErrNoEvents
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

func newEvent(t talk.Talk, opts Options) (*ical.Event, error) {
	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, t.ID+"@"+opts.Host)
	event.Props.SetDateTime(ical.PropDateTimeStamp, opts.Stamp.UTC())
	event.Props.SetDate(ical.PropDateTimeStart, t.TalkDate.Time())
	event.Props.SetDate(ical.PropDateTimeEnd, t.TalkDate.Time().AddDate(0, 0, 1))
	event.Props.SetText(ical.PropSummary, summary(t))

	if loc := location(t); loc != "" {
		event.Props.SetText(ical.PropLocation, loc)
	}
	if desc := description(t); desc != "" {
		event.Props.SetText(ical.PropDescription, desc)
	}
	if status := eventStatus(t.Status); status != "" {
		event.Props.SetText(ical.PropStatus, status)
	}
	if opts.BaseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/") + "/" + url.PathEscape(t.ID) + "/")
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrEncode, t.ID, err)
		}
		event.Props.SetURI(ical.PropURL, u)
	}
	return event, nil
}

func summary(t talk.Talk) string {
	if t.Meeting == "" {
		return t.DisplayTitle()
	}
	return t.DisplayTitle() + " (" + t.Meeting + ")"
}

func location(t talk.Talk) string {
	if place := t.Place(); place != "" {
		if t.Location != "" {
			return t.Location + ", " + place
		}
		return place
	}
	return t.Location
}

func description(t talk.Talk) string {
	var parts []string
	if when := t.When(); when != "" {
		parts = append(parts, "Time: "+when)
	}
	if t.Session != "" {
		parts = append(parts, "Session: "+t.Session)
	}
	if t.MeetingLink != "" {
		parts = append(parts, t.MeetingLink)
	}
	if t.Abstract != "" {
		parts = append(parts, "", t.Abstract)
	}
	return strings.Join(parts, "\n")
}

// textProp builds an extension property holding text. SetText would tag it
// VALUE=TEXT since only standard properties have a known default type.
func textProp(name, value string) *ical.Prop {
	p := ical.NewProp(name)
	p.SetText(value)
	p.Params.Del(ical.ParamValue)
	return p
}

// eventStatus maps a talk status onto the VEVENT STATUS values of RFC 5545.
func eventStatus(s talk.Status) string {
	switch s {
	case talk.StatusScheduled, talk.StatusCompleted:
		return "CONFIRMED"
	case talk.StatusTentative:
		return "TENTATIVE"
	case talk.StatusCancelled:
		return "CANCELLED"
	case talk.StatusUnspecified:
		return ""
	}
	return ""
}
