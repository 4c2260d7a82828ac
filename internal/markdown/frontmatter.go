package markdown

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-talksite/internal/talk"
	"github.com/alnah/go-talksite/internal/yamlutil"
)

// Front matter constants shared by every generated page.
const (
	Section       = "talks"
	LayoutTalk    = "talk"
	LayoutListing = "listing"
)

// FrontMatter is the metadata block of a generated page. Keys are written in
// field order, so the block is stable across runs. Listing pages only fill
// the first fields.
type FrontMatter struct {
	Title       string   `yaml:"title"`
	Section     string   `yaml:"section"`
	Layout      string   `yaml:"layout"`
	ID          string   `yaml:"id,omitempty"`
	Meeting     string   `yaml:"meeting,omitempty"`
	MeetingLink string   `yaml:"meeting_link,omitempty"`
	Location    string   `yaml:"location,omitempty"`
	StartDate   string   `yaml:"start_date,omitempty"`
	EndDate     string   `yaml:"end_date,omitempty"`
	TalkDate    string   `yaml:"talk_date,omitempty"`
	StartTime   string   `yaml:"start_time,omitempty"`
	TimeZone    string   `yaml:"time_zone,omitempty"`
	Duration    string   `yaml:"duration,omitempty"`
	Session     string   `yaml:"session,omitempty"`
	City        string   `yaml:"city,omitempty"`
	Country     string   `yaml:"country,omitempty"`
	Abstract    string   `yaml:"abstract,omitempty"`
	Slides      string   `yaml:"slides,omitempty"`
	Recording   string   `yaml:"recording,omitempty"`
	Status      string   `yaml:"status,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	TalkType    []string `yaml:"talk_type,omitempty"`
	Visibility  string   `yaml:"visibility,omitempty"`
	Generated   bool     `yaml:"generated"`
}

// FrontMatterOf serializes every attribute of t.
func FrontMatterOf(t talk.Talk) FrontMatter {
	return FrontMatter{
		Title:       t.DisplayTitle(),
		Section:     Section,
		Layout:      LayoutTalk,
		ID:          t.ID,
		Meeting:     t.Meeting,
		MeetingLink: t.MeetingLink,
		Location:    t.Location,
		StartDate:   t.StartDate.String(),
		EndDate:     t.EndDate.String(),
		TalkDate:    t.TalkDate.String(),
		StartTime:   t.StartTime,
		TimeZone:    t.TimeZone,
		Duration:    t.Duration,
		Session:     t.Session,
		City:        t.City,
		Country:     t.Country,
		Abstract:    t.Abstract,
		Slides:      t.Slides,
		Recording:   t.Recording,
		Status:      t.Status.String(),
		Tags:        nilIfEmpty(t.Tags),
		TalkType:    nilIfEmpty(t.TypeStrings()),
		Visibility:  t.Visibility.String(),
		Generated:   true,
	}
}

// Talk rebuilds the record a talk page was generated from.
func (fm FrontMatter) Talk() (talk.Talk, error) {
	t := talk.Talk{
		ID:          fm.ID,
		Title:       fm.Title,
		Meeting:     fm.Meeting,
		MeetingLink: fm.MeetingLink,
		Location:    fm.Location,
		StartTime:   fm.StartTime,
		TimeZone:    fm.TimeZone,
		Duration:    fm.Duration,
		Session:     fm.Session,
		City:        fm.City,
		Country:     fm.Country,
		Abstract:    fm.Abstract,
		Slides:      fm.Slides,
		Recording:   fm.Recording,
	}
	if len(fm.Tags) > 0 {
		t.Tags = talk.Tags(fm.Tags)
	}

	var errs []error
	var err error
	if t.StartDate, err = talk.ParseDate(fm.StartDate); err != nil {
		errs = append(errs, fmt.Errorf("start_date: %w", err))
	}
	if t.EndDate, err = talk.ParseDate(fm.EndDate); err != nil {
		errs = append(errs, fmt.Errorf("end_date: %w", err))
	}
	if t.TalkDate, err = talk.ParseDate(fm.TalkDate); err != nil {
		errs = append(errs, fmt.Errorf("talk_date: %w", err))
	}
	if t.Status, err = talk.ParseStatus(fm.Status); err != nil {
		errs = append(errs, err)
	}
	if t.Visibility, err = talk.ParseVisibility(fm.Visibility); err != nil {
		errs = append(errs, err)
	}
	if t.Types, err = talk.ParseTypes(strings.Join(fm.TalkType, ",")); err != nil {
		errs = append(errs, err)
	}
	return t, errors.Join(errs...)
}

// ParseDocument splits a generated page into its front matter and body.
func ParseDocument(doc []byte) (FrontMatter, []byte, error) {
	var fm FrontMatter
	body, err := yamlutil.ParseFrontMatter(doc, &fm)
	if err != nil {
		return FrontMatter{}, nil, err
	}
	return fm, body, nil
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
