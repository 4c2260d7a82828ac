// Package validate turns raw spreadsheet rows into talk records.
//
// Validation never stops at the first bad row: every row is checked and every
// failure is collected so a single build reports all of them. Rows with any
// failure are left out of the result; the remaining rows still build.
package validate

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/alnah/go-talksite/internal/csvreader"
	"github.com/alnah/go-talksite/internal/dateutil"
	"github.com/alnah/go-talksite/internal/talk"
)

// Field names used in failures. They match the front matter keys.
const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldMeetingLink = "meeting_link"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldTalkDate    = "talk_date"
	FieldDuration    = "duration"
	FieldSlides      = "slides"
	FieldRecording   = "recording"
	FieldStatus      = "status"
	FieldTalkType    = "talk_type"
	FieldVisibility  = "visibility"
)

var (
	idPattern   = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
	httpPattern = regexp.MustCompile(`^https?://`)
)

// Result is the outcome of validating a table.
type Result struct {
	Talks  []talk.Talk
	Errors Errors
}

// Public returns the talks that may appear in generated output.
func (r Result) Public() []talk.Talk {
	var out []talk.Talk
	for _, t := range r.Talks {
		if t.IsPublic() {
			out = append(out, t)
		}
	}
	return out
}

// Validate checks every row of table. Talks keep row order. When an id
// repeats, the first row wins and later rows are reported on field "id".
func Validate(table *csvreader.Table) Result {
	var res Result
	if table == nil {
		return res
	}

	seen := map[string]int{}
	for _, row := range table.Rows {
		t, errs := validateRow(row)
		if t.ID != "" {
			if firstLine, dup := seen[t.ID]; dup {
				errs = append(errs, &ValidationError{
					Line:    row.Line,
					ID:      t.ID,
					Field:   FieldID,
					Message: "duplicate id (first used on line " + strconv.Itoa(firstLine) + ")",
				})
			} else {
				seen[t.ID] = row.Line
			}
		}
		if len(errs) > 0 {
			res.Errors = append(res.Errors, errs...)
			continue
		}
		res.Talks = append(res.Talks, t)
	}

	res.Errors.sort()
	return res
}

// validateRow normalizes the cells of one row and checks them. The returned
// talk is only meaningful when no errors are returned, but its ID is always
// set so failures can reference it.
func validateRow(row csvreader.Row) (talk.Talk, Errors) {
	cell := func(col csvreader.Column) string { return talk.Norm(row.Get(col)) }

	t := talk.Talk{
		ID:          cell(csvreader.ColID),
		Title:       cell(csvreader.ColTitle),
		Meeting:     cell(csvreader.ColMeeting),
		MeetingLink: cell(csvreader.ColMeetingLink),
		Location:    cell(csvreader.ColLocation),
		StartTime:   dateutil.NormalizeClock(cell(csvreader.ColStartTime)),
		TimeZone:    cell(csvreader.ColTimeZone),
		Duration:    cell(csvreader.ColDuration),
		Session:     cell(csvreader.ColSession),
		City:        cell(csvreader.ColCity),
		Country:     cell(csvreader.ColCountry),
		Abstract:    talk.NormText(row.Get(csvreader.ColAbstract)),
		Slides:      cell(csvreader.ColSlides),
		Recording:   cell(csvreader.ColRecording),
		Tags:        talk.NormalizeTags(row.Get(csvreader.ColTags)),
	}

	startRaw := cell(csvreader.ColStartDate)
	endRaw := cell(csvreader.ColEndDate)
	talkRaw := cell(csvreader.ColTalkDate)
	statusRaw := cell(csvreader.ColStatus)
	typeRaw := cell(csvreader.ColTalkType)
	visibilityRaw := cell(csvreader.ColVisibility)

	checks := validation.Errors{
		FieldID:          validation.Validate(t.ID, validation.Required, validation.Match(idPattern).Error("must start with a letter or digit and contain only letters, digits, '.', '_' or '-'"), reservedRule),
		FieldTitle:       validation.Validate(t.Title, validation.Required),
		FieldTalkDate:    validation.Validate(talkRaw, validation.Required, dateRule),
		FieldStartDate:   validation.Validate(startRaw, dateRule),
		FieldEndDate:     validation.Validate(endRaw, dateRule),
		FieldMeetingLink: validation.Validate(t.MeetingLink, urlRules...),
		FieldSlides:      validation.Validate(t.Slides, urlRules...),
		FieldRecording:   validation.Validate(t.Recording, urlRules...),
		FieldDuration:    validation.Validate(t.Duration, is.Digit.Error("must be a whole number of minutes")),
		FieldStatus:      validation.Validate(statusRaw, enumRule(func(s string) error { _, err := talk.ParseStatus(s); return err }, "must be one of completed, scheduled, cancelled, tentative")),
		FieldVisibility:  validation.Validate(visibilityRaw, enumRule(func(s string) error { _, err := talk.ParseVisibility(s); return err }, "must be public or private")),
		FieldTalkType:    validation.Validate(typeRaw, enumRule(func(s string) error { _, err := talk.ParseTypes(s); return err }, "must be a comma-separated list of oral, panel, remote, poster, SOC, LOC")),
	}

	// Parse errors were reported above; the zero values are never used then.
	t.TalkDate, _ = talk.ParseDate(talkRaw)
	t.StartDate, _ = talk.ParseDate(startRaw)
	t.EndDate, _ = talk.ParseDate(endRaw)
	t.Status, _ = talk.ParseStatus(statusRaw)
	t.Visibility, _ = talk.ParseVisibility(visibilityRaw)
	t.Types, _ = talk.ParseTypes(typeRaw)

	if checks[FieldEndDate] == nil && !t.StartDate.IsZero() && !t.EndDate.IsZero() && t.EndDate.Before(t.StartDate) {
		checks[FieldEndDate] = validation.NewError("validation_date_order", "must not be before start_date")
	}

	return t, toErrors(row.Line, t.ID, checks)
}

var dateRule = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := talk.ParseDate(s); err != nil {
		return validation.NewError("validation_date_invalid", "must be a date in YYYY-MM-DD or YYYYMMDD form")
	}
	return nil
})

// reservedIDs are content directories used by listing pages and assets.
var reservedIDs = map[string]bool{"past": true, "tags": true, "types": true, "assets": true}

var reservedRule = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if reservedIDs[strings.ToLower(s)] {
		return validation.NewError("validation_id_reserved", "is reserved for a listing page")
	}
	return nil
})

var urlRules = []validation.Rule{
	validation.Match(httpPattern).Error("must be an http or https URL"),
	is.URL,
}

// enumRule wraps a talk parser so unknown values surface as one readable
// validation message instead of the parser's error text.
func enumRule(parse func(string) error, message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if err := parse(s); err != nil {
			return validation.NewError("validation_enum", message+" (got "+strconv.Quote(s)+")")
		}
		return nil
	})
}

func toErrors(line int, id string, checks validation.Errors) Errors {
	filtered := checks.Filter()
	if filtered == nil {
		return nil
	}
	fieldErrs, ok := filtered.(validation.Errors)
	if !ok {
		return Errors{{Line: line, ID: id, Field: "row", Message: filtered.Error()}}
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := make(Errors, 0, len(fields))
	for _, field := range fields {
		out = append(out, &ValidationError{Line: line, ID: id, Field: field, Message: fieldErrs[field].Error()})
	}
	return out
}
