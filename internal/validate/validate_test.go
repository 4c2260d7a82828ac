package validate_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-talksite/internal/csvreader"
	"github.com/alnah/go-talksite/internal/talk"
	"github.com/alnah/go-talksite/internal/validate"
)

const header = "Talk ID,Title,Talk Date,Start Date,End Date,Start Time,Duration,Status,Visibility,Tags,Talk Type,Slides,Meeting Link,Abstract\n"

func table(t *testing.T, rows ...string) *csvreader.Table {
	t.Helper()
	tbl, err := csvreader.Read(strings.NewReader(header + strings.Join(rows, "\n") + "\n"))
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	return tbl
}

// ---------------------------------------------------------------------------
// TestValidate_ValidRow - Normalization of a well-formed row
// ---------------------------------------------------------------------------

func TestValidate_ValidRow(t *testing.T) {
	t.Parallel()

	res := validate.Validate(table(t,
		`T1,  Keynote  ,2026-03-02,2026-03-01,20260303,9:30,45,Scheduled,public,"AI, ai, Robotics","Oral, panel",https://slides.example.com/t1,,"First line`+"\n"+`second line"`,
	))
	if err := res.Errors.Err(); err != nil {
		t.Fatalf("unexpected validation errors:\n%v", err)
	}
	if len(res.Talks) != 1 {
		t.Fatalf("got %d talks, want 1", len(res.Talks))
	}

	got := res.Talks[0]
	if got.ID != "T1" || got.Title != "Keynote" {
		t.Errorf("ID/Title = %q/%q", got.ID, got.Title)
	}
	if !reflect.DeepEqual(got.Tags, talk.Tags{"ai", "robotics"}) {
		t.Errorf("Tags = %#v, want [ai robotics]", got.Tags)
	}
	if !reflect.DeepEqual(got.Types, []talk.Type{talk.TypeOral, talk.TypePanel}) {
		t.Errorf("Types = %v", got.Types)
	}
	if got.Status != talk.StatusScheduled || got.Visibility != talk.VisibilityPublic {
		t.Errorf("Status/Visibility = %v/%v", got.Status, got.Visibility)
	}
	if got.TalkDate != talk.NewDate(2026, time.March, 2) || got.EndDate != talk.NewDate(2026, time.March, 3) {
		t.Errorf("dates = %v / %v", got.TalkDate, got.EndDate)
	}
	if got.StartTime != "09:30" {
		t.Errorf("StartTime = %q, want 09:30", got.StartTime)
	}
	if got.Abstract != "First line\nsecond line" {
		t.Errorf("Abstract = %q", got.Abstract)
	}
}

// ---------------------------------------------------------------------------
// TestValidate_FieldErrors - One failure per offending field
// ---------------------------------------------------------------------------

func TestValidate_FieldErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		row       string
		wantID    string
		wantField string
	}{
		{name: "missing title", row: "T1,,2026-03-02,,,,,Scheduled,Public,,,,,", wantID: "T1", wantField: validate.FieldTitle},
		{name: "missing id", row: ",Talk,2026-03-02,,,,,Scheduled,Public,,,,,", wantID: "", wantField: validate.FieldID},
		{name: "unsafe id", row: "../x,Talk,2026-03-02,,,,,Scheduled,Public,,,,,", wantID: "../x", wantField: validate.FieldID},
		{name: "reserved id", row: "Tags,Talk,2026-03-02,,,,,Scheduled,Public,,,,,", wantID: "Tags", wantField: validate.FieldID},
		{name: "missing talk date", row: "T1,Talk,,,,,,Scheduled,Public,,,,,", wantID: "T1", wantField: validate.FieldTalkDate},
		{name: "bad talk date", row: "T1,Talk,TBD,,,,,Scheduled,Public,,,,,", wantID: "T1", wantField: validate.FieldTalkDate},
		{name: "bad start date", row: "T1,Talk,2026-03-02,March,,,,Scheduled,Public,,,,,", wantID: "T1", wantField: validate.FieldStartDate},
		{name: "end before start", row: "T1,Talk,2026-03-02,2026-03-05,2026-03-01,,,Scheduled,Public,,,,,", wantID: "T1", wantField: validate.FieldEndDate},
		{name: "unknown status", row: "T1,Talk,2026-03-02,,,,,Postponed,Public,,,,,", wantID: "T1", wantField: validate.FieldStatus},
		{name: "unknown visibility", row: "T1,Talk,2026-03-02,,,,,Scheduled,Team,,,,,", wantID: "T1", wantField: validate.FieldVisibility},
		{name: "unknown type token", row: "T1,Talk,2026-03-02,,,,,Scheduled,Public,,\"oral, keynote\",,,", wantID: "T1", wantField: validate.FieldTalkType},
		{name: "non numeric duration", row: "T1,Talk,2026-03-02,,,,half an hour,Scheduled,Public,,,,,", wantID: "T1", wantField: validate.FieldDuration},
		{name: "relative slides link", row: "T1,Talk,2026-03-02,,,,,Scheduled,Public,,,slides.pdf,,", wantID: "T1", wantField: validate.FieldSlides},
		{name: "ftp meeting link", row: "T1,Talk,2026-03-02,,,,,Scheduled,Public,,,,ftp://example.com,", wantID: "T1", wantField: validate.FieldMeetingLink},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := validate.Validate(table(t, tt.row))
			if len(res.Talks) != 0 {
				t.Errorf("invalid row produced %d talks", len(res.Talks))
			}
			if len(res.Errors) != 1 {
				t.Fatalf("got %d errors, want 1:\n%v", len(res.Errors), res.Errors)
			}
			got := res.Errors[0]
			if got.ID != tt.wantID || got.Field != tt.wantField || got.Line != 2 {
				t.Errorf("error = %+v, want id %q field %q line 2", got, tt.wantID, tt.wantField)
			}
			if !errors.Is(got, validate.ErrValidation) {
				t.Error("ValidationError should match ErrValidation")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidate_Accumulates - Bad rows do not stop good rows
// ---------------------------------------------------------------------------

func TestValidate_Accumulates(t *testing.T) {
	t.Parallel()

	res := validate.Validate(table(t,
		"T1,,2026-03-02,,,,,Scheduled,Public,,,,,",
		"T2,Good talk,2026-03-03,,,,,Scheduled,Public,,,,,",
		"T3,Another,someday,,,,,Unknown,Public,,,,,",
		"T4,Also good,2026-03-04,,,,,Completed,Private,,,,,",
	))

	if len(res.Talks) != 2 || res.Talks[0].ID != "T2" || res.Talks[1].ID != "T4" {
		t.Fatalf("Talks = %v, want T2 and T4", ids(res.Talks))
	}
	if len(res.Errors) != 3 {
		t.Fatalf("got %d errors, want 3:\n%v", len(res.Errors), res.Errors)
	}
	if len(res.Errors.ForID("T3")) != 2 {
		t.Errorf("T3 errors = %v, want status and talk_date", res.Errors.ForID("T3"))
	}

	err := res.Errors.Err()
	if !errors.Is(err, validate.ErrValidation) {
		t.Fatalf("Errors.Err() = %v, want ErrValidation", err)
	}
	lines := strings.Split(err.Error(), "\n")
	if len(lines) != 3 {
		t.Fatalf("summary has %d lines, want 3:\n%s", len(lines), err)
	}
	if lines[0] != "line 2: T1: title: cannot be blank" {
		t.Errorf("first summary line = %q", lines[0])
	}

	public := res.Public()
	if len(public) != 1 || public[0].ID != "T2" {
		t.Errorf("Public() = %v, want only T2", ids(public))
	}
}

func TestValidate_DuplicateIDs(t *testing.T) {
	t.Parallel()

	res := validate.Validate(table(t,
		"T1,First,2026-03-02,,,,,Scheduled,Public,,,,,",
		"T1,Second,2026-03-03,,,,,Scheduled,Public,,,,,",
	))

	if len(res.Talks) != 1 || res.Talks[0].Title != "First" {
		t.Fatalf("Talks = %+v, want only the first row", res.Talks)
	}
	if len(res.Errors) != 1 || res.Errors[0].Field != validate.FieldID || res.Errors[0].Line != 3 {
		t.Fatalf("Errors = %v, want one id error on line 3", res.Errors)
	}
	if !strings.Contains(res.Errors[0].Message, "line 2") {
		t.Errorf("message %q should point at the first use", res.Errors[0].Message)
	}
}

func TestErrors_NilWhenEmpty(t *testing.T) {
	t.Parallel()

	var errs validate.Errors
	if errs.Err() != nil {
		t.Error("empty Errors.Err() should be nil")
	}
	if errors.Is(errs, validate.ErrValidation) {
		t.Error("empty Errors should not match ErrValidation")
	}
}

func ids(talks []talk.Talk) []string {
	out := make([]string, len(talks))
	for i, t := range talks {
		out[i] = t.ID
	}
	return out
}
