package talk_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/alnah/go-talksite/internal/talk"
)

// ---------------------------------------------------------------------------
// TestNormalizeTags - Comma splitting, case folding, dedup
// ---------------------------------------------------------------------------

func TestNormalizeTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want talk.Tags
	}{
		{name: "mixed case duplicates", in: "AI, ai, Robotics", want: talk.Tags{"ai", "robotics"}},
		{name: "empty", in: "", want: nil},
		{name: "blank parts dropped", in: " , astro,, ", want: talk.Tags{"astro"}},
		{name: "inner whitespace collapsed", in: "Machine   Learning, ML", want: talk.Tags{"machine learning", "ml"}},
		{name: "first seen order kept", in: "b, a, B", want: talk.Tags{"b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := talk.NormalizeTags(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTags(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeTags_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"AI, ai, Robotics", "x", "", "Deep  Learning, deep learning, GPU"}
	for _, in := range inputs {
		once := talk.NormalizeTags(in)
		twice := talk.NormalizeTags(once.String())
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("normalizing %q twice: %#v then %#v", in, once, twice)
		}
	}
}

func TestTags_Has(t *testing.T) {
	t.Parallel()

	tags := talk.NormalizeTags("AI, Robotics")
	if !tags.Has("ai") || !tags.Has("ROBOTICS") {
		t.Errorf("Has() missed a member of %v", tags)
	}
	if tags.Has("astro") {
		t.Error("Has(astro) = true, want false")
	}
}

// ---------------------------------------------------------------------------
// TestParseStatus / TestParseVisibility / TestParseTypes - Closed enums
// ---------------------------------------------------------------------------

func TestParseStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    talk.Status
		wantErr bool
	}{
		{in: "Scheduled", want: talk.StatusScheduled},
		{in: "  completed ", want: talk.StatusCompleted},
		{in: "Canceled", want: talk.StatusCancelled},
		{in: "cancelled", want: talk.StatusCancelled},
		{in: "TENTATIVE", want: talk.StatusTentative},
		{in: "", want: talk.StatusUnspecified},
		{in: "postponed", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := talk.ParseStatus(tt.in)
			if tt.wantErr {
				if !errors.Is(err, talk.ErrUnknownStatus) {
					t.Fatalf("error = %v, want ErrUnknownStatus", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseVisibility(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]talk.Visibility{
		"Public":  talk.VisibilityPublic,
		"":        talk.VisibilityPublic,
		"private": talk.VisibilityPrivate,
		"PRIVATE": talk.VisibilityPrivate,
	} {
		got, err := talk.ParseVisibility(in)
		if err != nil {
			t.Fatalf("ParseVisibility(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseVisibility(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := talk.ParseVisibility("internal"); !errors.Is(err, talk.ErrUnknownVisibility) {
		t.Errorf("error = %v, want ErrUnknownVisibility", err)
	}
}

func TestParseTypes(t *testing.T) {
	t.Parallel()

	got, err := talk.ParseTypes("Oral, panel, ORAL, soc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []talk.Type{talk.TypeOral, talk.TypePanel, talk.TypeSOC}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseTypes = %v, want %v", got, want)
	}

	_, err = talk.ParseTypes("oral, keynote, workshop")
	if !errors.Is(err, talk.ErrUnknownType) {
		t.Fatalf("error = %v, want ErrUnknownType", err)
	}

	empty, err := talk.ParseTypes("")
	if err != nil || len(empty) != 0 {
		t.Errorf("ParseTypes(\"\") = %v, %v; want empty, nil", empty, err)
	}
}

func TestType_Strings(t *testing.T) {
	t.Parallel()

	for _, typ := range talk.Types {
		back, err := talk.ParseType(typ.String())
		if err != nil || back != typ {
			t.Errorf("ParseType(%q) = %v, %v; want %v", typ.String(), back, err, typ)
		}
	}
	if talk.TypeSOC.String() != "SOC" || talk.TypeSOC.Slug() != "soc" {
		t.Errorf("SOC spelling: %q / %q", talk.TypeSOC.String(), talk.TypeSOC.Slug())
	}
}

// ---------------------------------------------------------------------------
// TestParseDate - Calendar dates
// ---------------------------------------------------------------------------

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := talk.ParseDate("2026-03-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != talk.NewDate(2026, time.March, 10) {
		t.Errorf("ParseDate = %v", d)
	}

	compact, err := talk.ParseDate("20260310")
	if err != nil || compact != d {
		t.Errorf("compact form = %v, %v; want %v", compact, err, d)
	}

	empty, err := talk.ParseDate("   ")
	if err != nil || !empty.IsZero() {
		t.Errorf("blank = %v, %v; want zero, nil", empty, err)
	}

	if _, err := talk.ParseDate("not-a-date"); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestDate_Compare(t *testing.T) {
	t.Parallel()

	a := talk.NewDate(2026, time.March, 1)
	b := talk.NewDate(2026, time.March, 2)
	if !a.Before(b) || b.Before(a) || a.Compare(a) != 0 {
		t.Error("date ordering is wrong")
	}
	if !(talk.Date{}).Before(a) {
		t.Error("absent date should sort first")
	}
	if (talk.Date{}).String() != "" || a.String() != "2026-03-01" {
		t.Errorf("String() = %q / %q", (talk.Date{}).String(), a.String())
	}
}

// ---------------------------------------------------------------------------
// TestNorm / TestNormText / TestSlug - Cell normalization
// ---------------------------------------------------------------------------

func TestNorm(t *testing.T) {
	t.Parallel()

	if got := talk.Norm("  hello   world  "); got != "hello world" {
		t.Errorf("Norm = %q", got)
	}
	if got := talk.Norm(""); got != "" {
		t.Errorf("Norm(\"\") = %q", got)
	}
}

func TestNormText(t *testing.T) {
	t.Parallel()

	in := "  First   line \r\nsecond line\n\n\n\nnew  paragraph\n"
	want := "First line\nsecond line\n\nnew paragraph"
	if got := talk.NormText(in); got != want {
		t.Errorf("NormText = %q, want %q", got, want)
	}
}

func TestSlug(t *testing.T) {
	t.Parallel()

	if got := talk.Slug("ml"); got != "ml" {
		t.Errorf("Slug(ml) = %q", got)
	}
	if got := talk.Slug(""); got != "item" {
		t.Errorf("Slug(\"\") = %q, want item", got)
	}
}

// ---------------------------------------------------------------------------
// TestTalk_Helpers - Display helpers and ordering
// ---------------------------------------------------------------------------

func TestTalk_Helpers(t *testing.T) {
	t.Parallel()

	tk := talk.Talk{
		ID:        "t1",
		City:      "Phoenix",
		StartTime: "10:00",
		TimeZone:  "PT",
		Types:     []talk.Type{talk.TypeOral, talk.TypePanel},
	}
	if tk.DisplayTitle() != "t1" {
		t.Errorf("DisplayTitle = %q", tk.DisplayTitle())
	}
	if tk.Place() != "Phoenix" {
		t.Errorf("Place = %q", tk.Place())
	}
	if tk.When() != "10:00 PT" {
		t.Errorf("When = %q", tk.When())
	}
	if tk.TypeLabel() != "Oral, Panel" {
		t.Errorf("TypeLabel = %q", tk.TypeLabel())
	}
	if !tk.HasType(talk.TypePanel) || tk.HasType(talk.TypePoster) {
		t.Error("HasType is wrong")
	}
	if (talk.Talk{}).TimeKey() != "99:99" {
		t.Error("missing time should sort last")
	}
}

func TestLess(t *testing.T) {
	t.Parallel()

	early := talk.Talk{ID: "a", TalkDate: talk.NewDate(2026, time.January, 5), StartTime: "09:00"}
	late := talk.Talk{ID: "b", TalkDate: talk.NewDate(2026, time.January, 5), StartTime: "14:00"}
	untimed := talk.Talk{ID: "c", TalkDate: talk.NewDate(2026, time.January, 5)}

	if !talk.Less(early, late) || talk.Less(late, early) {
		t.Error("time of day should order same-day talks")
	}
	if !talk.Less(late, untimed) {
		t.Error("untimed talks should sort after timed ones")
	}
}
