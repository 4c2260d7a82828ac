package dateutil_test

import (
	"errors"
	"testing"
	"time"

	"github.com/alnah/go-talksite/internal/dateutil"
)

// ---------------------------------------------------------------------------
// TestParseCalendarDate - Spreadsheet date layouts
// ---------------------------------------------------------------------------

func TestParseCalendarDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{name: "iso", in: "2026-03-10", want: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
		{name: "compact", in: "20260310", want: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
		{name: "surrounding space", in: " 2026-03-10 ", want: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
		{name: "empty", in: "", wantErr: true},
		{name: "text", in: "TBD", wantErr: true},
		{name: "out of range day", in: "2026-02-30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := dateutil.ParseCalendarDate(tt.in)
			if tt.wantErr {
				if !errors.Is(err, dateutil.ErrInvalidDate) {
					t.Fatalf("error = %v, want ErrInvalidDate", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestNormalizeClock - H:MM to HH:MM
// ---------------------------------------------------------------------------

func TestNormalizeClock(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"9:30":   "09:30",
		"14:05":  "14:05",
		"":       "",
		"1025":   "1025",
		"25:00":  "25:00",
		"9:30am": "9:30am",
	}
	for in, want := range tests {
		if got := dateutil.NormalizeClock(in); got != want {
			t.Errorf("NormalizeClock(%q) = %q, want %q", in, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestLayout - Display format tokens
// ---------------------------------------------------------------------------

func TestLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr bool
	}{
		{name: "long preset", format: "long", want: "January 2, 2006"},
		{name: "iso preset", format: "ISO", want: "2006-01-02"},
		{name: "tokens", format: "DD/MM/YY", want: "02/01/06"},
		{name: "short month", format: "D MMM YYYY", want: "2 Jan 2006"},
		{name: "bracket literal", format: "[Day] D", want: "Day 2"},
		{name: "empty", format: "", wantErr: true},
		{name: "unclosed bracket", format: "[D", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := dateutil.Layout(tt.format)
			if tt.wantErr {
				if !errors.Is(err, dateutil.ErrInvalidDateFormat) {
					t.Fatalf("error = %v, want ErrInvalidDateFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Layout(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveBuildDate - Build date override
// ---------------------------------------------------------------------------

func TestResolveBuildDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 19, 17, 45, 0, 0, time.FixedZone("X", 3600))
	want := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	for _, v := range []string{"", "today", "TODAY"} {
		got, err := dateutil.ResolveBuildDate(v, now)
		if err != nil || !got.Equal(want) {
			t.Errorf("ResolveBuildDate(%q) = %v, %v; want %v", v, got, err, want)
		}
	}

	got, err := dateutil.ResolveBuildDate("2025-01-31", now)
	if err != nil || !got.Equal(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("explicit date = %v, %v", got, err)
	}

	if _, err := dateutil.ResolveBuildDate("yesterday", now); err == nil {
		t.Error("expected error for unparseable build date")
	}
}
