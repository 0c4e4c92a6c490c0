package timeutil

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseAndFormatDate(t *testing.T) {
	parsed, err := ParseDate("2024-02-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := FormatDate(parsed); got != "2024-02-03" {
		t.Fatalf("expected 2024-02-03, got %s", got)
	}
	if _, err := ParseDate("not-a-date"); err == nil {
		t.Fatalf("expected error for invalid date")
	}
}

func TestParseDayAcceptsTimestamps(t *testing.T) {
	cases := map[string]Date{
		"2024-01-05":                {2024, time.January, 5},
		"2024-01-05T00:00:00.000Z":  {2024, time.January, 5},
		" 2023-12-31T19:30:00Z ":    {2023, time.December, 31},
		"2024-01-05T23:30:00-05:00": {2024, time.January, 5},
		"2024-01-05T19:00:00":       {2024, time.January, 5},
	}
	for input, want := range cases {
		got, err := ParseDay(input)
		if err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %v, got %v", input, want, got)
		}
	}

	for _, bad := range []string{"", "2024-13-01", "yesterday", "2024-01-01 definitely not a date", "2024-01-01T", "2024-01-01Z"} {
		if _, err := ParseDay(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestDateOrderingAndArithmetic(t *testing.T) {
	a := MustParseDay("2024-02-28")
	b := a.AddDays(2)
	if b.String() != "2024-03-01" {
		t.Fatalf("expected leap-year rollover to 2024-03-01, got %s", b)
	}
	if !a.Before(b) || !b.After(a) || a.After(a) {
		t.Fatalf("unexpected ordering between %s and %s", a, b)
	}
	if got := a.DaysUntil(b); got != 2 {
		t.Fatalf("expected 2 days, got %d", got)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	type payload struct {
		Date Date `json:"date"`
	}
	raw, err := json.Marshal(payload{Date: MustParseDay("2024-01-01")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"date":"2024-01-01"}` {
		t.Fatalf("unexpected json %s", raw)
	}
	var decoded payload
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Date != MustParseDay("2024-01-01") {
		t.Fatalf("unexpected decoded date %v", decoded.Date)
	}
}
