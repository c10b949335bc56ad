package daykey

import (
	"testing"
	"time"
)

func TestMakeParse_RoundTrip(t *testing.T) {
	dates := []string{
		"2025-01-01",
		"2024-02-29", // leap day
		"2025-12-31",
		"2000-02-29",
	}

	for _, key := range dates {
		parsed, ok := Parse(key)
		if !ok {
			t.Fatalf("Parse(%q) failed", key)
		}
		if got := Make(parsed); got != key {
			t.Errorf("round trip of %q produced %q", key, got)
		}
	}
}

func TestMake_UsesLocalCalendarDay(t *testing.T) {
	// 2025-06-15 23:30 in Auckland is still June 15 there, but June 14 in
	// Honolulu. Make must follow the time's own location.
	auckland, err := time.LoadLocation("Pacific/Auckland")
	if err != nil {
		t.Skipf("timezone database unavailable: %v", err)
	}
	honolulu, err := time.LoadLocation("Pacific/Honolulu")
	if err != nil {
		t.Skipf("timezone database unavailable: %v", err)
	}

	instant := time.Date(2025, 6, 15, 23, 30, 0, 0, auckland)

	if got := Make(instant); got != "2025-06-15" {
		t.Errorf("expected 2025-06-15 in Auckland, got %s", got)
	}
	if got := Make(instant.In(honolulu)); got != "2025-06-14" {
		t.Errorf("expected 2025-06-14 in Honolulu, got %s", got)
	}
}

func TestParse_Malformed(t *testing.T) {
	bad := []string{"", "not-a-date", "2025-13-01", "2025-02-30", "20250101"}
	for _, key := range bad {
		if _, ok := Parse(key); ok {
			t.Errorf("Parse(%q) unexpectedly succeeded", key)
		}
	}
}

func TestPrevious_MonthAndYearBoundaries(t *testing.T) {
	cases := map[string]string{
		"2025-03-01": "2025-02-28",
		"2024-03-01": "2024-02-29", // leap year
		"2025-01-01": "2024-12-31",
		"2025-01-16": "2025-01-15",
	}

	for key, want := range cases {
		if got := Previous(key); got != want {
			t.Errorf("Previous(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestPrevious_MalformedKeyFallsBackToItself(t *testing.T) {
	if got := Previous("garbage"); got != "garbage" {
		t.Errorf("Previous on malformed key should be a no-op, got %q", got)
	}
}

func TestPrevious_TwiceIsTwoDays(t *testing.T) {
	key := "2025-03-02"
	got := Previous(Previous(key))
	if got != "2025-02-28" {
		t.Errorf("Previous(Previous(%q)) = %q, want 2025-02-28", key, got)
	}
}

func TestNext_InverseOfPrevious(t *testing.T) {
	keys := []string{"2025-02-28", "2024-02-28", "2024-12-31"}
	for _, key := range keys {
		if got := Previous(Next(key)); got != key {
			t.Errorf("Previous(Next(%q)) = %q", key, got)
		}
	}
}

func TestWeekStart_AlwaysMonday(t *testing.T) {
	cases := map[string]string{
		"2025-01-13": "2025-01-13", // Monday
		"2025-01-15": "2025-01-13", // Wednesday
		"2025-01-19": "2025-01-13", // Sunday belongs to the prior Monday's week
		"2025-01-20": "2025-01-20", // next Monday
	}

	for key, want := range cases {
		if got := WeekStart(key); got != want {
			t.Errorf("WeekStart(%q) = %q, want %q", key, got, want)
		}
	}
}
