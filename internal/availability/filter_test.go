package availability

import (
	"testing"
	"time"
)

func candidates(t *testing.T, startTimes ...string) []TimeRange {
	t.Helper()
	out := make([]TimeRange, len(startTimes))
	for i, s := range startTimes {
		start, err := ParseClock(s)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", s, err)
		}
		out[i] = TimeRange{Start: start, End: start + 30}
	}
	return out
}

func TestNormalizeStart(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"09:00", "09:00", true},
		{"09:00-09:30", "09:00", true},
		{"09:00 - 09:30", "09:00", true},
		{"  14:30 ", "14:30", true},
		{"9am", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := NormalizeStart(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("NormalizeStart(%q) = %q, %v; want %q, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestFilterBooked(t *testing.T) {
	open := FilterBooked(candidates(t, "09:00", "09:30", "10:00"), []string{"09:30"})
	got := starts(open)
	if len(got) != 2 || got[0] != "09:00" || got[1] != "10:00" {
		t.Fatalf("unexpected open slots: %v", got)
	}
}

func TestFilterBookedNormalizesDisplayStrings(t *testing.T) {
	// A booked list carrying display-formatted entries must still match.
	open := FilterBooked(candidates(t, "09:00", "09:30"), []string{"09:00 - 09:30"})
	got := starts(open)
	if len(got) != 1 || got[0] != "09:30" {
		t.Fatalf("display-formatted booked entry not filtered: %v", got)
	}
}

func TestFilterBookedIgnoresGarbage(t *testing.T) {
	open := FilterBooked(candidates(t, "09:00"), []string{"soon", ""})
	if len(open) != 1 {
		t.Fatalf("unparseable booked entries must be ignored, got %v", starts(open))
	}
}

func TestFilterPastToday(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2026, 3, 2, 9, 15, 0, 0, loc)
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	open := FilterPast(candidates(t, "09:00", "09:30"), today, now)
	got := starts(open)
	if len(got) != 1 || got[0] != "09:30" {
		t.Fatalf("expected only 09:30 to survive, got %v", got)
	}
}

func TestFilterPastOtherDateUntouched(t *testing.T) {
	now := time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	open := FilterPast(candidates(t, "09:00", "09:30"), tomorrow, now)
	if len(open) != 2 {
		t.Fatalf("future dates must keep all slots, got %v", starts(open))
	}
}

func TestFilterPastKeepsSlotStartingNow(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	open := FilterPast(candidates(t, "09:00", "09:30"), today, now)
	got := starts(open)
	if len(got) != 1 || got[0] != "09:30" {
		t.Fatalf("slot starting exactly now must be kept, got %v", got)
	}
}
