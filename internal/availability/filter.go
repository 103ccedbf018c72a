package availability

import (
	"strings"
	"time"
)

// NormalizeStart extracts the "HH:MM" start key from a raw booked-slot
// string. Backends and older clients report booked slots in several shapes
// ("09:00", "09:00-09:30", "09:00 - 09:30"); comparing raw strings silently
// fails to filter, so every comparison key is reduced to its start time.
func NormalizeStart(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if i := strings.IndexAny(s, " -"); i >= 0 {
		s = s[:i]
	}
	c, err := ParseClock(s)
	if err != nil {
		return "", false
	}
	return c.String(), true
}

// FilterBooked removes candidates whose start time appears in the booked
// list. Unparseable booked entries are ignored.
func FilterBooked(candidates []TimeRange, booked []string) []TimeRange {
	if len(booked) == 0 {
		return candidates
	}
	taken := make(map[string]bool, len(booked))
	for _, b := range booked {
		if key, ok := NormalizeStart(b); ok {
			taken[key] = true
		}
	}
	var open []TimeRange
	for _, c := range candidates {
		if !taken[c.Start.String()] {
			open = append(open, c)
		}
	}
	return open
}

// FilterPast removes candidates that already started when the target date is
// today in now's calendar. This is an advisory filter for display; the
// authoritative accept/reject decision happens at submission time where the
// server clock rules.
func FilterPast(candidates []TimeRange, date time.Time, now time.Time) []TimeRange {
	y, m, d := now.Date()
	dy, dm, dd := date.UTC().Date()
	if y != dy || m != dm || d != dd {
		return candidates
	}
	cutoff := Clock(now.Hour()*60 + now.Minute())
	var open []TimeRange
	for _, c := range candidates {
		if c.Start >= cutoff {
			open = append(open, c)
		}
	}
	return open
}
