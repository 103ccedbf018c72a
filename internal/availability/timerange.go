package availability

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultSlotMinutes is the consultation slot length used when a doctor
// has no appointment settings row.
const DefaultSlotMinutes = 30

var (
	ErrInvalidClock = errors.New("invalid clock value, use HH:MM")
	ErrInvalidRange = errors.New("invalid time range, use HH:MM-HH:MM")
)

// Clock is a time of day in minutes since midnight.
type Clock int

// ParseClock parses a 24h "HH:MM" string.
func ParseClock(s string) (Clock, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidClock
	}
	h, m := 0, 0
	for _, c := range s[:2] {
		if c < '0' || c > '9' {
			return 0, ErrInvalidClock
		}
		h = h*10 + int(c-'0')
	}
	for _, c := range s[3:] {
		if c < '0' || c > '9' {
			return 0, ErrInvalidClock
		}
		m = m*10 + int(c-'0')
	}
	if h > 23 || m > 59 {
		return 0, ErrInvalidClock
	}
	return Clock(h*60 + m), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// TimeRange is a half-open interval [Start, End) within one day.
type TimeRange struct {
	Start Clock
	End   Clock
}

func (r TimeRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// ParseRange parses "HH:MM-HH:MM".
func ParseRange(s string) (TimeRange, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return TimeRange{}, ErrInvalidRange
	}
	start, err := ParseClock(strings.TrimSpace(parts[0]))
	if err != nil {
		return TimeRange{}, ErrInvalidRange
	}
	end, err := ParseClock(strings.TrimSpace(parts[1]))
	if err != nil {
		return TimeRange{}, ErrInvalidRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// ParseRangeList parses a comma-joined window string such as
// "09:00-12:00,14:00-17:00". Empty input yields no ranges.
func ParseRangeList(s string) ([]TimeRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var ranges []TimeRange
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		r, err := ParseRange(part)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

// FormatRangeList is the inverse of ParseRangeList.
func FormatRangeList(ranges []TimeRange) string {
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}

// Buckets splits the range into contiguous sub-intervals of size minutes.
// A trailing partial bucket that would cross End is dropped, not truncated.
// Returns nil when Start >= End or size is not positive.
func (r TimeRange) Buckets(size int) []TimeRange {
	if size <= 0 || r.Start >= r.End {
		return nil
	}
	var buckets []TimeRange
	for cur := r.Start; cur+Clock(size) <= r.End; cur += Clock(size) {
		buckets = append(buckets, TimeRange{Start: cur, End: cur + Clock(size)})
	}
	return buckets
}
