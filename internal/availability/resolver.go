package availability

import (
	"strings"
	"time"
)

// ScheduleType classifies how an availability template recurs.
type ScheduleType string

const (
	ScheduleTypeDaily         ScheduleType = "DAILY"
	ScheduleTypeWeekly        ScheduleType = "WEEKLY"
	ScheduleTypeDateRange     ScheduleType = "DATE_RANGE"
	ScheduleTypeSpecificDates ScheduleType = "SPECIFIC_DATES"
)

// ExceptionType classifies a one-off override for a calendar date.
type ExceptionType string

const (
	ExceptionTypeUnavailable ExceptionType = "UNAVAILABLE"
	ExceptionTypeCustomHours ExceptionType = "CUSTOM_HOURS"
)

// DaySchedule is a doctor's recurring availability at one hospital on one
// weekday ("MONDAY".."SUNDAY").
type DaySchedule struct {
	DayOfWeek string
	Windows   []TimeRange
}

// Template is a recurring availability rule owned by a doctor.
type Template struct {
	ScheduleType  ScheduleType
	DaysOfWeek    map[int]bool    // 1=Monday .. 7=Sunday, WEEKLY only
	StartDate     time.Time       // DATE_RANGE only
	EndDate       time.Time       // DATE_RANGE only
	SpecificDates map[string]bool // "2006-01-02" keys, SPECIFIC_DATES only
	Windows       []TimeRange
	IsActive      bool
	Priority      int
}

// Exception overrides all templates and day schedules for one date.
type Exception struct {
	Date    time.Time
	Type    ExceptionType
	Windows []TimeRange // empty when UNAVAILABLE
	Reason  string
}

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "MONDAY",
	time.Tuesday:   "TUESDAY",
	time.Wednesday: "WEDNESDAY",
	time.Thursday:  "THURSDAY",
	time.Friday:    "FRIDAY",
	time.Saturday:  "SATURDAY",
	time.Sunday:    "SUNDAY",
}

// WeekdayName returns the canonical uppercase weekday of a date-only value.
// Dates carry no meaningful time of day, so the weekday is read from UTC
// calendar fields; interpreting them through a local offset could shift the
// weekday across a timezone boundary.
func WeekdayName(date time.Time) string {
	return weekdayNames[date.UTC().Weekday()]
}

// WeekdayNumber maps a date to the 1=Monday..7=Sunday encoding used by the
// template day sets.
func WeekdayNumber(date time.Time) int {
	wd := int(date.UTC().Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// ParseDaysOfWeek parses a "1,3,5" day set string (1=Monday..7=Sunday).
func ParseDaysOfWeek(s string) map[int]bool {
	days := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if len(part) == 1 && part[0] >= '1' && part[0] <= '7' {
			days[int(part[0]-'0')] = true
		}
	}
	return days
}

// sameDate compares two date-only values by UTC calendar fields.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// appliesOn reports whether a template grants availability on the date.
func (t Template) appliesOn(date time.Time) bool {
	if !t.IsActive {
		return false
	}
	switch t.ScheduleType {
	case ScheduleTypeDaily:
		return true
	case ScheduleTypeWeekly:
		return t.DaysOfWeek[WeekdayNumber(date)]
	case ScheduleTypeDateRange:
		d := date.UTC().Truncate(24 * time.Hour)
		return !d.Before(t.StartDate.UTC().Truncate(24*time.Hour)) &&
			!d.After(t.EndDate.UTC().Truncate(24*time.Hour))
	case ScheduleTypeSpecificDates:
		return t.SpecificDates[date.UTC().Format("2006-01-02")]
	default:
		return false
	}
}

// Resolve computes the candidate slot list for one doctor/hospital/date,
// before conflict filtering.
//
// A date exception takes absolute precedence: UNAVAILABLE yields nothing,
// CUSTOM_HOURS yields exactly the exception's windows. Otherwise the windows
// of every day schedule and applicable template for the date's weekday are
// expanded in declaration order. Overlapping sources can emit the same
// bucket twice; duplicates are collapsed by normalized start/end, keeping
// the first occurrence.
func Resolve(schedules []DaySchedule, templates []Template, exceptions []Exception, date time.Time, slotMinutes int) []TimeRange {
	if slotMinutes <= 0 {
		slotMinutes = DefaultSlotMinutes
	}

	for _, ex := range exceptions {
		if !sameDate(ex.Date, date) {
			continue
		}
		if ex.Type == ExceptionTypeUnavailable {
			return nil
		}
		return expand(ex.Windows, slotMinutes)
	}

	weekday := WeekdayName(date)
	var windows []TimeRange
	for _, s := range schedules {
		if strings.EqualFold(s.DayOfWeek, weekday) {
			windows = append(windows, s.Windows...)
		}
	}
	for _, t := range templates {
		if t.appliesOn(date) {
			windows = append(windows, t.Windows...)
		}
	}
	return expand(windows, slotMinutes)
}

func expand(windows []TimeRange, slotMinutes int) []TimeRange {
	var slots []TimeRange
	seen := make(map[TimeRange]bool)
	for _, w := range windows {
		for _, b := range w.Buckets(slotMinutes) {
			if seen[b] {
				continue
			}
			seen[b] = true
			slots = append(slots, b)
		}
	}
	return slots
}
