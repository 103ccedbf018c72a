package availability

import (
	"testing"
	"time"
)

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func weeklyTemplate(t *testing.T, days string, windows string) Template {
	t.Helper()
	ranges, err := ParseRangeList(windows)
	if err != nil {
		t.Fatalf("ParseRangeList(%q): %v", windows, err)
	}
	return Template{
		ScheduleType: ScheduleTypeWeekly,
		DaysOfWeek:   ParseDaysOfWeek(days),
		Windows:      ranges,
		IsActive:     true,
	}
}

func starts(slots []TimeRange) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Start.String()
	}
	return out
}

func TestWeekdayName(t *testing.T) {
	if got := WeekdayName(monday); got != "MONDAY" {
		t.Fatalf("WeekdayName = %q, want MONDAY", got)
	}
	sunday := monday.AddDate(0, 0, 6)
	if got := WeekdayName(sunday); got != "SUNDAY" {
		t.Fatalf("WeekdayName = %q, want SUNDAY", got)
	}
	// A date-only value must not shift weekday through a local offset:
	// 23:30 UTC Monday is already Tuesday in UTC+1 locales.
	late := time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC)
	if got := WeekdayName(late); got != "MONDAY" {
		t.Fatalf("WeekdayName = %q, want MONDAY", got)
	}
}

func TestWeekdayNumber(t *testing.T) {
	if got := WeekdayNumber(monday); got != 1 {
		t.Fatalf("WeekdayNumber(monday) = %d, want 1", got)
	}
	if got := WeekdayNumber(monday.AddDate(0, 0, 6)); got != 7 {
		t.Fatalf("WeekdayNumber(sunday) = %d, want 7", got)
	}
}

func TestResolveWeeklyTemplate(t *testing.T) {
	tpl := weeklyTemplate(t, "1", "09:00-10:00")
	slots := Resolve(nil, []Template{tpl}, nil, monday, 30)
	got := starts(slots)
	if len(got) != 2 || got[0] != "09:00" || got[1] != "09:30" {
		t.Fatalf("unexpected slots: %v", got)
	}

	// Tuesday is not in the day set.
	if slots := Resolve(nil, []Template{tpl}, nil, monday.AddDate(0, 0, 1), 30); len(slots) != 0 {
		t.Fatalf("expected no slots on tuesday, got %v", starts(slots))
	}
}

func TestResolveUnavailableExceptionWinsOverTemplate(t *testing.T) {
	tpl := weeklyTemplate(t, "1", "09:00-17:00")
	ex := Exception{Date: monday, Type: ExceptionTypeUnavailable, Reason: "conference"}
	if slots := Resolve(nil, []Template{tpl}, []Exception{ex}, monday, 30); len(slots) != 0 {
		t.Fatalf("expected zero slots under UNAVAILABLE exception, got %v", starts(slots))
	}
}

func TestResolveCustomHoursExceptionIgnoresTemplates(t *testing.T) {
	tpl := weeklyTemplate(t, "1", "09:00-17:00")
	windows, err := ParseRangeList("14:00-15:00")
	if err != nil {
		t.Fatalf("ParseRangeList: %v", err)
	}
	ex := Exception{Date: monday, Type: ExceptionTypeCustomHours, Windows: windows}
	got := starts(Resolve(nil, []Template{tpl}, []Exception{ex}, monday, 30))
	if len(got) != 2 || got[0] != "14:00" || got[1] != "14:30" {
		t.Fatalf("expected exactly 14:00,14:30; got %v", got)
	}
}

func TestResolveExceptionOnOtherDateDoesNotApply(t *testing.T) {
	tpl := weeklyTemplate(t, "1", "09:00-10:00")
	ex := Exception{Date: monday.AddDate(0, 0, 7), Type: ExceptionTypeUnavailable}
	if slots := Resolve(nil, []Template{tpl}, []Exception{ex}, monday, 30); len(slots) != 2 {
		t.Fatalf("exception on another date must not apply, got %v", starts(slots))
	}
}

func TestResolveDaySchedule(t *testing.T) {
	windows, err := ParseRangeList("09:00-09:30,10:00-10:30")
	if err != nil {
		t.Fatalf("ParseRangeList: %v", err)
	}
	ds := DaySchedule{DayOfWeek: "MONDAY", Windows: windows}
	got := starts(Resolve([]DaySchedule{ds}, nil, nil, monday, 30))
	if len(got) != 2 || got[0] != "09:00" || got[1] != "10:00" {
		t.Fatalf("unexpected slots: %v", got)
	}

	if slots := Resolve([]DaySchedule{ds}, nil, nil, monday.AddDate(0, 0, 2), 30); len(slots) != 0 {
		t.Fatalf("wednesday has no schedule, got %v", starts(slots))
	}
}

func TestResolveDedupesOverlappingSources(t *testing.T) {
	a := weeklyTemplate(t, "1", "09:00-11:00")
	b := weeklyTemplate(t, "1", "10:00-12:00")
	got := starts(Resolve(nil, []Template{a, b}, nil, monday, 30))
	want := []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}
	if len(got) != len(want) {
		t.Fatalf("expected %d distinct slots, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slot %d = %q, want %q (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestResolveDeclarationOrderAcrossWindows(t *testing.T) {
	// Windows expand in declaration order; no cross-window sorting.
	tpl := weeklyTemplate(t, "1", "14:00-15:00,09:00-10:00")
	got := starts(Resolve(nil, []Template{tpl}, nil, monday, 30))
	want := []string{"14:00", "14:30", "09:00", "09:30"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slot %d = %q, want %q (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestResolveInactiveTemplateIgnored(t *testing.T) {
	tpl := weeklyTemplate(t, "1", "09:00-10:00")
	tpl.IsActive = false
	if slots := Resolve(nil, []Template{tpl}, nil, monday, 30); len(slots) != 0 {
		t.Fatalf("inactive template must not contribute, got %v", starts(slots))
	}
}

func TestResolveDailyAndDateScopedTemplates(t *testing.T) {
	windows, _ := ParseRangeList("08:00-09:00")
	daily := Template{ScheduleType: ScheduleTypeDaily, Windows: windows, IsActive: true}
	if slots := Resolve(nil, []Template{daily}, nil, monday, 30); len(slots) != 2 {
		t.Fatalf("daily template should apply every day, got %v", starts(slots))
	}

	ranged := Template{
		ScheduleType: ScheduleTypeDateRange,
		StartDate:    monday,
		EndDate:      monday.AddDate(0, 0, 4),
		Windows:      windows,
		IsActive:     true,
	}
	if slots := Resolve(nil, []Template{ranged}, nil, monday.AddDate(0, 0, 2), 30); len(slots) != 2 {
		t.Fatalf("date inside range should apply, got %v", starts(slots))
	}
	if slots := Resolve(nil, []Template{ranged}, nil, monday.AddDate(0, 0, 7), 30); len(slots) != 0 {
		t.Fatalf("date outside range must not apply, got %v", starts(slots))
	}

	specific := Template{
		ScheduleType:  ScheduleTypeSpecificDates,
		SpecificDates: map[string]bool{"2026-03-02": true},
		Windows:       windows,
		IsActive:      true,
	}
	if slots := Resolve(nil, []Template{specific}, nil, monday, 30); len(slots) != 2 {
		t.Fatalf("specific date should apply, got %v", starts(slots))
	}
	if slots := Resolve(nil, []Template{specific}, nil, monday.AddDate(0, 0, 1), 30); len(slots) != 0 {
		t.Fatalf("other dates must not apply, got %v", starts(slots))
	}
}

func TestResolveCustomSlotDuration(t *testing.T) {
	tpl := weeklyTemplate(t, "1", "09:00-10:00")
	got := starts(Resolve(nil, []Template{tpl}, nil, monday, 20))
	if len(got) != 3 || got[2] != "09:40" {
		t.Fatalf("expected 20-minute buckets 09:00,09:20,09:40; got %v", got)
	}
}

func TestParseDaysOfWeek(t *testing.T) {
	days := ParseDaysOfWeek("1, 3,7")
	if !days[1] || !days[3] || !days[7] || days[2] {
		t.Fatalf("unexpected day set: %v", days)
	}
	if len(ParseDaysOfWeek("")) != 0 {
		t.Fatal("empty string should parse to empty set")
	}
}
