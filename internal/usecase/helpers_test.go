package usecase

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"healthsync/internal/domain/entity"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestValidateTimeSlots(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "single window", raw: "09:00-12:00", want: "09:00-12:00"},
		{name: "multiple windows", raw: "09:00-12:00,14:00-17:00", want: "09:00-12:00,14:00-17:00"},
		{name: "whitespace trimmed", raw: " 09:00-12:00 , 14:00-17:00 ", want: "09:00-12:00,14:00-17:00"},
		{name: "empty", raw: "", wantErr: ErrEmptyTimeSlots},
		{name: "only commas", raw: ",,", wantErr: ErrEmptyTimeSlots},
		{name: "malformed range", raw: "9am-12pm", wantErr: ErrInvalidTimeSlots},
		{name: "inverted range", raw: "17:00-09:00", wantErr: ErrInvalidTimeSlots},
		{name: "missing end", raw: "09:00-", wantErr: ErrInvalidTimeSlots},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validateTimeSlots(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("validateTimeSlots(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("validateTimeSlots(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestValidateDaysOfWeek(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "weekdays", raw: "1,2,3,4,5", want: "1,2,3,4,5"},
		{name: "single day", raw: "7", want: "7"},
		{name: "spaces trimmed", raw: " 1 , 3 ", want: "1,3"},
		{name: "zero rejected", raw: "0,1", wantErr: true},
		{name: "eight rejected", raw: "8", wantErr: true},
		{name: "non numeric", raw: "mon", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validateDaysOfWeek(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("validateDaysOfWeek(%q) expected error, got %q", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("validateDaysOfWeek(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("validateDaysOfWeek(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestValidateSpecificDates(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "single date", raw: "2026-09-15", want: "2026-09-15"},
		{name: "multiple dates", raw: "2026-09-15, 2026-09-22", want: "2026-09-15,2026-09-22"},
		{name: "bad format", raw: "15/09/2026", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validateSpecificDates(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("validateSpecificDates(%q) expected error, got %q", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("validateSpecificDates(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("validateSpecificDates(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestValidateTemplateRules(t *testing.T) {
	day := func(s string) *time.Time {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatalf("bad date %q: %v", s, err)
		}
		return &d
	}

	tests := []struct {
		name     string
		template entity.AvailabilityTemplate
		wantErr  error
	}{
		{
			name:     "daily needs nothing extra",
			template: entity.AvailabilityTemplate{ScheduleType: entity.ScheduleTypeDaily},
		},
		{
			name:     "weekly with days",
			template: entity.AvailabilityTemplate{ScheduleType: entity.ScheduleTypeWeekly, DaysOfWeek: "1,3,5"},
		},
		{
			name:     "weekly without days",
			template: entity.AvailabilityTemplate{ScheduleType: entity.ScheduleTypeWeekly},
			wantErr:  ErrInvalidDaysOfWeek,
		},
		{
			name: "date range with bounds",
			template: entity.AvailabilityTemplate{
				ScheduleType: entity.ScheduleTypeDateRange,
				StartDate:    day("2026-09-01"),
				EndDate:      day("2026-09-30"),
			},
		},
		{
			name: "date range missing end",
			template: entity.AvailabilityTemplate{
				ScheduleType: entity.ScheduleTypeDateRange,
				StartDate:    day("2026-09-01"),
			},
			wantErr: ErrMissingDateRange,
		},
		{
			name:     "specific dates present",
			template: entity.AvailabilityTemplate{ScheduleType: entity.ScheduleTypeSpecificDates, SpecificDates: "2026-09-15"},
		},
		{
			name:     "specific dates empty",
			template: entity.AvailabilityTemplate{ScheduleType: entity.ScheduleTypeSpecificDates},
			wantErr:  ErrMissingSpecificDates,
		},
		{
			name:     "unknown type",
			template: entity.AvailabilityTemplate{ScheduleType: "MONTHLY"},
			wantErr:  ErrInvalidScheduleType,
		},
		{
			// A type switch on an otherwise valid template, the shape a
			// partial update can produce when only schedule_type changes.
			name:     "daily switched to weekly keeps no days",
			template: entity.AvailabilityTemplate{ScheduleType: entity.ScheduleTypeWeekly, TimeSlots: "09:00-12:00"},
			wantErr:  ErrInvalidDaysOfWeek,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTemplateRules(&tt.template)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateTemplateRules() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDuplicateKeyMatchesSlotIndex(t *testing.T) {
	slotErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_appointments_slot"}
	if !isDuplicateKeyError(slotErr, "idx_appointments_slot") {
		t.Fatal("unique violation on the slot index must be recognized")
	}
	codeErr := &pgconn.PgError{Code: "23505", ConstraintName: "appointments_booking_code_key"}
	if isDuplicateKeyError(codeErr, "idx_appointments_slot") {
		t.Fatal("a booking code collision is not a slot conflict")
	}
	fkErr := &pgconn.PgError{Code: "23503", ConstraintName: "idx_appointments_slot"}
	if isDuplicateKeyError(fkErr, "idx_appointments_slot") {
		t.Fatal("non-unique violations must not match")
	}
}

func TestNormalizeStarts(t *testing.T) {
	got := normalizeStarts([]string{"09:00", "14:30 - 15:00", "not-a-time", " 09:05 "})
	want := []string{"09:00", "14:30", "09:05"}
	if len(got) != len(want) {
		t.Fatalf("normalizeStarts() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("normalizeStarts() = %v, want %v", got, want)
		}
	}
}

func TestGenerateBookingCode(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^AP-20260915-[0-9A-F]{6}$`)

	code := generateBookingCode(date)
	if !pattern.MatchString(code) {
		t.Fatalf("generateBookingCode() = %q, want match for %s", code, pattern)
	}

	// Random suffix should make collisions over a handful of draws unlikely.
	seen := map[string]bool{code: true}
	for i := 0; i < 5; i++ {
		seen[generateBookingCode(date)] = true
	}
	if len(seen) < 2 {
		t.Errorf("expected distinct booking codes, got only %v", seen)
	}
}
