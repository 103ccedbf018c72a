package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HospitalSchedule binds a doctor to a hospital on one weekday with the
// time windows they consult there. TimeSlots holds a comma-joined window
// string such as "09:00-09:30,10:00-12:00". One row per
// (doctor, hospital, day-of-week).
type HospitalSchedule struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID        uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_doctor_hospital_day" json:"doctor_id"`
	HospitalID      int64           `gorm:"not null;index;uniqueIndex:idx_doctor_hospital_day" json:"hospital_id"`
	DayOfWeek       string          `gorm:"type:varchar(10);not null;uniqueIndex:idx_doctor_hospital_day" json:"day_of_week"`
	TimeSlots       string          `gorm:"type:text;not null" json:"time_slots"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor   DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Hospital Hospital      `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}

func (HospitalSchedule) TableName() string {
	return "hospital_schedules"
}

// Weekday names as stored in DayOfWeek
var WeekdayNames = []string{
	"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY",
}

// IsValidWeekday reports whether s is a canonical uppercase weekday name.
func IsValidWeekday(s string) bool {
	for _, d := range WeekdayNames {
		if d == s {
			return true
		}
	}
	return false
}
