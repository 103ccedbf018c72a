package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExceptionType values stored in availability_exceptions.exception_type
const (
	ExceptionTypeUnavailable = "UNAVAILABLE"
	ExceptionTypeCustomHours = "CUSTOM_HOURS"
)

// AvailabilityException overrides every template and hospital schedule for
// one concrete date. TimeSlots is non-empty exactly when the type is
// CUSTOM_HOURS. One row per (doctor, date).
type AvailabilityException struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID      uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_doctor_exception_date" json:"doctor_id"`
	ExceptionDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_doctor_exception_date" json:"exception_date"`
	ExceptionType string    `gorm:"type:varchar(20);not null" json:"exception_type"`
	TimeSlots     string    `gorm:"type:text" json:"time_slots,omitempty"`
	Reason        string    `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (AvailabilityException) TableName() string {
	return "availability_exceptions"
}
