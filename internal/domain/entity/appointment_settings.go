package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentSettings holds per-doctor booking parameters. A doctor without
// a row gets the defaults below on first access.
type AppointmentSettings struct {
	DoctorID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"doctor_id"`
	SlotDurationMinutes int       `gorm:"not null;default:30" json:"slot_duration_minutes"`
	AdvanceBookingDays  int       `gorm:"not null;default:30" json:"advance_booking_days"`
	AutoApprove         bool      `gorm:"not null;default:false" json:"auto_approve"`
	AllowOverbooking    bool      `gorm:"not null;default:false" json:"allow_overbooking"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (AppointmentSettings) TableName() string {
	return "appointment_settings"
}

// Default settings values
const (
	DefaultSlotDurationMinutes = 30
	DefaultAdvanceBookingDays  = 30
)
