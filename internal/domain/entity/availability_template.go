package entity

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleType values stored in availability_templates.schedule_type
const (
	ScheduleTypeDaily         = "DAILY"
	ScheduleTypeWeekly        = "WEEKLY"
	ScheduleTypeDateRange     = "DATE_RANGE"
	ScheduleTypeSpecificDates = "SPECIFIC_DATES"
)

// AvailabilityTemplate is a recurring availability rule owned by a doctor.
// DaysOfWeek is a comma-joined numeric day set ("1,3,5", 1=Monday..7=Sunday);
// TimeSlots a comma-joined window string ("09:00-12:00,14:00-17:00");
// SpecificDates a comma-joined list of YYYY-MM-DD dates.
type AvailabilityTemplate struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"doctor_id"`
	TemplateName  string     `gorm:"type:varchar(100);not null" json:"template_name"`
	ScheduleType  string     `gorm:"type:varchar(20);not null" json:"schedule_type"`
	DaysOfWeek    string     `gorm:"type:varchar(20)" json:"days_of_week,omitempty"`
	TimeSlots     string     `gorm:"type:text;not null" json:"time_slots"`
	StartDate     *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate       *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	SpecificDates string     `gorm:"type:text" json:"specific_dates,omitempty"`
	IsActive      bool       `gorm:"not null;default:true;index" json:"is_active"`
	Priority      int        `gorm:"not null;default:0" json:"priority"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (AvailabilityTemplate) TableName() string {
	return "availability_templates"
}
