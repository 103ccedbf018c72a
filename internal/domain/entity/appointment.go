package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Appointment types requested by patients
const (
	AppointmentTypeConsultation = "CONSULTATION"
	AppointmentTypeFollowUp     = "FOLLOW_UP"
	AppointmentTypeCheckup      = "CHECKUP"
)

// Appointment represents a patient consultation booked into one resolved
// availability slot. AppointmentTime is the slot's "HH:MM" start.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	HospitalID      int64             `gorm:"not null;index" json:"hospital_id"`
	AppointmentDate time.Time         `gorm:"type:date;not null;index" json:"appointment_date"`
	AppointmentTime string            `gorm:"type:varchar(5);not null" json:"appointment_time"`
	Type            string            `gorm:"type:varchar(30);not null" json:"type"`
	Reason          string            `gorm:"type:text;not null" json:"reason"`
	BookingCode     string            `gorm:"type:varchar(50);uniqueIndex;not null" json:"booking_code"`
	SlotSequence    int               `gorm:"not null;default:0" json:"-"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient  PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor   DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Hospital Hospital       `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsPending checks if the appointment awaits confirmation
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// Confirm changes appointment status to confirmed
func (a *Appointment) Confirm() {
	a.Status = AppointmentStatusConfirmed
}

// Cancel changes appointment status to cancelled
func (a *Appointment) Cancel() {
	a.Status = AppointmentStatusCancelled
}
