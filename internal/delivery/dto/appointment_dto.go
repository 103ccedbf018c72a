package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type RequestAppointmentRequest struct {
	DoctorID        uuid.UUID `json:"doctor_id" validate:"required"`
	HospitalID      int64     `json:"hospital_id" validate:"required,min=1"`
	AppointmentDate string    `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	AppointmentTime string    `json:"appointment_time" validate:"required,clock"`
	Type            string    `json:"type" validate:"required,oneof=CONSULTATION FOLLOW_UP CHECKUP"`
	Reason          string    `json:"reason" validate:"required,min=3"`
}

type UpdateAppointmentSettingsRequest struct {
	SlotDurationMinutes int  `json:"slot_duration_minutes" validate:"required,min=5,max=240"`
	AdvanceBookingDays  int  `json:"advance_booking_days" validate:"required,min=1,max=365"`
	AutoApprove         bool `json:"auto_approve"`
	AllowOverbooking    bool `json:"allow_overbooking"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID         `json:"id"`
	PatientID       uuid.UUID         `json:"patient_id"`
	Patient         *UserResponse     `json:"patient,omitempty"`
	DoctorID        uuid.UUID         `json:"doctor_id"`
	Doctor          *DoctorResponse   `json:"doctor,omitempty"`
	HospitalID      int64             `json:"hospital_id"`
	Hospital        *HospitalResponse `json:"hospital,omitempty"`
	AppointmentDate string            `json:"appointment_date"`
	AppointmentTime string            `json:"appointment_time"`
	Type            string            `json:"type"`
	Reason          string            `json:"reason"`
	BookingCode     string            `json:"booking_code"`
	Status          string            `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type TimeslotsResponse struct {
	DoctorID   uuid.UUID `json:"doctor_id"`
	HospitalID int64     `json:"hospital_id"`
	Date       string    `json:"date"`
	Slots      []string  `json:"slots"`
	Booked     []string  `json:"booked"`
}

type AppointmentSettingsResponse struct {
	DoctorID            uuid.UUID `json:"doctor_id"`
	SlotDurationMinutes int       `json:"slot_duration_minutes"`
	AdvanceBookingDays  int       `json:"advance_booking_days"`
	AutoApprove         bool      `json:"auto_approve"`
	AllowOverbooking    bool      `json:"allow_overbooking"`
}
