package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateHospitalScheduleRequest struct {
	HospitalID      int64           `json:"hospital_id" validate:"required,min=1"`
	DayOfWeek       string          `json:"day_of_week" validate:"required"`
	TimeSlots       string          `json:"time_slots" validate:"required"` // Format: HH:MM-HH:MM,HH:MM-HH:MM
	ConsultationFee decimal.Decimal `json:"consultation_fee" validate:"omitempty"`
}

type UpdateHospitalScheduleRequest struct {
	DayOfWeek       string           `json:"day_of_week" validate:"omitempty"`
	TimeSlots       string           `json:"time_slots" validate:"omitempty"`
	ConsultationFee *decimal.Decimal `json:"consultation_fee" validate:"omitempty"`
}

// Response DTOs

type HospitalScheduleResponse struct {
	ID              int64             `json:"id"`
	DoctorID        uuid.UUID         `json:"doctor_id"`
	Doctor          *DoctorResponse   `json:"doctor,omitempty"`
	HospitalID      int64             `json:"hospital_id"`
	Hospital        *HospitalResponse `json:"hospital,omitempty"`
	DayOfWeek       string            `json:"day_of_week"`
	TimeSlots       string            `json:"time_slots"`
	ConsultationFee decimal.Decimal   `json:"consultation_fee"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

type HospitalScheduleListResponse struct {
	Schedules []HospitalScheduleResponse `json:"schedules"`
	Total     int                        `json:"total"`
}
