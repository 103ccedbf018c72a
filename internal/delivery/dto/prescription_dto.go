package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type WritePrescriptionRequest struct {
	PatientID     uuid.UUID                     `json:"patient_id" validate:"required"`
	AppointmentID *uuid.UUID                    `json:"appointment_id" validate:"omitempty"`
	Diagnosis     string                        `json:"diagnosis" validate:"required,min=3"`
	FollowUpDate  string                        `json:"follow_up_date" validate:"omitempty,datetime=2006-01-02"`
	Advice        string                        `json:"advice" validate:"omitempty"`
	Medicines     []PrescriptionMedicineRequest `json:"medicines" validate:"required,min=1,dive"`
}

type PrescriptionMedicineRequest struct {
	MedicineID          uuid.UUID               `json:"medicine_id" validate:"required"`
	DurationDays        int                     `json:"duration_days" validate:"required,min=1"`
	SpecialInstructions string                  `json:"special_instructions" validate:"omitempty"`
	Timings             []MedicineTimingRequest `json:"timings" validate:"required,min=1,dive"`
}

type MedicineTimingRequest struct {
	MealRelation  string          `json:"meal_relation" validate:"required,oneof=BEFORE_MEAL AFTER_MEAL WITH_MEAL EMPTY_STOMACH ANY_TIME"`
	TimeOfDay     string          `json:"time_of_day" validate:"required,oneof=MORNING AFTERNOON EVENING NIGHT BEDTIME FIXED_TIME INTERVAL"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	SpecificTime  string          `json:"specific_time" validate:"omitempty,clock"`
	IntervalHours *int            `json:"interval_hours" validate:"omitempty,min=1,max=24"`
}

// Response DTOs

type PrescriptionResponse struct {
	ID            int64                          `json:"id"`
	DoctorID      uuid.UUID                      `json:"doctor_id"`
	PatientID     uuid.UUID                      `json:"patient_id"`
	AppointmentID *uuid.UUID                     `json:"appointment_id,omitempty"`
	Diagnosis     string                         `json:"diagnosis"`
	IssueDate     string                         `json:"issue_date"`
	FollowUpDate  string                         `json:"follow_up_date,omitempty"`
	Advice        string                         `json:"advice,omitempty"`
	Medicines     []PrescriptionMedicineResponse `json:"medicines"`
	CreatedAt     time.Time                      `json:"created_at"`
}

type PrescriptionMedicineResponse struct {
	ID                  int64                    `json:"id"`
	Medicine            *MedicineResponse        `json:"medicine,omitempty"`
	DurationDays        int                      `json:"duration_days"`
	SpecialInstructions string                   `json:"special_instructions,omitempty"`
	Timings             []MedicineTimingResponse `json:"timings"`
}

type MedicineTimingResponse struct {
	ID            int64           `json:"id"`
	MealRelation  string          `json:"meal_relation"`
	TimeOfDay     string          `json:"time_of_day"`
	Amount        decimal.Decimal `json:"amount"`
	SpecificTime  string          `json:"specific_time,omitempty"`
	IntervalHours *int            `json:"interval_hours,omitempty"`
}

type PrescriptionListResponse struct {
	Prescriptions []PrescriptionResponse `json:"prescriptions"`
	Total         int                    `json:"total"`
}
