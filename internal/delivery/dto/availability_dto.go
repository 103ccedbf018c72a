package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateTemplateRequest struct {
	TemplateName  string `json:"template_name" validate:"required,min=2"`
	ScheduleType  string `json:"schedule_type" validate:"required,oneof=DAILY WEEKLY DATE_RANGE SPECIFIC_DATES"`
	DaysOfWeek    string `json:"days_of_week" validate:"omitempty"` // Format: 1,3,5 (Monday=1 .. Sunday=7)
	TimeSlots     string `json:"time_slots" validate:"required"`    // Format: HH:MM-HH:MM,HH:MM-HH:MM
	StartDate     string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate       string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	SpecificDates string `json:"specific_dates" validate:"omitempty"` // Format: YYYY-MM-DD,YYYY-MM-DD
	Priority      int    `json:"priority" validate:"omitempty"`
}

type UpdateTemplateRequest struct {
	TemplateName  string `json:"template_name" validate:"omitempty,min=2"`
	ScheduleType  string `json:"schedule_type" validate:"omitempty,oneof=DAILY WEEKLY DATE_RANGE SPECIFIC_DATES"`
	DaysOfWeek    string `json:"days_of_week" validate:"omitempty"`
	TimeSlots     string `json:"time_slots" validate:"omitempty"`
	StartDate     string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate       string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	SpecificDates string `json:"specific_dates" validate:"omitempty"`
	Priority      *int   `json:"priority" validate:"omitempty"`
	IsActive      *bool  `json:"is_active" validate:"omitempty"`
}

type CreateExceptionRequest struct {
	ExceptionDate string `json:"exception_date" validate:"required,datetime=2006-01-02"`
	ExceptionType string `json:"exception_type" validate:"required,oneof=UNAVAILABLE CUSTOM_HOURS"`
	TimeSlots     string `json:"time_slots" validate:"omitempty"`
	Reason        string `json:"reason" validate:"omitempty"`
}

type UpdateExceptionRequest struct {
	ExceptionType string `json:"exception_type" validate:"omitempty,oneof=UNAVAILABLE CUSTOM_HOURS"`
	TimeSlots     string `json:"time_slots" validate:"omitempty"`
	Reason        string `json:"reason" validate:"omitempty"`
}

// Response DTOs

type TemplateResponse struct {
	ID            int64     `json:"id"`
	DoctorID      uuid.UUID `json:"doctor_id"`
	TemplateName  string    `json:"template_name"`
	ScheduleType  string    `json:"schedule_type"`
	DaysOfWeek    string    `json:"days_of_week,omitempty"`
	TimeSlots     string    `json:"time_slots"`
	StartDate     string    `json:"start_date,omitempty"`
	EndDate       string    `json:"end_date,omitempty"`
	SpecificDates string    `json:"specific_dates,omitempty"`
	IsActive      bool      `json:"is_active"`
	Priority      int       `json:"priority"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type TemplateListResponse struct {
	Templates []TemplateResponse `json:"templates"`
	Total     int                `json:"total"`
}

type ExceptionResponse struct {
	ID            int64     `json:"id"`
	DoctorID      uuid.UUID `json:"doctor_id"`
	ExceptionDate string    `json:"exception_date"`
	ExceptionType string    `json:"exception_type"`
	TimeSlots     string    `json:"time_slots,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type ExceptionListResponse struct {
	Exceptions []ExceptionResponse `json:"exceptions"`
	Total      int                 `json:"total"`
}

type SlotPreviewResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}
