package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type UpdateDoctorProfileRequest struct {
	FullName       string `json:"full_name" validate:"omitempty,min=2"`
	LicenseNumber  string `json:"license_number" validate:"omitempty"`
	Specialization string `json:"specialization" validate:"omitempty"`
	Qualification  string `json:"qualification" validate:"omitempty"`
	Biography      string `json:"biography" validate:"omitempty"`
}

// Response DTOs

type DoctorProfileResponse struct {
	UserID         uuid.UUID `json:"user_id"`
	LicenseNumber  string    `json:"license_number"`
	Specialization string    `json:"specialization"`
	Qualification  string    `json:"qualification,omitempty"`
	Biography      string    `json:"biography,omitempty"`
}

type DoctorResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	LicenseNumber  string    `json:"license_number"`
	Specialization string    `json:"specialization"`
	Qualification  string    `json:"qualification,omitempty"`
	Biography      string    `json:"biography,omitempty"`
	IsActive       bool      `json:"is_active"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
