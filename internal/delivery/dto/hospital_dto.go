package dto

import "time"

// Request DTOs

type CreateHospitalRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Address     string `json:"address" validate:"required"`
	City        string `json:"city" validate:"required"`
	State       string `json:"state" validate:"omitempty"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=7,max=20"`
}

type UpdateHospitalRequest struct {
	Name        string `json:"name" validate:"omitempty,min=2"`
	Address     string `json:"address" validate:"omitempty"`
	City        string `json:"city" validate:"omitempty"`
	State       string `json:"state" validate:"omitempty"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=7,max=20"`
}

// Response DTOs

type HospitalResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type HospitalListResponse struct {
	Hospitals []HospitalResponse `json:"hospitals"`
	Total     int                `json:"total"`
}
