package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateMedicineRequest struct {
	Name         string          `json:"name" validate:"required,min=2,max=255"`
	GenericName  string          `json:"generic_name" validate:"omitempty,max=255"`
	Manufacturer string          `json:"manufacturer" validate:"omitempty,max=255"`
	DosageForm   string          `json:"dosage_form" validate:"omitempty,max=50"`
	Price        decimal.Decimal `json:"price" validate:"required"`
	Stock        int             `json:"stock" validate:"omitempty,min=0"`
}

type UpdateMedicineRequest struct {
	Name         string           `json:"name" validate:"omitempty,min=2,max=255"`
	GenericName  string           `json:"generic_name" validate:"omitempty,max=255"`
	Manufacturer string           `json:"manufacturer" validate:"omitempty,max=255"`
	DosageForm   string           `json:"dosage_form" validate:"omitempty,max=50"`
	Price        *decimal.Decimal `json:"price" validate:"omitempty"`
	Stock        *int             `json:"stock" validate:"omitempty,min=0"`
}

// Response DTOs

type MedicineResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	GenericName  string          `json:"generic_name,omitempty"`
	Manufacturer string          `json:"manufacturer,omitempty"`
	DosageForm   string          `json:"dosage_form,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type MedicineListResponse struct {
	Medicines []MedicineResponse `json:"medicines"`
	Total     int64              `json:"total"`
}
