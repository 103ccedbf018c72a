package repository

import (
	"healthsync/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	// Create inserts the prescription with its medicine lines and timings.
	Create(db *gorm.DB, prescription *entity.Prescription) error
	FindByID(db *gorm.DB, id int64) (*entity.Prescription, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Prescription, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Prescription, error)
}
