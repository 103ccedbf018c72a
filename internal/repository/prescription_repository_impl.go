package repository

import (
	"errors"

	"healthsync/internal/domain/entity"
	domainRepo "healthsync/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type prescriptionRepository struct{}

func NewPrescriptionRepository() domainRepo.PrescriptionRepository {
	return &prescriptionRepository{}
}

func (r *prescriptionRepository) Create(db *gorm.DB, prescription *entity.Prescription) error {
	// Nested medicine lines and timings are inserted with the parent row.
	return db.Create(prescription).Error
}

func (r *prescriptionRepository) FindByID(db *gorm.DB, id int64) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := db.Preload("Medicines.Medicine").Preload("Medicines.Timings").
		Where("id = ?", id).First(&prescription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}

func (r *prescriptionRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	err := db.Preload("Medicines.Medicine").Preload("Medicines.Timings").
		Where("doctor_id = ?", doctorID).
		Order("issue_date DESC, id DESC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	err := db.Preload("Medicines.Medicine").Preload("Medicines.Timings").
		Where("patient_id = ?", patientID).
		Order("issue_date DESC, id DESC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}
