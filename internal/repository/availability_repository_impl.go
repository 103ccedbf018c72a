package repository

import (
	"errors"
	"time"

	"healthsync/internal/domain/entity"
	domainRepo "healthsync/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type availabilityTemplateRepository struct{}

func NewAvailabilityTemplateRepository() domainRepo.AvailabilityTemplateRepository {
	return &availabilityTemplateRepository{}
}

func (r *availabilityTemplateRepository) Create(db *gorm.DB, template *entity.AvailabilityTemplate) error {
	return db.Create(template).Error
}

func (r *availabilityTemplateRepository) FindByID(db *gorm.DB, id int64) (*entity.AvailabilityTemplate, error) {
	var template entity.AvailabilityTemplate
	err := db.Where("id = ?", id).First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

func (r *availabilityTemplateRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilityTemplate, error) {
	var templates []entity.AvailabilityTemplate
	err := db.Where("doctor_id = ?", doctorID).
		Order("priority DESC, id ASC").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *availabilityTemplateRepository) FindActiveByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilityTemplate, error) {
	var templates []entity.AvailabilityTemplate
	err := db.Where("doctor_id = ? AND is_active = ?", doctorID, true).
		Order("priority DESC, id ASC").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *availabilityTemplateRepository) Update(db *gorm.DB, template *entity.AvailabilityTemplate) error {
	return db.Save(template).Error
}

func (r *availabilityTemplateRepository) Delete(db *gorm.DB, id int64) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.AvailabilityTemplate{})
	return result.RowsAffected, result.Error
}

type availabilityExceptionRepository struct{}

func NewAvailabilityExceptionRepository() domainRepo.AvailabilityExceptionRepository {
	return &availabilityExceptionRepository{}
}

func (r *availabilityExceptionRepository) Create(db *gorm.DB, exception *entity.AvailabilityException) error {
	return db.Create(exception).Error
}

func (r *availabilityExceptionRepository) FindByID(db *gorm.DB, id int64) (*entity.AvailabilityException, error) {
	var exception entity.AvailabilityException
	err := db.Where("id = ?", id).First(&exception).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &exception, nil
}

func (r *availabilityExceptionRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilityException, error) {
	var exceptions []entity.AvailabilityException
	err := db.Where("doctor_id = ?", doctorID).
		Order("exception_date DESC").
		Find(&exceptions).Error
	if err != nil {
		return nil, err
	}
	return exceptions, nil
}

func (r *availabilityExceptionRepository) FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) (*entity.AvailabilityException, error) {
	var exception entity.AvailabilityException
	err := db.Where("doctor_id = ? AND exception_date = ?", doctorID, date.Format("2006-01-02")).
		First(&exception).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &exception, nil
}

func (r *availabilityExceptionRepository) Update(db *gorm.DB, exception *entity.AvailabilityException) error {
	return db.Save(exception).Error
}

func (r *availabilityExceptionRepository) Delete(db *gorm.DB, id int64) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.AvailabilityException{})
	return result.RowsAffected, result.Error
}
