package repository

import (
	"time"

	"healthsync/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityTemplateRepository interface {
	Create(db *gorm.DB, template *entity.AvailabilityTemplate) error
	FindByID(db *gorm.DB, id int64) (*entity.AvailabilityTemplate, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilityTemplate, error)
	FindActiveByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilityTemplate, error)
	Update(db *gorm.DB, template *entity.AvailabilityTemplate) error
	Delete(db *gorm.DB, id int64) (int64, error)
}

type AvailabilityExceptionRepository interface {
	Create(db *gorm.DB, exception *entity.AvailabilityException) error
	FindByID(db *gorm.DB, id int64) (*entity.AvailabilityException, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilityException, error)
	FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) (*entity.AvailabilityException, error)
	Update(db *gorm.DB, exception *entity.AvailabilityException) error
	Delete(db *gorm.DB, id int64) (int64, error)
}
