package repository

import (
	"healthsync/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HospitalScheduleRepository interface {
	Create(db *gorm.DB, schedule *entity.HospitalSchedule) error
	FindByID(db *gorm.DB, id int64) (*entity.HospitalSchedule, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.HospitalSchedule, error)
	FindByDoctorAndHospital(db *gorm.DB, doctorID uuid.UUID, hospitalID int64) ([]entity.HospitalSchedule, error)
	FindByDoctorHospitalDay(db *gorm.DB, doctorID uuid.UUID, hospitalID int64, dayOfWeek string) (*entity.HospitalSchedule, error)
	Update(db *gorm.DB, schedule *entity.HospitalSchedule) error
	Delete(db *gorm.DB, id int64) (int64, error)
}
