package repository

import (
	"errors"

	"healthsync/internal/domain/entity"
	domainRepo "healthsync/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type hospitalScheduleRepository struct{}

func NewHospitalScheduleRepository() domainRepo.HospitalScheduleRepository {
	return &hospitalScheduleRepository{}
}

func (r *hospitalScheduleRepository) Create(db *gorm.DB, schedule *entity.HospitalSchedule) error {
	return db.Create(schedule).Error
}

func (r *hospitalScheduleRepository) FindByID(db *gorm.DB, id int64) (*entity.HospitalSchedule, error) {
	var schedule entity.HospitalSchedule
	err := db.Preload("Hospital").Where("id = ?", id).First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *hospitalScheduleRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.HospitalSchedule, error) {
	var schedules []entity.HospitalSchedule
	err := db.Preload("Hospital").
		Where("doctor_id = ?", doctorID).
		Order("hospital_id ASC, day_of_week ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *hospitalScheduleRepository) FindByDoctorAndHospital(db *gorm.DB, doctorID uuid.UUID, hospitalID int64) ([]entity.HospitalSchedule, error) {
	var schedules []entity.HospitalSchedule
	err := db.Where("doctor_id = ? AND hospital_id = ?", doctorID, hospitalID).
		Order("id ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *hospitalScheduleRepository) FindByDoctorHospitalDay(db *gorm.DB, doctorID uuid.UUID, hospitalID int64, dayOfWeek string) (*entity.HospitalSchedule, error) {
	var schedule entity.HospitalSchedule
	err := db.Where("doctor_id = ? AND hospital_id = ? AND day_of_week = ?", doctorID, hospitalID, dayOfWeek).
		First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *hospitalScheduleRepository) Update(db *gorm.DB, schedule *entity.HospitalSchedule) error {
	return db.Save(schedule).Error
}

func (r *hospitalScheduleRepository) Delete(db *gorm.DB, id int64) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.HospitalSchedule{})
	return result.RowsAffected, result.Error
}
