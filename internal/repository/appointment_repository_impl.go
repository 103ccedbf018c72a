package repository

import (
	"errors"
	"time"

	"healthsync/internal/domain/entity"
	domainRepo "healthsync/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Doctor.User").Preload("Hospital").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	query := db.Preload("Doctor.User").Preload("Hospital").
		Where("patient_id = ?", patientID)

	if filter != nil {
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.StartAt != "" {
			query = query.Where("appointment_date >= ?", filter.StartAt)
		}
		if filter.EndAt != "" {
			query = query.Where("appointment_date <= ?", filter.EndAt)
		}
		if filter.DoctorName != "" {
			query = query.Joins("JOIN doctor_profiles ON doctor_profiles.user_id = appointments.doctor_id").
				Joins("JOIN users ON users.id = doctor_profiles.user_id").
				Where("users.full_name ILIKE ?", "%"+filter.DoctorName+"%")
		}
		if filter.Specialization != "" {
			if filter.DoctorName == "" {
				query = query.Joins("JOIN doctor_profiles ON doctor_profiles.user_id = appointments.doctor_id")
			}
			query = query.Where("doctor_profiles.specialization ILIKE ?", "%"+filter.Specialization+"%")
		}
	}

	var appointments []entity.Appointment
	err := query.Order("appointment_date DESC, appointment_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient.User").Preload("Hospital").
		Where("doctor_id = ? AND appointment_date = ?", doctorID, date.Format("2006-01-02")).
		Order("appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindBookedStartTimes(db *gorm.DB, doctorID uuid.UUID, hospitalID int64, date time.Time) ([]string, error) {
	var times []string
	err := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND hospital_id = ? AND appointment_date = ? AND status != ?",
			doctorID, hospitalID, date.Format("2006-01-02"), entity.AppointmentStatusCancelled).
		Order("appointment_time ASC").
		Pluck("appointment_time", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

func (r *appointmentRepository) FindConflict(db *gorm.DB, doctorID uuid.UUID, hospitalID int64, date time.Time, startTime string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("doctor_id = ? AND hospital_id = ? AND appointment_date = ? AND appointment_time = ? AND status != ?",
		doctorID, hospitalID, date.Format("2006-01-02"), startTime, entity.AppointmentStatusCancelled).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) NextSlotSequence(db *gorm.DB, doctorID uuid.UUID, hospitalID int64, date time.Time, startTime string) (int, error) {
	var next int
	err := db.Model(&entity.Appointment{}).
		Select("COALESCE(MAX(slot_sequence), -1) + 1").
		Where("doctor_id = ? AND hospital_id = ? AND appointment_date = ? AND appointment_time = ? AND status != ?",
			doctorID, hospitalID, date.Format("2006-01-02"), startTime, entity.AppointmentStatusCancelled).
		Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

// UpdateStatus atomically moves an appointment from one status to another.
// Returns affected rows: 0 means the appointment was not in the expected
// status (lost race or invalid transition).
func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

// CancelAppointment atomically cancels ONLY if not already cancelled,
// preventing a double-cancel race.
func (r *appointmentRepository) CancelAppointment(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status != ?", id, entity.AppointmentStatusCancelled).
		Update("status", entity.AppointmentStatusCancelled)
	return result.RowsAffected, result.Error
}

type appointmentSettingsRepository struct{}

func NewAppointmentSettingsRepository() domainRepo.AppointmentSettingsRepository {
	return &appointmentSettingsRepository{}
}

func (r *appointmentSettingsRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) (*entity.AppointmentSettings, error) {
	var settings entity.AppointmentSettings
	err := db.Where("doctor_id = ?", doctorID).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *appointmentSettingsRepository) Save(db *gorm.DB, settings *entity.AppointmentSettings) error {
	return db.Save(settings).Error
}
