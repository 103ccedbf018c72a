package repository

import (
	"time"

	"healthsync/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error)
	// FindBookedStartTimes returns the "HH:MM" start times of non-cancelled
	// appointments for one (doctor, hospital, date).
	FindBookedStartTimes(db *gorm.DB, doctorID uuid.UUID, hospitalID int64, date time.Time) ([]string, error)
	FindConflict(db *gorm.DB, doctorID uuid.UUID, hospitalID int64, date time.Time, startTime string) (*entity.Appointment, error)
	// NextSlotSequence returns the next free slot_sequence for one
	// (doctor, hospital, date, time) slot, counting non-cancelled rows.
	NextSlotSequence(db *gorm.DB, doctorID uuid.UUID, hospitalID int64, date time.Time, startTime string) (int, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)
	CancelAppointment(db *gorm.DB, id uuid.UUID) (int64, error)
}

type AppointmentSettingsRepository interface {
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) (*entity.AppointmentSettings, error)
	Save(db *gorm.DB, settings *entity.AppointmentSettings) error
}
