package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"healthsync/internal/converter"
	"healthsync/internal/delivery/dto"
	"healthsync/internal/delivery/http/middleware"
	"healthsync/internal/domain/entity"
	"healthsync/internal/domain/repository"
	"healthsync/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPrescriptionNotFound    = errors.New("prescription not found")
	ErrPrescriptionNotOwned    = errors.New("prescription does not belong to you")
	ErrPrescriptionPatient     = errors.New("patient not found")
	ErrAppointmentMismatch     = errors.New("appointment does not match this doctor and patient")
	ErrTimingNeedsSpecificTime = errors.New("FIXED_TIME timing requires specific_time")
	ErrTimingNeedsInterval     = errors.New("INTERVAL timing requires interval_hours")
	ErrTimingAmountInvalid     = errors.New("timing amount must be positive")
)

type PrescriptionUsecase interface {
	WritePrescription(ctx context.Context, req *dto.WritePrescriptionRequest) (*dto.PrescriptionResponse, error)
	GetMyPrescriptions(ctx context.Context) (*dto.PrescriptionListResponse, error)
	GetWrittenPrescriptions(ctx context.Context) (*dto.PrescriptionListResponse, error)
	GetPatientPrescriptions(ctx context.Context, patientID uuid.UUID) (*dto.PrescriptionListResponse, error)
	GetPrescription(ctx context.Context, prescriptionID int64) (*dto.PrescriptionResponse, error)
}

type prescriptionUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	prescriptionRepo   repository.PrescriptionRepository
	patientProfileRepo repository.PatientProfileRepository
	medicineRepo       repository.MedicineRepository
	appointmentRepo    repository.AppointmentRepository
	auditService       service.AuditService
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository,
	patientProfileRepo repository.PatientProfileRepository,
	medicineRepo repository.MedicineRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:                 db,
		log:                log,
		prescriptionRepo:   prescriptionRepo,
		patientProfileRepo: patientProfileRepo,
		medicineRepo:       medicineRepo,
		appointmentRepo:    appointmentRepo,
		auditService:       auditService,
	}
}

func (u *prescriptionUsecase) WritePrescription(ctx context.Context, req *dto.WritePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	db := u.db.WithContext(ctx)

	patient, err := u.patientProfileRepo.FindByUserID(db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPrescriptionPatient
	}

	if req.AppointmentID != nil {
		appointment, err := u.appointmentRepo.FindByID(db, *req.AppointmentID)
		if err != nil {
			u.log.Warnf("Failed to find appointment %s: %+v", *req.AppointmentID, err)
			return nil, err
		}
		if appointment == nil {
			return nil, ErrAppointmentNotFound
		}
		if appointment.DoctorID != doctorID || appointment.PatientID != req.PatientID {
			return nil, ErrAppointmentMismatch
		}
	}

	prescription := &entity.Prescription{
		DoctorID:      doctorID,
		PatientID:     req.PatientID,
		AppointmentID: req.AppointmentID,
		Diagnosis:     req.Diagnosis,
		IssueDate:     time.Now().UTC().Truncate(24 * time.Hour),
		Advice:        req.Advice,
	}

	if req.FollowUpDate != "" {
		followUp, err := time.Parse("2006-01-02", req.FollowUpDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		prescription.FollowUpDate = &followUp
	}

	for _, line := range req.Medicines {
		medicine, err := u.medicineRepo.FindByID(db, line.MedicineID)
		if err != nil {
			u.log.Warnf("Failed to find medicine %s: %+v", line.MedicineID, err)
			return nil, err
		}
		if medicine == nil {
			return nil, ErrMedicineNotFound
		}

		timings := make([]entity.MedicineTiming, 0, len(line.Timings))
		for _, t := range line.Timings {
			timing := entity.MedicineTiming{
				MealRelation:  t.MealRelation,
				TimeOfDay:     t.TimeOfDay,
				Amount:        t.Amount,
				SpecificTime:  t.SpecificTime,
				IntervalHours: t.IntervalHours,
			}
			if err := validateTimingRules(&timing); err != nil {
				return nil, err
			}
			timings = append(timings, timing)
		}

		prescription.Medicines = append(prescription.Medicines, entity.PrescriptionMedicine{
			MedicineID:          line.MedicineID,
			DurationDays:        line.DurationDays,
			SpecialInstructions: line.SpecialInstructions,
			Timings:             timings,
		})
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.prescriptionRepo.Create(tx, prescription); err != nil {
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &doctorID, entity.AuditActionPrescriptionWrite, "prescription", strconv.FormatInt(prescription.ID, 10), prescription); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PrescriptionToResponse(prescription), nil
}

// GetMyPrescriptions lists the prescriptions written for the calling patient.
func (u *prescriptionUsecase) GetMyPrescriptions(ctx context.Context) (*dto.PrescriptionListResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}
	return u.listByPatient(ctx, patientID)
}

// GetWrittenPrescriptions lists the prescriptions the calling doctor wrote.
func (u *prescriptionUsecase) GetWrittenPrescriptions(ctx context.Context) (*dto.PrescriptionListResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	prescriptions, err := u.prescriptionRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find prescriptions for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(prescriptions),
		Total:         len(prescriptions),
	}, nil
}

// GetPatientPrescriptions lets a doctor review one patient's history.
func (u *prescriptionUsecase) GetPatientPrescriptions(ctx context.Context, patientID uuid.UUID) (*dto.PrescriptionListResponse, error) {
	return u.listByPatient(ctx, patientID)
}

func (u *prescriptionUsecase) listByPatient(ctx context.Context, patientID uuid.UUID) (*dto.PrescriptionListResponse, error) {
	prescriptions, err := u.prescriptionRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find prescriptions for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(prescriptions),
		Total:         len(prescriptions),
	}, nil
}

// GetPrescription returns one prescription to its doctor or its patient.
func (u *prescriptionUsecase) GetPrescription(ctx context.Context, prescriptionID int64) (*dto.PrescriptionResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	prescription, err := u.prescriptionRepo.FindByID(u.db.WithContext(ctx), prescriptionID)
	if err != nil {
		u.log.Warnf("Failed to find prescription %d: %+v", prescriptionID, err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}
	if prescription.DoctorID != userID && prescription.PatientID != userID {
		return nil, ErrPrescriptionNotOwned
	}

	return converter.PrescriptionToResponse(prescription), nil
}

// validateTimingRules enforces the cross-field requirements of each timing
// mode: a fixed time needs its clock, an interval needs its hour count, and
// the dose must be positive.
func validateTimingRules(timing *entity.MedicineTiming) error {
	if !timing.Amount.IsPositive() {
		return ErrTimingAmountInvalid
	}
	switch timing.TimeOfDay {
	case entity.TimeOfDayFixedTime:
		if timing.SpecificTime == "" {
			return ErrTimingNeedsSpecificTime
		}
	case entity.TimeOfDayInterval:
		if timing.IntervalHours == nil {
			return ErrTimingNeedsInterval
		}
	}
	return nil
}
