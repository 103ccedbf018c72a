package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"healthsync/internal/availability"
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
	ErrAppointmentNotFound         = errors.New("appointment not found")
	ErrAppointmentNotOwned         = errors.New("appointment does not belong to you")
	ErrAppointmentAlreadyCancelled = errors.New("appointment is already cancelled")
	ErrAppointmentNotPending       = errors.New("appointment is not pending")
	ErrAppointmentPast             = errors.New("cannot book a past date")
	ErrSlotNotAvailable            = errors.New("requested time slot is not available")
	ErrBeyondBookingWindow         = errors.New("date is beyond the doctor's advance booking window")
	ErrInvalidTimeFormat           = errors.New("invalid time format, use HH:MM")
)

type AppointmentUsecase interface {
	RequestAppointment(ctx context.Context, req *dto.RequestAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAvailableTimeslots(ctx context.Context, doctorID uuid.UUID, hospitalID int64, date string) (*dto.TimeslotsResponse, error)
	GetMyAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	GetDoctorAppointments(ctx context.Context, date string) (*dto.AppointmentListResponse, error)
	ConfirmAppointment(ctx context.Context, appointmentID uuid.UUID) error
	CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error

	GetMySettings(ctx context.Context) (*dto.AppointmentSettingsResponse, error)
	UpdateMySettings(ctx context.Context, req *dto.UpdateAppointmentSettingsRequest) (*dto.AppointmentSettingsResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	settingsRepo    repository.AppointmentSettingsRepository
	scheduleRepo    repository.HospitalScheduleRepository
	templateRepo    repository.AvailabilityTemplateRepository
	exceptionRepo   repository.AvailabilityExceptionRepository
	slotService     *service.SlotReservationService
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	settingsRepo repository.AppointmentSettingsRepository,
	scheduleRepo repository.HospitalScheduleRepository,
	templateRepo repository.AvailabilityTemplateRepository,
	exceptionRepo repository.AvailabilityExceptionRepository,
	slotService *service.SlotReservationService,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		settingsRepo:    settingsRepo,
		scheduleRepo:    scheduleRepo,
		templateRepo:    templateRepo,
		exceptionRepo:   exceptionRepo,
		slotService:     slotService,
		auditService:    auditService,
	}
}

// resolveOpenSlots computes the bookable slot starts for one
// (doctor, hospital, date): resolver output minus booked starts minus, for
// today, starts already in the past. The booked starts it fetched are
// returned alongside so callers that report them do not query twice.
func (u *appointmentUsecase) resolveOpenSlots(ctx context.Context, doctorID uuid.UUID, hospitalID int64, date time.Time) ([]availability.TimeRange, []string, error) {
	db := u.db.WithContext(ctx)

	schedules, err := u.scheduleRepo.FindByDoctorAndHospital(db, doctorID, hospitalID)
	if err != nil {
		u.log.Warnf("Failed to find schedules for doctor %s: %+v", doctorID, err)
		return nil, nil, err
	}

	templates, err := u.templateRepo.FindActiveByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find templates for doctor %s: %+v", doctorID, err)
		return nil, nil, err
	}

	exception, err := u.exceptionRepo.FindByDoctorAndDate(db, doctorID, date)
	if err != nil {
		u.log.Warnf("Failed to find exception for doctor %s: %+v", doctorID, err)
		return nil, nil, err
	}

	slotMinutes, err := resolveSlotMinutes(db, u.settingsRepo, doctorID)
	if err != nil {
		return nil, nil, err
	}

	candidates := availability.Resolve(
		schedulesToDays(u.log, schedules),
		templatesToRules(u.log, templates),
		exceptionsToRules(u.log, exception),
		date,
		slotMinutes,
	)

	booked, err := u.appointmentRepo.FindBookedStartTimes(db, doctorID, hospitalID, date)
	if err != nil {
		u.log.Warnf("Failed to find booked times for doctor %s: %+v", doctorID, err)
		return nil, nil, err
	}

	candidates = availability.FilterBooked(candidates, booked)
	candidates = availability.FilterPast(candidates, date, time.Now())
	return candidates, booked, nil
}

func (u *appointmentUsecase) GetAvailableTimeslots(ctx context.Context, doctorID uuid.UUID, hospitalID int64, date string) (*dto.TimeslotsResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	slots, booked, err := u.resolveOpenSlots(ctx, doctorID, hospitalID, day)
	if err != nil {
		return nil, err
	}

	return &dto.TimeslotsResponse{
		DoctorID:   doctorID,
		HospitalID: hospitalID,
		Date:       date,
		Slots:      slotStarts(slots),
		Booked:     normalizeStarts(booked),
	}, nil
}

// RequestAppointment books a slot with a Redis-first reservation.
//
// Flow:
// 1. Validate date and time format, reject past dates
// 2. Resolve open slots and check the requested start is one of them
// 3. Redis SADD reservation (atomic, first writer wins)
// 4. Insert appointment row
// 5. If DB fails -> compensate: release the Redis reservation
func (u *appointmentUsecase) RequestAppointment(ctx context.Context, req *dto.RequestAppointmentRequest) (*dto.AppointmentResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	date, err := time.Parse("2006-01-02", req.AppointmentDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	startTime, valid := availability.NormalizeStart(req.AppointmentTime)
	if !valid {
		return nil, ErrInvalidTimeFormat
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		return nil, ErrAppointmentPast
	}

	settings, err := u.settingsRepo.FindByDoctorID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find settings for doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}

	advanceDays := entity.DefaultAdvanceBookingDays
	if settings != nil && settings.AdvanceBookingDays > 0 {
		advanceDays = settings.AdvanceBookingDays
	}
	if date.After(today.AddDate(0, 0, advanceDays)) {
		return nil, ErrBeyondBookingWindow
	}

	// Step 2: the requested start must be one of the open slots
	slots, _, err := u.resolveOpenSlots(ctx, req.DoctorID, req.HospitalID, date)
	if err != nil {
		return nil, err
	}
	if !containsStart(slots, startTime) {
		return nil, ErrSlotNotAvailable
	}

	// Step 3: Redis atomic slot reservation. Skipped when the doctor allows
	// overbooking, in which case slots never close.
	overbooking := settings != nil && settings.AllowOverbooking
	if !overbooking {
		if err := u.slotService.Reserve(ctx, req.DoctorID, req.HospitalID, date, startTime); err != nil {
			if errors.Is(err, service.ErrSlotTaken) {
				return nil, service.ErrSlotTaken
			}
			u.log.Warnf("Failed Redis slot reservation for doctor %s: %+v", req.DoctorID, err)
			return nil, err
		}
	}

	status := entity.AppointmentStatusPending
	if settings != nil && settings.AutoApprove {
		status = entity.AppointmentStatusConfirmed
	}

	appointment := &entity.Appointment{
		PatientID:       patientID,
		DoctorID:        req.DoctorID,
		HospitalID:      req.HospitalID,
		AppointmentDate: date,
		AppointmentTime: startTime,
		Type:            req.Type,
		Reason:          req.Reason,
		BookingCode:     generateBookingCode(date),
		Status:          status,
	}

	// Step 4: insert appointment, audit in the same transaction
	tx := u.db.WithContext(ctx).Begin()
	txErr := func() error {
		// Recheck against the DB inside the transaction. The Redis gate can
		// miss an existing booking after a cache flush or failed warm-up.
		if !overbooking {
			conflict, err := u.appointmentRepo.FindConflict(tx, req.DoctorID, req.HospitalID, date, startTime)
			if err != nil {
				return err
			}
			if conflict != nil {
				return ErrSlotNotAvailable
			}
		} else {
			// Overbooked rows take the next sequence so they clear the
			// partial unique index on (doctor, hospital, date, time, seq).
			seq, err := u.appointmentRepo.NextSlotSequence(tx, req.DoctorID, req.HospitalID, date, startTime)
			if err != nil {
				return err
			}
			appointment.SlotSequence = seq
		}
		if err := u.appointmentRepo.Create(tx, appointment); err != nil {
			// A row with sequence 0 already holds the slot; the unique index
			// caught a race the recheck missed.
			if isDuplicateKeyError(err, "idx_appointments_slot") {
				return ErrSlotNotAvailable
			}
			return err
		}
		if err := u.auditService.LogCreate(ctx, tx, &patientID, entity.AuditActionAppointmentRequest, "appointment", appointment.ID.String(), appointment); err != nil {
			return err
		}
		return tx.Commit().Error
	}()

	if txErr != nil {
		tx.Rollback()
		u.log.Errorf("Failed to insert appointment, compensating Redis: %+v", txErr)

		// Step 5: COMPENSATE - release the reservation since the DB write failed
		if !overbooking {
			releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if releaseErr := u.slotService.Release(releaseCtx, req.DoctorID, req.HospitalID, date, startTime); releaseErr != nil {
				u.log.Errorf("CRITICAL: Failed to release slot after DB failure for doctor %s %s: %+v", req.DoctorID, startTime, releaseErr)
			}
		}
		return nil, txErr
	}

	u.log.Infof("Appointment created: id=%s, doctor=%s, date=%s, time=%s, code=%s",
		appointment.ID, req.DoctorID, req.AppointmentDate, startTime, appointment.BookingCode)
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetMyAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetDoctorAppointments(ctx context.Context, date string) (*dto.AppointmentListResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	appointments, err := u.appointmentRepo.FindByDoctorAndDate(u.db.WithContext(ctx), doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) ConfirmAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUserNotFound
	}

	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.DoctorID != doctorID {
		return ErrAppointmentNotOwned
	}

	affected, err := u.appointmentRepo.UpdateStatus(db, appointmentID, entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed)
	if err != nil {
		u.log.Warnf("Failed to confirm appointment %s: %+v", appointmentID, err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotPending
	}

	if err := u.auditService.LogUpdate(ctx, db, &doctorID, entity.AuditActionAppointmentConfirm, "appointment", appointmentID.String(), entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed); err != nil {
		return err
	}

	u.log.Infof("Appointment confirmed: id=%s, doctor=%s", appointmentID, doctorID)
	return nil
}

// CancelAppointment cancels an appointment and releases its slot.
// Both the owning patient and the appointment's doctor may cancel.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUserNotFound
	}

	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.PatientID != userID && appointment.DoctorID != userID {
		return ErrAppointmentNotOwned
	}
	if appointment.IsCancelled() {
		return ErrAppointmentAlreadyCancelled
	}

	affected, err := u.appointmentRepo.CancelAppointment(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", appointmentID, err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentAlreadyCancelled
	}

	// Release the Redis reservation so the slot reopens. Log but don't fail,
	// Redis is re-synced on next startup.
	releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := u.slotService.Release(releaseCtx, appointment.DoctorID, appointment.HospitalID, appointment.AppointmentDate, appointment.AppointmentTime); err != nil {
		u.log.Warnf("Failed to release slot for cancelled appointment %s (non-fatal): %+v", appointmentID, err)
	}

	if err := u.auditService.LogUpdate(ctx, db, &userID, entity.AuditActionAppointmentCancel, "appointment", appointmentID.String(), appointment.Status, entity.AppointmentStatusCancelled); err != nil {
		return err
	}

	u.log.Infof("Appointment cancelled: id=%s, by=%s", appointmentID, userID)
	return nil
}

func (u *appointmentUsecase) GetMySettings(ctx context.Context) (*dto.AppointmentSettingsResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	settings, err := u.settingsRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find settings for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if settings == nil {
		settings = &entity.AppointmentSettings{
			DoctorID:            doctorID,
			SlotDurationMinutes: entity.DefaultSlotDurationMinutes,
			AdvanceBookingDays:  entity.DefaultAdvanceBookingDays,
		}
	}

	return converter.SettingsToResponse(settings), nil
}

func (u *appointmentUsecase) UpdateMySettings(ctx context.Context, req *dto.UpdateAppointmentSettingsRequest) (*dto.AppointmentSettingsResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	settings := &entity.AppointmentSettings{
		DoctorID:            doctorID,
		SlotDurationMinutes: req.SlotDurationMinutes,
		AdvanceBookingDays:  req.AdvanceBookingDays,
		AutoApprove:         req.AutoApprove,
		AllowOverbooking:    req.AllowOverbooking,
	}

	if err := u.settingsRepo.Save(u.db.WithContext(ctx), settings); err != nil {
		u.log.Warnf("Failed to save settings for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return converter.SettingsToResponse(settings), nil
}

func containsStart(slots []availability.TimeRange, start string) bool {
	for _, s := range slots {
		if s.Start.String() == start {
			return true
		}
	}
	return false
}

// normalizeStarts canonicalizes stored start times to HH:MM form,
// dropping anything unparseable.
func normalizeStarts(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if start, ok := availability.NormalizeStart(r); ok {
			out = append(out, start)
		}
	}
	return out
}

// generateBookingCode generates a unique booking code: AP-YYYYMMDD-XXXXXX
func generateBookingCode(date time.Time) string {
	randomBytes := make([]byte, 3)
	rand.Read(randomBytes)
	return fmt.Sprintf("AP-%s-%06X", date.Format("20060102"), randomBytes)
}
