package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"

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
	ErrScheduleNotFound    = errors.New("schedule not found")
	ErrDayAlreadyScheduled = errors.New("doctor already has a schedule for this day at this hospital")
	ErrInvalidDayOfWeek    = errors.New("invalid day of week")
	ErrInvalidTimeSlots    = errors.New("invalid time slots, use HH:MM-HH:MM,HH:MM-HH:MM")
	ErrScheduleNotOwned    = errors.New("schedule does not belong to you")
	ErrEmptyTimeSlots      = errors.New("time slots must not be empty")
)

type HospitalScheduleUsecase interface {
	CreateSchedule(ctx context.Context, req *dto.CreateHospitalScheduleRequest) (*dto.HospitalScheduleResponse, error)
	GetSchedule(ctx context.Context, scheduleID int64) (*dto.HospitalScheduleResponse, error)
	GetMySchedules(ctx context.Context) (*dto.HospitalScheduleListResponse, error)
	GetSchedulesByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.HospitalScheduleListResponse, error)
	UpdateSchedule(ctx context.Context, scheduleID int64, req *dto.UpdateHospitalScheduleRequest) (*dto.HospitalScheduleResponse, error)
	DeleteSchedule(ctx context.Context, scheduleID int64) error
}

type hospitalScheduleUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	scheduleRepo repository.HospitalScheduleRepository
	hospitalRepo repository.HospitalRepository
	auditService service.AuditService
}

func NewHospitalScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	scheduleRepo repository.HospitalScheduleRepository,
	hospitalRepo repository.HospitalRepository,
	auditService service.AuditService,
) HospitalScheduleUsecase {
	return &hospitalScheduleUsecase{
		db:           db,
		log:          log,
		scheduleRepo: scheduleRepo,
		hospitalRepo: hospitalRepo,
		auditService: auditService,
	}
}

// validateTimeSlots parses and re-formats a window string so stored values
// are always canonical "HH:MM-HH:MM,HH:MM-HH:MM".
func validateTimeSlots(raw string) (string, error) {
	ranges, err := availability.ParseRangeList(raw)
	if err != nil {
		return "", ErrInvalidTimeSlots
	}
	if len(ranges) == 0 {
		return "", ErrEmptyTimeSlots
	}
	for _, r := range ranges {
		if r.Start >= r.End {
			return "", ErrInvalidTimeSlots
		}
	}
	return availability.FormatRangeList(ranges), nil
}

func (u *hospitalScheduleUsecase) CreateSchedule(ctx context.Context, req *dto.CreateHospitalScheduleRequest) (*dto.HospitalScheduleResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	day := strings.ToUpper(strings.TrimSpace(req.DayOfWeek))
	if !entity.IsValidWeekday(day) {
		return nil, ErrInvalidDayOfWeek
	}

	timeSlots, err := validateTimeSlots(req.TimeSlots)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hospital, err := u.hospitalRepo.FindByID(tx, req.HospitalID)
	if err != nil {
		u.log.Warnf("Failed to find hospital %d: %+v", req.HospitalID, err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	// One schedule per (doctor, hospital, day)
	existing, err := u.scheduleRepo.FindByDoctorHospitalDay(tx, doctorID, req.HospitalID, day)
	if err != nil {
		u.log.Warnf("Failed to check existing schedule: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDayAlreadyScheduled
	}

	schedule := &entity.HospitalSchedule{
		DoctorID:        doctorID,
		HospitalID:      req.HospitalID,
		DayOfWeek:       day,
		TimeSlots:       timeSlots,
		ConsultationFee: req.ConsultationFee,
	}

	if err := u.scheduleRepo.Create(tx, schedule); err != nil {
		if isDuplicateKeyError(err, "idx_doctor_hospital_day") {
			return nil, ErrDayAlreadyScheduled
		}
		u.log.Warnf("Failed to create schedule: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &doctorID, entity.AuditActionScheduleCreate, "hospital_schedule", strconv.FormatInt(schedule.ID, 10), schedule); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	schedule.Hospital = *hospital
	return converter.HospitalScheduleToResponse(schedule), nil
}

func (u *hospitalScheduleUsecase) GetSchedule(ctx context.Context, scheduleID int64) (*dto.HospitalScheduleResponse, error) {
	schedule, err := u.scheduleRepo.FindByID(u.db.WithContext(ctx), scheduleID)
	if err != nil {
		u.log.Warnf("Failed to find schedule %d: %+v", scheduleID, err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	return converter.HospitalScheduleToResponse(schedule), nil
}

func (u *hospitalScheduleUsecase) GetMySchedules(ctx context.Context) (*dto.HospitalScheduleListResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}
	return u.GetSchedulesByDoctor(ctx, doctorID)
}

func (u *hospitalScheduleUsecase) GetSchedulesByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.HospitalScheduleListResponse, error) {
	schedules, err := u.scheduleRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find schedules for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.HospitalScheduleListResponse{
		Schedules: converter.HospitalSchedulesToResponses(schedules),
		Total:     len(schedules),
	}, nil
}

func (u *hospitalScheduleUsecase) UpdateSchedule(ctx context.Context, scheduleID int64, req *dto.UpdateHospitalScheduleRequest) (*dto.HospitalScheduleResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	schedule, err := u.scheduleRepo.FindByID(tx, scheduleID)
	if err != nil {
		u.log.Warnf("Failed to find schedule %d: %+v", scheduleID, err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}
	if schedule.DoctorID != doctorID {
		return nil, ErrScheduleNotOwned
	}

	oldSchedule := *schedule

	if req.DayOfWeek != "" {
		day := strings.ToUpper(strings.TrimSpace(req.DayOfWeek))
		if !entity.IsValidWeekday(day) {
			return nil, ErrInvalidDayOfWeek
		}
		schedule.DayOfWeek = day
	}
	if req.TimeSlots != "" {
		timeSlots, err := validateTimeSlots(req.TimeSlots)
		if err != nil {
			return nil, err
		}
		schedule.TimeSlots = timeSlots
	}
	if req.ConsultationFee != nil {
		schedule.ConsultationFee = *req.ConsultationFee
	}

	if err := u.scheduleRepo.Update(tx, schedule); err != nil {
		if isDuplicateKeyError(err, "idx_doctor_hospital_day") {
			return nil, ErrDayAlreadyScheduled
		}
		u.log.Warnf("Failed to update schedule %d: %+v", scheduleID, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &doctorID, entity.AuditActionScheduleUpdate, "hospital_schedule", strconv.FormatInt(scheduleID, 10), oldSchedule, schedule); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.HospitalScheduleToResponse(schedule), nil
}

func (u *hospitalScheduleUsecase) DeleteSchedule(ctx context.Context, scheduleID int64) error {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUserNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	schedule, err := u.scheduleRepo.FindByID(tx, scheduleID)
	if err != nil {
		u.log.Warnf("Failed to find schedule %d: %+v", scheduleID, err)
		return err
	}
	if schedule == nil {
		return ErrScheduleNotFound
	}
	if schedule.DoctorID != doctorID {
		return ErrScheduleNotOwned
	}

	affected, err := u.scheduleRepo.Delete(tx, scheduleID)
	if err != nil {
		u.log.Warnf("Failed to delete schedule %d: %+v", scheduleID, err)
		return err
	}
	if affected == 0 {
		return ErrScheduleNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &doctorID, entity.AuditActionScheduleDelete, "hospital_schedule", strconv.FormatInt(scheduleID, 10), schedule); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
