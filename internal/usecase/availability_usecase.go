package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
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
	ErrTemplateNotFound       = errors.New("availability template not found")
	ErrExceptionNotFound      = errors.New("availability exception not found")
	ErrTemplateNotOwned       = errors.New("template does not belong to you")
	ErrExceptionNotOwned      = errors.New("exception does not belong to you")
	ErrExceptionAlreadyExists = errors.New("an exception already exists for this date")
	ErrInvalidScheduleType    = errors.New("invalid schedule type")
	ErrInvalidDaysOfWeek      = errors.New("days of week must be 1-7, comma separated")
	ErrMissingDateRange       = errors.New("start and end date are required for DATE_RANGE templates")
	ErrMissingSpecificDates   = errors.New("specific dates are required for SPECIFIC_DATES templates")
	ErrCustomHoursNeedSlots   = errors.New("custom hours exception requires time slots")
)

type AvailabilityUsecase interface {
	CreateTemplate(ctx context.Context, req *dto.CreateTemplateRequest) (*dto.TemplateResponse, error)
	GetMyTemplates(ctx context.Context) (*dto.TemplateListResponse, error)
	UpdateTemplate(ctx context.Context, templateID int64, req *dto.UpdateTemplateRequest) (*dto.TemplateResponse, error)
	DeleteTemplate(ctx context.Context, templateID int64) error

	CreateException(ctx context.Context, req *dto.CreateExceptionRequest) (*dto.ExceptionResponse, error)
	GetMyExceptions(ctx context.Context) (*dto.ExceptionListResponse, error)
	UpdateException(ctx context.Context, exceptionID int64, req *dto.UpdateExceptionRequest) (*dto.ExceptionResponse, error)
	DeleteException(ctx context.Context, exceptionID int64) error

	// PreviewSlots resolves the slot starts a doctor's own rules produce for
	// one date, before any booking state is applied.
	PreviewSlots(ctx context.Context, date string) (*dto.SlotPreviewResponse, error)
}

type availabilityUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	templateRepo  repository.AvailabilityTemplateRepository
	exceptionRepo repository.AvailabilityExceptionRepository
	scheduleRepo  repository.HospitalScheduleRepository
	settingsRepo  repository.AppointmentSettingsRepository
	auditService  service.AuditService
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	templateRepo repository.AvailabilityTemplateRepository,
	exceptionRepo repository.AvailabilityExceptionRepository,
	scheduleRepo repository.HospitalScheduleRepository,
	settingsRepo repository.AppointmentSettingsRepository,
	auditService service.AuditService,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:            db,
		log:           log,
		templateRepo:  templateRepo,
		exceptionRepo: exceptionRepo,
		scheduleRepo:  scheduleRepo,
		settingsRepo:  settingsRepo,
		auditService:  auditService,
	}
}

func (u *availabilityUsecase) CreateTemplate(ctx context.Context, req *dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	timeSlots, err := validateTimeSlots(req.TimeSlots)
	if err != nil {
		return nil, err
	}

	template := &entity.AvailabilityTemplate{
		DoctorID:     doctorID,
		TemplateName: req.TemplateName,
		ScheduleType: req.ScheduleType,
		TimeSlots:    timeSlots,
		IsActive:     true,
		Priority:     req.Priority,
	}

	if req.DaysOfWeek != "" {
		days, err := validateDaysOfWeek(req.DaysOfWeek)
		if err != nil {
			return nil, err
		}
		template.DaysOfWeek = days
	}
	if req.StartDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		template.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		template.EndDate = &end
	}
	if req.SpecificDates != "" {
		dates, err := validateSpecificDates(req.SpecificDates)
		if err != nil {
			return nil, err
		}
		template.SpecificDates = dates
	}

	if err := validateTemplateRules(template); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.templateRepo.Create(tx, template); err != nil {
		u.log.Warnf("Failed to create template: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &doctorID, entity.AuditActionTemplateCreate, "availability_template", strconv.FormatInt(template.ID, 10), template); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.TemplateToResponse(template), nil
}

func (u *availabilityUsecase) GetMyTemplates(ctx context.Context) (*dto.TemplateListResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	templates, err := u.templateRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find templates for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.TemplateListResponse{
		Templates: converter.TemplatesToResponses(templates),
		Total:     len(templates),
	}, nil
}

func (u *availabilityUsecase) UpdateTemplate(ctx context.Context, templateID int64, req *dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	template, err := u.templateRepo.FindByID(tx, templateID)
	if err != nil {
		u.log.Warnf("Failed to find template %d: %+v", templateID, err)
		return nil, err
	}
	if template == nil {
		return nil, ErrTemplateNotFound
	}
	if template.DoctorID != doctorID {
		return nil, ErrTemplateNotOwned
	}

	oldTemplate := *template

	if req.TemplateName != "" {
		template.TemplateName = req.TemplateName
	}
	if req.ScheduleType != "" {
		template.ScheduleType = req.ScheduleType
	}
	if req.DaysOfWeek != "" {
		days, err := validateDaysOfWeek(req.DaysOfWeek)
		if err != nil {
			return nil, err
		}
		template.DaysOfWeek = days
	}
	if req.TimeSlots != "" {
		timeSlots, err := validateTimeSlots(req.TimeSlots)
		if err != nil {
			return nil, err
		}
		template.TimeSlots = timeSlots
	}
	if req.StartDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		template.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		template.EndDate = &end
	}
	if req.SpecificDates != "" {
		dates, err := validateSpecificDates(req.SpecificDates)
		if err != nil {
			return nil, err
		}
		template.SpecificDates = dates
	}
	if req.Priority != nil {
		template.Priority = *req.Priority
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}

	if err := validateTemplateRules(template); err != nil {
		return nil, err
	}

	if err := u.templateRepo.Update(tx, template); err != nil {
		u.log.Warnf("Failed to update template %d: %+v", templateID, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &doctorID, entity.AuditActionTemplateUpdate, "availability_template", strconv.FormatInt(templateID, 10), oldTemplate, template); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.TemplateToResponse(template), nil
}

func (u *availabilityUsecase) DeleteTemplate(ctx context.Context, templateID int64) error {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUserNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	template, err := u.templateRepo.FindByID(tx, templateID)
	if err != nil {
		u.log.Warnf("Failed to find template %d: %+v", templateID, err)
		return err
	}
	if template == nil {
		return ErrTemplateNotFound
	}
	if template.DoctorID != doctorID {
		return ErrTemplateNotOwned
	}

	affected, err := u.templateRepo.Delete(tx, templateID)
	if err != nil {
		u.log.Warnf("Failed to delete template %d: %+v", templateID, err)
		return err
	}
	if affected == 0 {
		return ErrTemplateNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &doctorID, entity.AuditActionTemplateDelete, "availability_template", strconv.FormatInt(templateID, 10), template); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *availabilityUsecase) CreateException(ctx context.Context, req *dto.CreateExceptionRequest) (*dto.ExceptionResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	date, err := time.Parse("2006-01-02", req.ExceptionDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	exception := &entity.AvailabilityException{
		DoctorID:      doctorID,
		ExceptionDate: date,
		ExceptionType: req.ExceptionType,
		Reason:        req.Reason,
	}

	if req.ExceptionType == entity.ExceptionTypeCustomHours {
		if req.TimeSlots == "" {
			return nil, ErrCustomHoursNeedSlots
		}
		timeSlots, err := validateTimeSlots(req.TimeSlots)
		if err != nil {
			return nil, err
		}
		exception.TimeSlots = timeSlots
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.exceptionRepo.Create(tx, exception); err != nil {
		if isDuplicateKeyError(err, "idx_doctor_exception_date") {
			return nil, ErrExceptionAlreadyExists
		}
		u.log.Warnf("Failed to create exception: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &doctorID, entity.AuditActionExceptionCreate, "availability_exception", strconv.FormatInt(exception.ID, 10), exception); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ExceptionToResponse(exception), nil
}

func (u *availabilityUsecase) GetMyExceptions(ctx context.Context) (*dto.ExceptionListResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	exceptions, err := u.exceptionRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find exceptions for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.ExceptionListResponse{
		Exceptions: converter.ExceptionsToResponses(exceptions),
		Total:      len(exceptions),
	}, nil
}

func (u *availabilityUsecase) UpdateException(ctx context.Context, exceptionID int64, req *dto.UpdateExceptionRequest) (*dto.ExceptionResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	exception, err := u.exceptionRepo.FindByID(tx, exceptionID)
	if err != nil {
		u.log.Warnf("Failed to find exception %d: %+v", exceptionID, err)
		return nil, err
	}
	if exception == nil {
		return nil, ErrExceptionNotFound
	}
	if exception.DoctorID != doctorID {
		return nil, ErrExceptionNotOwned
	}

	before := *exception

	if req.ExceptionType != "" {
		exception.ExceptionType = req.ExceptionType
	}
	if req.TimeSlots != "" {
		timeSlots, err := validateTimeSlots(req.TimeSlots)
		if err != nil {
			return nil, err
		}
		exception.TimeSlots = timeSlots
	}
	if req.Reason != "" {
		exception.Reason = req.Reason
	}
	if exception.ExceptionType == entity.ExceptionTypeCustomHours && exception.TimeSlots == "" {
		return nil, ErrCustomHoursNeedSlots
	}
	if exception.ExceptionType == entity.ExceptionTypeUnavailable {
		exception.TimeSlots = ""
	}

	if err := u.exceptionRepo.Update(tx, exception); err != nil {
		u.log.Warnf("Failed to update exception %d: %+v", exceptionID, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &doctorID, entity.AuditActionExceptionUpdate, "availability_exception", strconv.FormatInt(exceptionID, 10), &before, exception); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ExceptionToResponse(exception), nil
}

func (u *availabilityUsecase) DeleteException(ctx context.Context, exceptionID int64) error {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUserNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	exception, err := u.exceptionRepo.FindByID(tx, exceptionID)
	if err != nil {
		u.log.Warnf("Failed to find exception %d: %+v", exceptionID, err)
		return err
	}
	if exception == nil {
		return ErrExceptionNotFound
	}
	if exception.DoctorID != doctorID {
		return ErrExceptionNotOwned
	}

	affected, err := u.exceptionRepo.Delete(tx, exceptionID)
	if err != nil {
		u.log.Warnf("Failed to delete exception %d: %+v", exceptionID, err)
		return err
	}
	if affected == 0 {
		return ErrExceptionNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &doctorID, entity.AuditActionExceptionDelete, "availability_exception", strconv.FormatInt(exceptionID, 10), exception); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *availabilityUsecase) PreviewSlots(ctx context.Context, date string) (*dto.SlotPreviewResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotFound
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	db := u.db.WithContext(ctx)

	schedules, err := u.scheduleRepo.FindByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find schedules for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	templates, err := u.templateRepo.FindActiveByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find templates for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	exception, err := u.exceptionRepo.FindByDoctorAndDate(db, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to find exception for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	slotMinutes, err := resolveSlotMinutes(db, u.settingsRepo, doctorID)
	if err != nil {
		return nil, err
	}

	candidates := availability.Resolve(
		schedulesToDays(u.log, schedules),
		templatesToRules(u.log, templates),
		exceptionsToRules(u.log, exception),
		day,
		slotMinutes,
	)

	return &dto.SlotPreviewResponse{
		Date:  date,
		Slots: slotStarts(candidates),
	}, nil
}

// resolveSlotMinutes returns the doctor's configured slot duration, falling
// back to the default when no settings row exists.
func resolveSlotMinutes(db *gorm.DB, settingsRepo repository.AppointmentSettingsRepository, doctorID uuid.UUID) (int, error) {
	settings, err := settingsRepo.FindByDoctorID(db, doctorID)
	if err != nil {
		return 0, err
	}
	if settings == nil || settings.SlotDurationMinutes <= 0 {
		return entity.DefaultSlotDurationMinutes, nil
	}
	return settings.SlotDurationMinutes, nil
}

// schedulesToDays converts stored hospital schedules into resolver day rules.
// Rows with malformed slot strings are skipped with a warning rather than
// failing the whole resolution.
func schedulesToDays(log *logrus.Logger, schedules []entity.HospitalSchedule) []availability.DaySchedule {
	days := make([]availability.DaySchedule, 0, len(schedules))
	for _, s := range schedules {
		windows, err := availability.ParseRangeList(s.TimeSlots)
		if err != nil {
			log.Warnf("Skipping schedule %d with bad time slots %q: %+v", s.ID, s.TimeSlots, err)
			continue
		}
		days = append(days, availability.DaySchedule{
			DayOfWeek: s.DayOfWeek,
			Windows:   windows,
		})
	}
	return days
}

func templatesToRules(log *logrus.Logger, templates []entity.AvailabilityTemplate) []availability.Template {
	rules := make([]availability.Template, 0, len(templates))
	for _, t := range templates {
		windows, err := availability.ParseRangeList(t.TimeSlots)
		if err != nil {
			log.Warnf("Skipping template %d with bad time slots %q: %+v", t.ID, t.TimeSlots, err)
			continue
		}
		rule := availability.Template{
			ScheduleType: availability.ScheduleType(t.ScheduleType),
			DaysOfWeek:   availability.ParseDaysOfWeek(t.DaysOfWeek),
			Windows:      windows,
			IsActive:     t.IsActive,
			Priority:     t.Priority,
		}
		if t.StartDate != nil {
			rule.StartDate = *t.StartDate
		}
		if t.EndDate != nil {
			rule.EndDate = *t.EndDate
		}
		if t.SpecificDates != "" {
			rule.SpecificDates = make(map[string]bool)
			for _, d := range strings.Split(t.SpecificDates, ",") {
				rule.SpecificDates[strings.TrimSpace(d)] = true
			}
		}
		rules = append(rules, rule)
	}
	return rules
}

// exceptionsToRules converts the (at most one) exception row for a date.
func exceptionsToRules(log *logrus.Logger, exception *entity.AvailabilityException) []availability.Exception {
	if exception == nil {
		return nil
	}
	rule := availability.Exception{
		Date:   exception.ExceptionDate,
		Type:   availability.ExceptionType(exception.ExceptionType),
		Reason: exception.Reason,
	}
	if exception.ExceptionType == entity.ExceptionTypeCustomHours {
		windows, err := availability.ParseRangeList(exception.TimeSlots)
		if err != nil {
			log.Warnf("Skipping exception %d with bad time slots %q: %+v", exception.ID, exception.TimeSlots, err)
			return nil
		}
		rule.Windows = windows
	}
	return []availability.Exception{rule}
}

func slotStarts(slots []availability.TimeRange) []string {
	starts := make([]string, len(slots))
	for i, s := range slots {
		starts[i] = s.Start.String()
	}
	return starts
}

// validateTemplateRules enforces the cross-field requirements of each
// schedule type on a fully populated template. It runs after request
// fields are merged, so partial updates cannot leave a template in a
// shape the resolver would never match.
func validateTemplateRules(template *entity.AvailabilityTemplate) error {
	switch template.ScheduleType {
	case entity.ScheduleTypeDaily:
		return nil
	case entity.ScheduleTypeWeekly:
		if template.DaysOfWeek == "" {
			return ErrInvalidDaysOfWeek
		}
	case entity.ScheduleTypeDateRange:
		if template.StartDate == nil || template.EndDate == nil {
			return ErrMissingDateRange
		}
	case entity.ScheduleTypeSpecificDates:
		if template.SpecificDates == "" {
			return ErrMissingSpecificDates
		}
	default:
		return ErrInvalidScheduleType
	}
	return nil
}

// validateDaysOfWeek checks a comma-joined numeric day set like "1,3,5".
func validateDaysOfWeek(raw string) (string, error) {
	parts := strings.Split(raw, ",")
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || n > 7 {
			return "", ErrInvalidDaysOfWeek
		}
		cleaned = append(cleaned, p)
	}
	if len(cleaned) == 0 {
		return "", ErrInvalidDaysOfWeek
	}
	return strings.Join(cleaned, ","), nil
}

// validateSpecificDates checks a comma-joined date list like
// "2026-03-02,2026-03-09".
func validateSpecificDates(raw string) (string, error) {
	parts := strings.Split(raw, ",")
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if _, err := time.Parse("2006-01-02", p); err != nil {
			return "", ErrInvalidDateFormat
		}
		cleaned = append(cleaned, p)
	}
	if len(cleaned) == 0 {
		return "", ErrInvalidDateFormat
	}
	return strings.Join(cleaned, ","), nil
}
