package usecase

import (
	"context"
	"errors"
	"strconv"

	"healthsync/internal/converter"
	"healthsync/internal/delivery/dto"
	"healthsync/internal/delivery/http/middleware"
	"healthsync/internal/domain/entity"
	"healthsync/internal/domain/repository"
	"healthsync/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrHospitalNotFound = errors.New("hospital not found")

type HospitalUsecase interface {
	CreateHospital(ctx context.Context, req *dto.CreateHospitalRequest) (*dto.HospitalResponse, error)
	GetHospital(ctx context.Context, hospitalID int64) (*dto.HospitalResponse, error)
	GetAllHospitals(ctx context.Context) (*dto.HospitalListResponse, error)
	UpdateHospital(ctx context.Context, hospitalID int64, req *dto.UpdateHospitalRequest) (*dto.HospitalResponse, error)
	DeleteHospital(ctx context.Context, hospitalID int64) error
}

type hospitalUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	hospitalRepo repository.HospitalRepository
	auditService service.AuditService
}

func NewHospitalUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	hospitalRepo repository.HospitalRepository,
	auditService service.AuditService,
) HospitalUsecase {
	return &hospitalUsecase{
		db:           db,
		log:          log,
		hospitalRepo: hospitalRepo,
		auditService: auditService,
	}
}

func (u *hospitalUsecase) CreateHospital(ctx context.Context, req *dto.CreateHospitalRequest) (*dto.HospitalResponse, error) {
	userID, _ := middleware.GetUserIDFromContext(ctx)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hospital := &entity.Hospital{
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		PhoneNumber: req.PhoneNumber,
	}

	if err := u.hospitalRepo.Create(tx, hospital); err != nil {
		u.log.Warnf("Failed to create hospital: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionHospitalCreate, "hospital", strconv.FormatInt(hospital.ID, 10), hospital); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.HospitalToResponse(hospital), nil
}

func (u *hospitalUsecase) GetHospital(ctx context.Context, hospitalID int64) (*dto.HospitalResponse, error) {
	hospital, err := u.hospitalRepo.FindByID(u.db.WithContext(ctx), hospitalID)
	if err != nil {
		u.log.Warnf("Failed to find hospital %d: %+v", hospitalID, err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	return converter.HospitalToResponse(hospital), nil
}

func (u *hospitalUsecase) GetAllHospitals(ctx context.Context) (*dto.HospitalListResponse, error) {
	hospitals, err := u.hospitalRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find hospitals: %+v", err)
		return nil, err
	}

	return &dto.HospitalListResponse{
		Hospitals: converter.HospitalsToResponses(hospitals),
		Total:     len(hospitals),
	}, nil
}

func (u *hospitalUsecase) UpdateHospital(ctx context.Context, hospitalID int64, req *dto.UpdateHospitalRequest) (*dto.HospitalResponse, error) {
	hospital, err := u.hospitalRepo.FindByID(u.db.WithContext(ctx), hospitalID)
	if err != nil {
		u.log.Warnf("Failed to find hospital %d: %+v", hospitalID, err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	if req.Name != "" {
		hospital.Name = req.Name
	}
	if req.Address != "" {
		hospital.Address = req.Address
	}
	if req.City != "" {
		hospital.City = req.City
	}
	if req.State != "" {
		hospital.State = req.State
	}
	if req.PhoneNumber != "" {
		hospital.PhoneNumber = req.PhoneNumber
	}

	if err := u.hospitalRepo.Update(u.db.WithContext(ctx), hospital); err != nil {
		u.log.Warnf("Failed to update hospital %d: %+v", hospitalID, err)
		return nil, err
	}

	return converter.HospitalToResponse(hospital), nil
}

func (u *hospitalUsecase) DeleteHospital(ctx context.Context, hospitalID int64) error {
	hospital, err := u.hospitalRepo.FindByID(u.db.WithContext(ctx), hospitalID)
	if err != nil {
		u.log.Warnf("Failed to find hospital %d: %+v", hospitalID, err)
		return err
	}
	if hospital == nil {
		return ErrHospitalNotFound
	}

	if err := u.hospitalRepo.Delete(u.db.WithContext(ctx), hospitalID); err != nil {
		u.log.Warnf("Failed to delete hospital %d: %+v", hospitalID, err)
		return err
	}

	return nil
}
