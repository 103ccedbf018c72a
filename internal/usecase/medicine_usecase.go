package usecase

import (
	"context"
	"errors"

	"healthsync/internal/converter"
	"healthsync/internal/delivery/dto"
	"healthsync/internal/domain/entity"
	"healthsync/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrMedicineNotFound = errors.New("medicine not found")

const defaultMedicinePageSize = 50

type MedicineUsecase interface {
	GetMedicines(ctx context.Context, limit, offset int) (*dto.MedicineListResponse, error)
	GetMedicine(ctx context.Context, medicineID uuid.UUID) (*dto.MedicineResponse, error)
	CreateMedicine(ctx context.Context, req *dto.CreateMedicineRequest) (*dto.MedicineResponse, error)
	UpdateMedicine(ctx context.Context, medicineID uuid.UUID, req *dto.UpdateMedicineRequest) (*dto.MedicineResponse, error)
	DeleteMedicine(ctx context.Context, medicineID uuid.UUID) error
}

type medicineUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	medicineRepo repository.MedicineRepository
}

func NewMedicineUsecase(db *gorm.DB, log *logrus.Logger, medicineRepo repository.MedicineRepository) MedicineUsecase {
	return &medicineUsecase{
		db:           db,
		log:          log,
		medicineRepo: medicineRepo,
	}
}

func (u *medicineUsecase) GetMedicines(ctx context.Context, limit, offset int) (*dto.MedicineListResponse, error) {
	if limit <= 0 || limit > defaultMedicinePageSize {
		limit = defaultMedicinePageSize
	}
	if offset < 0 {
		offset = 0
	}

	medicines, total, err := u.medicineRepo.FindAll(u.db.WithContext(ctx), limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find medicines: %+v", err)
		return nil, err
	}

	return &dto.MedicineListResponse{
		Medicines: converter.MedicinesToResponses(medicines),
		Total:     total,
	}, nil
}

func (u *medicineUsecase) GetMedicine(ctx context.Context, medicineID uuid.UUID) (*dto.MedicineResponse, error) {
	medicine, err := u.medicineRepo.FindByID(u.db.WithContext(ctx), medicineID)
	if err != nil {
		u.log.Warnf("Failed to find medicine %s: %+v", medicineID, err)
		return nil, err
	}
	if medicine == nil {
		return nil, ErrMedicineNotFound
	}

	return converter.MedicineToResponse(medicine), nil
}

func (u *medicineUsecase) CreateMedicine(ctx context.Context, req *dto.CreateMedicineRequest) (*dto.MedicineResponse, error) {
	medicine := &entity.Medicine{
		Name:         req.Name,
		GenericName:  req.GenericName,
		Manufacturer: req.Manufacturer,
		DosageForm:   req.DosageForm,
		Price:        req.Price,
		Stock:        req.Stock,
	}

	if err := u.medicineRepo.Create(u.db.WithContext(ctx), medicine); err != nil {
		u.log.Warnf("Failed to create medicine: %+v", err)
		return nil, err
	}

	return converter.MedicineToResponse(medicine), nil
}

func (u *medicineUsecase) UpdateMedicine(ctx context.Context, medicineID uuid.UUID, req *dto.UpdateMedicineRequest) (*dto.MedicineResponse, error) {
	medicine, err := u.medicineRepo.FindByID(u.db.WithContext(ctx), medicineID)
	if err != nil {
		u.log.Warnf("Failed to find medicine %s: %+v", medicineID, err)
		return nil, err
	}
	if medicine == nil {
		return nil, ErrMedicineNotFound
	}

	if req.Name != "" {
		medicine.Name = req.Name
	}
	if req.GenericName != "" {
		medicine.GenericName = req.GenericName
	}
	if req.Manufacturer != "" {
		medicine.Manufacturer = req.Manufacturer
	}
	if req.DosageForm != "" {
		medicine.DosageForm = req.DosageForm
	}
	if req.Price != nil {
		medicine.Price = *req.Price
	}
	if req.Stock != nil {
		medicine.Stock = *req.Stock
	}

	if err := u.medicineRepo.Update(u.db.WithContext(ctx), medicine); err != nil {
		u.log.Warnf("Failed to update medicine %s: %+v", medicineID, err)
		return nil, err
	}

	return converter.MedicineToResponse(medicine), nil
}

func (u *medicineUsecase) DeleteMedicine(ctx context.Context, medicineID uuid.UUID) error {
	medicine, err := u.medicineRepo.FindByID(u.db.WithContext(ctx), medicineID)
	if err != nil {
		u.log.Warnf("Failed to find medicine %s: %+v", medicineID, err)
		return err
	}
	if medicine == nil {
		return ErrMedicineNotFound
	}

	if err := u.medicineRepo.Delete(u.db.WithContext(ctx), medicineID); err != nil {
		u.log.Warnf("Failed to delete medicine %s: %+v", medicineID, err)
		return err
	}

	return nil
}
