package repository

import (
	"healthsync/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicineRepository interface {
	Create(db *gorm.DB, medicine *entity.Medicine) error
	FindAll(db *gorm.DB, limit, offset int) ([]entity.Medicine, int64, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Medicine, error)
	Update(db *gorm.DB, medicine *entity.Medicine) error
	Delete(db *gorm.DB, id uuid.UUID) error
}
