package repository

import (
	"healthsync/internal/domain/entity"

	"gorm.io/gorm"
)

type HospitalRepository interface {
	Create(db *gorm.DB, hospital *entity.Hospital) error
	FindByID(db *gorm.DB, id int64) (*entity.Hospital, error)
	FindAll(db *gorm.DB) ([]entity.Hospital, error)
	Update(db *gorm.DB, hospital *entity.Hospital) error
	Delete(db *gorm.DB, id int64) error
}
