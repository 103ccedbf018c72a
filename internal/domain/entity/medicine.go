package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Medicine is a catalog entry managed by administrators
type Medicine struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name         string          `gorm:"type:varchar(255);not null;index" json:"name"`
	GenericName  string          `gorm:"type:varchar(255);index" json:"generic_name,omitempty"`
	Manufacturer string          `gorm:"type:varchar(255)" json:"manufacturer,omitempty"`
	DosageForm   string          `gorm:"type:varchar(50)" json:"dosage_form,omitempty"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock        int             `gorm:"default:0" json:"stock"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Medicine) TableName() string {
	return "medicines"
}
