package entity

import "time"

// Hospital represents a clinic location where doctors hold consultations
type Hospital struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Address     string    `gorm:"type:text" json:"address,omitempty"`
	City        string    `gorm:"type:varchar(100);index" json:"city,omitempty"`
	State       string    `gorm:"type:varchar(100)" json:"state,omitempty"`
	PhoneNumber string    `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Schedules []HospitalSchedule `gorm:"foreignKey:HospitalID" json:"schedules,omitempty"`
}

func (Hospital) TableName() string {
	return "hospitals"
}
