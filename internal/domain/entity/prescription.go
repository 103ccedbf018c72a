package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Meal relation of one medicine timing
const (
	MealRelationBeforeMeal   = "BEFORE_MEAL"
	MealRelationAfterMeal    = "AFTER_MEAL"
	MealRelationWithMeal     = "WITH_MEAL"
	MealRelationEmptyStomach = "EMPTY_STOMACH"
	MealRelationAnyTime      = "ANY_TIME"
)

// Time of day a medicine is taken. FIXED_TIME carries a specific "HH:MM"
// clock, INTERVAL carries an hour interval instead.
const (
	TimeOfDayMorning   = "MORNING"
	TimeOfDayAfternoon = "AFTERNOON"
	TimeOfDayEvening   = "EVENING"
	TimeOfDayNight     = "NIGHT"
	TimeOfDayBedtime   = "BEDTIME"
	TimeOfDayFixedTime = "FIXED_TIME"
	TimeOfDayInterval  = "INTERVAL"
)

// Prescription is a doctor's written record of diagnosis and medication
// for one patient, optionally tied to the appointment it came out of.
type Prescription struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	AppointmentID *uuid.UUID `gorm:"type:uuid" json:"appointment_id,omitempty"`
	Diagnosis     string     `gorm:"type:text;not null" json:"diagnosis"`
	IssueDate     time.Time  `gorm:"type:date;not null" json:"issue_date"`
	FollowUpDate  *time.Time `gorm:"type:date" json:"follow_up_date,omitempty"`
	Advice        string     `gorm:"type:text" json:"advice,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Medicines []PrescriptionMedicine `gorm:"foreignKey:PrescriptionID" json:"medicines,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// PrescriptionMedicine is one medication line on a prescription.
type PrescriptionMedicine struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PrescriptionID      int64     `gorm:"not null;index" json:"prescription_id"`
	MedicineID          uuid.UUID `gorm:"type:uuid;not null" json:"medicine_id"`
	DurationDays        int       `gorm:"not null" json:"duration_days"`
	SpecialInstructions string    `gorm:"type:text" json:"special_instructions,omitempty"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Medicine Medicine         `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`
	Timings  []MedicineTiming `gorm:"foreignKey:PrescriptionMedicineID" json:"timings,omitempty"`
}

func (PrescriptionMedicine) TableName() string {
	return "prescription_medicines"
}

// MedicineTiming says when and how much of a medication line to take.
type MedicineTiming struct {
	ID                     int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	PrescriptionMedicineID int64           `gorm:"not null;index" json:"prescription_medicine_id"`
	MealRelation           string          `gorm:"type:varchar(20);not null" json:"meal_relation"`
	TimeOfDay              string          `gorm:"type:varchar(20);not null" json:"time_of_day"`
	Amount                 decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"amount"`
	SpecificTime           string          `gorm:"type:varchar(5)" json:"specific_time,omitempty"`
	IntervalHours          *int            `json:"interval_hours,omitempty"`
	CreatedAt              time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MedicineTiming) TableName() string {
	return "medicine_timings"
}
