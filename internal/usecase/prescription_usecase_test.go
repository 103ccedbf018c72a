package usecase

import (
	"errors"
	"testing"

	"healthsync/internal/domain/entity"

	"github.com/shopspring/decimal"
)

func TestValidateTimingRules(t *testing.T) {
	hours := func(n int) *int { return &n }

	tests := []struct {
		name    string
		timing  entity.MedicineTiming
		wantErr error
	}{
		{
			name:   "morning after meal",
			timing: entity.MedicineTiming{MealRelation: entity.MealRelationAfterMeal, TimeOfDay: entity.TimeOfDayMorning, Amount: decimal.NewFromInt(1)},
		},
		{
			name:   "fixed time with clock",
			timing: entity.MedicineTiming{MealRelation: entity.MealRelationAnyTime, TimeOfDay: entity.TimeOfDayFixedTime, Amount: decimal.NewFromInt(2), SpecificTime: "08:30"},
		},
		{
			name:    "fixed time without clock",
			timing:  entity.MedicineTiming{MealRelation: entity.MealRelationAnyTime, TimeOfDay: entity.TimeOfDayFixedTime, Amount: decimal.NewFromInt(2)},
			wantErr: ErrTimingNeedsSpecificTime,
		},
		{
			name:   "interval with hours",
			timing: entity.MedicineTiming{MealRelation: entity.MealRelationAnyTime, TimeOfDay: entity.TimeOfDayInterval, Amount: decimal.NewFromInt(1), IntervalHours: hours(6)},
		},
		{
			name:    "interval without hours",
			timing:  entity.MedicineTiming{MealRelation: entity.MealRelationAnyTime, TimeOfDay: entity.TimeOfDayInterval, Amount: decimal.NewFromInt(1)},
			wantErr: ErrTimingNeedsInterval,
		},
		{
			name:    "zero amount",
			timing:  entity.MedicineTiming{MealRelation: entity.MealRelationWithMeal, TimeOfDay: entity.TimeOfDayEvening, Amount: decimal.Zero},
			wantErr: ErrTimingAmountInvalid,
		},
		{
			name:    "negative amount",
			timing:  entity.MedicineTiming{MealRelation: entity.MealRelationWithMeal, TimeOfDay: entity.TimeOfDayEvening, Amount: decimal.NewFromInt(-1)},
			wantErr: ErrTimingAmountInvalid,
		},
		{
			name:   "half tablet",
			timing: entity.MedicineTiming{MealRelation: entity.MealRelationBeforeMeal, TimeOfDay: entity.TimeOfDayNight, Amount: decimal.NewFromFloat(0.5)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTimingRules(&tt.timing)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateTimingRules() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
