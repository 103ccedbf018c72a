package converter

import (
	"healthsync/internal/delivery/dto"
	"healthsync/internal/domain/entity"

	"github.com/google/uuid"
)

// PrescriptionToResponse converts a Prescription entity with its nested
// medicine lines and timings to a response DTO
func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	medicines := make([]dto.PrescriptionMedicineResponse, len(prescription.Medicines))
	for i, line := range prescription.Medicines {
		timings := make([]dto.MedicineTimingResponse, len(line.Timings))
		for j, timing := range line.Timings {
			timings[j] = dto.MedicineTimingResponse{
				ID:            timing.ID,
				MealRelation:  timing.MealRelation,
				TimeOfDay:     timing.TimeOfDay,
				Amount:        timing.Amount,
				SpecificTime:  timing.SpecificTime,
				IntervalHours: timing.IntervalHours,
			}
		}

		var medicine *dto.MedicineResponse
		if line.Medicine.ID != uuid.Nil {
			medicine = MedicineToResponse(&line.Medicine)
		}

		medicines[i] = dto.PrescriptionMedicineResponse{
			ID:                  line.ID,
			Medicine:            medicine,
			DurationDays:        line.DurationDays,
			SpecialInstructions: line.SpecialInstructions,
			Timings:             timings,
		}
	}

	followUp := ""
	if prescription.FollowUpDate != nil {
		followUp = prescription.FollowUpDate.Format("2006-01-02")
	}

	return &dto.PrescriptionResponse{
		ID:            prescription.ID,
		DoctorID:      prescription.DoctorID,
		PatientID:     prescription.PatientID,
		AppointmentID: prescription.AppointmentID,
		Diagnosis:     prescription.Diagnosis,
		IssueDate:     prescription.IssueDate.Format("2006-01-02"),
		FollowUpDate:  followUp,
		Advice:        prescription.Advice,
		Medicines:     medicines,
		CreatedAt:     prescription.CreatedAt,
	}
}

// PrescriptionsToResponses converts a slice of Prescription entities
func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i, prescription := range prescriptions {
		resp := PrescriptionToResponse(&prescription)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
