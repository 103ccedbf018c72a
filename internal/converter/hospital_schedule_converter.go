package converter

import (
	"healthsync/internal/delivery/dto"
	"healthsync/internal/domain/entity"
)

// HospitalScheduleToResponse converts a HospitalSchedule entity to HospitalScheduleResponse DTO
func HospitalScheduleToResponse(schedule *entity.HospitalSchedule) *dto.HospitalScheduleResponse {
	if schedule == nil {
		return nil
	}

	response := &dto.HospitalScheduleResponse{
		ID:              schedule.ID,
		DoctorID:        schedule.DoctorID,
		HospitalID:      schedule.HospitalID,
		DayOfWeek:       schedule.DayOfWeek,
		TimeSlots:       schedule.TimeSlots,
		ConsultationFee: schedule.ConsultationFee,
		CreatedAt:       schedule.CreatedAt,
		UpdatedAt:       schedule.UpdatedAt,
	}

	// Include doctor info if preloaded
	if schedule.Doctor.LicenseNumber != "" {
		response.Doctor = DoctorProfileToResponse(&schedule.Doctor)
	}

	// Include hospital info if preloaded
	if schedule.Hospital.ID != 0 {
		response.Hospital = HospitalToResponse(&schedule.Hospital)
	}

	return response
}

// HospitalSchedulesToResponses converts a slice of HospitalSchedule entities to response DTOs
func HospitalSchedulesToResponses(schedules []entity.HospitalSchedule) []dto.HospitalScheduleResponse {
	responses := make([]dto.HospitalScheduleResponse, len(schedules))
	for i, schedule := range schedules {
		resp := HospitalScheduleToResponse(&schedule)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
