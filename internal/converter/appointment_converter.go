package converter

import (
	"healthsync/internal/delivery/dto"
	"healthsync/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:              appointment.ID,
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		HospitalID:      appointment.HospitalID,
		AppointmentDate: appointment.AppointmentDate.Format("2006-01-02"),
		AppointmentTime: appointment.AppointmentTime,
		Type:            appointment.Type,
		Reason:          appointment.Reason,
		BookingCode:     appointment.BookingCode,
		Status:          string(appointment.Status),
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}

	if appointment.Doctor.LicenseNumber != "" {
		response.Doctor = DoctorProfileToResponse(&appointment.Doctor)
	}

	if appointment.Hospital.ID != 0 {
		response.Hospital = HospitalToResponse(&appointment.Hospital)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to response DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// SettingsToResponse converts an AppointmentSettings entity to its response DTO
func SettingsToResponse(settings *entity.AppointmentSettings) *dto.AppointmentSettingsResponse {
	if settings == nil {
		return nil
	}

	return &dto.AppointmentSettingsResponse{
		DoctorID:            settings.DoctorID,
		SlotDurationMinutes: settings.SlotDurationMinutes,
		AdvanceBookingDays:  settings.AdvanceBookingDays,
		AutoApprove:         settings.AutoApprove,
		AllowOverbooking:    settings.AllowOverbooking,
	}
}
