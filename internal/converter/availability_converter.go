package converter

import (
	"healthsync/internal/delivery/dto"
	"healthsync/internal/domain/entity"
)

// TemplateToResponse converts an AvailabilityTemplate entity to TemplateResponse DTO
func TemplateToResponse(template *entity.AvailabilityTemplate) *dto.TemplateResponse {
	if template == nil {
		return nil
	}

	response := &dto.TemplateResponse{
		ID:            template.ID,
		DoctorID:      template.DoctorID,
		TemplateName:  template.TemplateName,
		ScheduleType:  template.ScheduleType,
		DaysOfWeek:    template.DaysOfWeek,
		TimeSlots:     template.TimeSlots,
		SpecificDates: template.SpecificDates,
		IsActive:      template.IsActive,
		Priority:      template.Priority,
		CreatedAt:     template.CreatedAt,
		UpdatedAt:     template.UpdatedAt,
	}

	if template.StartDate != nil {
		response.StartDate = template.StartDate.Format("2006-01-02")
	}
	if template.EndDate != nil {
		response.EndDate = template.EndDate.Format("2006-01-02")
	}

	return response
}

// TemplatesToResponses converts a slice of AvailabilityTemplate entities to response DTOs
func TemplatesToResponses(templates []entity.AvailabilityTemplate) []dto.TemplateResponse {
	responses := make([]dto.TemplateResponse, len(templates))
	for i, template := range templates {
		resp := TemplateToResponse(&template)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// ExceptionToResponse converts an AvailabilityException entity to ExceptionResponse DTO
func ExceptionToResponse(exception *entity.AvailabilityException) *dto.ExceptionResponse {
	if exception == nil {
		return nil
	}

	return &dto.ExceptionResponse{
		ID:            exception.ID,
		DoctorID:      exception.DoctorID,
		ExceptionDate: exception.ExceptionDate.Format("2006-01-02"),
		ExceptionType: exception.ExceptionType,
		TimeSlots:     exception.TimeSlots,
		Reason:        exception.Reason,
		CreatedAt:     exception.CreatedAt,
	}
}

// ExceptionsToResponses converts a slice of AvailabilityException entities to response DTOs
func ExceptionsToResponses(exceptions []entity.AvailabilityException) []dto.ExceptionResponse {
	responses := make([]dto.ExceptionResponse, len(exceptions))
	for i, exception := range exceptions {
		resp := ExceptionToResponse(&exception)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
