package converter

import (
	"healthsync/internal/delivery/dto"
	"healthsync/internal/domain/entity"
)

// HospitalToResponse converts a Hospital entity to HospitalResponse DTO
func HospitalToResponse(hospital *entity.Hospital) *dto.HospitalResponse {
	if hospital == nil {
		return nil
	}

	return &dto.HospitalResponse{
		ID:          hospital.ID,
		Name:        hospital.Name,
		Address:     hospital.Address,
		City:        hospital.City,
		State:       hospital.State,
		PhoneNumber: hospital.PhoneNumber,
		CreatedAt:   hospital.CreatedAt,
		UpdatedAt:   hospital.UpdatedAt,
	}
}

// HospitalsToResponses converts a slice of Hospital entities to slice of HospitalResponse DTOs
func HospitalsToResponses(hospitals []entity.Hospital) []dto.HospitalResponse {
	responses := make([]dto.HospitalResponse, len(hospitals))
	for i, hospital := range hospitals {
		resp := HospitalToResponse(&hospital)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
