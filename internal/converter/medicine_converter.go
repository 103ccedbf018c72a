package converter

import (
	"healthsync/internal/delivery/dto"
	"healthsync/internal/domain/entity"
)

// MedicineToResponse converts a Medicine entity to MedicineResponse DTO
func MedicineToResponse(medicine *entity.Medicine) *dto.MedicineResponse {
	if medicine == nil {
		return nil
	}

	return &dto.MedicineResponse{
		ID:           medicine.ID,
		Name:         medicine.Name,
		GenericName:  medicine.GenericName,
		Manufacturer: medicine.Manufacturer,
		DosageForm:   medicine.DosageForm,
		Price:        medicine.Price,
		Stock:        medicine.Stock,
		CreatedAt:    medicine.CreatedAt,
		UpdatedAt:    medicine.UpdatedAt,
	}
}

// MedicinesToResponses converts a slice of Medicine entities to response DTOs
func MedicinesToResponses(medicines []entity.Medicine) []dto.MedicineResponse {
	responses := make([]dto.MedicineResponse, len(medicines))
	for i, medicine := range medicines {
		resp := MedicineToResponse(&medicine)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
