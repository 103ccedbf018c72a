package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"healthsync/internal/delivery/dto"
	"healthsync/internal/usecase"
	"healthsync/pkg/response"
	"healthsync/pkg/validator"

	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

func (h *AvailabilityHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	template, err := h.availabilityUsecase.CreateTemplate(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidScheduleType, usecase.ErrInvalidDaysOfWeek, usecase.ErrMissingDateRange,
			usecase.ErrMissingSpecificDates, usecase.ErrInvalidTimeSlots, usecase.ErrEmptyTimeSlots,
			usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to create template")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Template created successfully", template)
}

func (h *AvailabilityHandler) GetMyTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.availabilityUsecase.GetMyTemplates(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get templates")
		return
	}

	response.Success(w, http.StatusOK, "Templates retrieved successfully", templates)
}

func (h *AvailabilityHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	templateID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid template ID", nil)
		return
	}

	var req dto.UpdateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	template, err := h.availabilityUsecase.UpdateTemplate(r.Context(), templateID, &req)
	if err != nil {
		switch err {
		case usecase.ErrTemplateNotFound:
			response.NotFound(w, "Template not found")
		case usecase.ErrTemplateNotOwned:
			response.Forbidden(w, "Template does not belong to you")
		case usecase.ErrInvalidDaysOfWeek, usecase.ErrInvalidTimeSlots, usecase.ErrEmptyTimeSlots,
			usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update template")
		}
		return
	}

	response.Success(w, http.StatusOK, "Template updated successfully", template)
}

func (h *AvailabilityHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	templateID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid template ID", nil)
		return
	}

	if err := h.availabilityUsecase.DeleteTemplate(r.Context(), templateID); err != nil {
		switch err {
		case usecase.ErrTemplateNotFound:
			response.NotFound(w, "Template not found")
		case usecase.ErrTemplateNotOwned:
			response.Forbidden(w, "Template does not belong to you")
		default:
			response.InternalServerError(w, "Failed to delete template")
		}
		return
	}

	response.Success(w, http.StatusOK, "Template deleted successfully", nil)
}

func (h *AvailabilityHandler) CreateException(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateExceptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	exception, err := h.availabilityUsecase.CreateException(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat, usecase.ErrCustomHoursNeedSlots,
			usecase.ErrInvalidTimeSlots, usecase.ErrEmptyTimeSlots:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrExceptionAlreadyExists:
			response.Conflict(w, "An exception already exists for this date")
		default:
			response.InternalServerError(w, "Failed to create exception")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Exception created successfully", exception)
}

func (h *AvailabilityHandler) GetMyExceptions(w http.ResponseWriter, r *http.Request) {
	exceptions, err := h.availabilityUsecase.GetMyExceptions(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get exceptions")
		return
	}

	response.Success(w, http.StatusOK, "Exceptions retrieved successfully", exceptions)
}

func (h *AvailabilityHandler) UpdateException(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	exceptionID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid exception ID", nil)
		return
	}

	var req dto.UpdateExceptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	exception, err := h.availabilityUsecase.UpdateException(r.Context(), exceptionID, &req)
	if err != nil {
		switch err {
		case usecase.ErrExceptionNotFound:
			response.NotFound(w, "Exception not found")
		case usecase.ErrExceptionNotOwned:
			response.Forbidden(w, "You can only update your own exceptions")
		case usecase.ErrCustomHoursNeedSlots:
			response.Error(w, http.StatusBadRequest, "Custom hours exceptions require time slots", nil)
		case usecase.ErrInvalidTimeSlots, usecase.ErrEmptyTimeSlots:
			response.Error(w, http.StatusBadRequest, "Invalid time slots", nil)
		default:
			response.InternalServerError(w, "Failed to update exception")
		}
		return
	}

	response.Success(w, http.StatusOK, "Exception updated successfully", exception)
}

func (h *AvailabilityHandler) DeleteException(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	exceptionID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid exception ID", nil)
		return
	}

	if err := h.availabilityUsecase.DeleteException(r.Context(), exceptionID); err != nil {
		switch err {
		case usecase.ErrExceptionNotFound:
			response.NotFound(w, "Exception not found")
		case usecase.ErrExceptionNotOwned:
			response.Forbidden(w, "Exception does not belong to you")
		default:
			response.InternalServerError(w, "Failed to delete exception")
		}
		return
	}

	response.Success(w, http.StatusOK, "Exception deleted successfully", nil)
}

// PreviewSlots lets a doctor inspect the slots their rules produce for one
// date, before booking state is applied. Date comes from the "date" query
// parameter.
func (h *AvailabilityHandler) PreviewSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "date query parameter is required", nil)
		return
	}

	preview, err := h.availabilityUsecase.PreviewSlots(r.Context(), date)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to preview slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slots resolved successfully", preview)
}
