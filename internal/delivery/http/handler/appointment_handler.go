package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"healthsync/internal/delivery/dto"
	"healthsync/internal/domain/entity"
	"healthsync/internal/service"
	"healthsync/internal/usecase"
	"healthsync/pkg/response"
	"healthsync/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) RequestAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.RequestAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.RequestAppointment(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat, usecase.ErrInvalidTimeFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrAppointmentPast:
			response.Error(w, http.StatusBadRequest, "Cannot book a past date", nil)
		case usecase.ErrBeyondBookingWindow:
			response.Error(w, http.StatusBadRequest, "Date is beyond the doctor's booking window", nil)
		case usecase.ErrSlotNotAvailable:
			response.Conflict(w, "Requested time slot is not available")
		case service.ErrSlotTaken:
			response.Conflict(w, "Time slot was just booked by another patient")
		default:
			response.InternalServerError(w, "Failed to request appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment requested successfully", appointment)
}

// GetAvailableTimeslots resolves the open slots for one doctor, hospital and
// date, all passed as query parameters.
func (h *AppointmentHandler) GetAvailableTimeslots(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	doctorID, err := uuid.Parse(query.Get("doctor_id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor_id", nil)
		return
	}

	hospitalID, err := strconv.ParseInt(query.Get("hospital_id"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid hospital_id", nil)
		return
	}

	date := query.Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "date query parameter is required", nil)
		return
	}

	slots, err := h.appointmentUsecase.GetAvailableTimeslots(r.Context(), doctorID, hospitalID, date)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to get timeslots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Timeslots retrieved successfully", slots)
}

func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := &entity.AppointmentFilter{
		Status:         query.Get("status"),
		StartAt:        query.Get("start_date"),
		EndAt:          query.Get("end_date"),
		DoctorName:     query.Get("doctor_name"),
		Specialization: query.Get("specialization"),
	}

	appointments, err := h.appointmentUsecase.GetMyAppointments(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetDoctorAppointments(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "date query parameter is required", nil)
		return
	}

	appointments, err := h.appointmentUsecase.GetDoctorAppointments(r.Context(), date)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to get appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) ConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	if err := h.appointmentUsecase.ConfirmAppointment(r.Context(), appointmentID); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentNotOwned:
			response.Forbidden(w, "Appointment does not belong to you")
		case usecase.ErrAppointmentNotPending:
			response.Conflict(w, "Appointment is not pending")
		default:
			response.InternalServerError(w, "Failed to confirm appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment confirmed successfully", nil)
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	if err := h.appointmentUsecase.CancelAppointment(r.Context(), appointmentID); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentNotOwned:
			response.Forbidden(w, "Appointment does not belong to you")
		case usecase.ErrAppointmentAlreadyCancelled:
			response.Conflict(w, "Appointment is already cancelled")
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}

func (h *AppointmentHandler) GetMySettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.appointmentUsecase.GetMySettings(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get settings")
		return
	}

	response.Success(w, http.StatusOK, "Settings retrieved successfully", settings)
}

func (h *AppointmentHandler) UpdateMySettings(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateAppointmentSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	settings, err := h.appointmentUsecase.UpdateMySettings(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to update settings")
		return
	}

	response.Success(w, http.StatusOK, "Settings updated successfully", settings)
}
