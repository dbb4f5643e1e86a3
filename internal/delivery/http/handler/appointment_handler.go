package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"healthflow-backend/internal/delivery/dto"
	"healthflow-backend/internal/delivery/http/middleware"
	"healthflow-backend/internal/domain/entity"
	"healthflow-backend/internal/service"
	"healthflow-backend/internal/usecase"
	"healthflow-backend/pkg/response"
	"healthflow-backend/pkg/validator"

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

func (h *AppointmentHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "Query parameter 'date' is required")
		return
	}

	slots, err := h.appointmentUsecase.GetAvailableSlots(r.Context(), doctorID, date)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidDateFormat):
			response.BadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get available slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), patientID, &req)
	if err != nil {
		h.writeAppointmentError(w, err, "Failed to create appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentUsecase.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrAppointmentNotFound) {
			response.NotFound(w, "Appointment not found")
			return
		}
		response.InternalServerError(w, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeAppointmentError(w, err, "Failed to update appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) GetByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["patientId"])
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}
	h.listAppointments(w, r, func(filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
		return h.appointmentUsecase.GetByPatient(r.Context(), patientID, filter)
	})
}

func (h *AppointmentHandler) GetByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}
	h.listAppointments(w, r, func(filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
		return h.appointmentUsecase.GetByDoctor(r.Context(), doctorID, filter)
	})
}

func (h *AppointmentHandler) GetByClinic(w http.ResponseWriter, r *http.Request) {
	clinicID, err := uuid.Parse(mux.Vars(r)["clinicId"])
	if err != nil {
		response.BadRequest(w, "Invalid clinic ID")
		return
	}
	h.listAppointments(w, r, func(filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
		return h.appointmentUsecase.GetByClinic(r.Context(), clinicID, filter)
	})
}

func (h *AppointmentHandler) ApproveAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}
	approverID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	if err := h.appointmentUsecase.Approve(r.Context(), id, approverID); err != nil {
		h.writeAppointmentError(w, err, "Failed to approve appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment approved", nil)
}

func (h *AppointmentHandler) DeclineAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	if err := h.appointmentUsecase.Decline(r.Context(), id); err != nil {
		h.writeAppointmentError(w, err, "Failed to decline appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment declined", nil)
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	if err := h.appointmentUsecase.Cancel(r.Context(), id); err != nil {
		h.writeAppointmentError(w, err, "Failed to cancel appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled", nil)
}

func (h *AppointmentHandler) RescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	var req dto.RescheduleAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.appointmentUsecase.Reschedule(r.Context(), id, &req); err != nil {
		h.writeAppointmentError(w, err, "Failed to reschedule appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment rescheduled", nil)
}

func (h *AppointmentHandler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	if err := h.appointmentUsecase.Complete(r.Context(), id); err != nil {
		h.writeAppointmentError(w, err, "Failed to complete appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment completed", nil)
}

func (h *AppointmentHandler) listAppointments(w http.ResponseWriter, r *http.Request, list func(*entity.AppointmentFilter) (*dto.AppointmentListResponse, error)) {
	filter := parseAppointmentFilter(r)
	result, err := list(filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}
	meta := response.NewMeta(filter.Page, filter.PageSize, result.Total)
	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", result, meta)
}

func (h *AppointmentHandler) writeAppointmentError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrAppointmentNotFound):
		response.NotFound(w, "Appointment not found")
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case errors.Is(err, usecase.ErrInvalidDateFormat),
		errors.Is(err, usecase.ErrInvalidTimeFormat),
		errors.Is(err, usecase.ErrInvalidTimeRange):
		response.BadRequest(w, err.Error())
	case errors.Is(err, usecase.ErrSlotUnavailable):
		response.Conflict(w, "The selected time slot is not available")
	case errors.Is(err, service.ErrScheduleLocked):
		response.Conflict(w, "The doctor's schedule is busy, please retry")
	case errors.Is(err, entity.ErrInvalidTransition):
		response.Conflict(w, "Appointment status does not allow this operation")
	default:
		response.InternalServerError(w, fallback)
	}
}

func parseAppointmentFilter(r *http.Request) *entity.AppointmentFilter {
	query := r.URL.Query()
	filter := &entity.AppointmentFilter{}

	if status := query.Get("status"); status != "" {
		s := entity.AppointmentStatus(status)
		filter.Status = &s
	}
	if appointmentType := query.Get("type"); appointmentType != "" {
		t := entity.AppointmentType(appointmentType)
		filter.Type = &t
	}
	if startDate := query.Get("start_date"); startDate != "" {
		if parsed, err := time.Parse("2006-01-02", startDate); err == nil {
			filter.StartDate = &parsed
		}
	}
	if endDate := query.Get("end_date"); endDate != "" {
		if parsed, err := time.Parse("2006-01-02", endDate); err == nil {
			filter.EndDate = &parsed
		}
	}
	if page, err := strconv.Atoi(query.Get("page")); err == nil {
		filter.Page = page
	}
	if pageSize, err := strconv.Atoi(query.Get("page_size")); err == nil {
		filter.PageSize = pageSize
	}

	filter.Normalize()
	return filter
}
