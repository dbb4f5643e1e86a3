package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"healthflow-backend/internal/delivery/dto"
	"healthflow-backend/internal/delivery/http/middleware"
	"healthflow-backend/internal/domain/entity"
	"healthflow-backend/internal/usecase"
	"healthflow-backend/pkg/response"
	"healthflow-backend/pkg/validator"

	"github.com/google/uuid"
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

func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	availability, err := h.availabilityUsecase.GetAvailability(r.Context(), doctorID)
	if err != nil {
		if errors.Is(err, usecase.ErrDoctorNotFound) {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalServerError(w, "Failed to get availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}

func (h *AvailabilityHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	// Doctors may only replace their own windows; admins may act for anyone.
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}
	roleID, _ := middleware.GetRoleIDFromContext(r.Context())
	if roleID == entity.RoleIDDoctor && callerID != doctorID {
		response.Forbidden(w, "You can only manage your own availability")
		return
	}

	var req dto.SetAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	availability, err := h.availabilityUsecase.SetAvailability(r.Context(), doctorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrInvalidTimeFormat),
			errors.Is(err, usecase.ErrInvalidTimeRange):
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to set availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability updated successfully", availability)
}
