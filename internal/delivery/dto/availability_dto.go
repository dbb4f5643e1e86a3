package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type AvailabilityWindowRequest struct {
	DayOfWeek int    `json:"day_of_week" validate:"gte=0,lte=6"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// SetAvailabilityRequest replaces a doctor's weekly windows wholesale.
type SetAvailabilityRequest struct {
	Windows []AvailabilityWindowRequest `json:"windows" validate:"dive"`
}

// Response DTOs

type AvailabilityWindowResponse struct {
	ID        uuid.UUID `json:"id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	DayOfWeek int       `json:"day_of_week"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
}

type AvailabilityListResponse struct {
	Windows []AvailabilityWindowResponse `json:"windows"`
	Total   int                          `json:"total"`
}
