package converter

import (
	"healthflow-backend/internal/delivery/dto"
	"healthflow-backend/internal/domain/entity"
)

// AvailabilityToResponse converts a WeeklyAvailability entity to its DTO
func AvailabilityToResponse(window *entity.WeeklyAvailability) *dto.AvailabilityWindowResponse {
	if window == nil {
		return nil
	}
	return &dto.AvailabilityWindowResponse{
		ID:        window.ID,
		DoctorID:  window.DoctorID,
		DayOfWeek: int(window.DayOfWeek),
		StartTime: timeHHMM(window.StartTime),
		EndTime:   timeHHMM(window.EndTime),
	}
}

// AvailabilitiesToResponses converts a slice of WeeklyAvailability entities
func AvailabilitiesToResponses(windows []entity.WeeklyAvailability) []dto.AvailabilityWindowResponse {
	responses := make([]dto.AvailabilityWindowResponse, len(windows))
	for i, window := range windows {
		resp := AvailabilityToResponse(&window)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
