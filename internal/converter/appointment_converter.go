package converter

import (
	"healthflow-backend/internal/delivery/dto"
	"healthflow-backend/internal/domain/entity"
	"healthflow-backend/internal/scheduling"

	"github.com/google/uuid"
)

// timeHHMM drops the seconds Postgres attaches when a TIME column scans back,
// so responses always carry "HH:MM".
func timeHHMM(s string) string {
	if len(s) == 8 {
		return s[:5]
	}
	return s
}

// AppointmentToResponse converts an Appointment entity to its response DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:          appointment.ID,
		PatientID:   appointment.PatientID,
		DoctorID:    appointment.DoctorID,
		ClinicID:    appointment.ClinicID,
		Date:        appointment.Date.Format("2006-01-02"),
		StartTime:   timeHHMM(appointment.StartTime),
		EndTime:     timeHHMM(appointment.EndTime),
		Type:        string(appointment.Type),
		Status:      string(appointment.Status),
		MeetingLink: appointment.MeetingLink,
		Reason:      appointment.Reason,
		ApprovedBy:  appointment.ApprovedBy,
		CreatedAt:   appointment.CreatedAt,
		UpdatedAt:   appointment.UpdatedAt,
	}

	// Include related info when preloaded
	if appointment.Patient.ID != uuid.Nil {
		response.Patient = &dto.PatientInfo{
			ID:       appointment.Patient.ID,
			FullName: appointment.Patient.FullName,
			Email:    appointment.Patient.Email,
			Phone:    appointment.Patient.Phone,
		}
	}
	if appointment.Doctor.UserID != uuid.Nil {
		response.Doctor = &dto.DoctorInfo{
			ID:                   appointment.Doctor.UserID,
			FullName:             appointment.Doctor.FullName,
			Specialization:       appointment.Doctor.Specialization,
			ConsultationDuration: appointment.Doctor.ConsultationDuration,
			ConsultationPrice:    appointment.Doctor.ConsultationPrice,
		}
	}
	if appointment.Clinic != nil && appointment.Clinic.ID != uuid.Nil {
		response.Clinic = &dto.ClinicInfo{
			ID:      appointment.Clinic.ID,
			Name:    appointment.Clinic.Name,
			Address: appointment.Clinic.Address,
		}
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities
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

// SlotsToResponses converts computed slots to the wire representation
func SlotsToResponses(slots []scheduling.Slot) []dto.TimeSlotResponse {
	responses := make([]dto.TimeSlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = dto.TimeSlotResponse{
			StartTime:   slot.Start.String(),
			EndTime:     slot.End.String(),
			IsAvailable: slot.Available,
		}
	}
	return responses
}
