package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID  uuid.UUID  `json:"doctor_id" validate:"required"`
	ClinicID  *uuid.UUID `json:"clinic_id,omitempty"`
	Date      string     `json:"date" validate:"required"`
	StartTime string     `json:"start_time" validate:"required"`
	EndTime   string     `json:"end_time" validate:"required"`
	Type      string     `json:"type" validate:"required,oneof=online physical home_visit"`
	Reason    *string    `json:"reason,omitempty"`
}

type UpdateAppointmentRequest struct {
	Date      string  `json:"date,omitempty"`
	StartTime string  `json:"start_time,omitempty"`
	EndTime   string  `json:"end_time,omitempty"`
	Type      string  `json:"type,omitempty" validate:"omitempty,oneof=online physical home_visit"`
	Reason    *string `json:"reason,omitempty"`
}

type RescheduleAppointmentRequest struct {
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// Response DTOs

type AppointmentResponse struct {
	ID          uuid.UUID     `json:"id"`
	PatientID   uuid.UUID     `json:"patient_id"`
	Patient     *PatientInfo  `json:"patient,omitempty"`
	DoctorID    uuid.UUID     `json:"doctor_id"`
	Doctor      *DoctorInfo   `json:"doctor,omitempty"`
	ClinicID    *uuid.UUID    `json:"clinic_id,omitempty"`
	Clinic      *ClinicInfo   `json:"clinic,omitempty"`
	Date        string        `json:"date"`
	StartTime   string        `json:"start_time"`
	EndTime     string        `json:"end_time"`
	Type        string        `json:"type"`
	Status      string        `json:"status"`
	MeetingLink *string       `json:"meeting_link,omitempty"`
	Reason      *string       `json:"reason,omitempty"`
	ApprovedBy  *uuid.UUID    `json:"approved_by,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type PatientInfo struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone,omitempty"`
}

type DoctorInfo struct {
	ID                   uuid.UUID       `json:"id"`
	FullName             string          `json:"full_name"`
	Specialization       string          `json:"specialization"`
	ConsultationDuration int             `json:"consultation_duration"`
	ConsultationPrice    decimal.Decimal `json:"consultation_price"`
}

type ClinicInfo struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address,omitempty"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int64                 `json:"total"`
}

type TimeSlotResponse struct {
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

type AvailableSlotsResponse struct {
	Date  string             `json:"date"`
	Slots []TimeSlotResponse `json:"slots"`
	Total int                `json:"total"`
}
