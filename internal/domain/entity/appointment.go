package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusApproved  AppointmentStatus = "approved"
	AppointmentStatusDeclined  AppointmentStatus = "declined"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusDone      AppointmentStatus = "done"
)

// AppointmentType represents the consultation type
type AppointmentType string

const (
	AppointmentTypeOnline    AppointmentType = "online"
	AppointmentTypePhysical  AppointmentType = "physical"
	AppointmentTypeHomeVisit AppointmentType = "home_visit"
)

// MeetingLinkBase is the prefix for generated online-consultation links.
const MeetingLinkBase = "https://meet.healthflow.com/"

// ErrInvalidTransition is returned when a lifecycle method is called on an
// appointment whose current status does not allow the transition.
var ErrInvalidTransition = errors.New("appointment status does not allow this transition")

// Appointment represents a booked or requested consultation. StartTime and
// EndTime are "HH:MM" 24-hour times; the pair is a half-open interval
// [start, end) on the appointment date.
type Appointment struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	ClinicID  *uuid.UUID        `gorm:"type:uuid;index" json:"clinic_id,omitempty"`
	Date      time.Time         `gorm:"type:date;not null;index" json:"date"`
	StartTime string            `gorm:"type:time;not null" json:"start_time"`
	EndTime   string            `gorm:"type:time;not null" json:"end_time"`
	Type      AppointmentType   `gorm:"type:varchar(20);not null" json:"type"`
	Status    AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	MeetingLink *string    `gorm:"type:text" json:"meeting_link,omitempty"`
	Reason      *string    `gorm:"type:text" json:"reason,omitempty"`
	ApprovedBy  *uuid.UUID `gorm:"type:uuid" json:"approved_by,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient User          `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Clinic  *Clinic       `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsActive reports whether the appointment still occupies the doctor's time
// for conflict purposes (anything not cancelled and not declined).
func (a *Appointment) IsActive() bool {
	return a.Status != AppointmentStatusCancelled && a.Status != AppointmentStatusDeclined
}

// IsTerminal reports whether the appointment reached a final status.
func (a *Appointment) IsTerminal() bool {
	switch a.Status {
	case AppointmentStatusDone, AppointmentStatusCancelled, AppointmentStatusDeclined:
		return true
	}
	return false
}

// Approve moves a pending appointment to approved, records the approver and
// generates a meeting link for online consultations.
func (a *Appointment) Approve(approvedBy uuid.UUID) error {
	if a.Status != AppointmentStatusPending {
		return ErrInvalidTransition
	}
	a.Status = AppointmentStatusApproved
	a.ApprovedBy = &approvedBy
	if a.Type == AppointmentTypeOnline {
		link := MeetingLinkBase + a.ID.String()
		a.MeetingLink = &link
	}
	return nil
}

// Decline rejects a pending appointment.
func (a *Appointment) Decline() error {
	if a.Status != AppointmentStatusPending {
		return ErrInvalidTransition
	}
	a.Status = AppointmentStatusDeclined
	return nil
}

// Cancel withdraws a pending or approved appointment.
func (a *Appointment) Cancel() error {
	if a.Status != AppointmentStatusPending && a.Status != AppointmentStatusApproved {
		return ErrInvalidTransition
	}
	a.Status = AppointmentStatusCancelled
	return nil
}

// Complete marks an approved appointment as done after the visit.
func (a *Appointment) Complete() error {
	if a.Status != AppointmentStatusApproved {
		return ErrInvalidTransition
	}
	a.Status = AppointmentStatusDone
	return nil
}

// Reschedule moves the appointment to a new window and re-enters the approval
// workflow. The caller is responsible for the conflict check.
func (a *Appointment) Reschedule(date time.Time, startTime, endTime string) error {
	if a.IsTerminal() {
		return ErrInvalidTransition
	}
	a.Date = date
	a.StartTime = startTime
	a.EndTime = endTime
	a.Status = AppointmentStatusPending
	return nil
}
