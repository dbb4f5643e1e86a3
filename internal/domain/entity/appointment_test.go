package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func pendingAppointment(apptType AppointmentType) *Appointment {
	return &Appointment{
		ID:        uuid.New(),
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		Date:      time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "09:30",
		Type:      apptType,
		Status:    AppointmentStatusPending,
	}
}

func TestAppointmentApprove(t *testing.T) {
	t.Run("approves a pending appointment and records the approver", func(t *testing.T) {
		appt := pendingAppointment(AppointmentTypePhysical)
		approver := uuid.New()

		err := appt.Approve(approver)
		assert.NoError(t, err)
		assert.Equal(t, AppointmentStatusApproved, appt.Status)
		assert.NotNil(t, appt.ApprovedBy)
		assert.Equal(t, approver, *appt.ApprovedBy)
		assert.Nil(t, appt.MeetingLink, "physical consultations get no meeting link")
	})

	t.Run("generates a meeting link for online consultations", func(t *testing.T) {
		appt := pendingAppointment(AppointmentTypeOnline)

		err := appt.Approve(uuid.New())
		assert.NoError(t, err)
		assert.NotNil(t, appt.MeetingLink)
		assert.Equal(t, MeetingLinkBase+appt.ID.String(), *appt.MeetingLink)
	})

	t.Run("rejects non-pending appointments", func(t *testing.T) {
		for _, status := range []AppointmentStatus{
			AppointmentStatusApproved,
			AppointmentStatusDeclined,
			AppointmentStatusCancelled,
			AppointmentStatusDone,
		} {
			appt := pendingAppointment(AppointmentTypePhysical)
			appt.Status = status
			err := appt.Approve(uuid.New())
			assert.ErrorIs(t, err, ErrInvalidTransition, "status %s", status)
			assert.Equal(t, status, appt.Status, "status must not change on a rejected transition")
		}
	})
}

func TestAppointmentDecline(t *testing.T) {
	t.Run("declines a pending appointment", func(t *testing.T) {
		appt := pendingAppointment(AppointmentTypePhysical)
		assert.NoError(t, appt.Decline())
		assert.Equal(t, AppointmentStatusDeclined, appt.Status)
	})

	t.Run("rejects an approved appointment", func(t *testing.T) {
		appt := pendingAppointment(AppointmentTypePhysical)
		appt.Status = AppointmentStatusApproved
		assert.ErrorIs(t, appt.Decline(), ErrInvalidTransition)
	})
}

func TestAppointmentCancel(t *testing.T) {
	t.Run("cancels pending and approved appointments", func(t *testing.T) {
		for _, status := range []AppointmentStatus{AppointmentStatusPending, AppointmentStatusApproved} {
			appt := pendingAppointment(AppointmentTypePhysical)
			appt.Status = status
			assert.NoError(t, appt.Cancel())
			assert.Equal(t, AppointmentStatusCancelled, appt.Status)
		}
	})

	t.Run("rejects terminal appointments", func(t *testing.T) {
		for _, status := range []AppointmentStatus{
			AppointmentStatusDeclined,
			AppointmentStatusCancelled,
			AppointmentStatusDone,
		} {
			appt := pendingAppointment(AppointmentTypePhysical)
			appt.Status = status
			assert.ErrorIs(t, appt.Cancel(), ErrInvalidTransition, "status %s", status)
		}
	})
}

func TestAppointmentComplete(t *testing.T) {
	t.Run("completes an approved appointment", func(t *testing.T) {
		appt := pendingAppointment(AppointmentTypePhysical)
		appt.Status = AppointmentStatusApproved
		assert.NoError(t, appt.Complete())
		assert.Equal(t, AppointmentStatusDone, appt.Status)
	})

	t.Run("rejects a pending appointment", func(t *testing.T) {
		appt := pendingAppointment(AppointmentTypePhysical)
		assert.ErrorIs(t, appt.Complete(), ErrInvalidTransition)
	})
}

func TestAppointmentReschedule(t *testing.T) {
	t.Run("moves the window and re-enters the approval workflow", func(t *testing.T) {
		appt := pendingAppointment(AppointmentTypePhysical)
		appt.Status = AppointmentStatusApproved
		newDate := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)

		err := appt.Reschedule(newDate, "14:00", "14:30")
		assert.NoError(t, err)
		assert.Equal(t, AppointmentStatusPending, appt.Status)
		assert.Equal(t, newDate, appt.Date)
		assert.Equal(t, "14:00", appt.StartTime)
		assert.Equal(t, "14:30", appt.EndTime)
	})

	t.Run("rejects terminal appointments", func(t *testing.T) {
		for _, status := range []AppointmentStatus{
			AppointmentStatusDeclined,
			AppointmentStatusCancelled,
			AppointmentStatusDone,
		} {
			appt := pendingAppointment(AppointmentTypePhysical)
			appt.Status = status
			err := appt.Reschedule(appt.Date, "14:00", "14:30")
			assert.ErrorIs(t, err, ErrInvalidTransition, "status %s", status)
			assert.Equal(t, "09:00", appt.StartTime, "window must not change on a rejected transition")
		}
	})
}

func TestAppointmentStatusPredicates(t *testing.T) {
	active := map[AppointmentStatus]bool{
		AppointmentStatusPending:   true,
		AppointmentStatusApproved:  true,
		AppointmentStatusDone:      true,
		AppointmentStatusDeclined:  false,
		AppointmentStatusCancelled: false,
	}
	terminal := map[AppointmentStatus]bool{
		AppointmentStatusPending:   false,
		AppointmentStatusApproved:  false,
		AppointmentStatusDone:      true,
		AppointmentStatusDeclined:  true,
		AppointmentStatusCancelled: true,
	}

	for status, want := range active {
		appt := &Appointment{Status: status}
		assert.Equal(t, want, appt.IsActive(), "IsActive for %s", status)
	}
	for status, want := range terminal {
		appt := &Appointment{Status: status}
		assert.Equal(t, want, appt.IsTerminal(), "IsTerminal for %s", status)
	}
}
