package converter

import (
	"testing"
	"time"

	"healthflow-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAppointmentToResponse(t *testing.T) {
	t.Run("normalizes times scanned back from the database", func(t *testing.T) {
		appointment := &entity.Appointment{
			ID:        uuid.New(),
			PatientID: uuid.New(),
			DoctorID:  uuid.New(),
			Date:      time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
			StartTime: "09:00:00",
			EndTime:   "09:30:00",
			Type:      entity.AppointmentTypePhysical,
			Status:    entity.AppointmentStatusPending,
		}

		response := AppointmentToResponse(appointment)
		assert.Equal(t, "2026-01-05", response.Date)
		assert.Equal(t, "09:00", response.StartTime)
		assert.Equal(t, "09:30", response.EndTime)
	})

	t.Run("keeps already-normalized times untouched", func(t *testing.T) {
		appointment := &entity.Appointment{
			Date:      time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
			StartTime: "09:00",
			EndTime:   "09:30",
		}

		response := AppointmentToResponse(appointment)
		assert.Equal(t, "09:00", response.StartTime)
		assert.Equal(t, "09:30", response.EndTime)
	})

	t.Run("returns nil for a nil appointment", func(t *testing.T) {
		assert.Nil(t, AppointmentToResponse(nil))
	})
}

func TestAvailabilityToResponse(t *testing.T) {
	t.Run("normalizes window times", func(t *testing.T) {
		window := &entity.WeeklyAvailability{
			ID:        uuid.New(),
			DoctorID:  uuid.New(),
			DayOfWeek: time.Monday,
			StartTime: "08:00:00",
			EndTime:   "12:00:00",
		}

		response := AvailabilityToResponse(window)
		assert.Equal(t, 1, response.DayOfWeek)
		assert.Equal(t, "08:00", response.StartTime)
		assert.Equal(t, "12:00", response.EndTime)
	})
}
