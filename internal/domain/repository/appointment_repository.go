package repository

import (
	"time"

	"healthflow-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	Update(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByIDWithDetails(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)

	// FindActiveByDoctorAndDate returns the doctor's appointments on the
	// date that are neither cancelled nor declined, ordered by start time.
	FindActiveByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error)

	// HasConflict reports whether [startTime, endTime) overlaps any active
	// appointment of the doctor on the date, optionally excluding one
	// appointment id (used during reschedule).
	HasConflict(db *gorm.DB, doctorID uuid.UUID, date time.Time, startTime, endTime string, excludeID *uuid.UUID) (bool, error)

	FindByPatient(db *gorm.DB, patientID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error)
	FindByDoctor(db *gorm.DB, doctorID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error)
	FindByClinic(db *gorm.DB, clinicID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error)
}
