package repository

import (
	"healthflow-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WeeklyAvailabilityRepository interface {
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.WeeklyAvailability, error)

	// ReplaceForDoctor removes every window of the doctor and inserts the
	// given set. Availability updates are full replacements.
	ReplaceForDoctor(db *gorm.DB, doctorID uuid.UUID, windows []entity.WeeklyAvailability) error
}
