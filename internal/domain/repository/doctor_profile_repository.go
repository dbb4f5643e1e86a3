package repository

import (
	"healthflow-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
}
