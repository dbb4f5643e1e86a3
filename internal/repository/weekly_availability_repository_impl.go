package repository

import (
	"healthflow-backend/internal/domain/entity"
	domainRepo "healthflow-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type weeklyAvailabilityRepository struct{}

func NewWeeklyAvailabilityRepository() domainRepo.WeeklyAvailabilityRepository {
	return &weeklyAvailabilityRepository{}
}

func (r *weeklyAvailabilityRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.WeeklyAvailability, error) {
	var windows []entity.WeeklyAvailability
	err := db.Where("doctor_id = ?", doctorID).
		Order("day_of_week ASC, start_time ASC").
		Find(&windows).Error
	if err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *weeklyAvailabilityRepository) ReplaceForDoctor(db *gorm.DB, doctorID uuid.UUID, windows []entity.WeeklyAvailability) error {
	if err := db.Where("doctor_id = ?", doctorID).Delete(&entity.WeeklyAvailability{}).Error; err != nil {
		return err
	}
	if len(windows) == 0 {
		return nil
	}
	return db.Create(&windows).Error
}
