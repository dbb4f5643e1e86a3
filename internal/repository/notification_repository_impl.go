package repository

import (
	"healthflow-backend/internal/domain/entity"
	domainRepo "healthflow-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type notificationRepository struct{}

func NewNotificationRepository() domainRepo.NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(db *gorm.DB, notification *entity.Notification) error {
	return db.Create(notification).Error
}
