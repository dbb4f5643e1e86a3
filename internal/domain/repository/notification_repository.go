package repository

import (
	"healthflow-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(db *gorm.DB, notification *entity.Notification) error
}
