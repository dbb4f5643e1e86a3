package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a persisted in-app notification. Delivery transport (push,
// websocket) is handled by a separate service; this backend only writes rows
// and publishes a redis event per row.
type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title   string    `gorm:"type:varchar(255);not null" json:"title"`
	Message string    `gorm:"type:text;not null" json:"message"`
	Type    string    `gorm:"type:varchar(50);not null" json:"type"`
	Data    *string   `gorm:"type:jsonb" json:"data,omitempty"`
	IsRead  bool      `gorm:"not null;default:false;index" json:"is_read"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
