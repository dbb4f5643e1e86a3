package entity

import (
	"time"

	"github.com/google/uuid"
)

// Clinic is a read model for appointment detail rendering. Clinic CRUD is
// managed elsewhere.
type Clinic struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Address   string    `gorm:"type:text" json:"address,omitempty"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Clinic) TableName() string {
	return "clinics"
}
