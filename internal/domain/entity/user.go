package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized account table. Credential management
// (password hashing, token issuance) lives in the auth service; this backend
// only reads user rows for identity and notification targeting.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID    int       `gorm:"not null;index" json:"role_id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone,omitempty"`
	IsActive  *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role          Role           `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	DoctorProfile *DoctorProfile `gorm:"foreignKey:UserID" json:"doctor_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}
