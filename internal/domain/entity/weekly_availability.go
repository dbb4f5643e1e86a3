package entity

import (
	"time"

	"github.com/google/uuid"
)

// WeeklyAvailability represents one recurring open window for a doctor on one
// weekday. Times are stored as "HH:MM" in 24-hour format. A doctor may have
// multiple windows per weekday (e.g. separate morning and afternoon windows);
// windows are replaced wholesale when availability is updated.
type WeeklyAvailability struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID  uuid.UUID    `gorm:"type:uuid;not null;index" json:"doctor_id"`
	DayOfWeek time.Weekday `gorm:"not null" json:"day_of_week"`
	StartTime string       `gorm:"type:time;not null" json:"start_time"`
	EndTime   string       `gorm:"type:time;not null" json:"end_time"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (WeeklyAvailability) TableName() string {
	return "weekly_availabilities"
}
