package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	FullName             string          `gorm:"type:varchar(255);not null" json:"full_name"`
	Specialization       string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Biography            string          `gorm:"type:text" json:"biography,omitempty"`
	ConsultationDuration int             `gorm:"not null;default:30" json:"consultation_duration"`
	ConsultationPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"consultation_price"`
	ClinicID             *uuid.UUID      `gorm:"type:uuid;index" json:"clinic_id,omitempty"`

	// Relationships
	User           User                 `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Clinic         *Clinic              `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
	Availabilities []WeeklyAvailability `gorm:"foreignKey:DoctorID" json:"availabilities,omitempty"`
	Appointments   []Appointment        `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
