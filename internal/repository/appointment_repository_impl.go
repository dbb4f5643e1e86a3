package repository

import (
	"errors"
	"time"

	"healthflow-backend/internal/domain/entity"
	domainRepo "healthflow-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Save(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByIDWithDetails(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").
		Preload("Doctor").
		Preload("Doctor.User").
		Preload("Clinic").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindActiveByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("doctor_id = ? AND date = ? AND status NOT IN ?",
		doctorID, date.Format(dateLayout),
		[]entity.AppointmentStatus{entity.AppointmentStatusCancelled, entity.AppointmentStatusDeclined}).
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// HasConflict uses the half-open overlap rule: [a,b) and [c,d) intersect
// iff a < d AND c < b.
func (r *appointmentRepository) HasConflict(db *gorm.DB, doctorID uuid.UUID, date time.Time, startTime, endTime string, excludeID *uuid.UUID) (bool, error) {
	query := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND date = ? AND status NOT IN ?",
			doctorID, date.Format(dateLayout),
			[]entity.AppointmentStatus{entity.AppointmentStatusCancelled, entity.AppointmentStatusDeclined}).
		Where("start_time < ? AND ? < end_time", endTime, startTime)

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *appointmentRepository) FindByPatient(db *gorm.DB, patientID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	return r.findFiltered(db.Where("patient_id = ?", patientID), filter)
}

func (r *appointmentRepository) FindByDoctor(db *gorm.DB, doctorID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	return r.findFiltered(db.Where("doctor_id = ?", doctorID), filter)
}

func (r *appointmentRepository) FindByClinic(db *gorm.DB, clinicID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	return r.findFiltered(db.Where("clinic_id = ?", clinicID), filter)
}

func (r *appointmentRepository) findFiltered(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	filter.Normalize()

	query := db.Model(&entity.Appointment{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", filter.StartDate.Format(dateLayout))
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", filter.EndDate.Format(dateLayout))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []entity.Appointment
	err := query.
		Preload("Patient").
		Preload("Doctor").
		Preload("Clinic").
		Order("date DESC, start_time ASC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}
