package usecase

import (
	"context"
	"time"

	"healthflow-backend/internal/converter"
	"healthflow-backend/internal/delivery/dto"
	"healthflow-backend/internal/domain/entity"
	"healthflow-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AvailabilityUsecase interface {
	GetAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityListResponse, error)
	SetAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.SetAvailabilityRequest) (*dto.AvailabilityListResponse, error)
}

type availabilityUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	availabilityRepo  repository.WeeklyAvailabilityRepository
	doctorProfileRepo repository.DoctorProfileRepository
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	availabilityRepo repository.WeeklyAvailabilityRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:                db,
		log:               log,
		availabilityRepo:  availabilityRepo,
		doctorProfileRepo: doctorProfileRepo,
	}
}

func (u *availabilityUsecase) GetAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityListResponse, error) {
	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	windows, err := u.availabilityRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find availability for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AvailabilityListResponse{
		Windows: converter.AvailabilitiesToResponses(windows),
		Total:   len(windows),
	}, nil
}

// SetAvailability replaces every weekly window of the doctor with the given
// set inside one transaction. Each window must be a valid HH:MM pair with
// start before end.
func (u *availabilityUsecase) SetAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.SetAvailabilityRequest) (*dto.AvailabilityListResponse, error) {
	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	windows := make([]entity.WeeklyAvailability, 0, len(req.Windows))
	for _, w := range req.Windows {
		window, err := parseTimeWindow(w.StartTime, w.EndTime)
		if err != nil {
			return nil, err
		}
		windows = append(windows, entity.WeeklyAvailability{
			DoctorID:  doctorID,
			DayOfWeek: time.Weekday(w.DayOfWeek),
			StartTime: window.Start.String(),
			EndTime:   window.End.String(),
		})
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return u.availabilityRepo.ReplaceForDoctor(tx, doctorID, windows)
	})
	if err != nil {
		u.log.Warnf("Failed to replace availability for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return u.GetAvailability(ctx, doctorID)
}
