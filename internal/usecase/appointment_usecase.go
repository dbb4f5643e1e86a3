package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"healthflow-backend/config"
	"healthflow-backend/internal/converter"
	"healthflow-backend/internal/delivery/dto"
	"healthflow-backend/internal/domain/entity"
	"healthflow-backend/internal/domain/repository"
	"healthflow-backend/internal/scheduling"
	"healthflow-backend/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrSlotUnavailable     = errors.New("the selected time slot is not available")
	ErrInvalidDateFormat   = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat   = errors.New("invalid time format, use HH:MM")
	ErrInvalidTimeRange    = errors.New("start time must be before end time")
)

const dateLayout = "2006-01-02"

type AppointmentUsecase interface {
	GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailableSlotsResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	GetByPatient(ctx context.Context, patientID uuid.UUID, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	GetByDoctor(ctx context.Context, doctorID uuid.UUID, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	GetByClinic(ctx context.Context, clinicID uuid.UUID, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	Create(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	Approve(ctx context.Context, id uuid.UUID, approvedBy uuid.UUID) error
	Decline(ctx context.Context, id uuid.UUID) error
	Cancel(ctx context.Context, id uuid.UUID) error
	Reschedule(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) error
	Complete(ctx context.Context, id uuid.UUID) error
}

type appointmentUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	booking             config.BookingConfig
	appointmentRepo     repository.AppointmentRepository
	availabilityRepo    repository.WeeklyAvailabilityRepository
	doctorProfileRepo   repository.DoctorProfileRepository
	notificationService *service.NotificationService
	lockService         *service.ScheduleLockService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	booking config.BookingConfig,
	appointmentRepo repository.AppointmentRepository,
	availabilityRepo repository.WeeklyAvailabilityRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	notificationService *service.NotificationService,
	lockService *service.ScheduleLockService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                  db,
		log:                 log,
		booking:             booking,
		appointmentRepo:     appointmentRepo,
		availabilityRepo:    availabilityRepo,
		doctorProfileRepo:   doctorProfileRepo,
		notificationService: notificationService,
		lockService:         lockService,
	}
}

// GetAvailableSlots resolves the doctor's weekly availability for the date's
// weekday into bookable slots, marked against active appointments. An empty
// list means the doctor has no window that weekday; a malformed date is a
// validation error rather than an empty list.
func (u *appointmentUsecase) GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailableSlotsResponse, error) {
	parsedDate, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

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

	booked, err := u.appointmentRepo.FindActiveByDoctorAndDate(u.db.WithContext(ctx), doctorID, parsedDate)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s on %s: %+v", doctorID, date, err)
		return nil, err
	}

	slotMinutes := doctor.ConsultationDuration
	if slotMinutes <= 0 {
		slotMinutes = u.booking.DefaultSlotMinutes
	}

	slots, err := scheduling.ComputeSlots(parsedDate, windows, slotMinutes, booked)
	if err != nil {
		u.log.Warnf("Failed to compute slots for doctor %s on %s: %+v", doctorID, date, err)
		return nil, err
	}

	return &dto.AvailableSlotsResponse{
		Date:  date,
		Slots: converter.SlotsToResponses(slots),
		Total: len(slots),
	}, nil
}

func (u *appointmentUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByIDWithDetails(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetByPatient(ctx context.Context, patientID uuid.UUID, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	appointments, total, err := u.appointmentRepo.FindByPatient(u.db.WithContext(ctx), patientID, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patientID, err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        total,
	}, nil
}

func (u *appointmentUsecase) GetByDoctor(ctx context.Context, doctorID uuid.UUID, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	appointments, total, err := u.appointmentRepo.FindByDoctor(u.db.WithContext(ctx), doctorID, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        total,
	}, nil
}

func (u *appointmentUsecase) GetByClinic(ctx context.Context, clinicID uuid.UUID, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	appointments, total, err := u.appointmentRepo.FindByClinic(u.db.WithContext(ctx), clinicID, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments for clinic %s: %+v", clinicID, err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        total,
	}, nil
}

// Create books a new appointment in pending status. The conflict check and
// the insert run inside one transaction while the per-(doctor, date) lock is
// held; the exclusion constraint in the database is the last line of defence.
func (u *appointmentUsecase) Create(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, window, err := parseBookingWindow(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	release, err := u.lockService.Acquire(ctx, req.DoctorID, date)
	if err != nil {
		return nil, err
	}
	defer release()

	appointment := &entity.Appointment{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		ClinicID:  req.ClinicID,
		Date:      date,
		StartTime: window.Start.String(),
		EndTime:   window.End.String(),
		Type:      entity.AppointmentType(req.Type),
		Status:    entity.AppointmentStatusPending,
		Reason:    req.Reason,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		conflict, err := u.appointmentRepo.HasConflict(tx, req.DoctorID, date, appointment.StartTime, appointment.EndTime, nil)
		if err != nil {
			return err
		}
		if conflict {
			return ErrSlotUnavailable
		}
		return u.appointmentRepo.Create(tx, appointment)
	})
	if err != nil {
		if isOverlapViolation(err) {
			return nil, ErrSlotUnavailable
		}
		if !errors.Is(err, ErrSlotUnavailable) {
			u.log.Warnf("Failed to create appointment for patient %s: %+v", patientID, err)
		}
		return nil, err
	}

	u.notificationService.Notify(ctx, doctor.UserID,
		"New Appointment Request",
		fmt.Sprintf("You have a new appointment request for %s at %s", req.Date, appointment.StartTime),
		service.NotificationNewAppointmentRequest,
		map[string]interface{}{"appointment_id": appointment.ID.String()},
	)

	detail, err := u.appointmentRepo.FindByIDWithDetails(u.db.WithContext(ctx), appointment.ID)
	if err != nil || detail == nil {
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(detail), nil
}

// Update patches date/time/type/reason. A changed time window re-runs the
// conflict check excluding the appointment itself.
func (u *appointmentUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	newDate := appointment.Date
	newStart := appointment.StartTime
	newEnd := appointment.EndTime
	timeChanged := false

	if req.Date != "" {
		newDate, err = time.Parse(dateLayout, req.Date)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		timeChanged = true
	}
	if req.StartTime != "" {
		newStart = req.StartTime
		timeChanged = true
	}
	if req.EndTime != "" {
		newEnd = req.EndTime
		timeChanged = true
	}

	if timeChanged {
		if appointment.IsTerminal() {
			return nil, entity.ErrInvalidTransition
		}
		window, err := parseTimeWindow(newStart, newEnd)
		if err != nil {
			return nil, err
		}
		newStart = window.Start.String()
		newEnd = window.End.String()

		release, err := u.lockService.Acquire(ctx, appointment.DoctorID, newDate)
		if err != nil {
			return nil, err
		}
		defer release()

		err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			conflict, err := u.appointmentRepo.HasConflict(tx, appointment.DoctorID, newDate, newStart, newEnd, &appointment.ID)
			if err != nil {
				return err
			}
			if conflict {
				return ErrSlotUnavailable
			}
			appointment.Date = newDate
			appointment.StartTime = newStart
			appointment.EndTime = newEnd
			applyAppointmentPatch(appointment, req)
			return u.appointmentRepo.Update(tx, appointment)
		})
		if err != nil {
			if isOverlapViolation(err) {
				return nil, ErrSlotUnavailable
			}
			return nil, err
		}
	} else {
		applyAppointmentPatch(appointment, req)
		if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
			u.log.Warnf("Failed to update appointment %s: %+v", id, err)
			return nil, err
		}
	}

	return u.GetByID(ctx, id)
}

func (u *appointmentUsecase) Approve(ctx context.Context, id uuid.UUID, approvedBy uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByIDWithDetails(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if err := appointment.Approve(approvedBy); err != nil {
		return err
	}
	if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
		u.log.Warnf("Failed to approve appointment %s: %+v", id, err)
		return err
	}

	data := map[string]interface{}{"appointment_id": appointment.ID.String()}
	if appointment.MeetingLink != nil {
		data["meeting_link"] = *appointment.MeetingLink
	}
	u.notificationService.Notify(ctx, appointment.PatientID,
		"Appointment Approved",
		fmt.Sprintf("Your appointment on %s has been approved", appointment.Date.Format(dateLayout)),
		service.NotificationAppointmentApproved,
		data,
	)

	return nil
}

func (u *appointmentUsecase) Decline(ctx context.Context, id uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByIDWithDetails(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if err := appointment.Decline(); err != nil {
		return err
	}
	if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
		u.log.Warnf("Failed to decline appointment %s: %+v", id, err)
		return err
	}

	u.notificationService.Notify(ctx, appointment.PatientID,
		"Appointment Declined",
		fmt.Sprintf("Your appointment on %s has been declined", appointment.Date.Format(dateLayout)),
		service.NotificationAppointmentDeclined,
		map[string]interface{}{"appointment_id": appointment.ID.String()},
	)

	return nil
}

func (u *appointmentUsecase) Cancel(ctx context.Context, id uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByIDWithDetails(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if err := appointment.Cancel(); err != nil {
		return err
	}
	if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", id, err)
		return err
	}

	u.notificationService.Notify(ctx, appointment.Doctor.UserID,
		"Appointment Cancelled",
		fmt.Sprintf("The appointment on %s has been cancelled", appointment.Date.Format(dateLayout)),
		service.NotificationAppointmentCancelled,
		map[string]interface{}{"appointment_id": appointment.ID.String()},
	)

	return nil
}

// Reschedule moves the appointment to a new window, re-runs the conflict
// check excluding the appointment's own id (so moving to the same time never
// self-conflicts) and resets the status to pending.
func (u *appointmentUsecase) Reschedule(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) error {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.IsTerminal() {
		return entity.ErrInvalidTransition
	}

	date, window, err := parseBookingWindow(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return err
	}

	release, err := u.lockService.Acquire(ctx, appointment.DoctorID, date)
	if err != nil {
		return err
	}
	defer release()

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		conflict, err := u.appointmentRepo.HasConflict(tx, appointment.DoctorID, date, window.Start.String(), window.End.String(), &appointment.ID)
		if err != nil {
			return err
		}
		if conflict {
			return ErrSlotUnavailable
		}
		if err := appointment.Reschedule(date, window.Start.String(), window.End.String()); err != nil {
			return err
		}
		return u.appointmentRepo.Update(tx, appointment)
	})
	if err != nil {
		if isOverlapViolation(err) {
			return ErrSlotUnavailable
		}
		if !errors.Is(err, ErrSlotUnavailable) && !errors.Is(err, entity.ErrInvalidTransition) {
			u.log.Warnf("Failed to reschedule appointment %s: %+v", id, err)
		}
		return err
	}

	// The move resets the status to pending, so the doctor has to re-approve.
	u.notificationService.Notify(ctx, appointment.DoctorID,
		"Appointment Rescheduled",
		fmt.Sprintf("An appointment has been moved to %s %s-%s and awaits your approval",
			appointment.Date.Format(dateLayout), appointment.StartTime, appointment.EndTime),
		service.NotificationAppointmentMoved,
		map[string]interface{}{"appointment_id": appointment.ID.String()},
	)

	return nil
}

func (u *appointmentUsecase) Complete(ctx context.Context, id uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if err := appointment.Complete(); err != nil {
		return err
	}
	if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
		u.log.Warnf("Failed to complete appointment %s: %+v", id, err)
		return err
	}

	return nil
}

// parseBookingWindow validates the wire date/time triple and normalizes the
// times to zero-padded "HH:MM".
func parseBookingWindow(dateStr, startStr, endStr string) (time.Time, scheduling.Interval, error) {
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return time.Time{}, scheduling.Interval{}, ErrInvalidDateFormat
	}
	window, err := parseTimeWindow(startStr, endStr)
	if err != nil {
		return time.Time{}, scheduling.Interval{}, err
	}
	return date, window, nil
}

func parseTimeWindow(startStr, endStr string) (scheduling.Interval, error) {
	window, err := scheduling.ParseInterval(startStr, endStr)
	if err != nil {
		return scheduling.Interval{}, ErrInvalidTimeFormat
	}
	if window.Start >= window.End {
		return scheduling.Interval{}, ErrInvalidTimeRange
	}
	return window, nil
}

func applyAppointmentPatch(appointment *entity.Appointment, req *dto.UpdateAppointmentRequest) {
	if req.Type != "" {
		appointment.Type = entity.AppointmentType(req.Type)
	}
	if req.Reason != nil {
		appointment.Reason = req.Reason
	}
}

// isOverlapViolation detects the database-level double-booking backstop: the
// exclusion constraint on active appointments raises SQLSTATE 23P01.
func isOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01" || pgErr.Code == "23505"
	}
	return false
}
