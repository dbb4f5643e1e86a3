package service

import (
	"context"
	"encoding/json"

	"healthflow-backend/internal/domain/entity"
	"healthflow-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Notification types emitted by appointment lifecycle transitions.
const (
	NotificationNewAppointmentRequest = "new_appointment_request"
	NotificationAppointmentApproved   = "appointment_approved"
	NotificationAppointmentDeclined   = "appointment_declined"
	NotificationAppointmentCancelled  = "appointment_cancelled"
	NotificationAppointmentMoved      = "appointment_rescheduled"
)

// NotificationChannelPrefix is the redis pub/sub channel prefix; the delivery
// service subscribes to notifications:<userID>.
const NotificationChannelPrefix = "notifications:"

// NotificationService persists in-app notifications and publishes them to
// redis for real-time delivery. It is fire-and-forget: every failure is
// logged and swallowed, because a missed notification must never fail the
// appointment change that triggered it.
type NotificationService struct {
	db               *gorm.DB
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
	redisClient      *redis.Client
}

func NewNotificationService(
	db *gorm.DB,
	log *logrus.Logger,
	notificationRepo repository.NotificationRepository,
	redisClient *redis.Client,
) *NotificationService {
	return &NotificationService{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
		redisClient:      redisClient,
	}
}

// Notify stores one notification row for the user and publishes it.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, title, message, notificationType string, data map[string]interface{}) {
	notification := &entity.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notificationType,
	}

	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			s.log.Warnf("Failed to encode notification data for user %s: %+v", userID, err)
		} else {
			payload := string(encoded)
			notification.Data = &payload
		}
	}

	if err := s.notificationRepo.Create(s.db.WithContext(ctx), notification); err != nil {
		s.log.Warnf("Failed to store notification for user %s: %+v", userID, err)
		return
	}

	if s.redisClient == nil {
		return
	}

	event, err := json.Marshal(notification)
	if err != nil {
		s.log.Warnf("Failed to encode notification %s: %+v", notification.ID, err)
		return
	}
	channel := NotificationChannelPrefix + userID.String()
	if err := s.redisClient.Publish(ctx, channel, event).Err(); err != nil {
		s.log.Warnf("Failed to publish notification %s to %s: %+v", notification.ID, channel, err)
	}
}
