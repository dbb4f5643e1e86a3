package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrScheduleLocked is returned when the per-doctor booking lock could not be
// acquired within the retry budget.
var ErrScheduleLocked = errors.New("another booking for this doctor is being processed")

// releaseLockScript deletes the lock key only while it still holds the
// caller's token, so an expired lock taken over by another writer is never
// released by the original holder.
var releaseLockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

const (
	bookingLockKeyPrefix = "appointment_lock:"

	lockRetryAttempts  = 3
	lockRetryBaseDelay = 50 * time.Millisecond
)

// ScheduleLockService serialises conflict-check-then-write sequences for the
// same doctor and date. Two concurrent bookings for overlapping slots pass
// through here one at a time; the database exclusion constraint is the
// backstop if the lock expires mid-write.
type ScheduleLockService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewScheduleLockService(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *ScheduleLockService {
	return &ScheduleLockService{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

// Acquire takes the lock for (doctorID, date) and returns a release func.
func (s *ScheduleLockService) Acquire(ctx context.Context, doctorID uuid.UUID, date time.Time) (func(), error) {
	key := fmt.Sprintf("%s%s:%s", bookingLockKeyPrefix, doctorID, date.Format("2006-01-02"))
	token := uuid.New().String()

	for attempt := 0; attempt < lockRetryAttempts; attempt++ {
		acquired, err := s.redisClient.SetNX(ctx, key, token, s.ttl).Result()
		if err != nil {
			return nil, err
		}
		if acquired {
			return func() { s.release(key, token) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryBaseDelay << attempt):
		}
	}

	return nil, ErrScheduleLocked
}

func (s *ScheduleLockService) release(key, token string) {
	// Release must not be tied to the request context, which may already be
	// cancelled by the time the write commits.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := releaseLockScript.Run(ctx, s.redisClient, []string{key}, token).Err(); err != nil {
		s.log.Warnf("Failed to release booking lock %s: %+v", key, err)
	}
}
