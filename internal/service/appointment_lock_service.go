package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrLockTimeout is returned when the appointment write lock could not be taken in time
var ErrLockTimeout = errors.New("appointment write lock not acquired")

// AppointmentLockKey is the single Redis key guarding appointment creation.
// The overlap check spans every stored appointment, so the lock is global.
const AppointmentLockKey = "appointment:write-lock"

// Timeout for the release round trip
const lockReleaseTimeout = 5 * time.Second

// releaseLockScript deletes the key only if it still holds our token,
// so an expired lock taken over by another instance is never released by us.
var releaseLockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// AppointmentLock serializes the read-check-write path of appointment creation.
// The returned release func must be called exactly once.
type AppointmentLock interface {
	Acquire(ctx context.Context) (release func(), err error)
}

// =============================================================================
// Redis
// =============================================================================

// RedisAppointmentLock is a SET NX PX lock shared by every instance using the same Redis.
type RedisAppointmentLock struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
	wait        time.Duration
	retry       time.Duration
}

func NewRedisAppointmentLock(redisClient *redis.Client, log *logrus.Logger, ttl, wait time.Duration) *RedisAppointmentLock {
	return &RedisAppointmentLock{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
		wait:        wait,
		retry:       25 * time.Millisecond,
	}
}

func (l *RedisAppointmentLock) Acquire(ctx context.Context) (func(), error) {
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		ok, err := l.redisClient.SetNX(waitCtx, AppointmentLockKey, token, l.ttl).Result()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			l.log.Warnf("Failed to acquire appointment lock: %+v", err)
			return nil, fmt.Errorf("acquire appointment lock: %w", err)
		}
		if ok {
			return func() { l.release(token) }, nil
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, ErrLockTimeout
		case <-ticker.C:
		}
	}
}

func (l *RedisAppointmentLock) release(token string) {
	// The request context may already be cancelled, release on a fresh one
	ctx, cancel := context.WithTimeout(context.Background(), lockReleaseTimeout)
	defer cancel()

	if err := releaseLockScript.Run(ctx, l.redisClient, []string{AppointmentLockKey}, token).Err(); err != nil {
		l.log.Warnf("Failed to release appointment lock (expires in %v): %+v", l.ttl, err)
	}
}

// =============================================================================
// In-process
// =============================================================================

// LocalAppointmentLock serializes creation inside a single process.
// Used when Redis is disabled.
type LocalAppointmentLock struct {
	sem  chan struct{}
	wait time.Duration
}

func NewLocalAppointmentLock(wait time.Duration) *LocalAppointmentLock {
	return &LocalAppointmentLock{
		sem:  make(chan struct{}, 1),
		wait: wait,
	}
}

func (l *LocalAppointmentLock) Acquire(ctx context.Context) (func(), error) {
	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case l.sem <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-l.sem }) }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, ErrLockTimeout
	}
}
