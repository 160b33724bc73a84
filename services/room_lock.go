package services

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/fadhlanhapp/umrah-backoffice/utils"
)

// RoomLocker serializes room mutations per package hotel. Acquire never
// waits: a held lock is reported as a conflict so the caller re-fetches
// the rooming list before trying again.
type RoomLocker interface {
	Acquire(ctx context.Context, packageHotelID string) (release func(), err error)
}

// MemoryRoomLocker keeps room locks inside the process
type MemoryRoomLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

// NewMemoryRoomLocker creates an in-process room locker
func NewMemoryRoomLocker() *MemoryRoomLocker {
	return &MemoryRoomLocker{held: make(map[string]bool)}
}

func (l *MemoryRoomLocker) Acquire(ctx context.Context, packageHotelID string) (func(), error) {
	if err := ctx.Err(); err != nil {
		utils.Logger.WithError(err).WithField("package_hotel_id", packageHotelID).Warn("Request ended before room lock was taken")
		return nil, utils.NewConflictError("request cancelled before the room lock was acquired")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held[packageHotelID] {
		return nil, roomBusyError()
	}
	l.held[packageHotelID] = true

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, packageHotelID)
			l.mu.Unlock()
		})
	}, nil
}

// releaseScript deletes the lock only if it still carries our token
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`

// RedisRoomLocker shares room locks between API instances through Redis
type RedisRoomLocker struct {
	client   redis.Cmdable
	ttl      time.Duration
	newToken func() string
}

// NewRedisRoomLocker creates a Redis backed room locker. Locks expire after
// ttl so a crashed instance cannot block a package hotel forever.
func NewRedisRoomLocker(client redis.Cmdable, ttl time.Duration) *RedisRoomLocker {
	return &RedisRoomLocker{
		client:   client,
		ttl:      ttl,
		newToken: utils.GenerateID,
	}
}

func (l *RedisRoomLocker) Acquire(ctx context.Context, packageHotelID string) (func(), error) {
	key := utils.RoomLockPrefix + packageHotelID
	token := l.newToken()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		utils.Logger.WithError(err).WithField("package_hotel_id", packageHotelID).Error("Failed to acquire room lock")
		return nil, utils.NewInternalError("Failed to acquire room lock")
	}
	if !ok {
		return nil, roomBusyError()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// The request context may already be done when the lock is released
			if err := l.client.Eval(context.Background(), releaseScript, []string{key}, token).Err(); err != nil {
				utils.Logger.WithError(err).WithField("package_hotel_id", packageHotelID).Warn("Failed to release room lock")
			}
		})
	}, nil
}

func roomBusyError() error {
	return utils.NewConflictError("another room change for this hotel is in progress, reload the rooming list and retry")
}
