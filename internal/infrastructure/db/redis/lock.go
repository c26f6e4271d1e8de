package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/codecohort/alumni-directory/internal/core/domain"
	"github.com/codecohort/alumni-directory/internal/core/ports"
)

const (
	defaultLockTTL  = 10 * time.Second
	defaultLockWait = 3 * time.Second
	lockPoll        = 25 * time.Millisecond
)

var _ ports.Locker = (*Locker)(nil)

// releaseScript deletes the lock only while it still holds our token, so an
// expired lock taken over by another holder is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker provides per-key mutual exclusion shared by every API instance.
// Key format: lock:<key>
type Locker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
}

// NewLocker creates a Locker. ttl bounds how long a crashed holder blocks the
// key; wait bounds how long Lock polls before giving up with ErrConflict.
func NewLocker(client *redis.Client, ttl, wait time.Duration) *Locker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	if wait <= 0 {
		wait = defaultLockWait
	}
	return &Locker{client: client, ttl: ttl, wait: wait}
}

func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	k := l.key(key)
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	ticker := time.NewTicker(lockPoll)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(waitCtx, k, token, l.ttl).Result()
		if err != nil {
			if waitCtx.Err() != nil {
				return nil, domain.ErrConflict
			}
			return nil, fmt.Errorf("acquire lock %s: %w", k, err)
		}
		if ok {
			return l.releaser(k, token), nil
		}

		select {
		case <-waitCtx.Done():
			return nil, domain.ErrConflict
		case <-ticker.C:
		}
	}
}

func (l *Locker) releaser(k, token string) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		defer cancel()
		_ = releaseScript.Run(ctx, l.client, []string{k}, token).Err()
	}
}

func (l *Locker) key(key string) string {
	return fmt.Sprintf("lock:%s", key)
}
