package memory

import (
	"context"
	"sync"
	"time"

	"github.com/codecohort/alumni-directory/internal/core/domain"
	"github.com/codecohort/alumni-directory/internal/core/ports"
)

var _ ports.Locker = (*Locker)(nil)

// Locker is an in-process keyed lock, used when no Redis is configured.
// Waiters give up with ErrConflict after wait, or when ctx is done.
type Locker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
	wait  time.Duration
}

// NewLocker returns a Locker. A non-positive wait means callers wait until
// their context is done.
func NewLocker(wait time.Duration) *Locker {
	return &Locker{slots: make(map[string]chan struct{}), wait: wait}
}

func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	if l.wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}

	for {
		l.mu.Lock()
		held, busy := l.slots[key]
		if !busy {
			done := make(chan struct{})
			l.slots[key] = done
			l.mu.Unlock()

			var once sync.Once
			return func() {
				once.Do(func() {
					l.mu.Lock()
					delete(l.slots, key)
					l.mu.Unlock()
					close(done)
				})
			}, nil
		}
		l.mu.Unlock()

		select {
		case <-held:
		case <-ctx.Done():
			return nil, domain.ErrConflict
		}
	}
}
