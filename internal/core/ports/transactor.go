package ports

import "context"

// Transactor runs fn as one unit of work. Repository calls made with the
// context passed to fn take part in the unit of work.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	// Atomic reports whether a failure inside fn rolls back earlier writes.
	Atomic() bool
}

// Locker serialises work on a key across requests (and processes, when the
// implementation is shared). The returned release func is safe to call once.
type Locker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}
