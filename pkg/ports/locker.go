package ports

import (
	"context"
	"errors"
	"time"
)

// ErrLocked is returned when a lock is held by someone else.
var ErrLocked = errors.New("resource is locked")

// UnlockFunc is a function that releases a lock.
type UnlockFunc func(ctx context.Context) error

// Locker defines the interface for concurrency control over a named resource.
// The batch processor uses it to keep two runs from writing into the same
// output directory.
type Locker interface {
	// Lock acquires the lock for key. It blocks until the lock is acquired or
	// the context is canceled. ttl bounds how long a crashed holder can keep
	// the lock (implementation specific; file locks ignore it).
	// Returns an UnlockFunc that MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
