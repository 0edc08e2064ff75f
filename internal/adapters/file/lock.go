package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/crema/pkg/ports"
	"github.com/gofrs/flock"
)

// LockFileName is created inside a locked directory.
const LockFileName = ".crema.lock"

// Locker implements ports.Locker with advisory file locks. The key is a
// directory; the lock lives in LockFileName inside it.
type Locker struct {
	retry time.Duration
}

// NewLocker creates a file locker.
func NewLocker() *Locker {
	return &Locker{retry: 50 * time.Millisecond}
}

// Lock acquires an exclusive lock on dir. ttl is ignored: the OS releases
// file locks when the holder exits.
func (l *Locker) Lock(ctx context.Context, dir string, ttl time.Duration) (ports.UnlockFunc, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to ensure lock directory: %w", err)
	}

	fl := flock.New(filepath.Join(dir, LockFileName))
	ok, err := fl.TryLockContext(ctx, l.retry)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %s: %w", ports.ErrLocked, dir, ctx.Err())
		}
		return nil, fmt.Errorf("failed to lock %s: %w", dir, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrLocked, dir)
	}
	return func(context.Context) error {
		return fl.Unlock()
	}, nil
}
