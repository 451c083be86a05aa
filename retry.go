package helm3d

import (
	"context"
	"errors"
	"time"
)

// RetryOnce runs fn and, if it fails, waits delay and runs it one more time.
// ErrNoSurface is returned as is; there is nothing to draw on, so a second
// attempt cannot help.
func RetryOnce(ctx context.Context, delay time.Duration, fn func() error) error {
	err := fn()
	if err == nil || errors.Is(err, ErrNoSurface) {
		return err
	}

	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return errors.Join(err, ctx.Err())
	case <-t.C:
	}
	return fn()
}
