package application

import (
	"context"
	"errors"
	"time"

	domainerrors "foreman/contexts/workforce-core/timesheet-service/domain/errors"
)

const DefaultWriteTimeout = 5 * time.Second

// WithWriteTimeout bounds a durability write. A timed-out write must not be
// followed by event publication, since an event implies committed state.
func WithWriteTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func MapWriteError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domainerrors.ErrTimeout
	}
	return err
}
