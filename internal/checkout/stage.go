package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// callStage runs one collaborator call under the stage timeout.
// Deadline errors become ErrTimedOut, panics and any other error become ErrCheckoutFailed.
func callStage[T any](ctx context.Context, timeout time.Duration, name string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type outcome struct {
		val T
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("%w: %s panicked: %v", ErrCheckoutFailed, name, r)}
			}
		}()
		v, err := fn(ctx)
		done <- outcome{val: v, err: err}
	}()

	select {
	case <-ctx.Done():
		return zero, stageError(fmt.Errorf("%s: %w", name, ctx.Err()))
	case out := <-done:
		if out.err != nil {
			return zero, stageError(fmt.Errorf("%s: %w", name, out.err))
		}
		return out.val, nil
	}
}

func stageError(err error) error {
	switch {
	case errors.Is(err, ErrCheckoutFailed), errors.Is(err, ErrTimedOut), errors.Is(err, ErrPaymentDeclined):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrTimedOut, err)
	default:
		return fmt.Errorf("%w: %w", ErrCheckoutFailed, err)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
