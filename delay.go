package hdc302x

import (
	"context"
	"time"
)

// Delayer suspends the caller for the given duration. Implementations return
// early with the context error when ctx is done.
type Delayer interface {
	Delay(ctx context.Context, d time.Duration) error
}

// DelayerFunc adapts a plain function to the Delayer interface.
type DelayerFunc func(ctx context.Context, d time.Duration) error

func (f DelayerFunc) Delay(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

// TimerDelayer waits on a time.Timer.
type TimerDelayer struct{}

func (TimerDelayer) Delay(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
