// Package pacing spaces out collector lookups with a fixed, cancellable pause.
package pacing

import (
	"context"
	"time"
)

// Pacer pauses between consecutive lookups.
type Pacer interface {
	Pause(ctx context.Context) error
}

// Delay waits a fixed duration. A non-positive duration never waits.
type Delay time.Duration

// Pause blocks for the configured delay or until ctx is done.
func (d Delay) Pause(ctx context.Context) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(time.Duration(d))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// None never waits. Tests use it to keep runs fast.
var None Pacer = Delay(0)
