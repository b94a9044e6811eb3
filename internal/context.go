package internal

import (
	"context"
	"time"
)

// WithTimeout returns a context with timeout, defaulting to 15 seconds
// if duration is zero or negative. Every portal operation runs under
// one so a hung request cannot wedge the process.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 15 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
