package worker

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces calls to an external collaborator: at most one event per
// interval, with the first call admitted immediately. A zero or
// negative interval disables pacing entirely.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a pacer with the given minimum interval between events
func NewPacer(interval time.Duration) *Pacer {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Pacer{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the next event is admitted or the context ends
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// Allow reports whether an event is admitted right now, without waiting
func (p *Pacer) Allow() bool {
	return p.limiter.Allow()
}
