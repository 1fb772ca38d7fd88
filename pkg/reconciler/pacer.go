package reconciler

import (
	"context"
	"sync"
	"time"

	"github.com/agentstation/marksync/pkg/errors"
)

// Pacer spaces out destination-mutating calls. Wait blocks until at least
// the configured delay has passed since the previous call to Done.
// A nil *Pacer never waits.
type Pacer struct {
	delay time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewPacer creates a pacer. A non-positive delay disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{delay: delay}
}

// Delay returns the configured delay.
func (p *Pacer) Delay() time.Duration {
	if p == nil {
		return 0
	}
	return p.delay
}

// Wait blocks until the next mutation may start or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.delay <= 0 {
		return nil
	}
	p.mu.Lock()
	last := p.last
	p.mu.Unlock()
	if last.IsZero() {
		return nil
	}

	remaining := p.delay - time.Since(last)
	if remaining <= 0 {
		return nil
	}
	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return errors.WrapTransient("pace", "", errors.ErrCanceled)
	}
}

// Done records that a mutation just finished.
func (p *Pacer) Done() {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.last = time.Now()
	p.mu.Unlock()
}
