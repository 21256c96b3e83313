package matchclock

import (
	"context"
	"sync"
	"time"
)

// Poller re-runs a function at a fixed interval until it is stopped or its context ends.
// Stop is safe to call more than once and from any goroutine.
type Poller struct {
	interval time.Duration
	clock    Clock
	fn       func(ctx context.Context, now time.Time)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(interval time.Duration, clock Clock, fn func(ctx context.Context, now time.Time)) *Poller {
	if clock == nil {
		clock = SystemClock()
	}
	return &Poller{interval: interval, clock: clock, fn: fn}
}

// Start launches the polling goroutine. Calling Start on a running poller does nothing.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx, p.done)
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fn(ctx, p.clock.Now())
		}
	}
}

// Stop cancels polling and waits for an in-flight tick to return.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the poller has been started and not stopped.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}
