package scheduler

import (
	"context"
	"sync"
	"time"
)

// DefaultPollInterval is the default balance poll period.
const DefaultPollInterval = 5 * time.Second

// BalancePoller runs a refresh function on a fixed period. Each tick is an
// independent, idempotent read, so overlapping ticks need no backpressure.
type BalancePoller struct {
	refresh  func(ctx context.Context)
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

// Make sure we conform to the interface
var _ Scheduler = (*BalancePoller)(nil)

// NewBalancePoller creates a poller. A non-positive interval falls back to
// DefaultPollInterval.
func NewBalancePoller(refresh func(ctx context.Context), interval time.Duration) *BalancePoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &BalancePoller{refresh: refresh, interval: interval}
}

// Start begins polling. It is a no-op if the poller is already running.
func (p *BalancePoller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	p.startLocked()
}

// Reset cancels the current poll loop and re-arms it against the new
// binding.
func (p *BalancePoller) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
	p.startLocked()
}

// Stop cancels the poll loop entirely.
func (p *BalancePoller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *BalancePoller) startLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	go p.run(ctx)
}

func (p *BalancePoller) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tickCtx, cancel := context.WithTimeout(ctx, p.interval)
			p.refresh(tickCtx)
			cancel()
		}
	}
}
