package wallet

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// DefaultWatchInterval is how often the watcher re-reads the authorized
// account list.
const DefaultWatchInterval = 2 * time.Second

// Watcher bridges accountsChanged for transports without event push: it
// polls eth_accounts, diffs the result, and emits the event to the
// provider's subscribers when the list changes.
type Watcher struct {
	provider *RPCProvider
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWatcher creates a watcher for the given provider. A non-positive
// interval falls back to DefaultWatchInterval.
func NewWatcher(p *RPCProvider, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	return &Watcher{provider: p, interval: interval}
}

// Start begins polling. It is a no-op if the watcher is already running.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.done = make(chan struct{})
	go w.run(ctx)
}

// Stop cancels polling and waits for the poll loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel = nil
	w.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var last []string
	primed := false

	for {
		accounts, err := Accounts(ctx, w.provider)
		switch {
		case err != nil:
			if ctx.Err() == nil {
				slog.Warn("account watch poll failed", "error", err)
			}
		case !primed:
			// The first read establishes the baseline; startup binding is
			// the session manager's Resume, not an event.
			last = accounts
			primed = true
		case !slices.Equal(accounts, last):
			last = accounts
			if payload, err := json.Marshal(accounts); err == nil {
				w.provider.emit(EventAccountsChanged, payload)
			} else {
				slog.Error("failed to encode accountsChanged payload", "error", err)
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
