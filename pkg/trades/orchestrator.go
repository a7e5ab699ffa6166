// Package trades submits state-mutating marketplace calls, waits for
// settlement, and forces a full ledger re-read afterwards. At most one
// mutating operation is in flight at a time.
package trades

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/chris/shardeum-marketplace/pkg/amounts"
	"github.com/chris/shardeum-marketplace/pkg/contract"
)

// ErrNotConnected is returned when no wallet session with a bound contract
// handle is live.
var ErrNotConnected = errors.New("no connected wallet session")

// ErrTradePending is returned when a mutating operation is already in
// flight. The second call is rejected, never queued.
var ErrTradePending = errors.New("another trade is still pending")

// ValidationError reports a locally rejected trade input. No network call is
// made when it is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid trade: " + e.Reason
}

// ContractSource yields the currently bound contract handle, or nil when no
// session is live.
type ContractSource interface {
	Contract() contract.Marketplace
}

// Refresher replaces the cached ledger state with a fresh authoritative
// read.
type Refresher interface {
	RefreshAll(ctx context.Context)
}

// Orchestrator serializes mutating marketplace calls. The forced refresh
// after settlement is the only mechanism by which mutations become visible.
type Orchestrator struct {
	sessions ContractSource
	reader   Refresher
	gate     chan struct{}
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(sessions ContractSource, reader Refresher) *Orchestrator {
	return &Orchestrator{
		sessions: sessions,
		reader:   reader,
		gate:     make(chan struct{}, 1),
	}
}

// ListItem creates a new listing for sale. The name must be non-empty and
// the price positive; both are checked locally before any network traffic.
func (o *Orchestrator) ListItem(ctx context.Context, name string, price decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Reason: "name must not be empty"}
	}
	if !price.IsPositive() {
		return &ValidationError{Reason: "price must be positive"}
	}
	native, err := amounts.ToNative(price)
	if err != nil {
		return &ValidationError{Reason: err.Error()}
	}

	mkt := o.sessions.Contract()
	if mkt == nil {
		return ErrNotConnected
	}
	if err := o.acquire(); err != nil {
		return err
	}
	defer o.release()

	slog.Info("listing item", "name", name, "price", price)
	if err := mkt.ListItem(ctx, name, native); err != nil {
		return fmt.Errorf("failed to list item: %w", err)
	}

	o.reader.RefreshAll(ctx)
	return nil
}

// BuyItem purchases a listing, attaching the exact native-unit price as the
// transferred value.
func (o *Orchestrator) BuyItem(ctx context.Context, id uint64, price decimal.Decimal) error {
	native, err := amounts.ToNative(price)
	if err != nil {
		return &ValidationError{Reason: err.Error()}
	}

	mkt := o.sessions.Contract()
	if mkt == nil {
		return ErrNotConnected
	}
	if err := o.acquire(); err != nil {
		return err
	}
	defer o.release()

	slog.Info("buying item", "id", id, "price", price)
	if err := mkt.BuyItem(ctx, id, native); err != nil {
		return fmt.Errorf("failed to buy item: %w", err)
	}

	o.reader.RefreshAll(ctx)
	return nil
}

// acquire claims the single mutating-operation slot without blocking.
func (o *Orchestrator) acquire() error {
	select {
	case o.gate <- struct{}{}:
		return nil
	default:
		return ErrTradePending
	}
}

func (o *Orchestrator) release() {
	<-o.gate
}
