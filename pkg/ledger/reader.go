// Package ledger pulls authoritative marketplace state from the network.
// Reads are the only mechanism by which mutations become visible; there is
// no speculative local update anywhere in this codebase.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/chris/shardeum-marketplace/pkg/amounts"
	"github.com/chris/shardeum-marketplace/pkg/contract"
	"github.com/chris/shardeum-marketplace/pkg/models"
	"github.com/chris/shardeum-marketplace/pkg/state"
	"github.com/chris/shardeum-marketplace/pkg/wallet"
)

// ContractSource yields the currently bound contract handle, or nil when no
// session is live. The session manager provides this.
type ContractSource func() contract.Marketplace

// Reader rebuilds the listing cache and holding balance from ledger truth.
// Both refreshes are pure reads, safe to run concurrently with each other
// and with a pending mutation.
type Reader struct {
	provider     wallet.Provider
	contractAddr common.Address
	source       ContractSource
	store        *state.Store
}

// NewReader creates a Reader.
func NewReader(p wallet.Provider, contractAddr common.Address, source ContractSource, store *state.Store) *Reader {
	return &Reader{
		provider:     p,
		contractAddr: contractAddr,
		source:       source,
		store:        store,
	}
}

// RefreshListings rebuilds the listing cache wholesale from the ledger. It
// is a no-op when no contract handle is bound. On any read failure the
// partial result is discarded and the prior cache is kept, marked stale.
func (r *Reader) RefreshListings(ctx context.Context) error {
	mkt := r.source()
	if mkt == nil {
		return nil
	}

	r.store.BeginListings()
	listings, err := fetchListings(ctx, mkt)
	if err != nil {
		r.store.FailListings()
		slog.Warn("listing refresh failed, keeping previous cache", "error", err)
		return fmt.Errorf("failed to refresh listings: %w", err)
	}
	r.store.FinishListings(listings)
	return nil
}

// fetchListings reads the ordered run 1..itemCount and returns it most
// recent first.
func fetchListings(ctx context.Context, mkt contract.Marketplace) ([]models.Listing, error) {
	count, err := mkt.ItemCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read item count: %w", err)
	}

	listings := make([]models.Listing, 0, count)
	for i := uint64(1); i <= count; i++ {
		item, err := mkt.Item(ctx, i)
		if err != nil {
			return nil, fmt.Errorf("failed to read item %d: %w", i, err)
		}
		listings = append(listings, models.Listing{
			Id:     item.Id.Uint64(),
			Seller: item.Seller,
			Name:   item.Name,
			Price:  amounts.FromNative(item.Price),
			Sold:   item.Sold,
		})
	}
	slices.Reverse(listings)
	return listings, nil
}

// RefreshBalance reads the contract's native-currency holdings and stores
// the display-unit amount. It does not require a bound contract handle.
func (r *Reader) RefreshBalance(ctx context.Context) error {
	raw, err := r.provider.Request(ctx, "eth_getBalance", r.contractAddr, "latest")
	if err != nil {
		slog.Warn("balance refresh failed", "error", err)
		return fmt.Errorf("failed to refresh balance: %w", err)
	}
	var balance hexutil.Big
	if err := json.Unmarshal(raw, &balance); err != nil {
		return fmt.Errorf("failed to decode balance: %w", err)
	}
	r.store.SetBalance(amounts.FromNative(balance.ToInt()))
	return nil
}

// RefreshAll performs both refreshes; used after every settled transaction
// and after a session rebind. Failures are surfaced per refresh and never
// touch the other's cache.
func (r *Reader) RefreshAll(ctx context.Context) {
	_ = r.RefreshListings(ctx)
	_ = r.RefreshBalance(ctx)
}
