package contract

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Item is one marketplace listing exactly as stored on chain, with prices in
// native units.
type Item struct {
	Id     *big.Int
	Seller common.Address
	Name   string
	Price  *big.Int
	Sold   bool
}

// Marketplace is the fixed read/write surface of the marketplace contract.
// Reads are side-effect free. Writes are complete only once the ledger
// confirms inclusion, not merely once they are broadcast.
type Marketplace interface {
	// Address returns the contract address.
	Address() common.Address

	// ItemCount reads the number of listings ever created.
	ItemCount(ctx context.Context) (uint64, error)

	// Item reads the listing at the given 1-based index.
	Item(ctx context.Context, index uint64) (*Item, error)

	// ListItem creates a new listing and waits for settlement.
	ListItem(ctx context.Context, name string, priceNative *big.Int) error

	// BuyItem purchases a listing, attaching valueNative as the transferred
	// value, and waits for settlement.
	BuyItem(ctx context.Context, id uint64, valueNative *big.Int) error
}

// ChainError reports an on-chain execution failure or revert. The cache must
// be left untouched when it is returned.
type ChainError struct {
	Message string
}

func (e *ChainError) Error() string {
	return "chain rejected transaction: " + e.Message
}
