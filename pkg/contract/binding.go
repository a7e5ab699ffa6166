package contract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/chris/shardeum-marketplace/pkg/wallet"
)

// defaultReceiptInterval is how often a pending transaction's receipt is
// polled while waiting for settlement.
const defaultReceiptInterval = time.Second

// Binding is a Marketplace bound to one signing account on a wallet
// provider. Rebinding to a new account always creates a fresh Binding.
type Binding struct {
	provider        wallet.Provider
	address         common.Address
	from            common.Address
	receiptInterval time.Duration
}

// Make sure we conform to the interface
var _ Marketplace = (*Binding)(nil)

// Bind creates a contract handle for the given account. The wallet provider
// signs all writes; this process never holds keys.
func Bind(p wallet.Provider, contractAddr, from common.Address) *Binding {
	return &Binding{
		provider:        p,
		address:         contractAddr,
		from:            from,
		receiptInterval: defaultReceiptInterval,
	}
}

// Address returns the contract address.
func (b *Binding) Address() common.Address {
	return b.address
}

// ItemCount reads the number of listings ever created.
func (b *Binding) ItemCount(ctx context.Context) (uint64, error) {
	vals, err := b.call(ctx, "itemCount")
	if err != nil {
		return 0, err
	}
	count, ok := vals[0].(*big.Int)
	if !ok {
		return 0, fmt.Errorf("unexpected itemCount result type %T", vals[0])
	}
	return count.Uint64(), nil
}

// Item reads the listing at the given 1-based index.
func (b *Binding) Item(ctx context.Context, index uint64) (*Item, error) {
	vals, err := b.call(ctx, "items", new(big.Int).SetUint64(index))
	if err != nil {
		return nil, err
	}
	if len(vals) != 5 {
		return nil, fmt.Errorf("unexpected items result arity %d", len(vals))
	}

	item := &Item{}
	var ok bool
	if item.Id, ok = vals[0].(*big.Int); !ok {
		return nil, fmt.Errorf("unexpected item id type %T", vals[0])
	}
	if item.Seller, ok = vals[1].(common.Address); !ok {
		return nil, fmt.Errorf("unexpected item seller type %T", vals[1])
	}
	if item.Name, ok = vals[2].(string); !ok {
		return nil, fmt.Errorf("unexpected item name type %T", vals[2])
	}
	if item.Price, ok = vals[3].(*big.Int); !ok {
		return nil, fmt.Errorf("unexpected item price type %T", vals[3])
	}
	if item.Sold, ok = vals[4].(bool); !ok {
		return nil, fmt.Errorf("unexpected item sold type %T", vals[4])
	}
	return item, nil
}

// ListItem creates a new listing and waits for settlement.
func (b *Binding) ListItem(ctx context.Context, name string, priceNative *big.Int) error {
	return b.send(ctx, "listItem", nil, name, priceNative)
}

// BuyItem purchases a listing, attaching the exact native price as value,
// and waits for settlement.
func (b *Binding) BuyItem(ctx context.Context, id uint64, valueNative *big.Int) error {
	return b.send(ctx, "buyItem", valueNative, new(big.Int).SetUint64(id))
}

// callParams is the eth_call / eth_sendTransaction parameter object.
type callParams struct {
	From  *common.Address `json:"from,omitempty"`
	To    *common.Address `json:"to"`
	Data  hexutil.Bytes   `json:"data"`
	Value *hexutil.Big    `json:"value,omitempty"`
}

// call performs a read via eth_call against the latest block.
func (b *Binding) call(ctx context.Context, method string, args ...any) ([]any, error) {
	data, err := marketplaceABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	raw, err := b.provider.Request(ctx, "eth_call", callParams{To: &b.address, Data: data}, "latest")
	if err != nil {
		return nil, fmt.Errorf("%s read failed: %w", method, err)
	}

	var out hexutil.Bytes
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s result: %w", method, err)
	}
	vals, err := marketplaceABI.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s result: %w", method, err)
	}
	return vals, nil
}

// send submits a state-mutating call signed by the bound account and blocks
// until the ledger confirms inclusion.
func (b *Binding) send(ctx context.Context, method string, value *big.Int, args ...any) error {
	data, err := marketplaceABI.Pack(method, args...)
	if err != nil {
		return fmt.Errorf("failed to pack %s transaction: %w", method, err)
	}

	params := callParams{From: &b.from, To: &b.address, Data: data}
	if value != nil {
		params.Value = (*hexutil.Big)(value)
	}

	raw, err := b.provider.Request(ctx, "eth_sendTransaction", params)
	if err != nil {
		return fmt.Errorf("%s submission failed: %w", method, err)
	}
	var txHash common.Hash
	if err := json.Unmarshal(raw, &txHash); err != nil {
		return fmt.Errorf("failed to decode %s transaction hash: %w", method, err)
	}

	slog.Info("transaction submitted, awaiting settlement", "method", method, "tx", txHash.Hex())
	return b.waitSettled(ctx, txHash)
}

// waitSettled polls for the transaction receipt until the ledger reports
// inclusion. A zero-status receipt means the execution reverted.
func (b *Binding) waitSettled(ctx context.Context, txHash common.Hash) error {
	ticker := time.NewTicker(b.receiptInterval)
	defer ticker.Stop()

	for {
		raw, err := b.provider.Request(ctx, "eth_getTransactionReceipt", txHash)
		if err != nil {
			return fmt.Errorf("failed to poll receipt for %s: %w", txHash.Hex(), err)
		}
		if len(raw) > 0 && string(raw) != "null" {
			var receipt struct {
				Status hexutil.Uint64 `json:"status"`
			}
			if err := json.Unmarshal(raw, &receipt); err != nil {
				return fmt.Errorf("failed to decode receipt for %s: %w", txHash.Hex(), err)
			}
			if receipt.Status == 0 {
				return &ChainError{Message: fmt.Sprintf("transaction %s reverted", txHash.Hex())}
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
