package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chris/shardeum-marketplace/pkg/wallet"
)

// ErrSwitchFailed is returned when the wallet refused a network switch for a
// reason other than user rejection or an unknown chain.
var ErrSwitchFailed = errors.New("network switch failed")

// ErrRegistrationFailed is returned when registering the target network with
// the wallet failed for a reason other than user rejection.
var ErrRegistrationFailed = errors.New("network registration failed")

// NativeCurrency describes the native currency of a network.
type NativeCurrency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint   `json:"decimals"`
}

// Descriptor is the fixed wallet_addEthereumChain descriptor for a network.
type Descriptor struct {
	ChainID           string         `json:"chainId"`
	ChainName         string         `json:"chainName"`
	NativeCurrency    NativeCurrency `json:"nativeCurrency"`
	RPCURLs           []string       `json:"rpcUrls"`
	BlockExplorerURLs []string       `json:"blockExplorerUrls"`
}

// switchParam is the single parameter of wallet_switchEthereumChain.
type switchParam struct {
	ChainID string `json:"chainId"`
}

// Ensure guarantees the provider is attached to the target network. If the
// wallet is already there this issues no further requests. Otherwise it asks
// for a switch, falling back to registering the network (which implicitly
// switches on success) when the wallet reports the chain as unknown. User
// rejection at either step aborts the connect flow.
func Ensure(ctx context.Context, p wallet.Provider, target Descriptor) error {
	raw, err := p.Request(ctx, "eth_chainId")
	if err != nil {
		return fmt.Errorf("failed to read current chain id: %w", err)
	}
	var current string
	if err := json.Unmarshal(raw, &current); err != nil {
		return fmt.Errorf("failed to decode chain id: %w", err)
	}
	if strings.EqualFold(current, target.ChainID) {
		return nil
	}

	slog.Info("switching wallet network", "from", current, "to", target.ChainID)
	_, err = p.Request(ctx, "wallet_switchEthereumChain", switchParam{ChainID: target.ChainID})
	if err == nil {
		return nil
	}
	if errors.Is(err, wallet.ErrUserRejected) {
		return fmt.Errorf("network switch: %w", err)
	}

	var rpcErr *wallet.RPCError
	if !errors.As(err, &rpcErr) || rpcErr.Code != wallet.CodeUnknownChain {
		return fmt.Errorf("%w: %v", ErrSwitchFailed, err)
	}

	// The wallet has never seen this chain; register it with the full
	// descriptor, which also switches to it on success.
	slog.Info("registering network with wallet", "chainId", target.ChainID, "name", target.ChainName)
	if _, err := p.Request(ctx, "wallet_addEthereumChain", target); err != nil {
		if errors.Is(err, wallet.ErrUserRejected) {
			return fmt.Errorf("network registration: %w", err)
		}
		return fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}
	return nil
}
