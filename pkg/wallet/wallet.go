package wallet

import (
	"context"
	"encoding/json"
	"fmt"
)

// EventAccountsChanged delivers the ordered list of authorized accounts.
// An empty list signals that the wallet was disconnected or locked.
const EventAccountsChanged = "accountsChanged"

// EventHandler receives the JSON payload of a provider event.
type EventHandler func(payload json.RawMessage)

// Provider is the request/response and event-subscription surface of a bound
// wallet. The same underlying wallet is wrapped, never duplicated; handles
// are stateless beyond their subscriptions.
type Provider interface {
	// Request performs one wallet RPC round-trip and returns the raw result.
	Request(ctx context.Context, method string, params ...any) (json.RawMessage, error)

	// Subscribe registers a handler for the named event and returns the
	// matching unsubscribe function.
	Subscribe(event string, handler EventHandler) func()

	// Close releases the provider binding.
	Close()
}

// Accounts performs the non-prompting eth_accounts read and returns the
// currently authorized accounts, which may be empty.
func Accounts(ctx context.Context, p Provider) ([]string, error) {
	raw, err := p.Request(ctx, "eth_accounts")
	if err != nil {
		return nil, fmt.Errorf("failed to read authorized accounts: %w", err)
	}
	return decodeAccounts(raw)
}

// RequestAccounts asks the wallet to authorize accounts, which may prompt
// the user.
func RequestAccounts(ctx context.Context, p Provider) ([]string, error) {
	raw, err := p.Request(ctx, "eth_requestAccounts")
	if err != nil {
		return nil, fmt.Errorf("account authorization failed: %w", err)
	}
	return decodeAccounts(raw)
}

func decodeAccounts(raw json.RawMessage) ([]string, error) {
	var accounts []string
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, fmt.Errorf("failed to decode account list: %w", err)
	}
	return accounts, nil
}
