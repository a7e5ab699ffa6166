package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/rpc"
)

// RPCProvider binds an external EIP-1193 style wallet endpoint over JSON-RPC.
// The endpoint holds the signing keys; this process never sees them.
type RPCProvider struct {
	client *rpc.Client

	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]EventHandler
}

// Make sure we conform to the interface
var _ Provider = (*RPCProvider)(nil)

// Dial detects and binds the wallet endpoint. An empty or unreachable
// endpoint fails fast with ErrNoWallet; there is no retry.
func Dial(ctx context.Context, url string) (*RPCProvider, error) {
	if url == "" {
		return nil, ErrNoWallet
	}
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoWallet, err)
	}
	return &RPCProvider{
		client: client,
		subs:   make(map[string]map[int]EventHandler),
	}, nil
}

// Request performs one wallet RPC round-trip. Provider-side errors carrying
// a JSON-RPC error code surface as *RPCError.
func (p *RPCProvider) Request(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	var result json.RawMessage
	if err := p.client.CallContext(ctx, &result, method, params...); err != nil {
		var rpcErr rpc.Error
		if errors.As(err, &rpcErr) {
			return nil, &RPCError{Code: rpcErr.ErrorCode(), Message: rpcErr.Error()}
		}
		return nil, fmt.Errorf("wallet request %s failed: %w", method, err)
	}
	return result, nil
}

// Subscribe registers a handler for the named event and returns the matching
// unsubscribe function.
func (p *RPCProvider) Subscribe(event string, handler EventHandler) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.subs[event] == nil {
		p.subs[event] = make(map[int]EventHandler)
	}
	id := p.nextID
	p.nextID++
	p.subs[event][id] = handler

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs[event], id)
	}
}

// emit dispatches an event payload to every subscriber. Delivery is
// synchronous with the caller; handlers must not block.
func (p *RPCProvider) emit(event string, payload json.RawMessage) {
	p.mu.Lock()
	handlers := make([]EventHandler, 0, len(p.subs[event]))
	for _, h := range p.subs[event] {
		handlers = append(handlers, h)
	}
	p.mu.Unlock()

	for _, h := range handlers {
		h(payload)
	}
}

// Close releases the underlying RPC client.
func (p *RPCProvider) Close() {
	p.client.Close()
}
