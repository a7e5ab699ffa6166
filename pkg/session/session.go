// Package session owns the live wallet session and the lifecycle of the
// bound contract handle. All session mutation happens here; other components
// observe it through the state store or the Contract accessor.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/chris/shardeum-marketplace/pkg/contract"
	"github.com/chris/shardeum-marketplace/pkg/models"
	"github.com/chris/shardeum-marketplace/pkg/network"
	"github.com/chris/shardeum-marketplace/pkg/state"
	"github.com/chris/shardeum-marketplace/pkg/wallet"
)

const (
	// rebindSettleDelay is how long to wait after an account change before
	// rereading ledger state, giving the new signer a moment to settle. The
	// wallet interface offers no "signer ready" signal to wait on instead.
	rebindSettleDelay = 400 * time.Millisecond

	// refreshTimeout bounds the deferred post-rebind refresh.
	refreshTimeout = 30 * time.Second
)

// BindFunc creates a contract handle for an account.
type BindFunc func(p wallet.Provider, contractAddr, from common.Address) contract.Marketplace

// Manager owns the single live Session. Rebinding always replaces the
// contract handle, never merges.
type Manager struct {
	// Bind creates contract handles; defaults to contract.Bind. Replaceable
	// for tests.
	Bind BindFunc

	// OnRebind, if set, runs after a contract handle is bound or replaced.
	// The balance poller uses it to re-arm against the new binding.
	OnRebind func()

	// Refresh, if set, performs the full ledger refresh scheduled after an
	// account change rebind.
	Refresh func(ctx context.Context)

	provider     wallet.Provider
	target       network.Descriptor
	contractAddr common.Address
	store        *state.Store
	rebindDelay  time.Duration

	mu      sync.Mutex
	account common.Address
	bound   contract.Marketplace
	live    bool
}

// NewManager creates a session manager. No session is live until Connect or
// Resume binds one.
func NewManager(p wallet.Provider, target network.Descriptor, contractAddr common.Address, store *state.Store) *Manager {
	return &Manager{
		Bind: func(p wallet.Provider, contractAddr, from common.Address) contract.Marketplace {
			return contract.Bind(p, contractAddr, from)
		},
		provider:     p,
		target:       target,
		contractAddr: contractAddr,
		store:        store,
		rebindDelay:  rebindSettleDelay,
	}
}

// Connect ensures the wallet is on the target network, requests account
// authorization (which may prompt the user), and binds a fresh contract
// handle to the first authorized account.
func (m *Manager) Connect(ctx context.Context) (models.Session, error) {
	if err := network.Ensure(ctx, m.provider, m.target); err != nil {
		return models.Session{}, err
	}
	accounts, err := wallet.RequestAccounts(ctx, m.provider)
	if err != nil {
		return models.Session{}, err
	}
	if len(accounts) == 0 {
		return models.Session{}, fmt.Errorf("wallet authorized no accounts: %w", wallet.ErrUserRejected)
	}
	return m.bindAccount(common.HexToAddress(accounts[0])), nil
}

// Resume silently binds an already-authorized account at startup, without
// prompting. An empty account list is not an error; it just means no session
// yet.
func (m *Manager) Resume(ctx context.Context) error {
	accounts, err := wallet.Accounts(ctx, m.provider)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		slog.Info("no authorized accounts, waiting for connect")
		return nil
	}
	m.bindAccount(common.HexToAddress(accounts[0]))
	return nil
}

// HandleAccountsChanged reacts to the wallet's accountsChanged event. An
// empty list means the wallet was disconnected or locked: the session resets
// and all cached ledger data is cleared. A non-empty list rebinds to the new
// first account as a fresh session.
func (m *Manager) HandleAccountsChanged(accounts []string) {
	if len(accounts) == 0 {
		m.mu.Lock()
		m.account = common.Address{}
		m.bound = nil
		m.live = false
		m.mu.Unlock()

		m.store.SetSession(models.Session{})
		m.store.ClearLedger()
		slog.Info("wallet disconnected, session reset")
		return
	}

	m.bindAccount(common.HexToAddress(accounts[0]))

	// Reread ledger state after a short delay rather than inline, to
	// tolerate provider-side event ordering races. The refresh still flows
	// through the ordered state queue.
	if m.Refresh != nil {
		time.AfterFunc(m.rebindDelay, func() {
			ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
			defer cancel()
			m.Refresh(ctx)
		})
	}
}

// Watch subscribes the manager to the provider's accountsChanged events and
// returns the unsubscribe function.
func (m *Manager) Watch() func() {
	return m.provider.Subscribe(wallet.EventAccountsChanged, func(payload json.RawMessage) {
		var accounts []string
		if err := json.Unmarshal(payload, &accounts); err != nil {
			slog.Error("failed to decode accountsChanged payload", "error", err)
			return
		}
		m.HandleAccountsChanged(accounts)
	})
}

// Contract returns the currently bound contract handle, or nil when no
// session is live.
func (m *Manager) Contract() contract.Marketplace {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bound
}

// Session returns the current session view.
func (m *Manager) Session() models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return models.Session{
		Account:       m.account,
		Connected:     m.live,
		ContractBound: m.bound != nil,
	}
}

// bindAccount replaces the bound contract handle and publishes the new
// session.
func (m *Manager) bindAccount(account common.Address) models.Session {
	m.mu.Lock()
	m.account = account
	m.live = true
	m.bound = m.Bind(m.provider, m.contractAddr, account)
	m.mu.Unlock()

	sess := models.Session{Account: account, Connected: true, ContractBound: true}
	m.store.SetSession(sess)
	slog.Info("session bound", "account", account.Hex())

	if m.OnRebind != nil {
		m.OnRebind()
	}
	return sess
}
