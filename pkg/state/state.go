// Package state owns the process's only shared mutable snapshot of ledger
// and session state. Every producer (session events, the balance poller,
// post-settlement refreshes) feeds one update queue consumed by a single
// goroutine, so updates apply strictly in arrival order.
package state

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/chris/shardeum-marketplace/pkg/models"
)

// Snapshot is the full UI-facing view of synchronized state. Listings and
// Balance are eventually consistent with ledger truth; the loading flags mark
// refresh windows and Stale marks a cache kept after a failed refresh.
type Snapshot struct {
	Session         models.Session
	Listings        []models.Listing
	Balance         decimal.Decimal
	LoadingListings bool
	Stale           bool
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.Listings = make([]models.Listing, len(s.Listings))
	copy(out.Listings, s.Listings)
	return out
}

// ChangeFunc observes each applied update with the snapshot before and after.
type ChangeFunc func(prev, next Snapshot)

// Store applies queued updates and serves read-only copies of the snapshot.
type Store struct {
	updates chan queuedUpdate
	done    chan struct{}

	mu       sync.RWMutex
	snap     Snapshot
	onChange []ChangeFunc
}

type queuedUpdate struct {
	fn      func(*Snapshot)
	applied chan struct{}
}

// New creates a Store and starts its apply loop.
func New() *Store {
	s := &Store{
		updates: make(chan queuedUpdate, 64),
		done:    make(chan struct{}),
	}
	s.snap.Balance = decimal.Zero
	go s.run()
	return s
}

func (s *Store) run() {
	defer close(s.done)
	for u := range s.updates {
		s.mu.Lock()
		prev := s.snap.clone()
		u.fn(&s.snap)
		next := s.snap.clone()
		observers := s.onChange
		s.mu.Unlock()

		for _, fn := range observers {
			fn(prev, next)
		}
		close(u.applied)
	}
}

// OnChange registers an observer for applied updates. Observers run on the
// apply goroutine and must not call back into the store.
func (s *Store) OnChange(fn ChangeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Apply enqueues an update and blocks until it has been applied. Concurrent
// callers are serialized in arrival order.
func (s *Store) Apply(fn func(*Snapshot)) {
	u := queuedUpdate{fn: fn, applied: make(chan struct{})}
	s.updates <- u
	<-u.applied
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.clone()
}

// Close drains the queue and stops the apply loop.
func (s *Store) Close() {
	close(s.updates)
	<-s.done
}

// SetSession replaces the session view.
func (s *Store) SetSession(sess models.Session) {
	s.Apply(func(snap *Snapshot) {
		snap.Session = sess
	})
}

// ClearLedger resets all cached ledger data; used when the wallet reports
// zero authorized accounts.
func (s *Store) ClearLedger() {
	s.Apply(func(snap *Snapshot) {
		snap.Listings = nil
		snap.Balance = decimal.Zero
		snap.LoadingListings = false
		snap.Stale = false
	})
}

// BeginListings marks the start of a listing refresh window.
func (s *Store) BeginListings() {
	s.Apply(func(snap *Snapshot) {
		snap.LoadingListings = true
	})
}

// FinishListings replaces the listing cache wholesale with a fresh read.
func (s *Store) FinishListings(listings []models.Listing) {
	s.Apply(func(snap *Snapshot) {
		snap.Listings = listings
		snap.LoadingListings = false
		snap.Stale = false
	})
}

// FailListings ends a refresh window without touching the cached listings,
// marking them possibly stale.
func (s *Store) FailListings() {
	s.Apply(func(snap *Snapshot) {
		snap.LoadingListings = false
		snap.Stale = true
	})
}

// SetBalance replaces the holding balance.
func (s *Store) SetBalance(balance decimal.Decimal) {
	s.Apply(func(snap *Snapshot) {
		snap.Balance = balance
	})
}
