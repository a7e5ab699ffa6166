package state

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/chris/shardeum-marketplace/pkg/models"
)

func TestApplyOrdering(t *testing.T) {
	s := New()
	defer s.Close()

	// Two producers racing; every update must still apply in some serial
	// order with no lost writes.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.Apply(func(snap *Snapshot) {
					snap.Balance = snap.Balance.Add(decimal.New(1, 0))
				})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, "100", s.Snapshot().Balance.String())
}

func TestClearLedger(t *testing.T) {
	s := New()
	defer s.Close()

	s.FinishListings([]models.Listing{{Id: 1, Name: "hat"}})
	s.SetBalance(decimal.RequireFromString("1.5"))

	s.ClearLedger()

	snap := s.Snapshot()
	assert.Empty(t, snap.Listings)
	assert.True(t, snap.Balance.IsZero())
	assert.False(t, snap.Stale)
}

func TestFailedRefreshKeepsCache(t *testing.T) {
	s := New()
	defer s.Close()

	cached := []models.Listing{{Id: 1, Name: "hat"}, {Id: 2, Name: "scarf"}}
	s.FinishListings(cached)

	s.BeginListings()
	assert.True(t, s.Snapshot().LoadingListings)

	s.FailListings()

	snap := s.Snapshot()
	assert.Equal(t, cached, snap.Listings)
	assert.False(t, snap.LoadingListings)
	assert.True(t, snap.Stale)
}

func TestOnChange(t *testing.T) {
	s := New()
	defer s.Close()

	var got []Snapshot
	var mu sync.Mutex
	s.OnChange(func(prev, next Snapshot) {
		mu.Lock()
		got = append(got, next)
		mu.Unlock()
	})

	s.SetBalance(decimal.New(7, 0))

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, got, 1)
	assert.Equal(t, "7", got[0].Balance.String())
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New()
	defer s.Close()

	s.FinishListings([]models.Listing{{Id: 1, Name: "hat"}})

	snap := s.Snapshot()
	snap.Listings[0].Name = "mutated"

	assert.Equal(t, "hat", s.Snapshot().Listings[0].Name)
}
