package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/chris/shardeum-marketplace/pkg/contract"
	contractmocks "github.com/chris/shardeum-marketplace/pkg/contract/mocks"
	"github.com/chris/shardeum-marketplace/pkg/state"
	walletmocks "github.com/chris/shardeum-marketplace/pkg/wallet/mocks"
)

var (
	testContractAddr = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testSeller       = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func nativeUnits(display string) *big.Int {
	// 18 decimals; keep the literals readable in tests.
	n, ok := new(big.Int).SetString(display, 10)
	if !ok {
		panic("bad native amount " + display)
	}
	return n
}

func onChainItem(id int64, name string, price string, sold bool) *contract.Item {
	return &contract.Item{
		Id:     big.NewInt(id),
		Seller: testSeller,
		Name:   name,
		Price:  nativeUnits(price),
		Sold:   sold,
	}
}

func TestRefreshListings(t *testing.T) {
	t.Run("Reverse Creation Order", func(t *testing.T) {
		mockMarket := new(contractmocks.Marketplace)
		mockMarket.On("ItemCount", mock.Anything).Return(uint64(3), nil)
		mockMarket.On("Item", mock.Anything, uint64(1)).Return(onChainItem(1, "hat", "1000000000000000000", true), nil)
		mockMarket.On("Item", mock.Anything, uint64(2)).Return(onChainItem(2, "scarf", "1500000000000000000", false), nil)
		mockMarket.On("Item", mock.Anything, uint64(3)).Return(onChainItem(3, "gloves", "100000000000000", false), nil)

		store := state.New()
		defer store.Close()
		r := NewReader(new(walletmocks.Provider), testContractAddr, func() contract.Marketplace { return mockMarket }, store)

		err := r.RefreshListings(context.Background())

		assert.NoError(t, err)
		snap := store.Snapshot()
		assert.Len(t, snap.Listings, 3)
		assert.Equal(t, []uint64{3, 2, 1}, []uint64{snap.Listings[0].Id, snap.Listings[1].Id, snap.Listings[2].Id})
		assert.Equal(t, "0.0001", snap.Listings[0].Price.String())
		assert.Equal(t, "1.5", snap.Listings[1].Price.String())
		assert.False(t, snap.LoadingListings)
		mockMarket.AssertExpectations(t)
	})

	t.Run("No Bound Contract Is A NoOp", func(t *testing.T) {
		store := state.New()
		defer store.Close()
		r := NewReader(new(walletmocks.Provider), testContractAddr, func() contract.Marketplace { return nil }, store)

		err := r.RefreshListings(context.Background())

		assert.NoError(t, err)
		assert.Empty(t, store.Snapshot().Listings)
	})

	t.Run("Mid Loop Failure Keeps Previous Cache", func(t *testing.T) {
		mockMarket := new(contractmocks.Marketplace)
		mockMarket.On("ItemCount", mock.Anything).Return(uint64(2), nil)
		mockMarket.On("Item", mock.Anything, uint64(1)).Return(onChainItem(1, "hat", "1000000000000000000", false), nil)
		mockMarket.On("Item", mock.Anything, uint64(2)).Return(nil, errors.New("read timeout"))

		store := state.New()
		defer store.Close()
		r := NewReader(new(walletmocks.Provider), testContractAddr, func() contract.Marketplace { return mockMarket }, store)

		// Seed the cache with a prior successful refresh.
		okMarket := new(contractmocks.Marketplace)
		okMarket.On("ItemCount", mock.Anything).Return(uint64(1), nil)
		okMarket.On("Item", mock.Anything, uint64(1)).Return(onChainItem(1, "hat", "1000000000000000000", false), nil)
		seed := NewReader(new(walletmocks.Provider), testContractAddr, func() contract.Marketplace { return okMarket }, store)
		assert.NoError(t, seed.RefreshListings(context.Background()))
		before := store.Snapshot().Listings

		err := r.RefreshListings(context.Background())

		assert.Error(t, err)
		snap := store.Snapshot()
		assert.Equal(t, before, snap.Listings)
		assert.False(t, snap.LoadingListings)
		assert.True(t, snap.Stale)
	})
}

func TestRefreshBalance(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockProvider := new(walletmocks.Provider)
		// 1.5 SHM in wei.
		mockProvider.On("Request", mock.Anything, "eth_getBalance", testContractAddr, "latest").
			Return(json.RawMessage(`"0x14d1120d7b160000"`), nil)

		store := state.New()
		defer store.Close()
		r := NewReader(mockProvider, testContractAddr, func() contract.Marketplace { return nil }, store)

		err := r.RefreshBalance(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, "1.5", store.Snapshot().Balance.String())
		mockProvider.AssertExpectations(t)
	})

	t.Run("Failure Keeps Previous Balance", func(t *testing.T) {
		mockProvider := new(walletmocks.Provider)
		mockProvider.On("Request", mock.Anything, "eth_getBalance", testContractAddr, "latest").
			Return(nil, errors.New("connection refused"))

		store := state.New()
		defer store.Close()
		store.SetBalance(decimal.RequireFromString("2.5"))
		r := NewReader(mockProvider, testContractAddr, func() contract.Marketplace { return nil }, store)

		err := r.RefreshBalance(context.Background())

		assert.Error(t, err)
		assert.Equal(t, "2.5", store.Snapshot().Balance.String())
	})
}
