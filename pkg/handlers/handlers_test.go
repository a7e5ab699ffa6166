package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/chris/shardeum-marketplace/pkg/api"
	"github.com/chris/shardeum-marketplace/pkg/contract"
	"github.com/chris/shardeum-marketplace/pkg/handlers/mocks"
	"github.com/chris/shardeum-marketplace/pkg/models"
	"github.com/chris/shardeum-marketplace/pkg/state"
	"github.com/chris/shardeum-marketplace/pkg/trades"
	"github.com/chris/shardeum-marketplace/pkg/wallet"
)

func newTestRouter(h *ApiHandler) *chi.Mux {
	r := chi.NewRouter()
	h.Routes(r)
	return r
}

func TestConnect(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// 1. Setup
		mockSessions := new(mocks.Connector)
		handler := NewApiHandler(mockSessions, new(mocks.Trader), new(mocks.SnapshotSource), "SHM")

		account := common.HexToAddress("0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B")
		sess := models.Session{Account: account, Connected: true, ContractBound: true}

		// 2. Mock expectations
		mockSessions.On("Connect", mock.Anything).Return(sess, nil)

		// 3. Execute
		req := httptest.NewRequest(http.MethodPost, "/connect", nil)
		rr := httptest.NewRecorder()
		newTestRouter(handler).ServeHTTP(rr, req)

		// 4. Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.Session
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, account.Hex(), got.Account)
		assert.True(t, got.Connected)
		mockSessions.AssertExpectations(t)
	})

	t.Run("User Rejects", func(t *testing.T) {
		mockSessions := new(mocks.Connector)
		handler := NewApiHandler(mockSessions, new(mocks.Trader), new(mocks.SnapshotSource), "SHM")

		mockSessions.On("Connect", mock.Anything).Return(models.Session{}, wallet.ErrUserRejected)

		req := httptest.NewRequest(http.MethodPost, "/connect", nil)
		rr := httptest.NewRecorder()
		newTestRouter(handler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		mockSessions.AssertExpectations(t)
	})

	t.Run("No Wallet Available", func(t *testing.T) {
		mockSessions := new(mocks.Connector)
		handler := NewApiHandler(mockSessions, new(mocks.Trader), new(mocks.SnapshotSource), "SHM")

		mockSessions.On("Connect", mock.Anything).Return(models.Session{}, wallet.ErrNoWallet)

		req := httptest.NewRequest(http.MethodPost, "/connect", nil)
		rr := httptest.NewRecorder()
		newTestRouter(handler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		mockSessions.AssertExpectations(t)
	})
}

func TestListListings(t *testing.T) {
	t.Run("Returns Cached Listings With Stale Flag", func(t *testing.T) {
		// 1. Setup
		mockState := new(mocks.SnapshotSource)
		handler := NewApiHandler(new(mocks.Connector), new(mocks.Trader), mockState, "SHM")

		snap := state.Snapshot{
			Listings: []models.Listing{
				{Id: 2, Name: "Lamp", Price: decimal.RequireFromString("1.5")},
				{Id: 1, Name: "Chair", Price: decimal.RequireFromString("0.0001"), Sold: true},
			},
			Stale: true,
		}

		// 2. Mock expectations
		mockState.On("Snapshot").Return(snap)

		// 3. Execute
		req := httptest.NewRequest(http.MethodGet, "/listings", nil)
		rr := httptest.NewRecorder()
		newTestRouter(handler).ServeHTTP(rr, req)

		// 4. Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.Listings
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.True(t, got.Stale)
		assert.Len(t, got.Listings, 2)
		assert.Equal(t, uint64(2), got.Listings[0].Id)
		assert.Equal(t, "1.5", got.Listings[0].Price)
		assert.True(t, got.Listings[1].Sold)
		mockState.AssertExpectations(t)
	})
}

func TestGetBalance(t *testing.T) {
	t.Run("Reports Balance With Currency Symbol", func(t *testing.T) {
		mockState := new(mocks.SnapshotSource)
		handler := NewApiHandler(new(mocks.Connector), new(mocks.Trader), mockState, "SHM")

		mockState.On("Snapshot").Return(state.Snapshot{Balance: decimal.RequireFromString("42.25")})

		req := httptest.NewRequest(http.MethodGet, "/balance", nil)
		rr := httptest.NewRecorder()
		newTestRouter(handler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.Balance
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "42.25", got.Balance)
		assert.Equal(t, "SHM", got.Symbol)
		mockState.AssertExpectations(t)
	})
}

func TestCreateListing(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// 1. Setup
		mockTrades := new(mocks.Trader)
		handler := NewApiHandler(new(mocks.Connector), mockTrades, new(mocks.SnapshotSource), "SHM")

		// 2. Mock expectations
		mockTrades.On("ListItem", mock.Anything, "Lamp", decimal.RequireFromString("1.5")).Return(nil)

		// 3. Execute
		body, _ := json.Marshal(api.NewListing{Name: "Lamp", Price: "1.5"})
		req := httptest.NewRequest(http.MethodPost, "/listings", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		newTestRouter(handler).ServeHTTP(rr, req)

		// 4. Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		mockTrades.AssertExpectations(t)
	})

	t.Run("Malformed Price", func(t *testing.T) {
		handler := NewApiHandler(new(mocks.Connector), new(mocks.Trader), new(mocks.SnapshotSource), "SHM")

		body, _ := json.Marshal(api.NewListing{Name: "Lamp", Price: "not-a-number"})
		req := httptest.NewRequest(http.MethodPost, "/listings", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		newTestRouter(handler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("Validation Failure", func(t *testing.T) {
		mockTrades := new(mocks.Trader)
		handler := NewApiHandler(new(mocks.Connector), mockTrades, new(mocks.SnapshotSource), "SHM")

		mockTrades.On("ListItem", mock.Anything, "", decimal.RequireFromString("1.5")).
			Return(&trades.ValidationError{Reason: "item name must not be empty"})

		body, _ := json.Marshal(api.NewListing{Name: "", Price: "1.5"})
		req := httptest.NewRequest(http.MethodPost, "/listings", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		newTestRouter(handler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		mockTrades.AssertExpectations(t)
	})

	t.Run("Not Connected", func(t *testing.T) {
		mockTrades := new(mocks.Trader)
		handler := NewApiHandler(new(mocks.Connector), mockTrades, new(mocks.SnapshotSource), "SHM")

		mockTrades.On("ListItem", mock.Anything, "Lamp", mock.Anything).Return(trades.ErrNotConnected)

		body, _ := json.Marshal(api.NewListing{Name: "Lamp", Price: "1.5"})
		req := httptest.NewRequest(http.MethodPost, "/listings", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		newTestRouter(handler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		mockTrades.AssertExpectations(t)
	})

	t.Run("Trade Already Pending", func(t *testing.T) {
		mockTrades := new(mocks.Trader)
		handler := NewApiHandler(new(mocks.Connector), mockTrades, new(mocks.SnapshotSource), "SHM")

		mockTrades.On("ListItem", mock.Anything, "Lamp", mock.Anything).Return(trades.ErrTradePending)

		body, _ := json.Marshal(api.NewListing{Name: "Lamp", Price: "1.5"})
		req := httptest.NewRequest(http.MethodPost, "/listings", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		newTestRouter(handler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		mockTrades.AssertExpectations(t)
	})
}

func TestBuyListing(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// 1. Setup
		mockTrades := new(mocks.Trader)
		handler := NewApiHandler(new(mocks.Connector), mockTrades, new(mocks.SnapshotSource), "SHM")

		// 2. Mock expectations
		mockTrades.On("BuyItem", mock.Anything, uint64(3), decimal.RequireFromString("0.0001")).Return(nil)

		// 3. Execute
		body, _ := json.Marshal(api.BuyRequest{Price: "0.0001"})
		req := httptest.NewRequest(http.MethodPost, "/listings/3/buy", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		newTestRouter(handler).ServeHTTP(rr, req)

		// 4. Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockTrades.AssertExpectations(t)
	})

	t.Run("Invalid Id", func(t *testing.T) {
		handler := NewApiHandler(new(mocks.Connector), new(mocks.Trader), new(mocks.SnapshotSource), "SHM")

		body, _ := json.Marshal(api.BuyRequest{Price: "0.0001"})
		req := httptest.NewRequest(http.MethodPost, "/listings/zero/buy", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		newTestRouter(handler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Chain Reverts", func(t *testing.T) {
		mockTrades := new(mocks.Trader)
		handler := NewApiHandler(new(mocks.Connector), mockTrades, new(mocks.SnapshotSource), "SHM")

		mockTrades.On("BuyItem", mock.Anything, uint64(3), mock.Anything).
			Return(&contract.ChainError{Message: "transaction reverted"})

		body, _ := json.Marshal(api.BuyRequest{Price: "0.0001"})
		req := httptest.NewRequest(http.MethodPost, "/listings/3/buy", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		newTestRouter(handler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		mockTrades.AssertExpectations(t)
	})

	t.Run("Unexpected Failure", func(t *testing.T) {
		mockTrades := new(mocks.Trader)
		handler := NewApiHandler(new(mocks.Connector), mockTrades, new(mocks.SnapshotSource), "SHM")

		mockTrades.On("BuyItem", mock.Anything, uint64(3), mock.Anything).Return(errors.New("boom"))

		body, _ := json.Marshal(api.BuyRequest{Price: "0.0001"})
		req := httptest.NewRequest(http.MethodPost, "/listings/3/buy", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		newTestRouter(handler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		mockTrades.AssertExpectations(t)
	})
}
