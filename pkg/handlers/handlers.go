package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/chris/shardeum-marketplace/pkg/api"
	"github.com/chris/shardeum-marketplace/pkg/contract"
	"github.com/chris/shardeum-marketplace/pkg/mapping"
	"github.com/chris/shardeum-marketplace/pkg/models"
	"github.com/chris/shardeum-marketplace/pkg/network"
	"github.com/chris/shardeum-marketplace/pkg/state"
	"github.com/chris/shardeum-marketplace/pkg/trades"
	"github.com/chris/shardeum-marketplace/pkg/wallet"
)

// Connector establishes a wallet session.
type Connector interface {
	Connect(ctx context.Context) (models.Session, error)
}

// Trader submits state-mutating marketplace calls.
type Trader interface {
	ListItem(ctx context.Context, name string, price decimal.Decimal) error
	BuyItem(ctx context.Context, id uint64, price decimal.Decimal) error
}

// SnapshotSource returns the current synchronized state snapshot.
type SnapshotSource interface {
	Snapshot() state.Snapshot
}

// ApiHandler serves the presentation facade. It holds the application's
// dependencies: the session connector, the trade orchestrator, and the state
// store.
type ApiHandler struct {
	Sessions Connector
	Trades   Trader
	State    SnapshotSource
	Symbol   string
}

// NewApiHandler creates a new ApiHandler.
func NewApiHandler(sessions Connector, trades Trader, st SnapshotSource, symbol string) *ApiHandler {
	return &ApiHandler{Sessions: sessions, Trades: trades, State: st, Symbol: symbol}
}

// Routes mounts the facade on a chi router.
func (h *ApiHandler) Routes(r chi.Router) {
	r.Post("/connect", h.Connect)
	r.Get("/session", h.GetSession)
	r.Get("/listings", h.ListListings)
	r.Post("/listings", h.CreateListing)
	r.Post("/listings/{id}/buy", h.BuyListing)
	r.Get("/balance", h.GetBalance)
}

// Connect handles the logic for establishing a wallet session.
func (h *ApiHandler) Connect(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Sessions.Connect(r.Context())
	if err != nil {
		writeConnectError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToApiSession(sess))
}

// GetSession handles the logic for reading the current session view.
func (h *ApiHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mapping.ToApiSession(h.State.Snapshot().Session))
}

// ListListings handles the logic for reading the cached listing collection.
func (h *ApiHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mapping.ToApiListings(h.State.Snapshot()))
}

// GetBalance handles the logic for reading the holding balance.
func (h *ApiHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mapping.ToApiBalance(h.State.Snapshot().Balance, h.Symbol))
}

// CreateListing handles the logic for listing a new item for sale.
func (h *ApiHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var newListing api.NewListing
	if err := json.NewDecoder(r.Body).Decode(&newListing); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	price, err := mapping.ParsePrice(newListing.Price)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if err := h.Trades.ListItem(r.Context(), newListing.Name, price); err != nil {
		writeTradeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// BuyListing handles the logic for purchasing a listing.
func (h *ApiHandler) BuyListing(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		http.Error(w, "Invalid listing id", http.StatusBadRequest)
		return
	}

	var buy api.BuyRequest
	if err := json.NewDecoder(r.Body).Decode(&buy); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	price, err := mapping.ParsePrice(buy.Price)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if err := h.Trades.BuyItem(r.Context(), id, price); err != nil {
		writeTradeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// writeConnectError maps connect-flow failures to HTTP statuses.
func writeConnectError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wallet.ErrNoWallet):
		http.Error(w, "No wallet provider detected; install a wallet to continue", http.StatusServiceUnavailable)
	case errors.Is(err, wallet.ErrUserRejected):
		http.Error(w, "Wallet request was rejected", http.StatusForbidden)
	case errors.Is(err, network.ErrSwitchFailed), errors.Is(err, network.ErrRegistrationFailed):
		http.Error(w, fmt.Sprintf("Failed to attach wallet to target network: %v", err), http.StatusBadGateway)
	default:
		http.Error(w, fmt.Sprintf("Failed to connect: %v", err), http.StatusInternalServerError)
	}
}

// writeTradeError maps trade failures to HTTP statuses.
func writeTradeError(w http.ResponseWriter, err error) {
	var vErr *trades.ValidationError
	var chainErr *contract.ChainError
	switch {
	case errors.As(err, &vErr):
		http.Error(w, vErr.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, trades.ErrNotConnected):
		http.Error(w, "Connect a wallet first", http.StatusConflict)
	case errors.Is(err, trades.ErrTradePending):
		http.Error(w, "Another trade is still pending", http.StatusTooManyRequests)
	case errors.Is(err, wallet.ErrUserRejected):
		http.Error(w, "Wallet request was rejected", http.StatusForbidden)
	case errors.As(err, &chainErr):
		http.Error(w, chainErr.Error(), http.StatusBadGateway)
	default:
		http.Error(w, fmt.Sprintf("Trade failed: %v", err), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
