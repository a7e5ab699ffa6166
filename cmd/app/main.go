package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/chris/shardeum-marketplace/pkg/handlers"
	"github.com/chris/shardeum-marketplace/pkg/ledger"
	"github.com/chris/shardeum-marketplace/pkg/mapping"
	"github.com/chris/shardeum-marketplace/pkg/middleware"
	"github.com/chris/shardeum-marketplace/pkg/network"
	"github.com/chris/shardeum-marketplace/pkg/scheduler"
	"github.com/chris/shardeum-marketplace/pkg/session"
	"github.com/chris/shardeum-marketplace/pkg/state"
	"github.com/chris/shardeum-marketplace/pkg/trades"
	"github.com/chris/shardeum-marketplace/pkg/wallet"
	"github.com/chris/shardeum-marketplace/pkg/websockets"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	walletURL := os.Getenv("WALLET_RPC_URL")
	if walletURL == "" {
		log.Fatal("WALLET_RPC_URL environment variable not set")
	}

	contractHex := os.Getenv("MARKETPLACE_ADDRESS")
	if !common.IsHexAddress(contractHex) {
		log.Fatalf("MARKETPLACE_ADDRESS is not a valid address: %q", contractHex)
	}
	contractAddr := common.HexToAddress(contractHex)

	pollInterval := scheduler.DefaultPollInterval
	if raw := os.Getenv("BALANCE_POLL_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("Invalid BALANCE_POLL_INTERVAL: %v", err)
		}
		pollInterval = parsed
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bind the wallet endpoint. No endpoint means nothing to do; fail fast.
	provider, err := wallet.Dial(ctx, walletURL)
	if err != nil {
		log.Fatalf("Failed to bind wallet endpoint: %v", err)
	}
	defer provider.Close()

	store := state.New()
	defer store.Close()

	hub := websockets.NewHub()
	defer hub.Close()

	// Wire the session manager, ledger reader, and trade orchestrator
	// together. The reader pulls its contract handle from the manager so a
	// rebind is picked up on the next refresh without re-wiring.
	mgr := session.NewManager(provider, network.ShardeumLiberty, contractAddr, store)
	reader := ledger.NewReader(provider, contractAddr, mgr.Contract, store)
	orchestrator := trades.NewOrchestrator(mgr, reader)

	poller := scheduler.NewBalancePoller(func(ctx context.Context) {
		_ = reader.RefreshBalance(ctx)
	}, pollInterval)
	defer poller.Stop()

	mgr.Refresh = reader.RefreshAll
	mgr.OnRebind = poller.Reset

	symbol := network.ShardeumLiberty.NativeCurrency.Symbol
	store.OnChange(func(prev, next state.Snapshot) {
		ctx := context.Background()
		if prev.Session != next.Session {
			_ = hub.Publish(ctx, websockets.Message{
				Type:    websockets.MessageTypeSessionUpdate,
				Payload: mapping.ToApiSession(next.Session),
			})
		}
		if listingsChanged(prev, next) {
			_ = hub.Publish(ctx, websockets.Message{
				Type:    websockets.MessageTypeListingsUpdate,
				Payload: mapping.ToApiListings(next),
			})
		}
		if !prev.Balance.Equal(next.Balance) {
			_ = hub.Publish(ctx, websockets.Message{
				Type:    websockets.MessageTypeBalanceUpdate,
				Payload: mapping.ToApiBalance(next.Balance, symbol),
			})
		}
	})

	unsubscribe := mgr.Watch()
	defer unsubscribe()

	watcher := wallet.NewWatcher(provider, wallet.DefaultWatchInterval)
	watcher.Start()
	defer watcher.Stop()

	poller.Start()

	// Silently resume an already-authorized session, then seed the caches.
	if err := mgr.Resume(ctx); err != nil {
		slog.Warn("failed to resume wallet session", "error", err)
	}
	reader.RefreshAll(ctx)

	handler := handlers.NewApiHandler(mgr, orchestrator, store, symbol)

	// Create a new Chi router
	router := chi.NewRouter()
	router.Use(middleware.NewStructuredLogger(logger))
	router.Use(chimiddleware.Recoverer)
	handler.Routes(router)
	router.Get("/ws", hub.ServeHTTP)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	srv := &http.Server{Addr: ":" + port, Handler: router}
	go func() {
		slog.Info("starting server", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
}

// listingsChanged reports whether the listing view (cache contents or its
// status flags) differs between two snapshots.
func listingsChanged(prev, next state.Snapshot) bool {
	if prev.LoadingListings != next.LoadingListings || prev.Stale != next.Stale {
		return true
	}
	if len(prev.Listings) != len(next.Listings) {
		return true
	}
	for i := range prev.Listings {
		p, n := prev.Listings[i], next.Listings[i]
		if p.Id != n.Id || p.Seller != n.Seller || p.Name != n.Name || p.Sold != n.Sold || !p.Price.Equal(n.Price) {
			return true
		}
	}
	return false
}
