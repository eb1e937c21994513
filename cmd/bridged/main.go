package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/zilswap/xbridge/api"
	"github.com/zilswap/xbridge/bridge"
	"github.com/zilswap/xbridge/config"
	"github.com/zilswap/xbridge/database"
	"github.com/zilswap/xbridge/evm"
	"github.com/zilswap/xbridge/history"
	"github.com/zilswap/xbridge/types"
	"github.com/zilswap/xbridge/wallet"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config file")
	flag.Parse()

	// load .env file if exists
	godotenv.Load()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	network := types.Network(cfg.Network)
	logger.Info("⚡️ starting bridge daemon", "network", network)

	store, err := database.NewStore(database.StoreOpts{
		URI:          cfg.Database.URI,
		DatabaseName: cfg.Database.Name,
		Logger:       logger.With("component", "database"),
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := store.CreateIndexes(ctx); err != nil {
		logger.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}

	endpoints := make(map[types.Blockchain]string, len(cfg.RPC))
	for chain, endpoint := range cfg.RPC {
		endpoints[types.Blockchain(chain)] = endpoint
	}

	pool := evm.NewPool(network, endpoints, logger.With("component", "evm"))
	clients := func(chain types.Blockchain) (bridge.Chain, error) {
		return pool.Client(chain)
	}

	fees := bridge.NewFeeResolver(clients, logger.With("component", "fees"))

	watcher := bridge.NewWatcher(bridge.WatcherOpts{
		Network: network,
		Store:   store,
		Clients: clients,
		Logger:  logger.With("component", "watcher"),
	})

	recovery := bridge.NewRecovery(bridge.RecoveryOpts{
		Network: network,
		History: history.NewClient(history.ClientOpts{
			BaseURL: cfg.History.URL,
			Timeout: cfg.History.Timeout,
			Logger:  logger.With("component", "history"),
		}),
		Logger: logger.With("component", "recovery"),
	})

	var submitter *bridge.Submitter
	if cfg.Signer.Key != "" {
		signer, err := wallet.NewPrivateKeySigner(cfg.Signer.Key)
		if err != nil {
			logger.Error("failed to load signer key", "error", err)
			os.Exit(1)
		}
		submitter = bridge.NewSubmitter(bridge.SubmitterOpts{
			Network: network,
			Clients: clients,
			Fees:    fees,
			Signer:  signer,
			Logger:  logger.With("component", "submitter"),
		})
		logger.Info("signer loaded", "address", signer.Address().Hex())
	} else {
		logger.Warn("no signer key configured, submission endpoints disabled")
	}

	// re-arm watchers for transfers left pending across restarts
	if err := watcher.Sync(ctx); err != nil {
		logger.Error("failed to sync watchers", "error", err)
	}
	go func() {
		ticker := time.NewTicker(cfg.SyncInterval)
		defer ticker.Stop()
		for range ticker.C {
			if err := watcher.Sync(context.Background()); err != nil {
				logger.Error("failed to sync watchers", "error", err)
			}
		}
	}()

	server := api.NewServer(api.ServerOpts{
		Logger:    logger.With("component", "api"),
		Network:   network,
		Store:     store,
		Watcher:   watcher,
		Recovery:  recovery,
		Submitter: submitter,
		Port:      cfg.API.Port,
	})
	go server.StartServer()

	// wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	watcher.Close()
	pool.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Close(shutdownCtx); err != nil {
		logger.Error("failed to close database", "error", err)
	}
}
