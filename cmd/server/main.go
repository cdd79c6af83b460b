// The marketplace signing service. Wires configuration, storage, chain
// access and the HTTP surface together.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"medialane/internal/api"
	"medialane/internal/auth"
	"medialane/internal/config"
	"medialane/internal/executor"
	"medialane/internal/handler"
	"medialane/internal/identity"
	"medialane/internal/indexer"
	"medialane/internal/marketplace"
	"medialane/internal/migrate"
	"medialane/internal/pinning"
	"medialane/internal/relay"
	"medialane/internal/repository/postgres"
	"medialane/internal/session"
	"medialane/internal/starknet"
)

// @title        Medialane Signing Service
// @version      1.0
// @description  Order and session signing for the Medialane marketplace.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatal("service stopped", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	if err := config.Init(); err != nil {
		return err
	}
	cfg := config.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DatabaseDSN); err != nil {
		return err
	}

	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	walletRepo := postgres.NewWalletRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)

	chain, err := starknet.NewClient(
		cfg.StarknetRPCURL,
		cfg.MarketplaceContract,
		cfg.ReceiptPollInterval,
		cfg.ReceiptTimeout,
		logger,
	)
	if err != nil {
		return err
	}

	relayClient := relay.NewClient(cfg.RelayURL)
	tokens := identity.NewClient(cfg.IdentityURL, cfg.TokenTemplate)
	pinner := pinning.NewClient(cfg.PinningURL, cfg.PinningJWT, cfg.PinningGateway)
	catalog := indexer.NewClient(cfg.IndexerURL)

	sessions := session.NewManager(
		walletRepo, sessionRepo, relayClient, tokens,
		cfg.SessionDuration, cfg.SessionMaxCalls, logger,
	)
	exec := executor.New(relayClient, tokens, chain, walletRepo, logger)
	market := marketplace.NewService(
		walletRepo, sessions, chain, exec, relayClient, tokens, pinner,
		cfg.MarketplaceContract, cfg.MintContract, cfg.ChainID, logger,
	)

	router := api.NewRouter(api.Handlers{
		Wallet:  handler.NewWalletHandler(market),
		Session: handler.NewSessionHandler(sessions),
		Market:  handler.NewMarketHandler(market, exec),
		Assets:  handler.NewAssetsHandler(market),
		Catalog: handler.NewCatalogHandler(catalog),
	}, auth.NewMiddleware(cfg.JWTKey))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
