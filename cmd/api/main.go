package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fundledger/internal/adapter/repo"
	"fundledger/internal/aggregate"
	"fundledger/internal/domain"
	"fundledger/internal/http/handlers"
	httpapi "fundledger/internal/http/httpapi"
	"fundledger/internal/infra"
	"fundledger/internal/infra/geoip"
	"fundledger/internal/ledger"
	"fundledger/internal/providers/payout"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
		resolver = nil
	}

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	archive := repo.NewArchive(dbpool, logger)
	if err := archive.EnsureSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to apply schema")
	}

	var transferer ledger.Transferer
	if cfg.PayoutURL != "" {
		transferer = payout.NewClient(payout.Options{
			BaseURL: cfg.PayoutURL,
			Token:   cfg.PayoutToken,
			Logger:  logger,
		})
		logger.Info().Str("url", cfg.PayoutURL).Msg("payout client configured")
	} else {
		transferer = payout.NewLogTransferer(logger)
		logger.Info().Msg("no payout endpoint configured, logging transfers")
	}

	clock := ledger.SystemClock{}
	book := ledger.New(domain.Identity(cfg.GenesisAdmin), clock, transferer)

	campaigns, donations, admins, err := archive.Load(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load archive")
	}
	book.Restore(campaigns, donations, admins)
	logger.Info().
		Int("campaigns", len(campaigns)).
		Int("donations", len(donations)).
		Msg("ledger restored from archive")

	book.AddSink(archive)
	book.AddSink(ledger.NewLogSink(logger))

	engine := aggregate.New(book, book, book, clock)
	app := handlers.NewApp(book, engine, archive, cfg.UnitDecimals, logger)

	router := httpapi.NewRouter(app, httpapi.Options{
		AllowedOrigins:  cfg.AllowedOrigins,
		CountryResolver: resolver,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
