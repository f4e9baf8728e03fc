package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/kakeibo/internal/config"
	"github.com/MrJamesThe3rd/kakeibo/internal/exchange"
	kakeiboHttp "github.com/MrJamesThe3rd/kakeibo/internal/http"
	exportHandler "github.com/MrJamesThe3rd/kakeibo/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/kakeibo/internal/http/importcsv"
	summaryHandler "github.com/MrJamesThe3rd/kakeibo/internal/http/summary"
	txHandler "github.com/MrJamesThe3rd/kakeibo/internal/http/transaction"
	"github.com/MrJamesThe3rd/kakeibo/internal/metrics"
	"github.com/MrJamesThe3rd/kakeibo/internal/transaction"
	txStore "github.com/MrJamesThe3rd/kakeibo/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	repo, closeRepo, err := txStore.Open(cfg)
	if err != nil {
		return err
	}

	defer func() {
		if err := closeRepo(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	transactionService := transaction.NewService(repo, transaction.WithLogger(logger))
	if err := transactionService.Open(ctx); err != nil {
		return err
	}

	exchangeService := exchange.NewService(transactionService)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		metrics.NewCollector(transactionService.Snapshot),
	)

	router := kakeiboHttp.New(
		cfg.CORS.AllowedOrigins,
		txHandler.NewHandler(transactionService),
		summaryHandler.NewHandler(transactionService),
		importHandler.NewHandler(exchangeService),
		exportHandler.NewHandler(exchangeService),
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr, "storage", cfg.Storage.Backend)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listening: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
