package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"accounting/internal/cli"
	"accounting/internal/editor"
	apphttp "accounting/internal/http"
	"accounting/internal/ledger"
	"accounting/internal/log"
	"accounting/internal/metrics"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "accounting:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := cli.LoadEnvFile(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}
	logger := cli.SetupLogger(cfg)

	var seed []ledger.Option
	if cfg.SeedDemoData {
		seed = append(seed, ledger.WithSeed(ledger.DemoTransactions()))
	}
	store := ledger.New(seed...)
	dialog := editor.New(store)

	deps := apphttp.Dependencies{
		Ledger:    store,
		Editor:    dialog,
		Logger:    logger,
		Collector: metrics.NoOpCollector{},
	}
	if cfg.MetricsEnabled {
		pc, err := metrics.NewPrometheusCollector("accounting")
		if err != nil {
			return fmt.Errorf("init metrics: %w", err)
		}
		deps.Collector = pc
		deps.MetricsHandler = pc.Handler()
	}

	srv := apphttp.NewServer(cfg, deps)
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting accounting server",
			"port", cfg.Port,
			"theme", cfg.Theme,
			"locale", cfg.Locale,
			log.FieldCount, store.Len(),
			"metrics", cfg.MetricsEnabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received", log.FieldOperation, log.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", log.FieldError, err)
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}
