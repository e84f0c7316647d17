package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"trade_console/internal/app"
	"trade_console/internal/engine"
	"trade_console/internal/infra"
	"trade_console/internal/infra/webhook"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "net/http/pprof" // For pprof profiling
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := defaultConfigPath
	if p := os.Getenv("TRADE_CONFIG"); p != "" {
		configPath = p
	}

	// 1. System Bootstrapping. Stdout belongs to the command driver.
	bootstrap := app.NewBootstrap(configPath)
	if err := bootstrap.Initialize(os.Stderr); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer bootstrap.Close()
	cfg := bootstrap.Config

	// 2. Pprof Server (for performance profiling)
	if cfg.Metrics.PprofAddr != "" {
		go func() {
			slog.Info("🕵️ Pprof server started", slog.String("addr", cfg.Metrics.PprofAddr))
			if err := http.ListenAndServe(cfg.Metrics.PprofAddr, nil); err != nil {
				slog.Error("Pprof server failed", slog.Any("error", err))
			}
		}()
	}

	// 3. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Console (single-threaded event loop)
	console := bootstrap.Assemble()
	go console.Run(ctx)
	slog.InfoContext(ctx, "✅ Console started")

	// 5. Prometheus endpoint and catalog webhook
	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			infra.NewCollector(bootstrap.Metrics),
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		if cfg.Catalog.Webhook {
			mux.Handle("/catalog", webhook.NewCatalogHandler(console))
		}
		go func() {
			slog.Info("📈 HTTP server started", slog.String("addr", cfg.Metrics.Addr), slog.Bool("webhook", cfg.Catalog.Webhook))
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				slog.Error("HTTP server failed", slog.Any("error", err))
			}
		}()
	}

	// 6. Catalog source
	if err := bootstrap.StartCatalog(ctx); err != nil {
		slog.Error("Failed to start catalog client", slog.Any("error", err))
	}

	// 7. Command driver
	go func() {
		defer stop()
		if err := engine.RunCommands(ctx, os.Stdin, os.Stdout, console); err != nil && ctx.Err() == nil {
			slog.Error("Command driver failed", slog.Any("error", err))
		}
	}()

	slog.InfoContext(ctx, "✨ Trade console ready. Type help for commands, Ctrl+C to exit.")

	// Wait for shutdown signal
	<-ctx.Done()

	slog.Info("👋 Shutting down gracefully...")
}
