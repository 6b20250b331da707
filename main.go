package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/teetribe/shop-api/internal/ai"
	"github.com/teetribe/shop-api/internal/config"
	delivery "github.com/teetribe/shop-api/internal/delivery/http"
	"github.com/teetribe/shop-api/internal/payment"
	"github.com/teetribe/shop-api/internal/store"
)

func main() {
	cfg := config.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		slog.Error("Failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	handler := delivery.NewHandler(
		store.New(client.Database(cfg.MongoDB)),
		payment.NewClient(cfg.StripeSecretKey),
		ai.NewClient(cfg.GroqAPIKey, cfg.GroqModel),
		cfg.FrontendURL,
	)
	router := delivery.NewRouter(handler, cfg.AllowedOrigins)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		slog.Info("🚀 HTTP server starting", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "err", err)
	}
}
