package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/taskhire_bot/internal/app"
	"github.com/Freeeeeet/taskhire_bot/internal/config"
	"go.uber.org/zap"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)

	defer logger.Sync()

	logger.Info("Starting taskhire bot",
		zap.String("environment", cfg.Environment),
		zap.String("day_bounds", cfg.DayBounds.String()),
		zap.Duration("status_tick", cfg.StatusTick),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to start application", zap.Error(err))
	}
	defer application.Close()

	if err := application.Run(ctx); err != nil {
		logger.Error("Application stopped with error", zap.Error(err))
	}

	logger.Info("Taskhire bot stopped")
}
