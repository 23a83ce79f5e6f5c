// Package main contains the entry point of the user service.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/azangue-cmd/techshop-infrastructure/docs"
	"github.com/azangue-cmd/techshop-infrastructure/internal/app/userservice"
	"github.com/azangue-cmd/techshop-infrastructure/internal/config"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting user-service", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := userservice.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize user-service app", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("user-service app stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("user-service app stopped gracefully")
}
