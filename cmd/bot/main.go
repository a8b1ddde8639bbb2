package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"fx-analysis-bot/internal/logger"
	"fx-analysis-bot/internal/trace"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Exit(1)
	}
	if err := trace.Init(); err != nil {
		logger.Warn(context.Background(), "Tracer init failed, continuing without tracing", "error", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	defer func() { _ = trace.Shutdown(context.Background()) }()

	app, err := buildApp(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Startup failed", err)
		os.Exit(1)
	}

	logger.Info(ctx, "Bot started, polling for updates")
	app.client.StartPolling(ctx, app.bot.HandleUpdate)
	logger.Info(ctx, "Bot stopped")
}
