package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mortal-bot/internal/bot"
	"mortal-bot/internal/config"
	"mortal-bot/internal/storage"
	"mortal-bot/pkg/logger"

	"go.uber.org/zap"
)

// ENTRY POINT

func main() {
	zapLogger, err := logger.New()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLogger.Fatal("Failed to load config", zap.Error(err))
	}

	store, err := storage.New(cfg.DataDir, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to init storage", zap.Error(err))
	}

	tgBot, err := bot.New(cfg, store, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to create bot", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	if err := tgBot.Start(ctx); err != nil {
		zapLogger.Fatal("Bot stopped with error", zap.Error(err))
	}

	zapLogger.Info("Bot shutdown gracefully")
}
