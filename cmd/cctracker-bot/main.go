package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/adityakr/cctracker/internal/config"
	"github.com/adityakr/cctracker/internal/discord"
	"github.com/adityakr/cctracker/internal/ledger"
	"github.com/adityakr/cctracker/internal/storage"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file, using environment as-is")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	if err := cfg.RequireDiscord(); err != nil {
		logger.Fatalf("Missing Discord configuration: %v", err)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	book, err := ledger.Load(store, logger)
	if err != nil {
		logger.Fatalf("Failed to load ledger: %v", err)
	}

	bot, err := discord.NewBot(cfg, book, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize the bot: %v", err)
	}
	if err := bot.Start(); err != nil {
		logger.Fatalf("Failed to start bot: %v", err)
	}

	logger.WithField("transactions", book.Len()).Info("bot is running")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	bot.Stop()
	logger.Info("bot stopped")
}
