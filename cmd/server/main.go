package main

import (
	"os"

	"github.com/badr-lol/contact-relay/internal/config"
	"github.com/badr-lol/contact-relay/internal/logging"
	"github.com/badr-lol/contact-relay/internal/server"
)

func main() {
	// Set development environment variables
	if os.Getenv("ENV") != "production" {
		os.Setenv("ENV", "development")
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize logger configuration
	logConfig := &logging.Config{
		File:       cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	}

	if err := logging.InitLogger(logConfig); err != nil {
		panic(err)
	}
	logger := logging.GetGlobalLogger()
	defer logger.Close()

	logger.Info("Starting server in %s mode", cfg.Environment)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration: %v", err)
		os.Exit(1)
	}

	srv := server.NewServer(cfg)
	srv.Init()

	logger.Info("Listening on port %s", cfg.Port)
	if err := srv.Start(); err != nil {
		logger.Error("Failed to start server: %v", err)
		os.Exit(1)
	}
}
