package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/Shresth-k/THGNN-model-for-stock-market/internal/di"
	"github.com/Shresth-k/THGNN-model-for-stock-market/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	// Local .env is optional
	_ = godotenv.Load()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s data=%s tickers=%d", cfg.Environment, cfg.Data.Backend, len(cfg.Universe.Tickers))

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
