package main

import (
	"flag"
	"log"
	"os"

	"RetailPrice/internal/di"
	"RetailPrice/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s preprocessor=%s model=%s", cfg.Environment, cfg.Artifacts.PreprocessorPath, cfg.Artifacts.ModelPath)

	// Wire DI: artifacts are loaded here, a missing one is fatal
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
