package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forkwhisk/cookbook/config"
	"github.com/forkwhisk/cookbook/internal/assetstore"
	"github.com/forkwhisk/cookbook/internal/database"
	"github.com/forkwhisk/cookbook/internal/logger"
	"github.com/forkwhisk/cookbook/internal/server"
)

func main() {
	logger.Init(config.IsProduction())
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	assets, err := assetstore.New(cfg.AssetRoot)
	if err != nil {
		log.Fatalf("Failed to open asset store: %v", err)
	}

	srv := server.New(cfg, db, assets)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		logger.L().Infow("received signal", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	logger.L().Info("server stopped")
}
