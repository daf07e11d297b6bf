package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"epiroom-backend/config"
	"epiroom-backend/internal/api"
	"epiroom-backend/internal/floorplan"
	"epiroom-backend/internal/poller"
	"epiroom-backend/internal/spatial"
	"epiroom-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "epiroom-backend ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	rooms, err := floorplan.LoadRegistry(cfg.Registry.RoomsPath)
	if err != nil {
		logger.Fatalf("failed to load room registry from %s: %v", cfg.Registry.RoomsPath, err)
	}

	regions, err := spatial.LoadRegistry(cfg.Registry.RegionsPath)
	if err != nil {
		logger.Fatalf("failed to load spatial registry from %s: %v", cfg.Registry.RegionsPath, err)
	}

	// Fail fast on registry drift instead of silently rendering
	// unmapped rooms.
	if err := regions.Validate(rooms); err != nil {
		logger.Fatalf("spatial registry validation failed: %v", err)
	}
	logger.Printf("registries loaded: %d floors, %d mapped regions", len(rooms.Floors), len(regions.Rooms))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snap := store.New()

	pollerSvc := poller.NewService(cfg, rooms, snap)
	go pollerSvc.Run(ctx)

	handler := api.NewHandler(snap, rooms, regions, cfg.Upstream)
	router := api.NewRouter(handler, &cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
