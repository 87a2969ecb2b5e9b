package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shelterplus/shelterplus-api/internal/api"
	"github.com/shelterplus/shelterplus-api/internal/config"
	"github.com/shelterplus/shelterplus-api/internal/discord"
	"github.com/shelterplus/shelterplus-api/internal/repository/postgres"
	"github.com/shelterplus/shelterplus-api/internal/service"
	"github.com/shelterplus/shelterplus-api/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Official lobby presets, reloadable at runtime
	presets := config.NewOfficialPresets(cfg.OfficialConfigJSON)

	// Discord side channel; runs in offline mode without a token
	notifier, err := discord.New(cfg.DiscordBotToken)
	if err != nil {
		log.Fatalf("failed to connect to discord: %v", err)
	}
	defer notifier.Close()

	// Initialize WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize services
	services := service.NewServices(repos, presets, notifier, hub)

	// Initialize router
	router := api.NewRouter(services, hub, presets, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	hub.Stop()

	log.Println("Server stopped")
}
