package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pokedata/cardwiki/internal/api"
	"github.com/pokedata/cardwiki/internal/config"
	"github.com/pokedata/cardwiki/internal/database"
	"github.com/pokedata/cardwiki/internal/services"
)

func main() {
	cfg := config.Load()

	if err := database.Initialize(cfg.DBPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	joinService, err := services.NewJoinService(cfg, database.GetDB())
	if err != nil {
		log.Fatalf("Failed to initialize join service: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Run the join before serving so every endpoint has data from the start.
	if err := joinService.Run(ctx); err != nil {
		log.Fatalf("Initial join failed: %v", err)
	}

	router := api.SetupRouter(joinService)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
