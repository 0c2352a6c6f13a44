package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warblerhq/warbler/backend/config"
	"github.com/warblerhq/warbler/backend/internal/database"
	"github.com/warblerhq/warbler/backend/internal/server"
	"github.com/warblerhq/warbler/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Image storage is optional; the API serves placeholder URLs without it.
	var imageService service.IImageService
	if s3cfg, err := config.NewS3Config(context.Background(), cfg); err != nil {
		log.Printf("Warning: S3 unavailable, image uploads disabled: %v", err)
	} else {
		imageService = service.NewImageService(s3cfg)
	}

	srv := server.New(cfg, db, imageService)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on :%s", cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
