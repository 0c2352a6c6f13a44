package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/warblerhq/warbler/backend/config"
	"github.com/warblerhq/warbler/backend/internal/database"
)

func main() {
	dir := flag.String("dir", "migrations", "directory containing .sql migration files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.NewSQL(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.HealthCheck(ctx); err != nil {
		log.Fatalf("database health check failed: %v", err)
	}

	if err := db.ApplyMigrations(*dir); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("All migrations applied")
}
