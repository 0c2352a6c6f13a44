package main

import (
	"context"
	"log"

	"github.com/warblerhq/warbler/backend/config"
	"github.com/warblerhq/warbler/backend/internal/database"
	"github.com/warblerhq/warbler/backend/internal/service"
	"github.com/warblerhq/warbler/backend/internal/types"
)

// Seeds a development database with a few users, messages and follow edges.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	ctx := context.Background()
	authService := service.NewAuthService(db, cfg.JWTSecret)
	userService := service.NewUserService(db)
	messageService := service.NewMessageService(db)

	seeds := []struct {
		username, email, password string
		messages                  []string
	}{
		{"alice", "alice@example.com", "password1", []string{"first warble!", "hello from alice"}},
		{"bob", "bob@example.com", "password2", []string{"bob checking in"}},
		{"carol", "carol@example.com", "password3", nil},
	}

	ids := make(map[string]uint)
	for _, s := range seeds {
		user, err := authService.Signup(ctx, &types.SignupRequest{
			Username: s.username,
			Email:    s.email,
			Password: s.password,
		})
		if err != nil {
			log.Printf("skipping %s: %v", s.username, err)
			continue
		}
		ids[s.username] = user.ID
		for _, text := range s.messages {
			if _, err := messageService.Create(ctx, user.ID, text); err != nil {
				log.Printf("failed to post for %s: %v", s.username, err)
			}
		}
	}

	if alice, ok := ids["alice"]; ok {
		if bob, ok := ids["bob"]; ok {
			if err := userService.Follow(ctx, alice, bob); err != nil {
				log.Printf("failed to follow: %v", err)
			}
		}
	}

	log.Println("Seed data created")
}
