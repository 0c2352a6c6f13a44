package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/warblerhq/warbler/backend/config"
	"github.com/warblerhq/warbler/backend/internal/database"
	"github.com/warblerhq/warbler/backend/internal/middleware"
	"github.com/warblerhq/warbler/backend/internal/service"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Warbler API is running",
	})
}

// RegisterRoutes wires all handlers onto the engine.
func RegisterRoutes(router *gin.Engine, db *gorm.DB, authService service.IAuthService, imageService service.IImageService, cfg *config.Config) {
	router.GET("/health", HealthCheck)

	// Rate limiting is best-effort: the API runs without it when Redis is
	// unreachable.
	var redisClient *redis.Client
	if client, err := database.NewRedisClient(cfg); err != nil {
		log.Printf("Warning: Redis unavailable, rate limiting disabled: %v", err)
	} else {
		redisClient = client
	}

	var signupLimiter, messageLimiter *middleware.RateLimiter
	if redisClient != nil {
		signupLimiter = middleware.NewSignupRateLimiter(redisClient)
		messageLimiter = middleware.NewMessageCreationRateLimiter(redisClient)
	}

	authHandler := NewAuthHandler(authService, signupLimiter)
	userHandler := NewUserHandler(service.NewUserService(db), authService, imageService)
	messageHandler := NewMessageHandler(service.NewMessageService(db), authService, messageLimiter)

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)
	userHandler.RegisterRoutes(v1)
	messageHandler.RegisterRoutes(v1)
}
