package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/warblerhq/warbler/backend/config"
	"github.com/warblerhq/warbler/backend/internal/api"
	"github.com/warblerhq/warbler/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	cfg    *config.Config
}

// New assembles the engine with all routes and middleware.
func New(cfg *config.Config, db *gorm.DB, imageService service.IImageService) *Server {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	authService := service.NewAuthService(db, cfg.JWTSecret)
	api.RegisterRoutes(router, db, authService, imageService, cfg)

	return &Server{
		router: router,
		db:     db,
		cfg:    cfg,
	}
}

// Router exposes the engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start begins serving and blocks until the listener fails.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    ":" + s.cfg.ServerPort,
		Handler: s.router,
	}
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
