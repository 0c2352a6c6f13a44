package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/warblerhq/warbler/backend/internal/middleware"
	"github.com/warblerhq/warbler/backend/internal/service"
	"github.com/warblerhq/warbler/backend/internal/types"
)

// AuthHandler exposes signup and login.
type AuthHandler struct {
	authService   service.IAuthService
	signupLimiter *middleware.RateLimiter
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authService service.IAuthService, signupLimiter *middleware.RateLimiter) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		signupLimiter: signupLimiter,
	}
}

// RegisterRoutes registers the auth routes.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		if h.signupLimiter != nil {
			auth.POST("/signup", h.signupLimiter.ClientIPRateLimitMiddleware(), h.Signup)
		} else {
			auth.POST("/signup", h.Signup)
		}
		auth.POST("/login", h.Login)
	}
}

// Signup creates an account and returns a token plus the new user.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req types.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// Login authenticates a username/password pair. A wrong password and an
// unknown username produce the same response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.authService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
