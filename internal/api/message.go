package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/warblerhq/warbler/backend/internal/middleware"
	"github.com/warblerhq/warbler/backend/internal/service"
	"github.com/warblerhq/warbler/backend/internal/types"
)

// MessageHandler exposes messages and likes.
type MessageHandler struct {
	messageService  service.IMessageService
	authService     service.IAuthService
	creationLimiter *middleware.RateLimiter
}

// NewMessageHandler creates a new MessageHandler instance.
func NewMessageHandler(messageService service.IMessageService, authService service.IAuthService, creationLimiter *middleware.RateLimiter) *MessageHandler {
	return &MessageHandler{
		messageService:  messageService,
		authService:     authService,
		creationLimiter: creationLimiter,
	}
}

// RegisterRoutes registers the message routes.
func (h *MessageHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)

	messages := router.Group("/messages")
	{
		messages.GET("", h.ListMessages)
		messages.GET("/:id", h.GetMessage)
		if h.creationLimiter != nil {
			messages.POST("", auth, h.creationLimiter.RateLimitMiddleware(), h.CreateMessage)
		} else {
			messages.POST("", auth, h.CreateMessage)
		}
		messages.DELETE("/:id", auth, h.DeleteMessage)
		messages.POST("/:id/like", auth, h.ToggleLike)
	}

	router.GET("/users/:id/messages", h.ListUserMessages)
	router.GET("/users/:id/likes", h.ListLiked)
}

func messageIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return 0, false
	}
	return uint(id), true
}

// CreateMessage posts a new message authored by the authenticated user.
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	msg, err := h.messageService.Create(c.Request.Context(), userID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// GetMessage returns a message by id with its like count.
func (h *MessageHandler) GetMessage(c *gin.Context) {
	id, ok := messageIDParam(c)
	if !ok {
		return
	}

	msg, err := h.messageService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// ListMessages returns all messages, newest first.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	msgs, err := h.messageService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// ListUserMessages returns :id's messages, newest first.
func (h *MessageHandler) ListUserMessages(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	msgs, err := h.messageService.ListByUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// DeleteMessage removes a message. Only the owner may delete it.
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, ok := messageIDParam(c)
	if !ok {
		return
	}

	if err := h.messageService.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleLike likes the message if not yet liked, unlikes it otherwise.
func (h *MessageHandler) ToggleLike(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, ok := messageIDParam(c)
	if !ok {
		return
	}

	liked, err := h.messageService.ToggleLike(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// ListLiked returns every message :id currently likes.
func (h *MessageHandler) ListLiked(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	msgs, err := h.messageService.ListLiked(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}
