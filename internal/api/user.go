package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/warblerhq/warbler/backend/internal/middleware"
	"github.com/warblerhq/warbler/backend/internal/service"
	"github.com/warblerhq/warbler/backend/internal/types"
)

// UserHandler exposes user records, profile edits and the follow graph.
type UserHandler struct {
	userService  service.IUserService
	authService  service.IAuthService
	imageService service.IImageService
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(userService service.IUserService, authService service.IAuthService, imageService service.IImageService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		authService:  authService,
		imageService: imageService,
	}
}

// RegisterRoutes registers the user routes.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", h.SearchUsers)
		users.GET("/:id", h.GetUser)
		users.GET("/:id/followers", h.ListFollowers)
		users.GET("/:id/following", h.ListFollowing)
	}

	auth := middleware.AuthMiddleware(h.authService)
	users.POST("/:id/follow", auth, h.Follow)
	users.DELETE("/:id/follow", auth, h.Unfollow)

	profile := router.Group("/profile")
	profile.Use(auth)
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.DELETE("", h.DeleteProfile)
		profile.POST("/image", h.UploadImage)
	}
}

func userIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return uint(id), true
}

// GetUser returns a user by id, with follower and following counts.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// SearchUsers lists users, optionally filtered by ?q= substring.
func (h *UserHandler) SearchUsers(c *gin.Context) {
	users, err := h.userService.SearchUsers(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetProfile returns the authenticated user's own record.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile edits the authenticated user's profile. The current password
// must be supplied and verify, or nothing changes.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteProfile removes the authenticated user's account and all owned rows.
func (h *UserHandler) DeleteProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Follow makes the authenticated user follow :id.
func (h *UserHandler) Follow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	followeeID, ok := userIDParam(c)
	if !ok {
		return
	}

	if err := h.userService.Follow(c.Request.Context(), userID, followeeID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Unfollow makes the authenticated user unfollow :id. Unfollowing a user you
// don't follow succeeds.
func (h *UserHandler) Unfollow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	followeeID, ok := userIDParam(c)
	if !ok {
		return
	}

	if err := h.userService.Unfollow(c.Request.Context(), userID, followeeID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListFollowers returns the users following :id.
func (h *UserHandler) ListFollowers(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	users, err := h.userService.ListFollowers(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// ListFollowing returns the users :id follows.
func (h *UserHandler) ListFollowing(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	users, err := h.userService.ListFollowing(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// UploadImage stores a new profile image in S3 and returns its URL. The
// caller then saves it through the profile edit flow.
func (h *UserHandler) UploadImage(c *gin.Context) {
	if h.imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage is not configured"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	url, err := h.imageService.UploadProfileImage(c.Request.Context(), file, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}
