package service

import (
	"context"
	"io"

	"github.com/warblerhq/warbler/backend/internal/models"
	"github.com/warblerhq/warbler/backend/internal/types"
)

// IAuthService defines the interface for signup and authentication.
type IAuthService interface {
	Signup(ctx context.Context, req *types.SignupRequest) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IUserService defines the interface for user records and the follow graph.
type IUserService interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	SearchUsers(ctx context.Context, query string) ([]*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, req *types.UpdateProfileRequest) (*models.User, error)
	DeleteUser(ctx context.Context, userID uint) error
	Follow(ctx context.Context, followerID, followeeID uint) error
	Unfollow(ctx context.Context, followerID, followeeID uint) error
	IsFollowing(ctx context.Context, userID, otherID uint) (bool, error)
	IsFollowedBy(ctx context.Context, userID, otherID uint) (bool, error)
	ListFollowing(ctx context.Context, userID uint) ([]*models.User, error)
	ListFollowers(ctx context.Context, userID uint) ([]*models.User, error)
}

// IMessageService defines the interface for messages and likes.
type IMessageService interface {
	Create(ctx context.Context, userID uint, text string) (*models.Message, error)
	Get(ctx context.Context, id uint) (*models.Message, error)
	List(ctx context.Context) ([]*models.Message, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Message, error)
	Delete(ctx context.Context, id, requestingUserID uint) error
	ToggleLike(ctx context.Context, userID, messageID uint) (bool, error)
	ListLiked(ctx context.Context, userID uint) ([]*models.Message, error)
	LikeCount(ctx context.Context, messageID uint) (int64, error)
}

// IImageService defines the interface for image storage.
type IImageService interface {
	UploadProfileImage(ctx context.Context, body io.Reader, contentType string) (string, error)
}
