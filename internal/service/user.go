package service

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/warblerhq/warbler/backend/internal/models"
	"github.com/warblerhq/warbler/backend/internal/types"
)

// UserService handles user records, profile edits and the follow graph.
type UserService struct {
	db *gorm.DB
}

// Ensure UserService implements IUserService
var _ IUserService = (*UserService)(nil)

// NewUserService creates a new UserService instance.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetUser retrieves a user by id.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateDBError(err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateDBError(err)
	}
	return &user, nil
}

// SearchUsers lists users whose username contains the query, or all users
// when the query is empty.
func (s *UserService) SearchUsers(ctx context.Context, query string) ([]*models.User, error) {
	q := s.db.WithContext(ctx)
	if query != "" {
		q = q.Where("LOWER(username) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	var users []*models.User
	if err := q.Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateProfile edits a user's profile. The request must carry the current
// password; if it does not verify, a ValidationError is returned and no
// field is changed. Username and email uniqueness is re-checked excluding
// the user's own row.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, req *types.UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, translateDBError(err)
	}

	if !CheckPassword(req.Password, user.PasswordHash) {
		return nil, &ValidationError{Field: "password", Message: "is incorrect"}
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if err := ValidateProfileEdit(user.Username, user.Email); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("(username = ? OR email = ?) AND id <> ?", user.Username, user.Email, userID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateKey
	}

	if req.ImageURL != nil {
		user.ImageURL = *req.ImageURL
	}
	if req.HeaderImageURL != nil {
		user.HeaderImageURL = *req.HeaderImageURL
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Location != nil {
		user.Location = req.Location
	}

	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, translateDBError(err)
	}
	return &user, nil
}

// DeleteUser removes the user and everything hanging off it: likes on the
// user's messages, the user's own likes, follow edges in both directions and
// the user's messages. One transaction, all or nothing.
func (s *UserService) DeleteUser(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return translateDBError(err)
		}

		if err := tx.Where("message_id IN (?)",
			tx.Model(&models.Message{}).Select("id").Where("user_id = ?", userID),
		).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR followee_id = ?", userID, userID).
			Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

// Follow inserts a follow edge. Following yourself is rejected, following
// someone twice surfaces as ErrDuplicateKey, following an unknown user as
// ErrNotFound.
func (s *UserService) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return &ValidationError{Field: "followee", Message: "cannot follow yourself"}
	}

	var followee models.User
	if err := s.db.WithContext(ctx).First(&followee, followeeID).Error; err != nil {
		return translateDBError(err)
	}

	edge := models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	return translateDBError(s.db.WithContext(ctx).Create(&edge).Error)
}

// Unfollow deletes a follow edge. Unfollowing someone you don't follow is
// not a failure.
func (s *UserService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	return s.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error
}

// IsFollowing reports whether userID follows otherID.
func (s *UserService) IsFollowing(ctx context.Context, userID, otherID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", userID, otherID).
		Count(&count).Error
	return count > 0, err
}

// IsFollowedBy reports whether otherID follows userID.
func (s *UserService) IsFollowedBy(ctx context.Context, userID, otherID uint) (bool, error) {
	return s.IsFollowing(ctx, otherID, userID)
}

// ListFollowing returns the users that userID follows.
func (s *UserService) ListFollowing(ctx context.Context, userID uint) ([]*models.User, error) {
	var users []*models.User
	err := s.db.WithContext(ctx).
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ?", userID).
		Find(&users).Error
	return users, err
}

// ListFollowers returns the users following userID.
func (s *UserService) ListFollowers(ctx context.Context, userID uint) ([]*models.User, error) {
	var users []*models.User
	err := s.db.WithContext(ctx).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followee_id = ?", userID).
		Find(&users).Error
	return users, err
}
