package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/warblerhq/warbler/backend/internal/models"
)

// MessageService handles message posts and the likes relation.
type MessageService struct {
	db *gorm.DB
}

// Ensure MessageService implements IMessageService
var _ IMessageService = (*MessageService)(nil)

// NewMessageService creates a new MessageService instance.
func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// Create posts a new message authored by userID. Text must be non-empty and
// within the length bound.
func (s *MessageService) Create(ctx context.Context, userID uint, text string) (*models.Message, error) {
	if err := ValidateMessageText(text); err != nil {
		return nil, err
	}

	msg := models.Message{Text: text, UserID: userID}
	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, translateDBError(err)
	}
	return &msg, nil
}

// withLikeCount selects message rows with their like count computed inline,
// so single reads and list reads report the same counts.
const withLikeCount = "messages.*, " +
	"(SELECT COUNT(*) FROM likes WHERE likes.message_id = messages.id) AS like_count"

// Get retrieves a message by id with its author and like count.
func (s *MessageService) Get(ctx context.Context, id uint) (*models.Message, error) {
	var msg models.Message
	if err := s.db.WithContext(ctx).Preload("User").
		Select(withLikeCount).
		First(&msg, id).Error; err != nil {
		return nil, translateDBError(err)
	}
	return &msg, nil
}

// List returns all messages, newest first.
func (s *MessageService) List(ctx context.Context) ([]*models.Message, error) {
	var msgs []*models.Message
	err := s.db.WithContext(ctx).Preload("User").
		Select(withLikeCount).
		Order("created_at DESC, id DESC").
		Find(&msgs).Error
	return msgs, err
}

// ListByUser returns a user's messages, newest first.
func (s *MessageService) ListByUser(ctx context.Context, userID uint) ([]*models.Message, error) {
	var msgs []*models.Message
	err := s.db.WithContext(ctx).Preload("User").
		Select(withLikeCount).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&msgs).Error
	return msgs, err
}

// Delete removes a message and its likes in one transaction. Only the owner
// may delete; anyone else gets ErrUnauthorized and the message stays intact.
func (s *MessageService) Delete(ctx context.Context, id, requestingUserID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var msg models.Message
		if err := tx.First(&msg, id).Error; err != nil {
			return translateDBError(err)
		}
		if msg.UserID != requestingUserID {
			return ErrUnauthorized
		}
		if err := tx.Where("message_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&msg).Error
	})
}

// ToggleLike likes the message if the user has not liked it, unlikes it
// otherwise, and returns the resulting liked state. The uniqueness
// constraint on (user_id, message_id) makes concurrent toggles safe: a
// duplicate-key failure on insert means another call already liked it, so
// the losing call resolves by re-reading instead of failing.
func (s *MessageService) ToggleLike(ctx context.Context, userID, messageID uint) (bool, error) {
	var liked bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var msg models.Message
		if err := tx.First(&msg, messageID).Error; err != nil {
			return translateDBError(err)
		}

		res := tx.Where("user_id = ? AND message_id = ?", userID, messageID).
			Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}

		// A failed insert aborts the whole postgres transaction, so the
		// recovery delete below needs a savepoint to roll back to.
		if err := tx.SavePoint("toggle_like").Error; err != nil {
			return err
		}
		like := models.Like{UserID: userID, MessageID: messageID}
		if err := tx.Create(&like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost the race: the row exists now, so this toggle unlikes.
				if err := tx.RollbackTo("toggle_like").Error; err != nil {
					return err
				}
				liked = false
				return tx.Where("user_id = ? AND message_id = ?", userID, messageID).
					Delete(&models.Like{}).Error
			}
			return err
		}
		liked = true
		return nil
	})
	return liked, err
}

// ListLiked returns every message the user currently likes.
func (s *MessageService) ListLiked(ctx context.Context, userID uint) ([]*models.Message, error) {
	var msgs []*models.Message
	err := s.db.WithContext(ctx).Preload("User").
		Select(withLikeCount).
		Joins("JOIN likes ON likes.message_id = messages.id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Find(&msgs).Error
	return msgs, err
}

// LikeCount returns how many users like the message.
func (s *MessageService) LikeCount(ctx context.Context, messageID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Where("message_id = ?", messageID).
		Count(&count).Error
	return count, err
}
