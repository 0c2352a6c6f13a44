package models

import (
	"time"
)

// Like records that a user likes a message. The (user, message) pair is
// unique, which is what makes concurrent like toggles safe.
type Like struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_message" json:"user_id"`
	MessageID uint      `gorm:"not null;uniqueIndex:idx_user_message" json:"message_id"`
	CreatedAt time.Time `json:"created_at"`
}
