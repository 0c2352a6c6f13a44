package models

import (
	"time"
)

// MaxMessageLength bounds message text, counted in runes.
const MaxMessageLength = 140

// Message is a short text post owned by exactly one user.
type Message struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Text      string    `gorm:"size:140;not null" json:"text"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	// LikeCount is computed at query time, never persisted. Read-only so
	// writes ignore it; excluded from migration so no column is created.
	LikeCount int64 `gorm:"->;-:migration" json:"like_count"`
}
