package models

import (
	"time"
)

const (
	// DefaultImageURL is used when a new user does not supply a profile image.
	DefaultImageURL = "/static/images/default-pic.png"
	// DefaultHeaderImageURL is used when a new user does not supply a header image.
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

// User represents a registered account. PasswordHash holds the bcrypt
// credential and is never serialized.
type User struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Username       string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"not null" json:"-"`
	ImageURL       string    `gorm:"size:255;not null;default:'/static/images/default-pic.png'" json:"image_url"`
	HeaderImageURL string    `gorm:"size:255;not null;default:'/static/images/warbler-hero.jpg'" json:"header_image_url"`
	Bio            *string   `gorm:"type:text" json:"bio"`
	Location       *string   `gorm:"size:100" json:"location"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Messages []Message `gorm:"foreignKey:UserID" json:"messages,omitempty"`
}
