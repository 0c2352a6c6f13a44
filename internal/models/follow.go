package models

import (
	"time"
)

// Follow records a directed edge: FollowerID follows FolloweeID.
// The pair is unique; the edge carries no attributes of its own.
type Follow struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follower_followee" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follower_followee" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}
