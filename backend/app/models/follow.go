package models

import "time"

// Follow is one entry of a user's follow list. Insertion order (ID) is the
// order of the list.
type Follow struct {
	ID         uint   `gorm:"primaryKey"`
	FollowerID string `gorm:"size:36;not null;uniqueIndex:idx_follower_followee"`
	FolloweeID string `gorm:"size:36;not null;uniqueIndex:idx_follower_followee;index"`
	CreatedAt  time.Time
}
