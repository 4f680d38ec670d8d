package models

import (
	"time"
)

// Follow is a directed subscription edge: User follows Following.
// The unique index is the source of truth for "no duplicate subscriptions";
// the check constraint forbids self-follows at the store level.
type Follow struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_follows_user_following,priority:1;check:chk_follows_not_self,user_id <> following_id"`
	FollowingID uint      `gorm:"not null;index;uniqueIndex:idx_follows_user_following,priority:2"`

	User      User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Following User `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
}
