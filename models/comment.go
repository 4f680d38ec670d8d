package models

import (
	"time"
)

type Comment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Text      string    `gorm:"type:text;not null"`
	Created   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time
	UserID    uint `gorm:"not null;index"`
	User      User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PostID    uint `gorm:"not null;index"`
	Post      Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}
