package models

import (
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Text      string    `gorm:"type:text;not null"`
	PubDate   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time
	UserID    uint   `gorm:"not null;index"`
	User      User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	GroupID   *uint  `gorm:"index"`
	Group     *Group `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	Image     *string
	Comments  []Comment `gorm:"foreignKey:PostID"`
}
