package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Username  string    `gorm:"unique;not null;size:150" json:"username"`
	Email     string    `gorm:"size:254" json:"email"`
	FirstName string    `gorm:"size:150" json:"first_name"`
	LastName  string    `gorm:"size:150" json:"last_name"`
	Password  *string   `json:"-"` // nil for accounts created through Google sign in
	Provider  string    `gorm:"not null;default:'email'" json:"provider"`
	GoogleID  *string   `gorm:"unique" json:"-"`
	Posts     []Post    `gorm:"foreignKey:UserID" json:"-"`
	Comments  []Comment `gorm:"foreignKey:UserID" json:"-"`
	Following []Follow  `gorm:"foreignKey:UserID" json:"-"`
	Followers []Follow  `gorm:"foreignKey:FollowingID" json:"-"`
}
