package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yatube/api-go/models"
	"github.com/yatube/api-go/utils"
	"gorm.io/gorm"
)

type UserController struct {
	DB *gorm.DB
}

type ProfileResponse struct {
	ID             uint      `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Provider       string    `json:"provider"`
	DateJoined     time.Time `json:"date_joined"`
	PostsCount     int64     `json:"posts_count"`
	FollowingCount int64     `json:"following_count"`
	FollowersCount int64     `json:"followers_count"`
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GetCurrentUser returns the profile of the authenticated caller.
func (uc *UserController) GetCurrentUser(c *gin.Context) {
	principal := utils.GetUser(c)

	var user models.User
	if err := uc.DB.First(&user, principal.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c)
			return
		}
		respondError(c, "load user", err)
		return
	}

	profile := ProfileResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Provider:   user.Provider,
		DateJoined: user.CreatedAt,
	}

	counts := []struct {
		model interface{}
		where string
		dest  *int64
	}{
		{&models.Post{}, "user_id = ?", &profile.PostsCount},
		{&models.Follow{}, "user_id = ?", &profile.FollowingCount},
		{&models.Follow{}, "following_id = ?", &profile.FollowersCount},
	}
	for _, count := range counts {
		if err := uc.DB.Model(count.model).Where(count.where, user.ID).Count(count.dest).Error; err != nil {
			respondError(c, "count profile stats", err)
			return
		}
	}

	c.JSON(http.StatusOK, profile)
}
