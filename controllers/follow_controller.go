package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yatube/api-go/events"
	"github.com/yatube/api-go/models"
	"github.com/yatube/api-go/utils"
	"github.com/yatube/api-go/validators"
	"gorm.io/gorm"
)

// FollowController lists and creates the caller's subscriptions. Both routes
// sit behind the auth middleware; edges can't be updated or deleted.
type FollowController struct {
	DB     *gorm.DB
	Events events.Publisher
}

type FollowRequest struct {
	Following string `json:"following" binding:"required"`
}

func NewFollowController(db *gorm.DB, publisher events.Publisher) *FollowController {
	return &FollowController{DB: db, Events: publisher}
}

// ListFollows godoc
// @Summary List the caller's subscriptions
// @Tags follow
// @Produce json
// @Param search query string false "Case-insensitive substring of the followed username"
// @Success 200 {array} FollowResponse
// @Router /follow [get]
func (fc *FollowController) ListFollows(c *gin.Context) {
	user := utils.GetUser(c)

	query := fc.DB.Preload("User").Preload("Following").
		Where("user_id = ?", user.UserID).
		Order("id")

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where("following_id IN (?)",
			fc.DB.Model(&models.User{}).Select("id").Where("LOWER(username) LIKE ? ESCAPE '\\'", pattern))
	}

	var follows []models.Follow
	if err := query.Find(&follows).Error; err != nil {
		respondError(c, "list follows", err)
		return
	}

	responses := make([]FollowResponse, 0, len(follows))
	for _, follow := range follows {
		responses = append(responses, NewFollowResponse(follow))
	}
	c.JSON(http.StatusOK, responses)
}

// CreateFollow godoc
// @Summary Subscribe to a user
// @Description Rejects self subscriptions and duplicates with 400
// @Tags follow
// @Accept json
// @Produce json
// @Param follow body FollowRequest true "Username to follow"
// @Success 201 {object} FollowResponse
// @Router /follow [post]
func (fc *FollowController) CreateFollow(c *gin.Context) {
	user := utils.GetUser(c)

	var req FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	target, err := validators.ValidateFollow(fc.DB, user, strings.TrimSpace(req.Following))
	if err != nil {
		respondError(c, "validate follow", err)
		return
	}

	follow := models.Follow{UserID: user.UserID, FollowingID: target.ID}
	if err := saveFollow(fc.DB, &follow); err != nil {
		respondError(c, "create follow", err)
		return
	}
	follow.User = models.User{ID: user.UserID, Username: user.Username}
	follow.Following = *target

	fc.Events.Publish(events.SubjectUserFollowed, events.Message{
		Type:     "user_followed",
		From:     user.Username,
		To:       target.Username,
		ObjectID: follow.ID,
	})

	c.JSON(http.StatusCreated, NewFollowResponse(follow))
}

// saveFollow inserts the edge. A unique index violation means a concurrent
// request created the same edge first and is reported like the pre-check.
func saveFollow(db *gorm.DB, follow *models.Follow) error {
	err := db.Omit("User", "Following").Create(follow).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return validators.DuplicateFollow()
	}
	return err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
