package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yatube/api-go/events"
	"github.com/yatube/api-go/models"
	"github.com/yatube/api-go/permissions"
	"github.com/yatube/api-go/utils"
	"github.com/yatube/api-go/validators"
	"gorm.io/gorm"
)

// CommentController serves comments nested under /posts/:id/comments.
// Every handler resolves the parent post first.
type CommentController struct {
	DB     *gorm.DB
	Events events.Publisher
}

type CommentRequest struct {
	Text NullableString `json:"text"`
}

func NewCommentController(db *gorm.DB, publisher events.Publisher) *CommentController {
	return &CommentController{DB: db, Events: publisher}
}

func (cc *CommentController) ListComments(c *gin.Context) {
	post, ok := cc.loadPost(c)
	if !ok {
		return
	}

	var comments []models.Comment
	if err := cc.DB.Preload("User").Where("post_id = ?", post.ID).Order("id").Find(&comments).Error; err != nil {
		respondError(c, "list comments", err)
		return
	}

	responses := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, NewCommentResponse(comment))
	}
	c.JSON(http.StatusOK, responses)
}

func (cc *CommentController) GetComment(c *gin.Context) {
	post, ok := cc.loadPost(c)
	if !ok {
		return
	}
	comment, ok := cc.loadComment(c, post)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, NewCommentResponse(*comment))
}

// CreateComment attaches a comment to the post in the path. The author and
// the post come from the request context only.
func (cc *CommentController) CreateComment(c *gin.Context) {
	user := utils.GetUser(c)
	if deny(c, permissions.HasPermission(c.Request.Method, user)) {
		return
	}

	post, ok := cc.loadPost(c)
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if errs := validateCommentText(req, false); errs != nil {
		respondValidation(c, errs)
		return
	}

	comment := models.Comment{
		Text:   strings.TrimSpace(*req.Text.Value),
		UserID: user.UserID,
		PostID: post.ID,
	}
	if err := cc.DB.Omit("User", "Post").Create(&comment).Error; err != nil {
		respondError(c, "create comment", err)
		return
	}
	comment.User = models.User{ID: user.UserID, Username: user.Username}

	cc.Events.Publish(events.SubjectCommentCreated, events.Message{
		Type:     "comment_created",
		From:     user.Username,
		To:       post.User.Username,
		ObjectID: comment.ID,
	})

	c.JSON(http.StatusCreated, NewCommentResponse(comment))
}

func (cc *CommentController) UpdateComment(c *gin.Context) {
	user := utils.GetUser(c)
	if deny(c, permissions.HasPermission(c.Request.Method, user)) {
		return
	}

	post, ok := cc.loadPost(c)
	if !ok {
		return
	}
	comment, ok := cc.loadComment(c, post)
	if !ok {
		return
	}
	if deny(c, permissions.HasObjectPermission(c.Request.Method, user, comment.UserID)) {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if errs := validateCommentText(req, c.Request.Method == http.MethodPatch); errs != nil {
		respondValidation(c, errs)
		return
	}

	if req.Text.Value != nil {
		comment.Text = strings.TrimSpace(*req.Text.Value)
		if err := cc.DB.Model(comment).Update("text", comment.Text).Error; err != nil {
			respondError(c, "update comment", err)
			return
		}
	}

	c.JSON(http.StatusOK, NewCommentResponse(*comment))
}

func (cc *CommentController) DeleteComment(c *gin.Context) {
	user := utils.GetUser(c)
	if deny(c, permissions.HasPermission(c.Request.Method, user)) {
		return
	}

	post, ok := cc.loadPost(c)
	if !ok {
		return
	}
	comment, ok := cc.loadComment(c, post)
	if !ok {
		return
	}
	if deny(c, permissions.HasObjectPermission(c.Request.Method, user, comment.UserID)) {
		return
	}

	if err := cc.DB.Delete(comment).Error; err != nil {
		respondError(c, "delete comment", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (cc *CommentController) loadPost(c *gin.Context) (*models.Post, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return nil, false
	}

	var post models.Post
	if err := cc.DB.Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c)
		} else {
			respondError(c, "load post", err)
		}
		return nil, false
	}
	return &post, true
}

// loadComment only finds comments that belong to post.
func (cc *CommentController) loadComment(c *gin.Context, post *models.Post) (*models.Comment, bool) {
	id, ok := pathID(c, "comment_id")
	if !ok {
		return nil, false
	}

	var comment models.Comment
	err := cc.DB.Preload("User").Where("post_id = ?", post.ID).First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c)
		} else {
			respondError(c, "load comment", err)
		}
		return nil, false
	}
	return &comment, true
}

func validateCommentText(req CommentRequest, partial bool) validators.FieldErrors {
	errs := validators.FieldErrors{}
	validateText(errs, req.Text, partial)
	if len(errs) == 0 {
		return nil
	}
	return errs
}
