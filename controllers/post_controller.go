package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yatube/api-go/events"
	"github.com/yatube/api-go/models"
	"github.com/yatube/api-go/permissions"
	"github.com/yatube/api-go/utils"
	"github.com/yatube/api-go/validators"
	"gorm.io/gorm"
)

type PostController struct {
	DB     *gorm.DB
	Events events.Publisher
}

// PostRequest is accepted by create, PUT and PATCH. Author and pub_date are
// never read from the body.
type PostRequest struct {
	Text  NullableString `json:"text"`
	Group NullableID     `json:"group"`
	Image NullableString `json:"image"`
}

func NewPostController(db *gorm.DB, publisher events.Publisher) *PostController {
	return &PostController{DB: db, Events: publisher}
}

// ListPosts godoc
// @Summary List posts
// @Description Returns all posts; paginated with limit/offset when either is given
// @Tags posts
// @Produce json
// @Param limit query integer false "Page size"
// @Param offset query integer false "Items to skip"
// @Success 200 {array} PostResponse
// @Router /posts [get]
func (pc *PostController) ListPosts(c *gin.Context) {
	page := utils.ParseLimitOffset(c)
	query := pc.DB.Model(&models.Post{}).Preload("User").Order("posts.id")

	if !page.Active {
		var posts []models.Post
		if err := query.Find(&posts).Error; err != nil {
			respondError(c, "list posts", err)
			return
		}
		c.JSON(http.StatusOK, postResponses(posts))
		return
	}

	var total int64
	if err := pc.DB.Model(&models.Post{}).Count(&total).Error; err != nil {
		respondError(c, "count posts", err)
		return
	}

	var posts []models.Post
	if err := query.Offset(page.Offset).Limit(page.Limit).Find(&posts).Error; err != nil {
		respondError(c, "list posts", err)
		return
	}

	next, previous := utils.PageURLs(c, page, total)
	c.JSON(http.StatusOK, PaginatedResponse{
		Count:    total,
		Next:     next,
		Previous: previous,
		Results:  postResponses(posts),
	})
}

func (pc *PostController) GetPost(c *gin.Context) {
	post, ok := pc.loadPost(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, NewPostResponse(*post))
}

// CreatePost godoc
// @Summary Create a new post
// @Description Creates a post authored by the caller
// @Tags posts
// @Accept json
// @Produce json
// @Param post body PostRequest true "Post creation request"
// @Success 201 {object} PostResponse
// @Router /posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	user := utils.GetUser(c)
	if deny(c, permissions.HasPermission(c.Request.Method, user)) {
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if errs, err := pc.validate(req, false); err != nil {
		respondError(c, "validate post", err)
		return
	} else if errs != nil {
		respondValidation(c, errs)
		return
	}

	post := models.Post{
		Text:    strings.TrimSpace(*req.Text.Value),
		UserID:  user.UserID,
		GroupID: req.Group.Value,
		Image:   req.Image.Value,
	}
	if err := pc.DB.Create(&post).Error; err != nil {
		respondError(c, "create post", err)
		return
	}
	post.User = models.User{ID: user.UserID, Username: user.Username}

	pc.Events.Publish(events.SubjectPostCreated, events.Message{
		Type:     "post_created",
		From:     user.Username,
		ObjectID: post.ID,
	})

	c.JSON(http.StatusCreated, NewPostResponse(post))
}

// UpdatePost godoc
// @Summary Update an existing post
// @Description PUT replaces text, group and image; PATCH changes only the given fields
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param post body PostRequest true "Post update request"
// @Success 200 {object} PostResponse
// @Router /posts/{id} [put]
func (pc *PostController) UpdatePost(c *gin.Context) {
	user := utils.GetUser(c)
	if deny(c, permissions.HasPermission(c.Request.Method, user)) {
		return
	}

	post, ok := pc.loadPost(c)
	if !ok {
		return
	}
	if deny(c, permissions.HasObjectPermission(c.Request.Method, user, post.UserID)) {
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	partial := c.Request.Method == http.MethodPatch
	if errs, err := pc.validate(req, partial); err != nil {
		respondError(c, "validate post", err)
		return
	} else if errs != nil {
		respondValidation(c, errs)
		return
	}

	updates := map[string]interface{}{}
	if req.Text.Value != nil {
		updates["text"] = strings.TrimSpace(*req.Text.Value)
	}
	if req.Group.Set || !partial {
		updates["group_id"] = req.Group.Value
	}
	if req.Image.Set || !partial {
		updates["image"] = req.Image.Value
	}

	if len(updates) > 0 {
		if err := pc.DB.Model(post).Updates(updates).Error; err != nil {
			respondError(c, "update post", err)
			return
		}
	}
	var updated models.Post
	if err := pc.DB.Preload("User").First(&updated, post.ID).Error; err != nil {
		respondError(c, "reload post", err)
		return
	}

	c.JSON(http.StatusOK, NewPostResponse(updated))
}

// DeletePost godoc
// @Summary Delete a post
// @Description Deletes a post together with its comments
// @Tags posts
// @Param id path string true "Post ID"
// @Success 204
// @Router /posts/{id} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	user := utils.GetUser(c)
	if deny(c, permissions.HasPermission(c.Request.Method, user)) {
		return
	}

	post, ok := pc.loadPost(c)
	if !ok {
		return
	}
	if deny(c, permissions.HasObjectPermission(c.Request.Method, user, post.UserID)) {
		return
	}

	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(post).Error
	})
	if err != nil {
		respondError(c, "delete post", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// loadPost fetches the post named by :id and answers 404 when it is missing.
func (pc *PostController) loadPost(c *gin.Context) (*models.Post, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return nil, false
	}

	var post models.Post
	if err := pc.DB.Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c)
		} else {
			respondError(c, "load post", err)
		}
		return nil, false
	}
	return &post, true
}

// validate reports field problems in req. A non-nil error means the group
// lookup itself failed.
func (pc *PostController) validate(req PostRequest, partial bool) (validators.FieldErrors, error) {
	errs := validators.FieldErrors{}
	validateText(errs, req.Text, partial)

	if req.Image.Value != nil {
		if u, err := url.ParseRequestURI(*req.Image.Value); err != nil || u.Host == "" {
			errs.Add("image", "Enter a valid URL.")
		}
	}

	if req.Group.Value != nil {
		var count int64
		if err := pc.DB.Model(&models.Group{}).Where("id = ?", *req.Group.Value).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("look up group %d: %w", *req.Group.Value, err)
		}
		if count == 0 {
			errs.Add("group", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", *req.Group.Value))
		}
	}

	if len(errs) == 0 {
		return nil, nil
	}
	return errs, nil
}

// validateText applies the rules shared by post and comment text. Only PATCH
// may leave the field out, and nobody may send it as null.
func validateText(errs validators.FieldErrors, text NullableString, partial bool) {
	switch {
	case !text.Set && !partial:
		errs.Add("text", "This field is required.")
	case text.Set && text.Value == nil:
		errs.Add("text", "This field may not be null.")
	case text.Value != nil && strings.TrimSpace(*text.Value) == "":
		errs.Add("text", "This field may not be blank.")
	}
}

func postResponses(posts []models.Post) []PostResponse {
	responses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, NewPostResponse(post))
	}
	return responses
}
