package controllers

import (
	"encoding/json"
	"time"

	"github.com/yatube/api-go/models"
)

// PaginatedResponse is the limit/offset list envelope.
type PaginatedResponse struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

type PostResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
	Author  string    `json:"author"`
	Image   *string   `json:"image"`
	Group   *uint     `json:"group"`
}

func NewPostResponse(post models.Post) PostResponse {
	return PostResponse{
		ID:      post.ID,
		Text:    post.Text,
		PubDate: post.PubDate,
		Author:  post.User.Username,
		Image:   post.Image,
		Group:   post.GroupID,
	}
}

type CommentResponse struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author"`
	Post    uint      `json:"post"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

func NewCommentResponse(comment models.Comment) CommentResponse {
	return CommentResponse{
		ID:      comment.ID,
		Author:  comment.User.Username,
		Post:    comment.PostID,
		Text:    comment.Text,
		Created: comment.Created,
	}
}

type FollowResponse struct {
	User      string `json:"user"`
	Following string `json:"following"`
}

func NewFollowResponse(follow models.Follow) FollowResponse {
	return FollowResponse{
		User:      follow.User.Username,
		Following: follow.Following.Username,
	}
}

type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// NullableID distinguishes an absent field from an explicit null in
// partial updates.
type NullableID struct {
	Set   bool
	Value *uint
}

func (n *NullableID) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}

	var v uint
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}

	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}
