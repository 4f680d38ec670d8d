package controllers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yatube/api-go/config"
	"github.com/yatube/api-go/utils"
	"github.com/yatube/api-go/validators"
)

const (
	maxImageSize   = 10 * 1024 * 1024
	presignExpires = time.Hour
	imageKeyPrefix = "uploads/posts/"
)

var imageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// UploadController hands out presigned PUT URLs for post images. The client
// uploads straight to the bucket and stores the returned file URL in the
// post's image field.
type UploadController struct {
	Client  *s3.Client
	Storage *config.StorageConfig
}

type ImageUploadRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	FileSize    int64  `json:"file_size" binding:"required,gt=0"`
}

type ImageConfirmRequest struct {
	Key string `json:"key" binding:"required"`
}

type PresignedURLResponse struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expires_in"`
}

// NewUploadController returns a controller that answers 404 on every route
// when storage is not configured.
func NewUploadController(storage *config.StorageConfig) *UploadController {
	if !storage.Enabled() {
		return &UploadController{}
	}

	options := s3.Options{
		Credentials: credentials.NewStaticCredentialsProvider(
			storage.AccessKeyID,
			storage.SecretAccessKey,
			"",
		),
		Region: storage.Region,
	}
	if storage.Endpoint != "" {
		options.BaseEndpoint = aws.String(storage.Endpoint)
		options.UsePathStyle = true
	}

	return &UploadController{
		Client:  s3.New(options),
		Storage: storage,
	}
}

func (uc *UploadController) enabled(c *gin.Context) bool {
	if uc.Client == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": detailFeatureDisabled})
		return false
	}
	return true
}

func (uc *UploadController) GetImageUploadURL(c *gin.Context) {
	if !uc.enabled(c) {
		return
	}
	user := utils.GetUser(c)

	var req ImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if errs := validateImageUpload(req); errs != nil {
		respondValidation(c, errs)
		return
	}

	key := imageKey(user.UserID, req.FileName, time.Now())
	uploadURL, err := uc.presignPut(c.Request.Context(), key, req.ContentType)
	if err != nil {
		respondError(c, "presign upload", err)
		return
	}

	c.JSON(http.StatusOK, PresignedURLResponse{
		UploadURL: uploadURL,
		FileURL:   uc.fileURL(key),
		Key:       key,
		ExpiresIn: int(presignExpires.Seconds()),
	})
}

// ConfirmImageUpload checks that the object reached the bucket.
func (uc *UploadController) ConfirmImageUpload(c *gin.Context) {
	if !uc.enabled(c) {
		return
	}
	user := utils.GetUser(c)

	var req ImageConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if !ownsImageKey(req.Key, user.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"detail": detailForbidden})
		return
	}

	_, err := uc.Client.HeadObject(c.Request.Context(), &s3.HeadObjectInput{
		Bucket: aws.String(uc.Storage.BucketName),
		Key:    aws.String(req.Key),
	})
	if err != nil {
		respondNotFound(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"key":      req.Key,
		"file_url": uc.fileURL(req.Key),
	})
}

func (uc *UploadController) DeleteImage(c *gin.Context) {
	if !uc.enabled(c) {
		return
	}
	user := utils.GetUser(c)

	key := strings.TrimPrefix(c.Param("key"), "/")
	if !ownsImageKey(key, user.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"detail": detailForbidden})
		return
	}

	_, err := uc.Client.DeleteObject(c.Request.Context(), &s3.DeleteObjectInput{
		Bucket: aws.String(uc.Storage.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		respondError(c, "delete image", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (uc *UploadController) presignPut(ctx context.Context, key, contentType string) (string, error) {
	presigner := s3.NewPresignClient(uc.Client)
	req, err := presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(uc.Storage.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = presignExpires
	})
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (uc *UploadController) fileURL(key string) string {
	return strings.TrimRight(uc.Storage.PublicURL, "/") + "/" + key
}

func validateImageUpload(req ImageUploadRequest) validators.FieldErrors {
	errs := validators.FieldErrors{}
	if !imageContentTypes[strings.ToLower(req.ContentType)] {
		errs.Add("content_type", "Unsupported image type.")
	}
	if req.FileSize > maxImageSize {
		errs.Add("file_size", fmt.Sprintf("Ensure this value is less than or equal to %d.", maxImageSize))
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// imageKey has the form uploads/posts/{userID}/{unix}_{uuid}{ext}.
func imageKey(userID uint, fileName string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("%s%d/%d_%s%s", imageKeyPrefix, userID, now.Unix(), uuid.New().String(), ext)
}

func ownsImageKey(key string, userID uint) bool {
	if !strings.HasPrefix(key, imageKeyPrefix) || strings.Contains(key, "..") {
		return false
	}
	parts := strings.Split(strings.TrimPrefix(key, imageKeyPrefix), "/")
	if len(parts) != 2 || parts[1] == "" {
		return false
	}
	return parts[0] == strconv.FormatUint(uint64(userID), 10)
}
