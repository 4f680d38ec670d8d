package controllers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/yatube/api-go/config"
)

func TestImageKey(t *testing.T) {
	key := imageKey(12, "Holiday.JPG", time.Unix(1700000000, 0))

	if !strings.HasPrefix(key, "uploads/posts/12/1700000000_") || !strings.HasSuffix(key, ".jpg") {
		t.Fatalf("unexpected key %q", key)
	}
	if !ownsImageKey(key, 12) {
		t.Fatal("owner does not own its key")
	}
}

func TestOwnsImageKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"uploads/posts/7/1_abc.png", true},
		{"uploads/posts/8/1_abc.png", false},
		{"uploads/posts/7/", false},
		{"uploads/posts/7/../8/1_abc.png", false},
		{"uploads/avatars/7/1_abc.png", false},
		{"uploads/posts/77/1_abc.png", false},
	}

	for _, tt := range tests {
		if got := ownsImageKey(tt.key, 7); got != tt.want {
			t.Errorf("ownsImageKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestValidateImageUpload(t *testing.T) {
	if errs := validateImageUpload(ImageUploadRequest{FileName: "a.png", ContentType: "image/PNG", FileSize: 1024}); errs != nil {
		t.Fatalf("valid upload rejected: %v", errs)
	}

	errs := validateImageUpload(ImageUploadRequest{FileName: "a.mp4", ContentType: "video/mp4", FileSize: maxImageSize + 1})
	if len(errs["content_type"]) == 0 || len(errs["file_size"]) == 0 {
		t.Fatalf("got %v", errs)
	}
}

func TestPresignPut(t *testing.T) {
	uc := NewUploadController(&config.StorageConfig{
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		BucketName:      "images",
		PublicURL:       "https://cdn.example.com/",
		Region:          "us-east-1",
	})
	if uc.Client == nil {
		t.Fatal("storage should be enabled")
	}

	key := "uploads/posts/1/1_abc.png"
	url, err := uc.presignPut(context.Background(), key, "image/png")
	if err != nil {
		t.Fatalf("presign: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:9000/images/"+key) || !strings.Contains(url, "X-Amz-Signature") {
		t.Fatalf("unexpected url %q", url)
	}
	if got := uc.fileURL(key); got != "https://cdn.example.com/"+key {
		t.Fatalf("fileURL = %q", got)
	}
}

func TestUploadDisabledWithoutBucket(t *testing.T) {
	if uc := NewUploadController(&config.StorageConfig{}); uc.Client != nil {
		t.Fatal("storage enabled without a bucket")
	}
}
