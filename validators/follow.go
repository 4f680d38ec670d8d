package validators

import (
	"errors"
	"fmt"

	"github.com/yatube/api-go/models"
	"github.com/yatube/api-go/utils"
	"gorm.io/gorm"
)

const (
	ReasonSelfFollow        = "You cannot follow yourself."
	ReasonAlreadySubscribed = "You are already subscribed to this user."
)

// ValidateFollow resolves the followed user by username and checks that
// principal may subscribe to them. Rule violations come back as FieldErrors;
// any other error is a store failure.
//
// The duplicate check here only gives a friendlier answer: the unique index on
// follows decides under concurrent requests, see DuplicateFollow.
func ValidateFollow(db *gorm.DB, principal *utils.UserClaims, following string) (*models.User, error) {
	if following == "" {
		return nil, Field("following", "This field is required.")
	}

	var target models.User
	if err := db.Where("username = ?", following).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Field("following", fmt.Sprintf("Object with username=%s does not exist.", following))
		}
		return nil, err
	}

	if target.ID == principal.UserID {
		return nil, Field("following", ReasonSelfFollow)
	}

	var count int64
	if err := db.Model(&models.Follow{}).
		Where("user_id = ? AND following_id = ?", principal.UserID, target.ID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, DuplicateFollow()
	}

	return &target, nil
}

// DuplicateFollow is reported both by the pre-check and when the insert hits
// the unique index.
func DuplicateFollow() FieldErrors {
	return Field(NonFieldErrors, ReasonAlreadySubscribed)
}
