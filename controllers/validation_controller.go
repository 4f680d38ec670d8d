package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yatube/api-go/models"
	"github.com/yatube/api-go/validators"
	"gorm.io/gorm"
)

type ValidationController struct {
	DB *gorm.DB
}

func NewValidationController(db *gorm.DB) *ValidationController {
	return &ValidationController{DB: db}
}

// ValidateUsername reports whether a username is taken. A name that could
// never be registered answers 400 with the reasons.
func (vc *ValidationController) ValidateUsername(c *gin.Context) {
	username := c.Param("username")
	if errs := validators.ValidateUsername(username); errs != nil {
		respondValidation(c, errs)
		return
	}

	var count int64
	if err := vc.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		respondError(c, "check username", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"exists": count > 0})
}
