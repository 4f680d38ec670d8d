package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yatube/api-go/permissions"
	"github.com/yatube/api-go/validators"
)

const (
	detailNotFound        = "Not found."
	detailForbidden       = "You do not have permission to perform this action."
	detailNotProvided     = "Authentication credentials were not provided."
	detailInternal        = "Internal server error."
	detailFeatureDisabled = "This feature is not configured."
)

func respondNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"detail": detailNotFound})
}

func respondValidation(c *gin.Context, errs validators.FieldErrors) {
	c.JSON(http.StatusBadRequest, errs)
}

func respondBindError(c *gin.Context, err error) {
	respondValidation(c, validators.FromBinding(err))
}

// respondError answers rule violations with 400 and logs anything else as a 500.
func respondError(c *gin.Context, op string, err error) {
	var fieldErrors validators.FieldErrors
	if errors.As(err, &fieldErrors) {
		respondValidation(c, fieldErrors)
		return
	}

	log.Printf("%s: %v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": detailInternal})
}

// deny writes the response for a failed permission check. It returns true
// when the request was rejected.
func deny(c *gin.Context, decision permissions.Decision) bool {
	switch decision {
	case permissions.Allow:
		return false
	case permissions.Unauthenticated:
		c.JSON(http.StatusUnauthorized, gin.H{"detail": detailNotProvided})
	default:
		c.JSON(http.StatusForbidden, gin.H{"detail": detailForbidden})
	}
	return true
}

// pathID parses a numeric path parameter. Anything else is answered with 404,
// matching routes that only accept digits.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondNotFound(c)
		return 0, false
	}
	return uint(id), true
}
