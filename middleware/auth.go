package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yatube/api-go/utils"
)

const (
	detailNoCredentials = "Authentication credentials were not provided."
	detailInvalidToken  = "Given token not valid for any token type"
)

// OptionalAuth attaches the principal when a Bearer token is sent and lets
// anonymous requests through. A Bearer token that is present but invalid is
// rejected rather than silently ignored. Other schemes count as anonymous.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerCredentials(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		claims, err := utils.ParseToken(secret, token, utils.AccessToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": detailInvalidToken})
			return
		}

		utils.SetUser(c, claims)
		c.Next()
	}
}

// AuthMiddleware requires a valid Bearer access token.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if utils.GetUser(c) != nil {
			c.Next()
			return
		}

		token, ok := bearerCredentials(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": detailNoCredentials})
			return
		}

		claims, err := utils.ParseToken(secret, token, utils.AccessToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": detailInvalidToken})
			return
		}

		utils.SetUser(c, claims)
		c.Next()
	}
}

// bearerCredentials reports whether header uses the Bearer scheme and returns
// its token. A malformed Bearer header yields an empty token, which never
// parses.
func bearerCredentials(header string) (string, bool) {
	fields := strings.Fields(header)
	if len(fields) == 0 || !strings.EqualFold(fields[0], "Bearer") {
		return "", false
	}
	if len(fields) != 2 {
		return "", true
	}
	return fields[1], true
}
