package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yatube/api-go/utils"
)

const secret = "test-secret"

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.GET("/whoami", func(c *gin.Context) {
		user := utils.GetUser(c)
		if user == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, user.Username)
	})
	return r
}

func request(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	access, err := utils.GenerateToken(secret, utils.UserClaims{UserID: 7, Username: "alice"}, utils.AccessToken, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	refresh, _ := utils.GenerateToken(secret, utils.UserClaims{UserID: 7, Username: "alice"}, utils.RefreshToken, time.Hour)
	expired, _ := utils.GenerateToken(secret, utils.UserClaims{UserID: 7, Username: "alice"}, utils.AccessToken, -time.Minute)
	foreign, _ := utils.GenerateToken("other-secret", utils.UserClaims{UserID: 7, Username: "alice"}, utils.AccessToken, time.Hour)

	tests := []struct {
		name     string
		mw       gin.HandlerFunc
		header   string
		wantCode int
		wantBody string
	}{
		{"required valid", AuthMiddleware(secret), "Bearer " + access, http.StatusOK, "alice"},
		{"required expired", AuthMiddleware(secret), "Bearer " + expired, http.StatusUnauthorized, ""},
		{"required wrong secret", AuthMiddleware(secret), "Bearer " + foreign, http.StatusUnauthorized, ""},
		{"required missing", AuthMiddleware(secret), "", http.StatusUnauthorized, detailNoCredentials},
		{"required refresh token", AuthMiddleware(secret), "Bearer " + refresh, http.StatusUnauthorized, detailInvalidToken},
		{"required other scheme", AuthMiddleware(secret), "Basic YWxpY2U6cGFzcw==", http.StatusUnauthorized, detailNoCredentials},
		{"required bare bearer", AuthMiddleware(secret), "Bearer", http.StatusUnauthorized, detailInvalidToken},
		{"optional anonymous", OptionalAuth(secret), "", http.StatusOK, "anonymous"},
		{"optional valid", OptionalAuth(secret), "Bearer " + access, http.StatusOK, "alice"},
		{"optional lowercase scheme", OptionalAuth(secret), "bearer " + access, http.StatusOK, "alice"},
		{"optional invalid", OptionalAuth(secret), "Bearer garbage", http.StatusUnauthorized, detailInvalidToken},
		{"optional other scheme", OptionalAuth(secret), "Basic YWxpY2U6cGFzcw==", http.StatusOK, "anonymous"},
		{"optional token scheme", OptionalAuth(secret), "Token " + access, http.StatusOK, "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(newRouter(tt.mw), tt.header)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.wantCode, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Fatalf("body = %q, want it to contain %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}
