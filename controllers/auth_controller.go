package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yatube/api-go/config"
	"github.com/yatube/api-go/models"
	"github.com/yatube/api-go/utils"
	"github.com/yatube/api-go/validators"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const reasonUsernameTaken = "A user with that username already exists."

type AuthController struct {
	DB              *gorm.DB
	GoogleConfig    *config.GoogleConfig
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type RegisterRequest struct {
	Username  string `json:"username" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,min=8"`
	Email     string `json:"email" binding:"omitempty,email"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type VerifyRequest struct {
	Token string `json:"token" binding:"required"`
}

type GoogleLoginRequest struct {
	AccessToken string `json:"access_token"`
	Code        string `json:"code"`
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{
		DB:              db,
		GoogleConfig:    cfg.Google,
		JWTSecret:       cfg.JWTSecret,
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	username := strings.TrimSpace(input.Username)
	if errs := validators.ValidateUsername(username); errs != nil {
		respondValidation(c, errs)
		return
	}

	var taken int64
	if err := ac.DB.Model(&models.User{}).Where("username = ?", username).Count(&taken).Error; err != nil {
		respondError(c, "check username", err)
		return
	}
	if taken > 0 {
		respondValidation(c, validators.Field("username", reasonUsernameTaken))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, "hash password", err)
		return
	}
	hashedPasswordStr := string(hashedPassword)

	user := models.User{
		Username:  username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Password:  &hashedPasswordStr,
		Provider:  "email",
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondValidation(c, validators.Field("username", reasonUsernameTaken))
			return
		}
		respondError(c, "register user", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	})
}

// CreateToken exchanges username and password for an access/refresh pair.
func (ac *AuthController) CreateToken(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	var user models.User
	if err := ac.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, "load user", err)
			return
		}
		ac.invalidCredentials(c)
		return
	}

	if user.Password == nil {
		ac.invalidCredentials(c)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(input.Password)); err != nil {
		ac.invalidCredentials(c)
		return
	}

	tokens, err := ac.issueTokens(user)
	if err != nil {
		respondError(c, "issue tokens", err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// RefreshToken rotates a stored refresh token. The presented token stops
// working once a new pair is issued.
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var input RefreshRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	claims, err := utils.ParseToken(ac.JWTSecret, input.Refresh, utils.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired"})
		return
	}

	var refreshToken models.RefreshToken
	if err := ac.DB.Where("token = ? AND user_id = ?", input.Refresh, claims.UserID).First(&refreshToken).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, "load refresh token", err)
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired"})
		return
	}

	if refreshToken.Expired(time.Now()) {
		if err := ac.DB.Delete(&refreshToken).Error; err != nil {
			log.Printf("delete expired refresh token %d: %v", refreshToken.ID, err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired"})
		return
	}

	var user models.User
	if err := ac.DB.First(&user, refreshToken.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "User not found"})
		return
	}

	principal := utils.UserClaims{UserID: user.ID, Username: user.Username}
	accessToken, err := utils.GenerateToken(ac.JWTSecret, principal, utils.AccessToken, ac.AccessTokenTTL)
	if err != nil {
		respondError(c, "generate access token", err)
		return
	}
	newRefreshToken, err := ac.newRefreshToken(principal)
	if err != nil {
		respondError(c, "generate refresh token", err)
		return
	}

	refreshToken.Token = newRefreshToken
	refreshToken.ExpirationDate = time.Now().Add(ac.RefreshTokenTTL)
	if err := ac.DB.Save(&refreshToken).Error; err != nil {
		respondError(c, "rotate refresh token", err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Access: accessToken, Refresh: newRefreshToken})
}

// VerifyToken answers 200 with an empty object for a valid access token.
func (ac *AuthController) VerifyToken(c *gin.Context) {
	var input VerifyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	if _, err := utils.ParseToken(ac.JWTSecret, input.Token, utils.AccessToken); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// Logout revokes the given refresh token of the caller. Unknown tokens are
// not an error.
func (ac *AuthController) Logout(c *gin.Context) {
	user := utils.GetUser(c)

	var input RefreshRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	result := ac.DB.Where("token = ? AND user_id = ?", input.Refresh, user.UserID).Delete(&models.RefreshToken{})
	if result.Error != nil {
		respondError(c, "logout", result.Error)
		return
	}

	c.Status(http.StatusNoContent)
}

func (ac *AuthController) GoogleLogin(c *gin.Context) {
	if ac.GoogleConfig == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": detailFeatureDisabled})
		return
	}

	var input GoogleLoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	accessToken := input.AccessToken
	if input.Code != "" {
		token, err := ac.GoogleConfig.ExchangeCode(ctx, input.Code)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Failed to exchange code for token"})
			return
		}
		accessToken = token.AccessToken
	}
	if accessToken == "" {
		respondValidation(c, validators.Field(validators.NonFieldErrors, "Either code or access_token is required."))
		return
	}

	userInfo, err := ac.GoogleConfig.GetUserInfo(ctx, accessToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid Google token"})
		return
	}

	user, err := ac.findOrCreateGoogleUser(userInfo)
	if err != nil {
		respondError(c, "google user", err)
		return
	}

	tokens, err := ac.issueTokens(*user)
	if err != nil {
		respondError(c, "issue tokens", err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

func (ac *AuthController) findOrCreateGoogleUser(info *config.GoogleUserInfo) (*models.User, error) {
	var user models.User
	err := ac.DB.Where("google_id = ?", info.ID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Derive a free username from the mailbox name.
	base := strings.SplitN(info.Email, "@", 2)[0]
	if validators.ValidateUsername(base) != nil {
		base = "user"
	}
	username := base
	for counter := 1; ; counter++ {
		var count int64
		if err := ac.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			break
		}
		username = base + strconv.Itoa(counter)
	}

	googleID := info.ID
	user = models.User{
		Username:  username,
		Email:     info.Email,
		FirstName: info.GivenName,
		LastName:  info.FamilyName,
		Provider:  "google",
		GoogleID:  &googleID,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (ac *AuthController) issueTokens(user models.User) (TokenResponse, error) {
	principal := utils.UserClaims{UserID: user.ID, Username: user.Username}

	accessToken, err := utils.GenerateToken(ac.JWTSecret, principal, utils.AccessToken, ac.AccessTokenTTL)
	if err != nil {
		return TokenResponse{}, err
	}

	refreshToken, err := ac.newRefreshToken(principal)
	if err != nil {
		return TokenResponse{}, err
	}

	err = ac.DB.Create(&models.RefreshToken{
		UserID:         user.ID,
		Token:          refreshToken,
		ExpirationDate: time.Now().Add(ac.RefreshTokenTTL),
	}).Error
	if err != nil {
		return TokenResponse{}, err
	}

	return TokenResponse{Access: accessToken, Refresh: refreshToken}, nil
}

func (ac *AuthController) newRefreshToken(principal utils.UserClaims) (string, error) {
	return utils.GenerateToken(ac.JWTSecret, principal, utils.RefreshToken, ac.RefreshTokenTTL)
}

func (ac *AuthController) invalidCredentials(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"detail": "No active account found with the given credentials"})
}
