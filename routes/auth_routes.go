package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yatube/api-go/controllers"
)

func SetupAuthRoutes(public, protected *gin.RouterGroup, authController *controllers.AuthController) {
	auth := public.Group("/auth")
	{
		auth.POST("/users", authController.Register)
		auth.POST("/jwt/create", authController.CreateToken)
		auth.POST("/jwt/refresh", authController.RefreshToken)
		auth.POST("/jwt/verify", authController.VerifyToken)
		auth.POST("/google", authController.GoogleLogin)
	}

	protected.POST("/auth/logout", authController.Logout)
}
