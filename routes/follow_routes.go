package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yatube/api-go/controllers"
)

func SetupFollowRoutes(protected *gin.RouterGroup, followController *controllers.FollowController) {
	follow := protected.Group("/follow")
	{
		follow.GET("", followController.ListFollows)
		follow.POST("", followController.CreateFollow)
	}
}
