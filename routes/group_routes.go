package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yatube/api-go/controllers"
)

func SetupGroupRoutes(api *gin.RouterGroup, groupController *controllers.GroupController) {
	groups := api.Group("/groups")
	{
		groups.GET("", groupController.ListGroups)
		groups.GET("/:id", groupController.GetGroup)
	}
}
