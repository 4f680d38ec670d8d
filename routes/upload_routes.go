package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yatube/api-go/controllers"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	upload := protected.Group("/uploads/images")
	{
		upload.POST("", uploadController.GetImageUploadURL)
		upload.POST("/confirm", uploadController.ConfirmImageUpload)
		upload.DELETE("/*key", uploadController.DeleteImage)
	}
}
