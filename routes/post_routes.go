package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yatube/api-go/controllers"
)

// SetupPostRoutes registers posts and the comments nested under them. Both
// use :id for the post so the two trees share a wildcard name.
func SetupPostRoutes(api *gin.RouterGroup, postController *controllers.PostController, commentController *controllers.CommentController) {
	posts := api.Group("/posts")
	{
		posts.GET("", postController.ListPosts)
		posts.POST("", postController.CreatePost)
		posts.GET("/:id", postController.GetPost)
		posts.PUT("/:id", postController.UpdatePost)
		posts.PATCH("/:id", postController.UpdatePost)
		posts.DELETE("/:id", postController.DeletePost)
	}

	comments := posts.Group("/:id/comments")
	{
		comments.GET("", commentController.ListComments)
		comments.POST("", commentController.CreateComment)
		comments.GET("/:comment_id", commentController.GetComment)
		comments.PUT("/:comment_id", commentController.UpdateComment)
		comments.PATCH("/:comment_id", commentController.UpdateComment)
		comments.DELETE("/:comment_id", commentController.DeleteComment)
	}
}
