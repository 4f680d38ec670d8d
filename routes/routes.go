package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yatube/api-go/cache"
	"github.com/yatube/api-go/config"
	"github.com/yatube/api-go/controllers"
	"github.com/yatube/api-go/events"
	"github.com/yatube/api-go/metrics"
	"github.com/yatube/api-go/middleware"
	"github.com/yatube/api-go/validators"
	"gorm.io/gorm"
)

// Dependencies are the shared clients handed to every controller. Cache and
// Events may be left nil when the integration is not configured.
type Dependencies struct {
	DB     *gorm.DB
	Config *config.Config
	Cache  cache.Store
	Events events.Publisher
}

func SetupRoutes(r *gin.Engine, deps Dependencies) {
	validators.RegisterJSONTagNames()

	if deps.Events == nil {
		deps.Events = events.NopPublisher{}
	}
	secret := deps.Config.JWTSecret

	// Initialize controllers
	authController := controllers.NewAuthController(deps.DB, deps.Config)
	postController := controllers.NewPostController(deps.DB, deps.Events)
	commentController := controllers.NewCommentController(deps.DB, deps.Events)
	groupController := controllers.NewGroupController(deps.DB, deps.Cache)
	followController := controllers.NewFollowController(deps.DB, deps.Events)
	userController := controllers.NewUserController(deps.DB)
	uploadController := controllers.NewUploadController(deps.Config.Storage)
	validationController := controllers.NewValidationController(deps.DB)

	r.Use(metrics.Middleware())
	r.GET("/metrics", metrics.Handler())
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Reads are public; handlers decide per method whether a principal is needed
	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth(secret))

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(secret))

	SetupAuthRoutes(api, protected, authController)
	SetupPostRoutes(api, postController, commentController)
	SetupGroupRoutes(api, groupController)
	SetupFollowRoutes(protected, followController)
	SetupUserRoutes(protected, userController)
	SetupUploadRoutes(protected, uploadController)
	SetupValidationRoutes(api, validationController)
}
