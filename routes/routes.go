package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/postline/api-go/controllers"
	"github.com/postline/api-go/middleware"
	"github.com/postline/api-go/repositories"
	"gorm.io/gorm"
)

// SetupRoutes wires repositories, controllers and middleware onto the
// router. The page cache and media storage are constructed by the caller
// and injected here; nothing reaches them through globals.
func SetupRoutes(r *gin.Engine, db *gorm.DB, pageCache *middleware.PageCache, storage controllers.MediaStorage) {
	// Identity is resolved once per request; individual routes decide
	// whether a guest may pass.
	r.Use(middleware.CurrentUser())

	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	groupRepo := repositories.NewPostgresGroupRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)

	postsController := controllers.NewPostsController(postRepo, groupRepo, commentRepo, storage)
	groupController := controllers.NewGroupController(groupRepo, postRepo)
	profileController := controllers.NewProfileController(userRepo, postRepo, followRepo)
	followController := controllers.NewFollowController(followRepo, userRepo, postRepo)
	authController := controllers.NewAuthController(userRepo)
	uploadController := controllers.NewUploadController(storage)

	// Home page, served through the 20-second page cache.
	r.GET("/", pageCache.Middleware(), postsController.Index)

	SetupAuthRoutes(r, authController)
	SetupPostRoutes(r, postsController, groupController, profileController)
	SetupFollowRoutes(r, followController)
	SetupUploadRoutes(r, uploadController)

	// Anything off the map is a plain 404.
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
	})
}
