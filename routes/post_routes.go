package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/postline/api-go/controllers"
	"github.com/postline/api-go/middleware"
)

func SetupPostRoutes(r *gin.Engine, postsController *controllers.PostsController,
	groupController *controllers.GroupController, profileController *controllers.ProfileController) {
	// Public pages
	r.GET("/group/", groupController.GroupList)
	r.GET("/group/:slug/", groupController.GroupPosts)
	r.GET("/profile/:username/", profileController.Profile)
	r.GET("/posts/:post_id/", postsController.PostDetail)

	// Authoring requires a logged-in user
	protected := r.Group("", middleware.LoginRequired())
	{
		protected.GET("/create/", postsController.NewPost)
		protected.POST("/create/", postsController.CreatePost)
		protected.GET("/posts/:post_id/edit/", postsController.EditPost)
		protected.POST("/posts/:post_id/edit/", postsController.UpdatePost)
		protected.POST("/posts/:post_id/delete/", postsController.DeletePost)
		protected.POST("/posts/:post_id/comment/", postsController.AddComment)
	}
}
