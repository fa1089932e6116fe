package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/postline/api-go/controllers"
	"github.com/postline/api-go/middleware"
)

func SetupFollowRoutes(r *gin.Engine, followController *controllers.FollowController) {
	protected := r.Group("", middleware.LoginRequired())
	{
		protected.GET("/follow/", followController.FollowIndex)

		// Follow toggles accept both verbs so plain links work.
		protected.GET("/profile/:username/follow/", followController.Follow)
		protected.POST("/profile/:username/follow/", followController.Follow)
		protected.GET("/profile/:username/unfollow/", followController.Unfollow)
		protected.POST("/profile/:username/unfollow/", followController.Unfollow)
	}
}
