package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/postline/api-go/controllers"
	"github.com/postline/api-go/middleware"
)

func SetupAuthRoutes(r *gin.Engine, authController *controllers.AuthController) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", authController.SignUp)
		auth.GET("/login", authController.LoginPage)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
	}
}

func SetupUploadRoutes(r *gin.Engine, uploadController *controllers.UploadController) {
	upload := r.Group("/upload", middleware.LoginRequired())
	{
		upload.POST("/image", uploadController.GetImageUploadURL)
	}
}
