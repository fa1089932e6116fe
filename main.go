package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/postline/api-go/config"
	"github.com/postline/api-go/controllers"
	"github.com/postline/api-go/middleware"
	"github.com/postline/api-go/routes"
)

// homeCacheTTL is how long the rendered home page is served as-is before
// it is recomputed. Mutations within the window are intentionally not
// reflected.
const homeCacheTTL = 20 * time.Second

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set")
	}

	// Initialize database
	db := config.InitDB()

	// Create a new Gin router
	r := gin.Default()

	// Add logging middleware
	r.Use(gin.LoggerWithWriter(os.Stdout))

	pageCache := middleware.NewPageCache(homeCacheTTL)
	storage := controllers.NewS3MediaStorage(config.GetMediaConfig())

	// Initialize routes
	routes.SetupRoutes(r, db, pageCache, storage)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
