package main

import (
	"fmt"
	"log"
	"net/http"

	"gametracker/backend/internal/auth"
	"gametracker/backend/internal/cache"
	"gametracker/backend/internal/config"
	"gametracker/backend/internal/database"
	"gametracker/backend/internal/handler"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "gametracker/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           GameTracker API
// @version         1.0
// @description     This is the API for the GameTracker catalog service.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.AppConfig

	// Connect to the database
	database.Connect(cfg.DatabaseURL)

	// Optional rating-aggregate cache
	if cfg.RedisAddr != "" {
		if err := cache.Connect(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
	}

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Stored cover images
	router.Static("/uploads", cfg.UploadDir)

	// API routes
	api := router.Group("/api")
	{
		// Auth routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// Read routes stay public either way
		api.GET("/games", handler.GetGames)
		api.GET("/reviews/:gameId", handler.GetReviewsForGame)
		api.GET("/reviews/average/:gameId", handler.GetAverageRating)

		// Mutating routes, optionally behind auth
		mutating := api.Group("")
		if cfg.AuthRequired {
			mutating.Use(auth.AuthMiddleware())
		}
		{
			mutating.POST("/games", handler.CreateGame)
			mutating.PUT("/games/:id", handler.UpdateGame)
			mutating.DELETE("/games/:id", handler.DeleteGame)

			mutating.POST("/reviews", handler.CreateReview)
			mutating.PUT("/reviews/:id", handler.UpdateReview)
			mutating.DELETE("/reviews/:id", handler.DeleteReview)

			mutating.POST("/upload/image", handler.UploadImage)
		}
	}

	fmt.Printf("Server is running on %s\n", cfg.ServerAddr)
	fmt.Printf("Swagger UI is available at %s/swagger/index.html\n", cfg.BaseURL)
	log.Fatal(router.Run(cfg.ServerAddr))
}
