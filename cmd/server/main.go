package main

import (
	"log"
	"time"

	"roti_pos/internal/config"
	"roti_pos/internal/database"
	"roti_pos/internal/handlers"
	"roti_pos/internal/redis"
	"roti_pos/internal/repository"
	"roti_pos/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}

	// Initialize database
	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL, time.Duration(cfg.CartTTL)*time.Second)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(db)

	// Initialize services
	notifier := services.NewLogNotifier()
	composerService := services.NewComposerService(redisClient, orderRepo, notifier)
	browserService := services.NewBrowserService(orderRepo, notifier)

	// Initialize handlers
	cartHandler := handlers.NewCartHandler(composerService)
	orderHandler := handlers.NewOrderHandler(browserService)

	// Setup routes
	router := gin.Default()

	api := router.Group("/api")
	{
		// Order composer
		api.GET("/catalog", cartHandler.Catalog)
		api.POST("/cart", cartHandler.Create)
		api.GET("/cart/:id", cartHandler.Get)
		api.PUT("/cart/:id", cartHandler.SetMeta)
		api.POST("/cart/:id/submit", cartHandler.Submit)
		api.POST("/cart/:id/items/:index/toggle", cartHandler.Toggle)
		api.PUT("/cart/:id/items/:index", cartHandler.SetItemField)
		api.POST("/cart/:id/items/:index/increment", cartHandler.Increment)
		api.POST("/cart/:id/items/:index/decrement", cartHandler.Decrement)

		// Order browser
		api.GET("/orders", orderHandler.List)
		api.GET("/orders/:id", orderHandler.Get)
		api.PATCH("/orders/:id", orderHandler.Update)
		api.DELETE("/orders/:id", orderHandler.Delete)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
