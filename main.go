package main

import (
	"log"

	"shopfront/config"
	_ "shopfront/docs"
	"shopfront/middleware"
	"shopfront/models"
	"shopfront/routes"

	"github.com/gin-gonic/gin"
)

// @title Shopfront API
// @version 1.0
// @description Storefront backend: products, cart, checkout and payment handoff.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	models.InitDB()
	defer models.CloseDB()

	models.InitRedis()
	defer models.CloseRedis()

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	routes.SetupRoutes(r)

	log.Printf("Server starting on port %s", config.AppConfig.Port)
	if err := r.Run(":" + config.AppConfig.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
