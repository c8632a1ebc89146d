package routes

import (
	"log"
	"net/http"

	"shopfront/config"
	"shopfront/controllers"
	"shopfront/libs"
	"shopfront/middleware"
	"shopfront/models"
	"shopfront/repositories"
	"shopfront/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(r *gin.Engine) {
	cfg := config.AppConfig

	authService := services.NewAuthService()
	productService := services.NewProductService()
	cartService := services.NewCartService()

	paymentClient := libs.NewPaymentLinkClient(cfg.CommerceAPIURL, cfg.CommerceAPITimeout)
	orderRepo := repositories.NewOrderRepository()

	var mailer services.ConfirmationMailer
	if emailService, err := models.NewEmailService(); err != nil {
		log.Printf("Email service disabled: %v", err)
	} else {
		mailer = emailService
	}

	checkoutService := services.NewCheckoutService(
		cartService,
		services.DefaultPricingRules(),
		paymentClient,
		orderRepo,
		mailer,
	)

	authController := controllers.NewAuthController(authService)
	productController := controllers.NewProductController(productService)
	cartController := controllers.NewCartController(cartService)
	checkoutController := controllers.NewCheckoutController(checkoutService, cfg.CheckoutRedirectDelay)
	orderController := controllers.NewOrderController(orderRepo)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Shopfront API is running",
		})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/profile", middleware.AuthMiddleware(), authController.GetProfile)
		auth.PATCH("/profile", middleware.AuthMiddleware(), authController.UpdateProfile)
	}

	r.GET("/categories", productController.GetAllCategories)
	r.GET("/products", productController.GetAllProducts)
	r.GET("/products/:id", productController.GetProductByID)

	cart := r.Group("/cart", middleware.AuthMiddleware())
	{
		cart.GET("", cartController.GetCart)
		cart.POST("", cartController.AddItem)
		cart.PATCH("/:id", cartController.UpdateItem)
		cart.DELETE("/:id", cartController.RemoveItem)
		cart.DELETE("", cartController.ClearCart)
	}

	checkout := r.Group("/checkout", middleware.AuthMiddleware())
	{
		checkout.GET("", checkoutController.GetSummary)
		checkout.POST("", checkoutController.Submit)
	}

	r.GET("/orders", middleware.AuthMiddleware(), orderController.GetMyOrders)

	admin := r.Group("/admin", middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/orders", orderController.GetAllOrders)
		admin.GET("/orders/:id", orderController.GetOrderByID)
		admin.PATCH("/orders/:id/status", orderController.UpdateOrderStatus)
		admin.POST("/products", productController.CreateProduct)
		admin.PATCH("/products/:id", productController.UpdateProduct)
		admin.DELETE("/products/:id", productController.DeleteProduct)
	}
}
