package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/aurumbay/aurumbay/internal/container"
	"github.com/aurumbay/aurumbay/internal/handlers"
	"github.com/aurumbay/aurumbay/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     container.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	jwtSecret := []byte(container.Config.JWTSecret)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "aurumbay-api",
			})
		})

		// public routes
		v1.POST("/signup", handlers.Signup(container.Core))
		v1.POST("/login", handlers.Login(container.Core, jwtSecret))
		v1.POST("/logout", handlers.Logout())
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(jwtSecret, container.Logger))

	protected.GET("/profile", handlers.Profile(container.Core))

	userRoutes := protected.Group("/users")
	{
		userRoutes.GET("/", handlers.ListUsers(container.Core))
		userRoutes.GET("/:id", handlers.GetUser(container.Core))
		userRoutes.PATCH("/:id", handlers.UpdateUser(container.Core))
		userRoutes.DELETE("/:id", handlers.DeleteUser(container.Core))
	}

	itemRoutes := protected.Group("/items")
	{
		itemRoutes.GET("/", handlers.ListItems(container.Core, container.Config.SpotPrices))
		itemRoutes.POST("/", handlers.AddItem(container.Core))
		itemRoutes.PATCH("/:id", handlers.UpdateItem(container.Core))
		itemRoutes.DELETE("/:id", handlers.DeleteItem(container.Core))
		itemRoutes.POST("/:id/toggle-visibility", handlers.ToggleVisibility(container.Core))
		itemRoutes.GET("/seller/:seller_id", handlers.ListSellerItems(container.Core, container.Config.SpotPrices))
	}

	requestRoutes := protected.Group("/buy-requests")
	{
		requestRoutes.POST("/", handlers.CreateBuyRequest(container.Core))
		requestRoutes.GET("/mine", handlers.ListMyBuyRequests(container.Core))
		requestRoutes.GET("/incoming", handlers.ListIncomingBuyRequests(container.Core))
		requestRoutes.GET("/:id", handlers.GetBuyRequest(container.Core))
		requestRoutes.POST("/:id/accept", handlers.AcceptBuyRequest(container.Core))
		requestRoutes.POST("/:id/decline", handlers.DeclineBuyRequest(container.Core))
	}

	referralRoutes := protected.Group("/referrals")
	{
		referralRoutes.POST("/codes", handlers.GenerateReferralCode(container.Core))
		referralRoutes.GET("/codes", handlers.ListReferralCodes(container.Core))
		referralRoutes.POST("/redeem", handlers.ApplyReferralCode(container.Core))
		referralRoutes.POST("/seller-code", handlers.GenerateSellerCode(container.Core))
		referralRoutes.POST("/follow", handlers.FollowSeller(container.Core))
		referralRoutes.DELETE("/follow/:id", handlers.UnfollowSeller(container.Core))
		referralRoutes.GET("/following", handlers.ListFollowedSellers(container.Core))
	}

	notificationRoutes := protected.Group("/notifications")
	{
		notificationRoutes.GET("/", handlers.ListNotifications(container.Core))
		notificationRoutes.POST("/:id/read", handlers.MarkNotificationRead(container.Core))
		notificationRoutes.POST("/read-all", handlers.MarkAllNotificationsRead(container.Core))
		notificationRoutes.DELETE("/:id", handlers.DeleteNotification(container.Core))
		notificationRoutes.DELETE("/", handlers.ClearNotifications(container.Core))
	}

	contactRoutes := protected.Group("/contacts")
	{
		contactRoutes.POST("/dealer/:id", handlers.ContactDealer(container.Core))
		contactRoutes.GET("/customers", handlers.ListMyCustomers(container.Core))
	}

	return r
}
