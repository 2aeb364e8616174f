package main

import (
	"fmt"
	"log"
	"os"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"REFRESH_TOKEN_EXPIRATION_TIME",
		"REDIS_URL",
		"PAYMENT_SECRET",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	utils.InitMongoClient()
}

func setupRouter() *gin.Engine {
	router := gin.Default()

	// Repositories
	userRepo := repository.GetUserRepo(utils.MongoClient)
	hotelRepo := repository.GetHotelRepo(utils.MongoClient)
	bookingRepo := repository.GetBookingRepo(utils.MongoClient)
	paymentRepo := repository.GetPaymentRepo(utils.MongoClient)
	sessionRepo := repository.GetSessionRepo(utils.MongoClient)

	// Services
	hotelsService := &usecase.HotelsService{HotelRepo: hotelRepo}
	bookingsService := &usecase.BookingsService{
		BookingRepo: bookingRepo,
		HotelRepo:   hotelRepo,
	}

	// Core state, constructed once and passed by handle
	rateLimiter := middleware.NewRateLimiter(config.LoadRateLimitConfig())
	activityLog := services.NewActivityLogger()

	activityHandler := handler.NewActivityHandler(activityLog)
	dashboardHandler := handler.NewDashboardHandler(userRepo, hotelRepo, bookingRepo)

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestSizeLimiter(1 << 20))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.SessionMiddleware(sessionRepo))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Everything under /api is rate limited and recorded
	api := router.Group("/api")
	api.Use(rateLimiter.Middleware())
	api.Use(middleware.ActivityMiddleware(activityLog))

	// Public routes (no authentication required)
	api.GET("/health", handler.HealthHandler)
	api.GET("/status", handler.StatusHandler)

	auth := api.Group("/auth")
	{
		auth.POST("/register", handler.RegistrationHandler)
		auth.POST("/login", func(c *gin.Context) {
			handler.LoginHandler(c, sessionRepo, activityLog)
		})
		auth.POST("/refresh", handler.RefreshHandler)
		auth.GET("/validate-token", handler.ValidateTokenHandler)
		auth.GET("/google-callback", handler.GoogleCallbackHandler)
	}

	hotels := api.Group("/hotels")
	{
		hotels.GET("/", func(c *gin.Context) {
			handler.SearchHotelsHandler(c, hotelsService)
		})
		hotels.GET("/:id", func(c *gin.Context) {
			handler.GetHotelHandler(c, hotelsService)
		})
	}

	// Protected routes (authentication required)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		user := protected.Group("/user")
		{
			user.GET("/profile", handler.GetUserProfileHandler)
			user.POST("/change-password", handler.ChangePasswordHandler)
			user.POST("/logout", func(c *gin.Context) {
				handler.LogoutHandler(c, sessionRepo)
			})
			user.GET("/2fa/generate", handler.Generate2FAHandler)
			user.POST("/2fa/enable", handler.Enable2FAHandler)
			user.POST("/2fa/disable", handler.Disable2FAHandler)
		}

		sessions := protected.Group("/sessions")
		{
			sessions.GET("/active", func(c *gin.Context) {
				handler.GetActiveSessions(c, sessionRepo)
			})
			sessions.POST("/logout-all", func(c *gin.Context) {
				handler.LogoutAllSessions(c, sessionRepo)
			})
		}

		manage := protected.Group("/hotels")
		manage.Use(middleware.RequireRoles("hotel_owner", "admin"))
		{
			manage.POST("/", func(c *gin.Context) {
				handler.CreateHotelHandler(c, hotelsService)
			})
			manage.PUT("/:id", func(c *gin.Context) {
				handler.UpdateHotelHandler(c, hotelsService)
			})
			manage.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteHotelHandler(c, hotelsService)
			})
			manage.GET("/:id/bookings", func(c *gin.Context) {
				handler.GetHotelBookingsHandler(c, bookingsService, hotelsService)
			})
		}

		bookings := protected.Group("/bookings")
		{
			bookings.POST("/", func(c *gin.Context) {
				handler.CreateBookingHandler(c, bookingsService)
			})
			bookings.GET("/", func(c *gin.Context) {
				handler.GetUserBookingsHandler(c, bookingsService)
			})
			bookings.GET("/:id", func(c *gin.Context) {
				handler.GetBookingHandler(c, bookingsService)
			})
			bookings.POST("/:id/cancel", func(c *gin.Context) {
				handler.CancelBookingHandler(c, bookingsService)
			})
		}

		payments := protected.Group("/payments")
		{
			// Order creation carries its own narrower ceiling
			payments.POST("/orders", rateLimiter.PaymentMiddleware(), func(c *gin.Context) {
				handler.CreatePaymentOrderHandler(c, paymentRepo, bookingsService)
			})
			payments.POST("/verify", func(c *gin.Context) {
				handler.VerifyPaymentHandler(c, paymentRepo, bookingsService, activityLog)
			})
		}

		admin := protected.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/dashboard", dashboardHandler.GetDashboardStats)
			admin.GET("/activity", activityHandler.ListActivities)
			admin.GET("/activity/logins", activityHandler.ListLogins)
			admin.GET("/activity/stats", activityHandler.GetStats)
			admin.DELETE("/activity", activityHandler.ClearActivities)
		}
	}

	return router
}

func main() {
	// Redis-backed token blacklist
	blacklist, err := services.NewTokenBlacklist(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("Failed to initialize token blacklist: %v", err)
	}
	services.TokenBlacklist = blacklist
	defer blacklist.Close()

	// Hotel cache shares the Redis instance; failure is non-fatal
	cache, err := services.NewHotelCache(os.Getenv("REDIS_URL"), utils.GetEnvAsDuration("HOTEL_CACHE_TTL", 0))
	if err != nil {
		log.Printf("Warning: hotel cache disabled: %v", err)
	} else {
		services.GlobalHotelCache = cache
		defer cache.Close()
	}

	dbName := config.LoadDatabaseConfig().DatabaseName
	if err := repository.SetupIndexes(utils.MongoClient.Database(dbName)); err != nil {
		log.Printf("Warning: failed to create indexes: %v", err)
	}

	router := setupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
