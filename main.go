package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/maya-widjaja/mayas-bakery-api/config"
	"github.com/maya-widjaja/mayas-bakery-api/controllers"
	"github.com/maya-widjaja/mayas-bakery-api/logger"
	"github.com/maya-widjaja/mayas-bakery-api/middleware"
	"github.com/maya-widjaja/mayas-bakery-api/models"
	"github.com/maya-widjaja/mayas-bakery-api/services"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	config.SetConfig(cfg)

	logger.Init(cfg.LogFilePath, cfg.GoEnv == "production")
	defer logger.L().Sync()

	logger.L().Info("Starting Maya's Bakery API server...")

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		logger.L().Fatal("Failed to connect to database", zap.Error(err))
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.AdminUser{},
		&models.CakeOrder{},
		&models.WorkshopSchedule{},
		&models.WorkshopReservation{},
		&models.OnlineCourse{},
		&models.CourseOrder{},
		&models.PaymentReceipt{},
		&models.CourseAccess{},
		&models.GalleryItem{},
		&models.ContactMessage{},
		&models.SystemSetting{},
		&models.UnavailableDate{},
	); err != nil {
		logger.L().Fatal("Failed to migrate database", zap.Error(err))
	}
	logger.L().Info("Database migration completed successfully")

	if err := services.SeedSystemSettings(); err != nil {
		logger.L().Fatal("Failed to seed system settings", zap.Error(err))
	}

	s3Service, err := services.InitS3Service()
	if err != nil {
		logger.L().Fatal("Failed to initialize S3 service", zap.Error(err))
	}
	services.InitImageService(s3Service)
	services.InitMailer(cfg)

	router := setupRouter(cfg)

	port := ":" + cfg.Port
	logger.L().Info("Server is running", zap.String("addr", "http://localhost"+port))
	if err := router.Run(port); err != nil {
		logger.L().Fatal("Failed to start server", zap.Error(err))
	}
}

// setupRouter wires the middleware stack and the full route table
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CorsAllowedOrigins, ",")
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Public storefront
		v1.POST("/auth/register", controllers.Register)
		v1.POST("/auth/login", controllers.Login)
		v1.GET("/settings", controllers.GetSettings)
		v1.GET("/availability", controllers.CheckAvailability)
		v1.POST("/cake-orders/quote", controllers.QuoteCakeOrder)
		v1.GET("/gallery", controllers.ListGallery)
		v1.GET("/workshops", controllers.ListWorkshops)
		v1.GET("/courses", controllers.ListCourses)
		v1.GET("/courses/:id", controllers.GetCourse)
		v1.POST("/contact", controllers.SubmitContactMessage)

		// Authenticated customer routes
		authed := v1.Group("")
		authed.Use(middleware.EnsureValidToken(cfg))
		{
			authed.GET("/users/me", controllers.GetMyProfile)
			authed.PUT("/users/me", controllers.UpdateMyProfile)

			authed.POST("/cake-orders", controllers.CreateCakeOrder)
			authed.GET("/cake-orders/mine", controllers.ListMyCakeOrders)

			authed.POST("/workshops/:id/reservations", controllers.CreateWorkshopReservation)
			authed.GET("/workshop-reservations/mine", controllers.ListMyWorkshopReservations)

			authed.POST("/course-orders", controllers.CreateCourseOrder)
			authed.GET("/course-orders/mine", controllers.ListMyCourseOrders)
			authed.POST("/course-orders/:id/receipts", controllers.UploadPaymentReceipt)
			authed.GET("/course-access/mine", controllers.ListMyCourseAccess)
		}

		// Admin back office
		admin := v1.Group("/admin")
		admin.Use(middleware.EnsureValidToken(cfg), middleware.RequireAdmin())
		{
			admin.GET("/cake-orders", controllers.AdminListCakeOrders)
			admin.PATCH("/cake-orders/:id/status", controllers.AdminUpdateCakeOrderStatus)

			admin.POST("/workshops", controllers.AdminCreateWorkshop)
			admin.PUT("/workshops/:id", controllers.AdminUpdateWorkshop)
			admin.DELETE("/workshops/:id", controllers.AdminDeleteWorkshop)
			admin.GET("/workshop-reservations", controllers.AdminListWorkshopReservations)
			admin.PATCH("/workshop-reservations/:id/status", controllers.AdminUpdateReservationStatus)

			admin.POST("/courses", controllers.AdminCreateCourse)
			admin.PUT("/courses/:id", controllers.AdminUpdateCourse)
			admin.DELETE("/courses/:id", controllers.AdminDeleteCourse)
			admin.GET("/course-orders", controllers.AdminListCourseOrders)
			admin.PATCH("/course-orders/:id/status", controllers.AdminUpdateCourseOrderStatus)
			admin.POST("/course-orders/:id/verify", controllers.AdminVerifyPayment)

			admin.POST("/gallery", controllers.AdminCreateGalleryItem)
			admin.PUT("/gallery/:id", controllers.AdminUpdateGalleryItem)
			admin.DELETE("/gallery/:id", controllers.AdminDeleteGalleryItem)

			admin.GET("/messages", controllers.AdminListMessages)
			admin.PATCH("/messages/:id/status", controllers.AdminUpdateMessageStatus)
			admin.DELETE("/messages/:id", controllers.AdminDeleteMessage)

			admin.PUT("/settings/:key", controllers.AdminUpdateSetting)
			admin.GET("/unavailable-dates", controllers.AdminListUnavailableDates)
			admin.POST("/unavailable-dates", controllers.AdminAddUnavailableDate)
			admin.DELETE("/unavailable-dates/:id", controllers.AdminDeleteUnavailableDate)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Maya's Bakery API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
