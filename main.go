package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/device-inventory-api/config"
	"github.com/kendall-kelly/device-inventory-api/controllers"
	"github.com/kendall-kelly/device-inventory-api/middleware"
	"github.com/kendall-kelly/device-inventory-api/models"
)

func main() {
	// Basic logging
	log.Println("Starting Device Inventory API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Category{},
		&models.Brand{},
		&models.Location{},
		&models.Device{},
		&models.Reservation{},
		&models.Loan{},
		&models.Return{},
		&models.ServiceOrder{},
		&models.ServiceWork{},
		&models.Payment{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Ensure the built-in roles exist
	if err := seedRoles(); err != nil {
		log.Fatalf("Failed to seed roles: %v", err)
	}

	// Initialize Gin router
	router := gin.Default()

	// CORS for browser clients
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	registerRoutes(router, middleware.EnsureValidToken(cfg))

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// seedRoles creates the ADMIN, MANAGER and USER roles if missing
func seedRoles() error {
	db := config.GetDB()
	for _, name := range []string{models.RoleAdmin, models.RoleManager, models.RoleUser} {
		var role models.Role
		err := db.Where("name = ?", name).First(&role).Error
		if err == nil {
			continue
		}
		if err := db.Create(&models.Role{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}

// registerRoutes wires the API surface. The authn middleware is
// injected so tests can substitute a stub for the JWT validator.
func registerRoutes(router *gin.Engine, authn gin.HandlerFunc) {
	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Profile registration only needs a valid token
		v1.POST("/users", authn, controllers.CreateUser)

		// Everything else needs a registered profile
		authed := v1.Group("", authn, middleware.LoadCurrentUser())
		{
			authed.GET("/users/me", controllers.GetCurrentUserProfile)
			authed.POST("/users/:id/role", middleware.RequireStaff(), controllers.AssignRole)

			// Catalog: reads for everyone, writes for staff
			authed.GET("/categories", controllers.ListCategories)
			authed.POST("/categories", middleware.RequireStaff(), controllers.CreateCategory)
			authed.DELETE("/categories/:id", middleware.RequireStaff(), controllers.DeleteCategory)
			authed.GET("/brands", controllers.ListBrands)
			authed.POST("/brands", middleware.RequireStaff(), controllers.CreateBrand)
			authed.DELETE("/brands/:id", middleware.RequireStaff(), controllers.DeleteBrand)
			authed.GET("/locations", controllers.ListLocations)
			authed.POST("/locations", middleware.RequireStaff(), controllers.CreateLocation)
			authed.DELETE("/locations/:id", middleware.RequireStaff(), controllers.DeleteLocation)

			// Device registry: reads for everyone, writes for managers
			authed.GET("/devices", controllers.ListDevices)
			authed.GET("/devices/available", controllers.ListAvailableDevices)
			authed.GET("/devices/by-serial", controllers.FindDeviceBySerial)
			authed.GET("/devices/:id", controllers.GetDevice)
			authed.GET("/devices/:id/history", controllers.GetDeviceHistory)
			authed.POST("/devices", middleware.RequireManagerOrAdmin(), controllers.CreateDevice)
			authed.PUT("/devices/:id", middleware.RequireManagerOrAdmin(), controllers.UpdateDevice)
			authed.POST("/devices/:id/retire", middleware.RequireManagerOrAdmin(), controllers.RetireDevice)

			// Reservations: users act for themselves
			authed.POST("/reservations", controllers.CreateReservation)
			authed.GET("/reservations", controllers.ListReservations)
			authed.GET("/reservations/my", controllers.ListMyReservations)
			authed.POST("/reservations/:id/cancel", controllers.CancelReservation)

			// Loans and returns: manager/admin workflows
			authed.GET("/loans/my", controllers.ListMyLoans)
			loans := authed.Group("/loans", middleware.RequireManagerOrAdmin())
			{
				loans.POST("", controllers.CreateLoan)
				loans.GET("", controllers.ListLoans)
				loans.GET("/active", controllers.ListActiveLoans)
				loans.GET("/overdue", controllers.ListOverdueLoans)
				loans.GET("/:id", controllers.GetLoan)
				loans.PUT("/:id", controllers.UpdateLoan)
			}
			returns := authed.Group("/returns", middleware.RequireManagerOrAdmin())
			{
				returns.POST("", controllers.CreateReturn)
				returns.GET("", controllers.ListReturns)
			}

			// Service workflow: manager/admin only
			orders := authed.Group("/service-orders", middleware.RequireManagerOrAdmin())
			{
				orders.POST("", controllers.CreateServiceOrder)
				orders.GET("", controllers.ListServiceOrders)
				orders.GET("/pending", controllers.ListPendingServiceOrders)
				orders.GET("/in-progress", controllers.ListInProgressServiceOrders)
				orders.GET("/:id", controllers.GetServiceOrder)
				orders.POST("/:id/start", controllers.StartServiceOrder)
				orders.POST("/:id/complete", controllers.CompleteServiceOrder)
				orders.POST("/:id/cancel", controllers.CancelServiceOrder)
				orders.POST("/:id/works", controllers.AddServiceWork)
				orders.GET("/:id/works", controllers.ListServiceWorks)
			}

			// Payment ledger
			authed.POST("/payments", controllers.CreatePayment)
			authed.GET("/payments", controllers.ListPayments)
			authed.GET("/payments/my", controllers.ListMyPayments)
			authed.GET("/payments/by-type", controllers.ListPaymentsByType)
			authed.GET("/payments/total-by-user", controllers.GetTotalByUser)
		}
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Device Inventory API is running",
	})
}

// databaseStatus checks database connectivity
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

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
	})
}
