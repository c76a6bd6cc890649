package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/harborview/booking-backend/internal/config"
	"github.com/harborview/booking-backend/internal/database"
	"github.com/harborview/booking-backend/internal/handlers"
	"github.com/harborview/booking-backend/internal/middleware"
	"github.com/harborview/booking-backend/internal/services"
	"github.com/harborview/booking-backend/pkg/jwt"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Harborview Booking Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize repositories
	guestRepo := database.NewGuestRepository(db)
	roomTypeRepo := database.NewRoomTypeRepository(db)
	roomRepo := database.NewRoomRepository(db)
	reservationRepo := database.NewReservationRepository(db)
	auditRepo := database.NewAuditRepository(db)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	auditService := services.NewAuditService(auditRepo, cfg.Security.EnableAuditLog, logger)
	availabilityService := services.NewAvailabilityService(roomRepo, reservationRepo, cfg.Database.QueryTimeout, logger)
	reservationService := services.NewReservationService(reservationRepo, roomRepo, guestRepo, auditService, cfg.Database.QueryTimeout, logger)
	inventoryService := services.NewInventoryService(roomTypeRepo, roomRepo, cfg.Database.QueryTimeout, logger)
	logger.Info("Services initialized")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(jwtService, guestRepo, cfg, logger)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService, inventoryService)
	reservationHandler := handlers.NewReservationHandler(reservationService)
	adminHandler := handlers.NewAdminHandler(inventoryService, reservationService, auditService, guestRepo)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	if cfg.Security.EnableRequestLog {
		router.Use(requestLogger(logger))
	}
	router.Use(middleware.RequestMeta())

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Authentication routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// Public catalog and availability search
		v1.GET("/room-types", availabilityHandler.ListRoomTypes)
		v1.POST("/availability/search", availabilityHandler.Search)

		// Profile routes (protected)
		profile := v1.Group("/profile")
		profile.Use(middleware.AuthMiddleware(jwtService))
		{
			profile.GET("", authHandler.GetProfile)
		}

		// Reservation routes (protected)
		reservations := v1.Group("/reservations")
		reservations.Use(middleware.AuthMiddleware(jwtService))
		{
			reservations.POST("", reservationHandler.Create)
			reservations.GET("", reservationHandler.ListMine)
			reservations.GET("/:id", reservationHandler.GetByID)
			reservations.POST("/:id/check-in", reservationHandler.CheckIn)
			reservations.POST("/:id/check-out", reservationHandler.CheckOut)
			reservations.POST("/:id/cancel", reservationHandler.Cancel)
		}

		// Admin routes (protected, admin only)
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(jwtService))
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("/room-types", adminHandler.CreateRoomType)
			admin.PUT("/room-types/:id", adminHandler.UpdateRoomType)
			admin.DELETE("/room-types/:id", adminHandler.DeleteRoomType)

			admin.GET("/rooms", adminHandler.ListRooms)
			admin.POST("/rooms", adminHandler.CreateRoom)
			admin.PUT("/rooms/:id", adminHandler.UpdateRoom)
			admin.DELETE("/rooms/:id", adminHandler.DeleteRoom)

			admin.GET("/reservations", adminHandler.ListReservations)
			admin.GET("/reservations/:id/audit", adminHandler.AuditTrail)
			admin.GET("/check-ins-today", adminHandler.CheckInsToday)
			admin.GET("/guests", adminHandler.ListGuests)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		entry := logger.WithFields(fields)

		status := c.Writer.Status()
		switch {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
