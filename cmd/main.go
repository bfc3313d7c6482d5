package main

import (
	"inventory-service/internal/handler"
	"inventory-service/internal/mailer"
	mid "inventory-service/internal/middleware"
	"inventory-service/internal/service"
	"inventory-service/pkg/config"
	"inventory-service/pkg/database"
	"inventory-service/pkg/jwtutil"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration (reads .env if present)
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting inventory-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database (runs migrations and seeds the default admin)
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	db := database.GetDB()
	log.Info("Database connection established")

	// Services
	mail := mailer.New(&appConfig.SMTP)
	authService := service.NewAuthService(db)
	resetService := service.NewPasswordResetService(db, mail, appConfig.OTP)
	productService := service.NewProductService(db)
	fashionService := service.NewFashionService(db)
	stockService := service.NewStockService(db)
	alertService := service.NewAlertService(db)
	adminService := service.NewAdminService(db)
	exportService := service.NewExportService(db)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, resetService)
	productHandler := handler.NewProductHandler(productService)
	fashionHandler := handler.NewFashionHandler(fashionService, stockService)
	stockHandler := handler.NewStockHandler(stockService, exportService)
	alertHandler := handler.NewAlertHandler(alertService)
	adminHandler := handler.NewAdminHandler(adminService, exportService)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)
	e.Use(logger.Middleware(log))

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authAPI := e.Group("/api/auth")
	authAPI.POST("/register", authHandler.Register)
	authAPI.POST("/login", authHandler.Login)
	authAPI.POST("/forgot-password", authHandler.ForgotPassword)
	authAPI.POST("/verify-otp", authHandler.VerifyOtp)
	authAPI.POST("/reset-password", authHandler.ResetPassword)
	authAPI.GET("/me", authHandler.Me, mid.AuthMiddleware)

	writeRoles := mid.RequireRole("ADMIN", "MANAGER")

	// Product routes
	productAPI := e.Group("/api/products", mid.AuthMiddleware)
	productAPI.GET("", productHandler.ListProducts)
	productAPI.GET("/:id", productHandler.GetProduct)
	productAPI.GET("/low-stock", productHandler.LowStockProducts)
	productAPI.GET("/out-of-stock", productHandler.OutOfStockProducts)
	productAPI.GET("/category/:category", productHandler.ProductsByCategory)
	productAPI.POST("", productHandler.CreateProduct, writeRoles)
	productAPI.PUT("/:id", productHandler.UpdateProduct, writeRoles)
	productAPI.DELETE("/:id", productHandler.DeleteProduct, writeRoles)

	// Fashion product routes
	fashionAPI := e.Group("/api/fashion-products", mid.AuthMiddleware)
	fashionAPI.GET("", fashionHandler.ListFashionProducts)
	fashionAPI.GET("/:id", fashionHandler.GetFashionProduct)
	fashionAPI.GET("/sku/:sku", fashionHandler.GetFashionProductBySKU)
	fashionAPI.GET("/category/:category", fashionHandler.FashionProductsByCategory)
	fashionAPI.GET("/brand/:brand", fashionHandler.FashionProductsByBrand)
	fashionAPI.GET("/season/:season", fashionHandler.FashionProductsBySeason)
	fashionAPI.GET("/current-season", fashionHandler.CurrentSeasonProducts)
	fashionAPI.GET("/gender/:gender", fashionHandler.FashionProductsByGender)
	fashionAPI.GET("/search", fashionHandler.SearchFashionProducts)
	fashionAPI.GET("/price-range", fashionHandler.FashionProductsByPriceRange)
	fashionAPI.GET("/low-stock", fashionHandler.LowStockFashionProducts)
	fashionAPI.GET("/out-of-stock", fashionHandler.OutOfStockFashionProducts)
	fashionAPI.GET("/trending", fashionHandler.TrendingFashionProducts)
	fashionAPI.GET("/:id/sizes", fashionHandler.AvailableSizes)
	fashionAPI.GET("/:id/colors", fashionHandler.AvailableColors)
	fashionAPI.GET("/:id/transactions", fashionHandler.FashionProductTransactions)
	fashionAPI.POST("", fashionHandler.CreateFashionProduct, writeRoles)
	fashionAPI.PUT("/:id", fashionHandler.UpdateFashionProduct, writeRoles)
	fashionAPI.DELETE("/:id", fashionHandler.DeleteFashionProduct, writeRoles)
	fashionAPI.POST("/:id/variants/:variantId/stock", fashionHandler.UpdateVariantStock, writeRoles)

	// Stock transaction routes
	stockAPI := e.Group("/api/stock-transactions", mid.AuthMiddleware)
	stockAPI.GET("", stockHandler.ListTransactions)
	stockAPI.GET("/type/:type", stockHandler.TransactionsByType)
	stockAPI.GET("/product/:productId", stockHandler.TransactionsByProduct)
	stockAPI.GET("/recent", stockHandler.RecentTransactions)
	stockAPI.GET("/export", stockHandler.ExportTransactions, mid.RequireRole("ADMIN"))
	stockAPI.POST("", stockHandler.CreateTransaction, writeRoles)

	// Alert routes
	alertAPI := e.Group("/api/alerts", mid.AuthMiddleware)
	alertAPI.GET("", alertHandler.ListAlerts)
	alertAPI.GET("/active", alertHandler.ActiveAlerts)
	alertAPI.GET("/recent", alertHandler.RecentAlerts)
	alertAPI.GET("/type/:type", alertHandler.AlertsByType)
	alertAPI.PUT("/:id/resolve", alertHandler.ResolveAlert, writeRoles)
	alertAPI.PUT("/mark-all-resolved", alertHandler.ResolveAllAlerts, writeRoles)
	alertAPI.DELETE("/:id", alertHandler.DeleteAlert, writeRoles)
	alertAPI.DELETE("/cleanup-orphaned", alertHandler.CleanupOrphanedAlerts, writeRoles)

	// Admin routes
	adminAPI := e.Group("/api/admin", mid.AuthMiddleware, mid.RequireRole("ADMIN"))
	adminAPI.GET("/pending-users", adminHandler.PendingUsers)
	adminAPI.GET("/users", adminHandler.AllUsers)
	adminAPI.PATCH("/users/:userId/status", adminHandler.UpdateUserStatus)
	adminAPI.DELETE("/users/:userId", adminHandler.DeleteUser)
	adminAPI.GET("/stats", adminHandler.DashboardStats)
	adminAPI.GET("/transactions/export", stockHandler.ExportTransactions)
	adminAPI.GET("/products/export", adminHandler.ExportProducts)
	adminAPI.GET("/fashion-products/export", adminHandler.ExportFashionProducts)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
