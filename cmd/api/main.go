package main

import (
	"context"
	"log"
	"os"
	"strconv"

	_ "github.com/Kakazablone/AssetDome/api/swagger" // swagger docs
	"github.com/Kakazablone/AssetDome/internal/database"
	"github.com/Kakazablone/AssetDome/internal/handler"
	"github.com/Kakazablone/AssetDome/internal/middleware"
	"github.com/Kakazablone/AssetDome/internal/repository"
	"github.com/Kakazablone/AssetDome/internal/service"
	"github.com/Kakazablone/AssetDome/internal/websocket"
	"github.com/Kakazablone/AssetDome/internal/worker"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// @title           Asset Dome API
// @version         1.0
// @description     REST API for tracking organizational assets: registration, depreciation, disposal, reporting and audit.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := getenv("DB_HOST", "localhost")
	dbPort := getenv("DB_PORT", "5432")
	dbUser := getenv("DB_USER", "postgres")
	dbPassword := getenv("DB_PASSWORD", "postgres")
	dbName := getenv("DB_NAME", "assetdome")
	dbSslMode := getenv("DB_SSLMODE", "disable")

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	majorRepo := repository.NewMajorCategoryRepository(db)
	minorRepo := repository.NewMinorCategoryRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	reportRepo := repository.NewReportRepository(db)

	codeGenerator := service.NewCodeGenerator(sequenceRepo)
	assetService := service.NewAssetService(
		assetRepo, majorRepo, minorRepo, locationRepo, departmentRepo,
		supplierRepo, employeeRepo, auditRepo, txManager, codeGenerator, wsHub)
	categoryService := service.NewCategoryService(majorRepo, minorRepo, assetRepo, auditRepo, txManager)
	departmentService := service.NewDepartmentService(departmentRepo, employeeRepo, assetRepo, auditRepo, txManager)
	employeeService := service.NewEmployeeService(employeeRepo, departmentRepo, assetRepo, auditRepo, txManager)
	locationService := service.NewLocationService(locationRepo, assetRepo, auditRepo, txManager)
	supplierService := service.NewSupplierService(supplierRepo, assetRepo, auditRepo, txManager)
	authService := service.NewAuthService(userRepo, auditRepo, txManager)
	userService := service.NewUserService(userRepo, auditRepo, txManager)
	auditService := service.NewAuditService(auditRepo)
	summaryService := service.NewSummaryService(assetRepo, majorRepo, minorRepo, departmentRepo, employeeRepo, locationRepo, supplierRepo)

	// Background report rendering
	reportWorkers, _ := strconv.Atoi(getenv("REPORT_WORKERS", "2"))
	reportDir := getenv("REPORT_DIR", "./reports")
	reportPool := worker.NewPool(reportWorkers, reportDir, reportRepo, assetService, wsHub)
	if err := reportPool.Start(context.Background()); err != nil {
		log.Fatalf("Report worker pool failed to start: %v", err)
	}
	reportService := service.NewReportService(reportRepo, reportPool)

	// Initialize Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	assetHandler := handler.NewAssetHandler(assetService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	departmentHandler := handler.NewDepartmentHandler(departmentService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	locationHandler := handler.NewLocationHandler(locationService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	auditHandler := handler.NewAuditHandler(auditService)
	reportHandler := handler.NewReportHandler(reportService)
	summaryHandler := handler.NewSummaryHandler(summaryService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Per-IP rate limiting across the whole API
	rateLimitRPS, _ := strconv.ParseFloat(getenv("RATE_LIMIT_RPS", "20"), 64)
	rateLimitBurst, _ := strconv.Atoi(getenv("RATE_LIMIT_BURST", "40"))
	router.Use(middleware.NewRateLimiter(rateLimitRPS, rateLimitBurst).Middleware())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	// Auth endpoints manage their own middleware per route
	authHandler.RegisterRoutes(router.Group("/api"))

	api := router.Group("/api")
	api.Use(middleware.RequireAuth())
	{
		assetHandler.RegisterRoutes(api)
		categoryHandler.RegisterRoutes(api)
		departmentHandler.RegisterRoutes(api)
		employeeHandler.RegisterRoutes(api)
		locationHandler.RegisterRoutes(api)
		supplierHandler.RegisterRoutes(api)
		reportHandler.RegisterRoutes(api)
		summaryHandler.RegisterRoutes(api)
	}

	admin := router.Group("/api")
	admin.Use(middleware.RequireSuperuser())
	{
		userHandler.RegisterRoutes(admin)
		auditHandler.RegisterRoutes(admin)
	}

	port := getenv("PORT", "8080")

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
