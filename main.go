package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"focusflow-be/internal/ai"
	"focusflow-be/internal/cache"
	"focusflow-be/internal/config"
	"focusflow-be/internal/controllers"
	"focusflow-be/internal/database"
	"focusflow-be/internal/jwt"
	"focusflow-be/internal/middleware"
	"focusflow-be/internal/repository"
	"focusflow-be/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
		cacheClient = nil
	} else {
		log.Println("Connected to Redis cache")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	stepRepo := repository.NewStepRepository(db)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTL)*time.Hour,
	)

	// Initialize step generator
	generator := ai.NewGeminiGenerator(
		cfg.GeminiAPIKey,
		cfg.GeminiModel,
		time.Duration(cfg.AITimeoutSeconds)*time.Second,
	)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	profileService := service.NewProfileService(profileRepo, cacheClient)
	taskService := service.NewTaskService(taskRepo, stepRepo, profileService, generator)
	stepService := service.NewStepService(stepRepo)

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	profileController := controllers.NewProfileController(profileService)
	taskController := controllers.NewTaskController(taskService)
	stepController := controllers.NewStepController(stepService)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)
	// Task creation triggers an outbound generation call, so it gets its own lid
	createRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitCreateRPS), cfg.RateLimitCreateBurst)

	// Create a Gin router
	router := gin.Default()
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())

	// Health check endpoint (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Auth routes with stricter rate limiting
	auth := router.Group("/auth")
	auth.Use(authRateLimiter.LimitMiddleware())
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)
		auth.GET("/me", middleware.AuthMiddleware(jwtService), authController.Me)
	}

	// Protected routes - require JWT authentication
	protected := router.Group("")
	protected.Use(generalRateLimiter.LimitMiddleware())
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.POST("/profile", profileController.Upsert)
		protected.GET("/profile/me", profileController.Me)

		protected.POST("/tasks", createRateLimiter.LimitMiddleware(), taskController.Create)
		protected.GET("/tasks", taskController.List)
		protected.PUT("/tasks/:taskId", taskController.Update)
		protected.DELETE("/tasks/:taskId", taskController.Delete)

		protected.POST("/tasks/:taskId/steps", stepController.Create)
		protected.GET("/tasks/:taskId/steps", stepController.List)
		protected.PUT("/tasks/:taskId/steps/:stepId", stepController.Update)
		protected.DELETE("/tasks/:taskId/steps/:stepId", stepController.Delete)
	}

	// Serve the built frontend when present: static assets plus an index.html
	// catch-all for client-side routes
	if info, err := os.Stat(cfg.FrontendDir); err == nil && info.IsDir() {
		router.Static("/assets", filepath.Join(cfg.FrontendDir, "assets"))
		indexFile := filepath.Join(cfg.FrontendDir, "index.html")
		router.NoRoute(func(c *gin.Context) {
			if c.Request.Method == http.MethodGet {
				c.File(indexFile)
				return
			}
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		})
	} else {
		router.NoRoute(func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{
				"status": "backend is running",
				"error":  "frontend not found",
			})
		})
	}

	log.Printf("Server starting on http://localhost:%s", cfg.Port)
	router.Run(":" + cfg.Port)
}
