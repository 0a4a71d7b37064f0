package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"jobtrail/internal/auth"
	"jobtrail/internal/config"
	"jobtrail/internal/database"
	"jobtrail/internal/handlers"
	"jobtrail/internal/services"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}
	cfg := config.Load()

	// 2. Database Connection
	db := database.Connect(cfg.DatabaseURL)

	// 3. Initialize Core Services
	llmService := services.NewLLMService(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	analysisService := services.NewAnalysisService(llmService)
	profileService := services.NewProfileService(db)
	jobService := services.NewJobService(db, analysisService, profileService)
	applicationService := services.NewApplicationService(db, profileService)
	metricsService := services.NewMetricsService(db)

	// 4. Initialize Handlers
	authHandler := handlers.NewAuthHandler(cfg)
	jobHandler := handlers.NewJobHandler(jobService, analysisService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	profileHandler := handlers.NewProfileHandler(profileService)
	metricsHandler := handlers.NewMetricsHandler(metricsService)

	// 5. Setup Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true // extension posts from arbitrary job-site origins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 6. Define Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/auth/session", authHandler.Session)

		// Extension paths: session cookie or bearer token
		ext := api.Group("", auth.RequireSessionOrBearer(cfg.JWTSecret))
		{
			ext.POST("/scan", jobHandler.ScanJob)
			ext.POST("/extract", jobHandler.ExtractJob)
		}

		// Dashboard paths: session cookie only
		dash := api.Group("", auth.RequireSession(cfg.JWTSecret))
		{
			dash.GET("/jobs", jobHandler.ListJobs)
			dash.GET("/jobs/:id", jobHandler.GetJob)
			dash.DELETE("/jobs/:id", jobHandler.DeleteJob)
			dash.POST("/jobs/:id/analyze", jobHandler.AnalyzeJob)

			dash.GET("/applications", applicationHandler.List)
			dash.POST("/applications", applicationHandler.Create)
			dash.PUT("/applications/:id", applicationHandler.Update)
			dash.DELETE("/applications/:id", applicationHandler.Delete)
			dash.GET("/applications/:id/events", applicationHandler.Events)

			dash.GET("/profile", profileHandler.Get)
			dash.PUT("/profile", profileHandler.Update)
			dash.POST("/profile/resume", profileHandler.UploadResume)

			dash.GET("/metrics", metricsHandler.Summary)
		}
	}

	log.Printf("Server starting on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
