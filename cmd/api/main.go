package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/justsurfingit/job-apply-assistant/internal/auth"
	"github.com/justsurfingit/job-apply-assistant/internal/config"
	"github.com/justsurfingit/job-apply-assistant/internal/database"
	"github.com/justsurfingit/job-apply-assistant/internal/handlers"
	"github.com/justsurfingit/job-apply-assistant/internal/pipeline"
	"github.com/justsurfingit/job-apply-assistant/internal/services"
)

func main() {
	ctx := context.Background()

	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		log.Fatal("Failed to create uploads directory: ", err)
	}

	// 2. Local Job Store
	db, err := database.Connect(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	// 3. Initialize Core Services (Dependencies)
	jobService := services.NewJobService(db)
	scraperService := services.NewScraperService(jobService, cfg)
	letterService, err := services.NewLetterService(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to create letter service: ", err)
	}
	emailService := services.NewEmailService(cfg)

	// 4. Initialize Sheets Tracker
	// The OAuth flow yields a ready client handle; with no spreadsheet
	// configured (or a failed login) tracking is disabled gracefully.
	var trackerService *services.TrackerService
	if cfg.SpreadsheetID != "" {
		log.Println("Initializing Google Sheets Client...")
		httpClient, err := auth.GetSheetsClient(ctx)
		if err != nil {
			log.Printf("⚠️  Sheets authentication failed: %v", err)
		} else {
			sheetsClient, err := services.NewGoogleSheetsClient(ctx, httpClient, cfg.SpreadsheetID, cfg.SheetName)
			if err != nil {
				log.Printf("⚠️  Failed to create Sheets service: %v", err)
			} else {
				trackerService = services.NewTrackerService(sheetsClient)
				log.Println("✅ Sheets tracker connected successfully.")
			}
		}
	} else {
		log.Println("⚠️ Tracker disabled (no SPREADSHEET_ID). Applications will not be logged.")
	}

	// 5. Assemble the Pipeline
	deps := pipeline.Deps{
		Fetcher: scraperService,
		Letters: letterService,
		Email:   emailService,
	}
	if trackerService != nil {
		deps.Tracker = trackerService
	}
	pipe := pipeline.New(deps)

	// 6. Initialize Handlers
	jobHandler := handlers.NewJobHandler(scraperService, jobService, letterService, cfg.UploadsDir)
	var tracker handlers.Tracker
	if trackerService != nil {
		tracker = trackerService
	}
	appHandler := handlers.NewApplicationHandler(jobService, letterService, emailService, tracker, cfg.UploadsDir, cfg.LettersDir)
	pipelineHandler := handlers.NewPipelineHandler(pipe, cfg.UploadsDir)

	// 7. Setup Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true // For development only
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 8. Define Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		// Fetch stage
		api.POST("/jobs/search", jobHandler.SearchJobs)
		api.GET("/jobs", jobHandler.ListJobs)
		api.GET("/jobs/export", jobHandler.ExportJobs)

		// Generate stage
		api.POST("/cv", jobHandler.UploadCV)
		api.POST("/letters", jobHandler.GenerateLetter)

		// Send + track stages
		api.POST("/applications/send", appHandler.SendApplication)
		api.GET("/applications", appHandler.ListApplications)
		api.POST("/applications", appHandler.CreateApplication)

		// Full run
		api.POST("/pipeline/run", pipelineHandler.RunPipeline)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server starting on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
