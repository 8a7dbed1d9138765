package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"cresocrm/internal/caching"
	"cresocrm/internal/handlers"
	"cresocrm/internal/jobs"
	"cresocrm/internal/repositories"
	"cresocrm/internal/services"
	"cresocrm/pkg/database"
)

const version = "1.0.0"

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(context.Background(), databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := repositories.InitSchema(context.Background(), pool); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// Create repositories
	distributorRepo := repositories.NewDistributorRepository(pool)
	fieldRepo := repositories.NewDynamicFieldRepository(pool)
	noteRepo := repositories.NewNoteRepository(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	distributorSvc := services.NewDistributorService(distributorRepo, fieldRepo, cacheSvc)
	fieldSvc := services.NewDynamicFieldService(fieldRepo)
	noteSvc := services.NewNoteService(noteRepo)

	// Create handlers
	distributorHandlers := handlers.NewDistributorHandlers(distributorSvc)
	fieldHandlers := handlers.NewFieldHandlers(fieldSvc)
	noteHandlers := handlers.NewNoteHandlers(noteSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background follow-up scan
	followUpSvc := jobs.NewFollowUpReminderService(distributorRepo)
	scheduler, err := jobs.NewJobScheduler(followUpSvc)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// Distributor routes
	e.GET("/distributors", distributorHandlers.ListDistributors)
	e.POST("/distributors", distributorHandlers.CreateDistributor)
	e.GET("/distributors/:id", distributorHandlers.GetDistributor)
	e.PUT("/distributors/:id", distributorHandlers.UpdateDistributor)
	e.DELETE("/distributors/:id", distributorHandlers.DeleteDistributor)

	// Dynamic field registry routes
	e.GET("/fields", fieldHandlers.ListFields)
	e.POST("/fields", fieldHandlers.CreateField)

	// Note routes
	e.POST("/notes", noteHandlers.CreateNote)
	e.GET("/notes/:distributorId", noteHandlers.ListNotes)

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Distributor CRM server v%s starting on port %d", version, port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
