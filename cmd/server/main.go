package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pauljlane12/fitivabackend/internal/api"
	"github.com/Pauljlane12/fitivabackend/internal/catalog"
	"github.com/Pauljlane12/fitivabackend/internal/config"
	"github.com/Pauljlane12/fitivabackend/internal/llm"
	"github.com/Pauljlane12/fitivabackend/internal/repository/mongo"
	"github.com/Pauljlane12/fitivabackend/internal/service"
	"github.com/Pauljlane12/fitivabackend/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Fitiva backend...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)

	// --- Ensure Indexes & Seed Catalog ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))
		mongo.EnsurePlanIndexes(ctx, appDB.Collection("plans"))

		exercises, err := catalog.Default()
		if err != nil {
			log.Printf("ERROR: Failed to load embedded exercise catalog: %v", err)
			return
		}
		if err := mongo.SeedCatalog(ctx, exerciseRepo, exercises); err != nil {
			log.Printf("ERROR: Failed to seed exercise catalog: %v", err)
			return
		}
		log.Println("Index creation and catalog seeding completed.")
	}()

	// --- Initialize Artifact Storage ---
	// Optional: without a bucket the server runs, it just doesn't archive
	// failed generation output.
	var artifacts storage.ArtifactStorage
	if cfg.S3.BucketName != "" {
		log.Println("Initializing artifact storage...")
		artifacts, err = storage.NewS3Storage(cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 artifact storage: %v", err)
		}
	} else {
		log.Println("No S3 bucket configured; generation failure archiving disabled.")
	}

	// --- Initialize Generation Client ---
	generator := llm.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Timeout)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	exerciseService := service.NewExerciseService(exerciseRepo)
	planService := service.NewPlanService(exerciseRepo, userRepo, planRepo, generator, artifacts, cfg.OpenAI, cfg.Generation.MaxAttempts)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, planService, exerciseService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute, // generation may spend several model calls
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
