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

	"rcollier/ultra-tracker/internal/api"
	"rcollier/ultra-tracker/internal/config"
	"rcollier/ultra-tracker/internal/repository/mongo"
	"rcollier/ultra-tracker/internal/service"
	"rcollier/ultra-tracker/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Ultra Tracker Server...")

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

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureTrainingPlanIndexes(ctx, appDB.Collection("training_plans"))
		mongo.EnsureTrainingPhaseIndexes(ctx, appDB.Collection("training_phases"))
		mongo.EnsureWeeklyPlanIndexes(ctx, appDB.Collection("weekly_plans"))
		mongo.EnsureDailyWorkoutIndexes(ctx, appDB.Collection("daily_workouts"))
		mongo.EnsureExerciseLogIndexes(ctx, appDB.Collection("exercise_logs"))
		mongo.EnsureDailyLogIndexes(ctx, appDB.Collection("daily_logs"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Snapshot Archive ---
	var archive storage.SnapshotArchive
	if cfg.Snapshot.Enabled {
		log.Println("Initializing snapshot archive...")
		archive, err = storage.NewS3Archive(cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 snapshot archive: %v", err)
		}
	} else {
		log.Println("Snapshot archive disabled by config.")
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	planRepo := mongo.NewMongoTrainingPlanRepository(appDB)
	phaseRepo := mongo.NewMongoTrainingPhaseRepository(appDB)
	weekRepo := mongo.NewMongoWeeklyPlanRepository(appDB)
	workoutRepo := mongo.NewMongoDailyWorkoutRepository(appDB)
	exerciseLogRepo := mongo.NewMongoExerciseLogRepository(appDB)
	dailyLogRepo := mongo.NewMongoDailyLogRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	reconfigureService, err := service.NewReconfigureService(planRepo, phaseRepo, weekRepo, workoutRepo, archive, cfg.Snapshot.KeyPrefix)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}
	planService := service.NewPlanService(planRepo, phaseRepo, weekRepo, workoutRepo)
	logService := service.NewLogService(exerciseLogRepo, dailyLogRepo, workoutRepo)

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, reconfigureService, planService, logService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second, // reconfiguration is one long request
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
