package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitpulse/fitness-tracker/internal/aiplan"
	"fitpulse/fitness-tracker/internal/api"
	"fitpulse/fitness-tracker/internal/config"
	"fitpulse/fitness-tracker/internal/repository/mongo"
	"fitpulse/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("starting fitness tracker server")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Fatal("could not connect to MongoDB", zap.Error(err))
	}
	defer func() {
		logger.Info("disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Error("failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info("database connection established", zap.String("database", cfg.Database.Name))

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureGoalIndexes(ctx, appDB.Collection("goals"))
		mongo.EnsureTemplateIndexes(ctx, appDB.Collection("workout_templates"))
		mongo.EnsurePlanIndexes(ctx, appDB.Collection("workout_plans"), appDB.Collection("workout_plan_sessions"))
		mongo.EnsureJobIndexes(ctx, appDB.Collection("plan_generation_jobs"))
		mongo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts"))
		mongo.EnsureMeasurementIndexes(ctx, appDB.Collection("measurements"))
		mongo.EnsureProfileIndexes(ctx, appDB.Collection("profiles"))
		logger.Info("index creation process completed")
	}()

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	goalRepo := mongo.NewMongoGoalRepository(appDB)
	templateRepo := mongo.NewMongoTemplateRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	jobRepo := mongo.NewMongoJobRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	measurementRepo := mongo.NewMongoMeasurementRepository(appDB)
	profileRepo := mongo.NewMongoProfileRepository(appDB)

	// --- Optional AI plan source ---
	var aiSource aiplan.ExternalPlanSource
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		gemini, err := aiplan.NewGeminiSource(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL, logger)
		if err != nil {
			logger.Fatal("failed to initialize Gemini plan source", zap.Error(err))
		}
		aiSource = gemini
		logger.Info("AI plan source enabled", zap.String("model", cfg.AI.Model))
	} else {
		logger.Info("AI plan source disabled, using deterministic engine")
	}

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	goalService := service.NewGoalService(goalRepo)
	templateService := service.NewTemplateService(templateRepo)
	planService := service.NewPlanService(planRepo)
	workoutService := service.NewWorkoutService(workoutRepo)
	measurementService := service.NewMeasurementService(measurementRepo)
	profileService := service.NewProfileService(profileRepo)
	generationService := service.NewGenerationService(
		goalRepo,
		planRepo,
		jobRepo,
		templateRepo,
		workoutRepo,
		measurementRepo,
		profileRepo,
		aiSource,
		cfg.Generation.Timeout,
		logger,
	)

	// --- Initialize Gin Engine ---
	router := gin.Default()

	// --- Setup Routes ---
	api.SetupRoutes(
		router,
		cfg.JWT.Secret,
		authService,
		goalService,
		planService,
		generationService,
		templateService,
		workoutService,
		measurementService,
		profileService,
	)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logger.Info("server starting", zap.String("address", cfg.Server.Address))

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("ListenAndServe error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
