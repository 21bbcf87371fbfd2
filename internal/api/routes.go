package api

import (
	"net/http"

	"fitpulse/fitness-tracker/internal/domain"
	"fitpulse/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every handler into the gin engine.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	goalService service.GoalService,
	planService service.PlanService,
	generationService service.GenerationService,
	templateService service.TemplateService,
	workoutService service.WorkoutService,
	measurementService service.MeasurementService,
	profileService service.ProfileService,
) {
	authHandler := NewAuthHandler(authService)
	goalHandler := NewGoalHandler(goalService)
	planHandler := NewPlanHandler(planService)
	generationHandler := NewGenerationHandler(generationService)
	templateHandler := NewTemplateHandler(templateService)
	workoutHandler := NewWorkoutHandler(workoutService)
	measurementHandler := NewMeasurementHandler(measurementService)
	profileHandler := NewProfileHandler(profileService)

	router.Use(RequestIDMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(jwtSecret))
	{
		protected.GET("/me", authHandler.Me)

		goalGroup := protected.Group("/goals")
		{
			goalGroup.POST("", goalHandler.CreateGoal)
			goalGroup.GET("", goalHandler.ListGoals)
			goalGroup.GET("/:goalId", goalHandler.GetGoal)
			goalGroup.PUT("/:goalId", goalHandler.UpdateGoal)
			goalGroup.PUT("/:goalId/progress", goalHandler.UpdateGoalProgress)
			goalGroup.DELETE("/:goalId", goalHandler.DeleteGoal)
		}

		jobGroup := protected.Group("/plan-generation-jobs")
		{
			jobGroup.POST("", generationHandler.RequestGeneration)
			jobGroup.GET("/:jobId", generationHandler.GetJob)
		}

		planGroup := protected.Group("/plans")
		{
			planGroup.GET("", planHandler.ListPlans)
			planGroup.GET("/current-week", planHandler.CurrentWeek)
			planGroup.GET("/:planId", planHandler.GetPlan)
			planGroup.POST("/:planId/activate", planHandler.ActivatePlan)
			planGroup.POST("/:planId/complete", planHandler.CompletePlan)
			planGroup.POST("/:planId/archive", planHandler.ArchivePlan)
			planGroup.DELETE("/:planId", planHandler.DeletePlan)
		}

		templateGroup := protected.Group("/templates")
		{
			templateGroup.POST("", RoleMiddleware(domain.RoleUser, domain.RoleAdmin), templateHandler.CreateTemplate)
			templateGroup.GET("", templateHandler.ListTemplates)
			templateGroup.GET("/:templateId", templateHandler.GetTemplate)
			templateGroup.DELETE("/:templateId", RoleMiddleware(domain.RoleUser, domain.RoleAdmin), templateHandler.DeleteTemplate)
		}

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.LogWorkout)
			workoutGroup.GET("", workoutHandler.ListWorkouts)
		}

		measurementGroup := protected.Group("/measurements")
		{
			measurementGroup.POST("", measurementHandler.RecordMeasurement)
			measurementGroup.GET("/latest", measurementHandler.LatestMeasurement)
		}

		profileGroup := protected.Group("/profile")
		{
			profileGroup.GET("", profileHandler.GetProfile)
			profileGroup.PUT("", profileHandler.UpsertProfile)
		}
	}
}
