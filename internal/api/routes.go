package api

import (
	"net/http"

	"github.com/Pauljlane12/fitivabackend/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	planService service.PlanService,
	exerciseService service.ExerciseService,
) {
	authHandler := NewAuthHandler(authService)
	planHandler := NewPlanHandler(planService)
	exerciseHandler := NewExerciseHandler(exerciseService)

	authMiddleware := AuthMiddleware(jwtSecret)

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
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.GetMe)
		protected.PUT("/me/profile", authHandler.UpdateProfile)

		exerciseGroup := protected.Group("/exercises")
		{
			// GET /api/v1/exercises?muscle_group=glutes&equipment=dumbbell
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:name", exerciseHandler.GetExercise)
		}

		planGroup := protected.Group("/plans")
		{
			// POST /api/v1/plans/generate - stored profile used when the body is empty
			planGroup.POST("/generate", planHandler.GeneratePlan)
			// POST /api/v1/plans/summary - onboarding review text
			planGroup.POST("/summary", planHandler.GenerateSummary)
			// GET /api/v1/plans - generation history, newest first
			planGroup.GET("", planHandler.ListPlans)
			// GET /api/v1/plans/latest - most recent generated plan
			planGroup.GET("/latest", planHandler.GetLatestPlan)
		}
	}
}
