package api

import (
	"net/http"

	"rcollier/ultra-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	reconfigureService service.ReconfigureService,
	planService service.PlanService,
	logService service.LogService,
) {
	reconfigureHandler := NewReconfigureHandler(reconfigureService)
	planHandler := NewPlanHandler(planService)
	logHandler := NewLogHandler(logService)

	// Keepalive for the hosting platform's cron pinger.
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiGroup := router.Group("/api")
	{
		// --- Plan Reconfiguration ---
		apiGroup.POST("/reconfigure-plan", reconfigureHandler.ReconfigurePlan)

		// --- Plan & Calendar ---
		apiGroup.GET("/plan", planHandler.GetPlan)
		apiGroup.GET("/weeks", planHandler.GetWeeks)
		apiGroup.GET("/weeks/:weekNumber/workouts", planHandler.GetWeekWorkouts)

		// --- Workout Logging ---
		logGroup := apiGroup.Group("/logs")
		{
			logGroup.POST("/exercise", logHandler.LogExerciseSet)
			logGroup.DELETE("/exercise/:id", logHandler.DeleteExerciseLog)
			logGroup.POST("/daily", logHandler.LogDay)
			logGroup.GET("/daily", logHandler.GetDailyLogs)
		}
		apiGroup.GET("/workouts/:id/logs", logHandler.GetWorkoutLogs)
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}
