package api

import (
	"errors"
	"net/http"
	"time"

	"rcollier/ultra-tracker/internal/domain"
	"rcollier/ultra-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogHandler holds the log service dependency.
type LogHandler struct {
	logService service.LogService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(logService service.LogService) *LogHandler {
	return &LogHandler{logService: logService}
}

// --- DTOs ---

// LogExerciseSetRequest defines the expected JSON for recording one set.
type LogExerciseSetRequest struct {
	WorkoutID    string  `json:"workoutId" binding:"required"`
	ExerciseName string  `json:"exerciseName" binding:"required"`
	SetNumber    int     `json:"setNumber" binding:"required,min=1"`
	Reps         int     `json:"reps" binding:"required,min=1"`
	WeightLbs    float64 `json:"weightLbs" binding:"omitempty,min=0"`
	Notes        string  `json:"notes"`
}

// LogDayRequest defines the expected JSON for recording a day summary.
type LogDayRequest struct {
	Date      string  `json:"date" binding:"required"` // ISO date
	WorkoutID string  `json:"workoutId"`
	Miles     float64 `json:"miles" binding:"omitempty,min=0"`
	VertFeet  float64 `json:"vertFeet" binding:"omitempty,min=0"`
	Feeling   string  `json:"feeling"`
	Notes     string  `json:"notes"`
}

// --- Handler Methods ---

// LogExerciseSet handles POST /api/logs/exercise.
func (h *LogHandler) LogExerciseSet(c *gin.Context) {
	var req LogExerciseSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	workoutID, err := primitive.ObjectIDFromHex(req.WorkoutID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format.")
		return
	}

	entry := &domain.ExerciseLog{
		WorkoutID:    workoutID,
		ExerciseName: req.ExerciseName,
		SetNumber:    req.SetNumber,
		Reps:         req.Reps,
		WeightLbs:    req.WeightLbs,
		Notes:        req.Notes,
	}
	saved, err := h.logService.LogExerciseSet(c.Request.Context(), entry)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrWorkoutNotFound):
			abortWithError(c, http.StatusNotFound, "Workout not found.")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to record set.")
		}
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// GetWorkoutLogs handles GET /api/workouts/:id/logs.
func (h *LogHandler) GetWorkoutLogs(c *gin.Context) {
	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format.")
		return
	}

	logs, err := h.logService.GetWorkoutLogs(c.Request.Context(), workoutID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve logs.")
		return
	}
	if logs == nil {
		c.JSON(http.StatusOK, []domain.ExerciseLog{})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// DeleteExerciseLog handles DELETE /api/logs/exercise/:id.
func (h *LogHandler) DeleteExerciseLog(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid log ID format.")
		return
	}
	if err := h.logService.DeleteExerciseLog(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrLogNotFound) {
			abortWithError(c, http.StatusNotFound, "Log entry not found.")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to delete log entry.")
		return
	}
	c.Status(http.StatusNoContent)
}

// LogDay handles POST /api/logs/daily.
func (h *LogHandler) LogDay(c *gin.Context) {
	var req LogDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	date, err := time.Parse(isoDateLayout, req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "date must be a valid ISO date (YYYY-MM-DD)")
		return
	}

	entry := &domain.DailyLog{
		Date:     date,
		Miles:    req.Miles,
		VertFeet: req.VertFeet,
		Feeling:  req.Feeling,
		Notes:    req.Notes,
	}
	if req.WorkoutID != "" {
		workoutID, err := primitive.ObjectIDFromHex(req.WorkoutID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid workout ID format.")
			return
		}
		entry.WorkoutID = workoutID
	}

	saved, err := h.logService.LogDay(c.Request.Context(), entry)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to record day.")
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// GetDailyLogs handles GET /api/logs/daily?from=...&to=...
func (h *LogHandler) GetDailyLogs(c *gin.Context) {
	from, err := time.Parse(isoDateLayout, c.Query("from"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "from must be a valid ISO date (YYYY-MM-DD)")
		return
	}
	to, err := time.Parse(isoDateLayout, c.Query("to"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "to must be a valid ISO date (YYYY-MM-DD)")
		return
	}

	logs, err := h.logService.GetDailyLogs(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve logs.")
		return
	}
	if logs == nil {
		c.JSON(http.StatusOK, []domain.DailyLog{})
		return
	}
	c.JSON(http.StatusOK, logs)
}
