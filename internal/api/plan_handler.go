package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"rcollier/ultra-tracker/internal/domain"
	"rcollier/ultra-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs ---

// WeeklyPlanResponse is the DTO for one calendar week.
type WeeklyPlanResponse struct {
	ID          string    `json:"id"`
	WeekNumber  int       `json:"weekNumber"`
	Phase       string    `json:"phase"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Theme       string    `json:"theme,omitempty"`
	BlockType   string    `json:"blockType,omitempty"`
	TargetMiles float64   `json:"targetMiles"`
	TargetVert  float64   `json:"targetVert"`
}

// MapWeekToResponse converts a domain.WeeklyPlan to WeeklyPlanResponse DTO.
func MapWeekToResponse(w *domain.WeeklyPlan) WeeklyPlanResponse {
	if w == nil {
		return WeeklyPlanResponse{}
	}
	return WeeklyPlanResponse{
		ID:          w.ID.Hex(),
		WeekNumber:  w.WeekNumber,
		Phase:       string(w.Phase),
		StartDate:   w.StartDate,
		EndDate:     w.EndDate,
		Theme:       w.Theme,
		BlockType:   w.BlockType,
		TargetMiles: w.TargetMiles,
		TargetVert:  w.TargetVert,
	}
}

// MapWeeksToResponse converts a slice of domain.WeeklyPlan to DTOs.
func MapWeeksToResponse(weeks []domain.WeeklyPlan) []WeeklyPlanResponse {
	responses := make([]WeeklyPlanResponse, len(weeks))
	for i, w := range weeks {
		responses[i] = MapWeekToResponse(&w)
	}
	return responses
}

// --- Handler Methods ---

// GetPlan handles GET /api/plan: the active plan with its phases.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	overview, err := h.planService.GetOverview(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoActivePlan) {
			abortWithError(c, http.StatusNotFound, "No active training plan.")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plan.")
		return
	}
	c.JSON(http.StatusOK, overview)
}

// GetWeeks handles GET /api/weeks: all calendar weeks, Week Zero first.
func (h *PlanHandler) GetWeeks(c *gin.Context) {
	weeks, err := h.planService.GetWeeks(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve weeks.")
		return
	}
	c.JSON(http.StatusOK, MapWeeksToResponse(weeks))
}

// GetWeekWorkouts handles GET /api/weeks/:weekNumber/workouts.
func (h *PlanHandler) GetWeekWorkouts(c *gin.Context) {
	weekNumber, err := strconv.Atoi(c.Param("weekNumber"))
	if err != nil || weekNumber < 0 {
		abortWithError(c, http.StatusBadRequest, "Invalid week number.")
		return
	}

	workouts, err := h.planService.GetWeekWorkouts(c.Request.Context(), weekNumber)
	if err != nil {
		if errors.Is(err, service.ErrWeekNotFound) {
			abortWithError(c, http.StatusNotFound, "Week not found.")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workouts.")
		return
	}
	if workouts == nil {
		c.JSON(http.StatusOK, []domain.DailyWorkout{})
		return
	}
	c.JSON(http.StatusOK, workouts)
}
