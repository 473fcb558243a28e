package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"rcollier/ultra-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ReconfigureHandler holds the reconfigure service dependency.
type ReconfigureHandler struct {
	reconfigureService service.ReconfigureService
}

// NewReconfigureHandler creates a new ReconfigureHandler.
func NewReconfigureHandler(reconfigureService service.ReconfigureService) *ReconfigureHandler {
	return &ReconfigureHandler{reconfigureService: reconfigureService}
}

// --- DTOs ---

// ReconfigurePlanRequest defines the expected JSON for a reconfiguration.
type ReconfigurePlanRequest struct {
	RaceDate  string `json:"raceDate" binding:"required"`  // ISO date, e.g. "2026-09-07"
	StartDate string `json:"startDate" binding:"required"` // ISO date, e.g. "2026-02-02"
}

// ReconfigureDetails is the details payload of a reconfiguration response.
type ReconfigureDetails struct {
	TotalWeeks int    `json:"totalWeeks"`
	StartDate  string `json:"startDate"`
	RaceDate   string `json:"raceDate"`
}

// ReconfigurePlanResponse is returned for both success and internal failure.
type ReconfigurePlanResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Error   string              `json:"error,omitempty"`
	Details *ReconfigureDetails `json:"details,omitempty"`
}

const isoDateLayout = "2006-01-02"

// ReconfigurePlan handles POST /api/reconfigure-plan. Date validation lives
// here at the boundary; the engine itself assumes valid inputs.
func (h *ReconfigureHandler) ReconfigurePlan(c *gin.Context) {
	var req ReconfigurePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "raceDate and startDate are required")
		return
	}

	raceDate, err := time.Parse(isoDateLayout, req.RaceDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "raceDate must be a valid ISO date (YYYY-MM-DD)")
		return
	}
	startDate, err := time.Parse(isoDateLayout, req.StartDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "startDate must be a valid ISO date (YYYY-MM-DD)")
		return
	}
	if !raceDate.After(time.Now()) {
		abortWithError(c, http.StatusBadRequest, "raceDate must be in the future")
		return
	}
	if !raceDate.After(startDate) {
		abortWithError(c, http.StatusBadRequest, "raceDate must be after startDate")
		return
	}

	result, err := h.reconfigureService.Reconfigure(c.Request.Context(), raceDate, startDate)
	if err != nil {
		log.Printf("ERROR: Plan reconfiguration failed: %v", err)
		status := http.StatusInternalServerError
		msg := "Failed to reconfigure plan"
		if errors.Is(err, service.ErrNoActivePlan) {
			msg = service.ErrNoActivePlan.Error()
		}
		c.JSON(status, ReconfigurePlanResponse{
			Success: false,
			Message: msg,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ReconfigurePlanResponse{
		Success: true,
		Message: "Plan reconfigured successfully",
		Details: &ReconfigureDetails{
			TotalWeeks: result.TotalWeeks,
			StartDate:  result.StartDate.Format(isoDateLayout),
			RaceDate:   result.RaceDate.Format(isoDateLayout),
		},
	})
}
