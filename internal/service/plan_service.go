package service

import (
	"context"
	"errors"

	"rcollier/ultra-tracker/internal/domain"
	"rcollier/ultra-tracker/internal/plan"
	"rcollier/ultra-tracker/internal/repository"
)

// --- Error Definitions ---
var (
	ErrWeekNotFound    = errors.New("week not found")
	ErrWorkoutNotFound = errors.New("workout not found")
)

// PlanOverview bundles the active plan with its phase records.
type PlanOverview struct {
	Plan   domain.TrainingPlan    `json:"plan"`
	Phases []domain.TrainingPhase `json:"phases"`
}

// --- Service Interface ---
type PlanService interface {
	GetOverview(ctx context.Context) (*PlanOverview, error)
	GetWeeks(ctx context.Context) ([]domain.WeeklyPlan, error)
	GetWeekWorkouts(ctx context.Context, weekNumber int) ([]domain.DailyWorkout, error)
}

// --- Service Implementation ---

// planService implements the PlanService interface.
type planService struct {
	planRepo    repository.TrainingPlanRepository
	phaseRepo   repository.TrainingPhaseRepository
	weekRepo    repository.WeeklyPlanRepository
	workoutRepo repository.DailyWorkoutRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	planRepo repository.TrainingPlanRepository,
	phaseRepo repository.TrainingPhaseRepository,
	weekRepo repository.WeeklyPlanRepository,
	workoutRepo repository.DailyWorkoutRepository,
) PlanService {
	return &planService{
		planRepo:    planRepo,
		phaseRepo:   phaseRepo,
		weekRepo:    weekRepo,
		workoutRepo: workoutRepo,
	}
}

// GetOverview returns the active plan and its phases.
func (s *planService) GetOverview(ctx context.Context) (*PlanOverview, error) {
	activePlan, err := s.planRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActivePlan
		}
		return nil, err
	}
	phases, err := s.phaseRepo.GetByPlanID(ctx, activePlan.ID)
	if err != nil {
		return nil, err
	}
	return &PlanOverview{Plan: *activePlan, Phases: phases}, nil
}

// GetWeeks returns all calendar weeks, Week Zero first.
func (s *planService) GetWeeks(ctx context.Context) ([]domain.WeeklyPlan, error) {
	return s.weekRepo.List(ctx)
}

// GetWeekWorkouts returns one week's daily workouts. The week must exist;
// weeks outside the calendar are a not-found, not an empty list. Note that
// plan.OriginalWeek's permissive fallback is deliberately not used here.
func (s *planService) GetWeekWorkouts(ctx context.Context, weekNumber int) ([]domain.DailyWorkout, error) {
	if weekNumber != 0 {
		if _, ok := plan.DescriptorForWeek(weekNumber); !ok {
			return nil, ErrWeekNotFound
		}
	}
	if _, err := s.weekRepo.GetByWeekNumber(ctx, weekNumber); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWeekNotFound
		}
		return nil, err
	}
	return s.workoutRepo.ListByWeekNumber(ctx, weekNumber)
}
