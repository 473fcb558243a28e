package repository

import (
	"context"
	"time"

	"rcollier/ultra-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// TrainingPlanRepository defines the interface for the top-level plan record.
type TrainingPlanRepository interface {
	GetActive(ctx context.Context) (*domain.TrainingPlan, error)
	Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error)
	Update(ctx context.Context, plan *domain.TrainingPlan) error
}

// TrainingPhaseRepository defines the interface for phase records.
type TrainingPhaseRepository interface {
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.TrainingPhase, error)
	Create(ctx context.Context, phase *domain.TrainingPhase) (primitive.ObjectID, error)
	// UpdateByName rewrites the dates and week count of the plan's phase
	// matched by phase.Name.
	UpdateByName(ctx context.Context, planID primitive.ObjectID, phase *domain.TrainingPhase) error
}

// WeeklyPlanRepository defines the interface for the generated week calendar.
type WeeklyPlanRepository interface {
	List(ctx context.Context) ([]domain.WeeklyPlan, error)
	GetByWeekNumber(ctx context.Context, weekNumber int) (*domain.WeeklyPlan, error)
	// Upsert writes the week keyed by its weekNumber, preserving the row's
	// identity when one already exists. Returns the row's (stable) id.
	Upsert(ctx context.Context, week *domain.WeeklyPlan) (primitive.ObjectID, error)
	// DeleteAboveWeek removes all weeks with weekNumber > max.
	DeleteAboveWeek(ctx context.Context, max int) error
}

// DailyWorkoutRepository defines the interface for daily workout rows.
type DailyWorkoutRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DailyWorkout, error)
	ListByWeekNumber(ctx context.Context, weekNumber int) ([]domain.DailyWorkout, error)
	ListAll(ctx context.Context) ([]domain.DailyWorkout, error)
	// Upsert writes the workout keyed by (weekNumber, dayOfWeek), preserving
	// the row's identity when one already exists.
	Upsert(ctx context.Context, workout *domain.DailyWorkout) (primitive.ObjectID, error)
	// DeleteWeekDaysExcept removes the week's workouts whose dayOfWeek is not
	// in keep (days the regenerated week no longer has).
	DeleteWeekDaysExcept(ctx context.Context, weekNumber int, keep []string) error
	DeleteAboveWeek(ctx context.Context, max int) error
}

// ExerciseLogRepository defines the interface for user-entered set logs.
// Reconfiguration never writes here.
type ExerciseLogRepository interface {
	Create(ctx context.Context, entry *domain.ExerciseLog) (primitive.ObjectID, error)
	GetByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.ExerciseLog, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// DailyLogRepository defines the interface for user-entered day summaries.
type DailyLogRepository interface {
	Create(ctx context.Context, entry *domain.DailyLog) (primitive.ObjectID, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.DailyLog, error)
}
