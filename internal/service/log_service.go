package service

import (
	"context"
	"errors"
	"time"

	"rcollier/ultra-tracker/internal/domain"
	"rcollier/ultra-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrLogNotFound      = errors.New("log entry not found")
	ErrValidationFailed = errors.New("validation failed")
)

// --- Service Interface ---
type LogService interface {
	LogExerciseSet(ctx context.Context, entry *domain.ExerciseLog) (*domain.ExerciseLog, error)
	GetWorkoutLogs(ctx context.Context, workoutID primitive.ObjectID) ([]domain.ExerciseLog, error)
	DeleteExerciseLog(ctx context.Context, id primitive.ObjectID) error
	LogDay(ctx context.Context, entry *domain.DailyLog) (*domain.DailyLog, error)
	GetDailyLogs(ctx context.Context, from, to time.Time) ([]domain.DailyLog, error)
}

// --- Service Implementation ---

// logService implements the LogService interface.
type logService struct {
	exerciseLogRepo repository.ExerciseLogRepository
	dailyLogRepo    repository.DailyLogRepository
	workoutRepo     repository.DailyWorkoutRepository
}

// NewLogService creates a new instance of logService.
func NewLogService(
	exerciseLogRepo repository.ExerciseLogRepository,
	dailyLogRepo repository.DailyLogRepository,
	workoutRepo repository.DailyWorkoutRepository,
) LogService {
	return &logService{
		exerciseLogRepo: exerciseLogRepo,
		dailyLogRepo:    dailyLogRepo,
		workoutRepo:     workoutRepo,
	}
}

// LogExerciseSet records one completed set against a workout. The workout
// must exist; logs against stale ids are rejected rather than stored orphaned.
func (s *logService) LogExerciseSet(ctx context.Context, entry *domain.ExerciseLog) (*domain.ExerciseLog, error) {
	if entry.WorkoutID == primitive.NilObjectID || entry.ExerciseName == "" || entry.SetNumber < 1 {
		return nil, ErrValidationFailed
	}
	if _, err := s.workoutRepo.GetByID(ctx, entry.WorkoutID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	id, err := s.exerciseLogRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	return entry, nil
}

// GetWorkoutLogs returns the set history for one workout.
func (s *logService) GetWorkoutLogs(ctx context.Context, workoutID primitive.ObjectID) ([]domain.ExerciseLog, error) {
	if workoutID == primitive.NilObjectID {
		return nil, ErrValidationFailed
	}
	return s.exerciseLogRepo.GetByWorkoutID(ctx, workoutID)
}

// DeleteExerciseLog removes one set entry.
func (s *logService) DeleteExerciseLog(ctx context.Context, id primitive.ObjectID) error {
	if id == primitive.NilObjectID {
		return ErrValidationFailed
	}
	err := s.exerciseLogRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrLogNotFound
	}
	return err
}

// LogDay records an actual day summary (miles run, vert gained).
func (s *logService) LogDay(ctx context.Context, entry *domain.DailyLog) (*domain.DailyLog, error) {
	if entry.Date.IsZero() {
		return nil, ErrValidationFailed
	}
	id, err := s.dailyLogRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	return entry, nil
}

// GetDailyLogs returns day summaries within the inclusive date range.
func (s *logService) GetDailyLogs(ctx context.Context, from, to time.Time) ([]domain.DailyLog, error) {
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return nil, ErrValidationFailed
	}
	return s.dailyLogRepo.ListByDateRange(ctx, from, to)
}
