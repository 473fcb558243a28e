package service

import (
	"context"
	"testing"
	"time"

	"rcollier/ultra-tracker/internal/domain"
	"rcollier/ultra-tracker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPlanService_GetWeekWorkouts(t *testing.T) {
	weekRepo := newFakeWeekRepo()
	workoutRepo := newFakeWorkoutRepo()
	seedOriginalCalendar(t, weekRepo, workoutRepo)
	svc := NewPlanService(&fakePlanRepo{}, newFakePhaseRepo(), weekRepo, workoutRepo)
	ctx := context.Background()

	t.Run("existing week", func(t *testing.T) {
		workouts, err := svc.GetWeekWorkouts(ctx, 5)
		require.NoError(t, err)
		assert.Len(t, workouts, 7)
	})

	t.Run("week zero", func(t *testing.T) {
		workouts, err := svc.GetWeekWorkouts(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, workouts, 3)
	})

	t.Run("week outside calendar", func(t *testing.T) {
		_, err := svc.GetWeekWorkouts(ctx, 40)
		assert.ErrorIs(t, err, ErrWeekNotFound)
	})
}

func TestPlanService_GetOverview_NoActivePlan(t *testing.T) {
	svc := NewPlanService(&fakePlanRepo{}, newFakePhaseRepo(), newFakeWeekRepo(), newFakeWorkoutRepo())
	_, err := svc.GetOverview(context.Background())
	assert.ErrorIs(t, err, ErrNoActivePlan)
}

type fakeExerciseLogRepo struct {
	logs map[primitive.ObjectID]*domain.ExerciseLog
}

func newFakeExerciseLogRepo() *fakeExerciseLogRepo {
	return &fakeExerciseLogRepo{logs: make(map[primitive.ObjectID]*domain.ExerciseLog)}
}

func (r *fakeExerciseLogRepo) Create(_ context.Context, e *domain.ExerciseLog) (primitive.ObjectID, error) {
	e.ID = primitive.NewObjectID()
	cp := *e
	r.logs[e.ID] = &cp
	return e.ID, nil
}

func (r *fakeExerciseLogRepo) GetByWorkoutID(_ context.Context, workoutID primitive.ObjectID) ([]domain.ExerciseLog, error) {
	var out []domain.ExerciseLog
	for _, l := range r.logs {
		if l.WorkoutID == workoutID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeExerciseLogRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.logs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.logs, id)
	return nil
}

type fakeDailyLogRepo struct {
	logs []*domain.DailyLog
}

func (r *fakeDailyLogRepo) Create(_ context.Context, e *domain.DailyLog) (primitive.ObjectID, error) {
	e.ID = primitive.NewObjectID()
	cp := *e
	r.logs = append(r.logs, &cp)
	return e.ID, nil
}

func (r *fakeDailyLogRepo) ListByDateRange(_ context.Context, from, to time.Time) ([]domain.DailyLog, error) {
	var out []domain.DailyLog
	for _, l := range r.logs {
		if !l.Date.Before(from) && !l.Date.After(to) {
			out = append(out, *l)
		}
	}
	return out, nil
}

func TestLogService_RejectsStaleWorkoutReference(t *testing.T) {
	weekRepo := newFakeWeekRepo()
	workoutRepo := newFakeWorkoutRepo()
	seedOriginalCalendar(t, weekRepo, workoutRepo)
	svc := NewLogService(newFakeExerciseLogRepo(), &fakeDailyLogRepo{}, workoutRepo)

	_, err := svc.LogExerciseSet(context.Background(), &domain.ExerciseLog{
		WorkoutID:    primitive.NewObjectID(), // no such workout
		ExerciseName: "Back Squat",
		SetNumber:    1,
		Reps:         5,
	})
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestLogService_LogExerciseSet(t *testing.T) {
	weekRepo := newFakeWeekRepo()
	workoutRepo := newFakeWorkoutRepo()
	seedOriginalCalendar(t, weekRepo, workoutRepo)
	svc := NewLogService(newFakeExerciseLogRepo(), &fakeDailyLogRepo{}, workoutRepo)
	ctx := context.Background()

	target := workoutRepo.workouts[workoutKey{week: 8, day: "Tuesday"}]
	require.NotNil(t, target)

	saved, err := svc.LogExerciseSet(ctx, &domain.ExerciseLog{
		WorkoutID:    target.ID,
		ExerciseName: "Back Squat",
		SetNumber:    1,
		Reps:         5,
		WeightLbs:    135,
	})
	require.NoError(t, err)
	assert.False(t, saved.ID.IsZero())

	logs, err := svc.GetWorkoutLogs(ctx, target.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Back Squat", logs[0].ExerciseName)
}
