package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"testing"
	"time"

	"rcollier/ultra-tracker/internal/domain"
	"rcollier/ultra-tracker/internal/plan"
	"rcollier/ultra-tracker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- In-memory repository fakes ---

type fakePlanRepo struct {
	plan *domain.TrainingPlan
}

func (r *fakePlanRepo) GetActive(_ context.Context) (*domain.TrainingPlan, error) {
	if r.plan == nil {
		return nil, repository.ErrNotFound
	}
	cp := *r.plan
	return &cp, nil
}

func (r *fakePlanRepo) Create(_ context.Context, p *domain.TrainingPlan) (primitive.ObjectID, error) {
	p.ID = primitive.NewObjectID()
	cp := *p
	r.plan = &cp
	return p.ID, nil
}

func (r *fakePlanRepo) Update(_ context.Context, p *domain.TrainingPlan) error {
	if r.plan == nil || r.plan.ID != p.ID {
		return repository.ErrNotFound
	}
	cp := *p
	r.plan = &cp
	return nil
}

type fakePhaseRepo struct {
	phases map[domain.Phase]*domain.TrainingPhase
}

func newFakePhaseRepo() *fakePhaseRepo {
	return &fakePhaseRepo{phases: make(map[domain.Phase]*domain.TrainingPhase)}
}

func (r *fakePhaseRepo) GetByPlanID(_ context.Context, planID primitive.ObjectID) ([]domain.TrainingPhase, error) {
	var out []domain.TrainingPhase
	for _, p := range r.phases {
		if p.PlanID == planID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (r *fakePhaseRepo) Create(_ context.Context, p *domain.TrainingPhase) (primitive.ObjectID, error) {
	p.ID = primitive.NewObjectID()
	cp := *p
	r.phases[p.Name] = &cp
	return p.ID, nil
}

func (r *fakePhaseRepo) UpdateByName(_ context.Context, planID primitive.ObjectID, p *domain.TrainingPhase) error {
	existing, ok := r.phases[p.Name]
	if !ok || existing.PlanID != planID {
		return repository.ErrNotFound
	}
	existing.StartDate = p.StartDate
	existing.EndDate = p.EndDate
	existing.WeekCount = p.WeekCount
	return nil
}

type fakeWeekRepo struct {
	weeks      map[int]*domain.WeeklyPlan
	failOnWeek int // Upsert fails for this week number when non-zero
}

func newFakeWeekRepo() *fakeWeekRepo {
	return &fakeWeekRepo{weeks: make(map[int]*domain.WeeklyPlan)}
}

func (r *fakeWeekRepo) List(_ context.Context) ([]domain.WeeklyPlan, error) {
	out := make([]domain.WeeklyPlan, 0, len(r.weeks))
	for _, w := range r.weeks {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekNumber < out[j].WeekNumber })
	return out, nil
}

func (r *fakeWeekRepo) GetByWeekNumber(_ context.Context, n int) (*domain.WeeklyPlan, error) {
	w, ok := r.weeks[n]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWeekRepo) Upsert(_ context.Context, week *domain.WeeklyPlan) (primitive.ObjectID, error) {
	if r.failOnWeek != 0 && week.WeekNumber == r.failOnWeek {
		return primitive.NilObjectID, fmt.Errorf("simulated write failure")
	}
	if existing, ok := r.weeks[week.WeekNumber]; ok {
		week.ID = existing.ID
		week.CreatedAt = existing.CreatedAt
	} else {
		week.ID = primitive.NewObjectID()
	}
	cp := *week
	r.weeks[week.WeekNumber] = &cp
	return week.ID, nil
}

func (r *fakeWeekRepo) DeleteAboveWeek(_ context.Context, max int) error {
	for n := range r.weeks {
		if n > max {
			delete(r.weeks, n)
		}
	}
	return nil
}

type workoutKey struct {
	week int
	day  string
}

type fakeWorkoutRepo struct {
	workouts   map[workoutKey]*domain.DailyWorkout
	failOnWeek int
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{workouts: make(map[workoutKey]*domain.DailyWorkout)}
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.DailyWorkout, error) {
	for _, w := range r.workouts {
		if w.ID == id {
			cp := *w
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeWorkoutRepo) ListByWeekNumber(_ context.Context, n int) ([]domain.DailyWorkout, error) {
	var out []domain.DailyWorkout
	for k, w := range r.workouts {
		if k.week == n {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WorkoutDate.Before(out[j].WorkoutDate) })
	return out, nil
}

func (r *fakeWorkoutRepo) ListAll(_ context.Context) ([]domain.DailyWorkout, error) {
	out := make([]domain.DailyWorkout, 0, len(r.workouts))
	for _, w := range r.workouts {
		out = append(out, *w)
	}
	return out, nil
}

func (r *fakeWorkoutRepo) Upsert(_ context.Context, workout *domain.DailyWorkout) (primitive.ObjectID, error) {
	if r.failOnWeek != 0 && workout.WeekNumber == r.failOnWeek {
		return primitive.NilObjectID, fmt.Errorf("simulated write failure")
	}
	key := workoutKey{week: workout.WeekNumber, day: workout.DayOfWeek}
	if existing, ok := r.workouts[key]; ok {
		workout.ID = existing.ID
		workout.CreatedAt = existing.CreatedAt
	} else {
		workout.ID = primitive.NewObjectID()
	}
	cp := *workout
	r.workouts[key] = &cp
	return workout.ID, nil
}

func (r *fakeWorkoutRepo) DeleteWeekDaysExcept(_ context.Context, weekNumber int, keep []string) error {
	keepSet := make(map[string]bool, len(keep))
	for _, d := range keep {
		keepSet[d] = true
	}
	for k := range r.workouts {
		if k.week == weekNumber && !keepSet[k.day] {
			delete(r.workouts, k)
		}
	}
	return nil
}

func (r *fakeWorkoutRepo) DeleteAboveWeek(_ context.Context, max int) error {
	for k := range r.workouts {
		if k.week > max {
			delete(r.workouts, k)
		}
	}
	return nil
}

type fakeArchive struct {
	objects map[string][]byte
}

func newFakeArchive() *fakeArchive {
	return &fakeArchive{objects: make(map[string][]byte)}
}

func (a *fakeArchive) PutSnapshot(_ context.Context, key string, data []byte) error {
	a.objects[key] = data
	return nil
}

func (a *fakeArchive) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://example.test/" + key, nil
}

func (a *fakeArchive) DeleteSnapshot(_ context.Context, key string) error {
	delete(a.objects, key)
	return nil
}

// --- Seed data ---

var testStart = time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC)
var testRace = time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)

// seededDays returns the authored day names for an original week. Week 12 is
// deliberately sparse to exercise the skip-missing-days path.
func seededDays(week int) []string {
	if week == 12 {
		return []string{"Monday", "Wednesday", "Saturday"}
	}
	return domain.DayNames[:]
}

func seedWorkout(week int, day string, dayIdx int) domain.DailyWorkout {
	w := domain.DailyWorkout{
		WeekNumber: week,
		DayOfWeek:  day,
		Title:      fmt.Sprintf("W%d %s session", week, day),
		Notes:      fmt.Sprintf("authored notes for week %d %s", week, day),
	}
	switch {
	case day == "Sunday":
		w.Type = domain.WorkoutRest
	case dayIdx%3 == 1:
		w.Type = domain.WorkoutStrength
		w.Exercises = []domain.StrengthExercise{
			{Name: "Back Squat", Sets: 4, Reps: "5", Weight: fmt.Sprintf("%d lbs", 100+week)},
			{Name: "Step Ups", Sets: 3, Reps: "8-10", Notes: "weighted"},
		}
	default:
		w.Type = domain.WorkoutRun
		w.DistanceMiles = float64(3 + week%5)
		w.VertFeet = float64(500 * (1 + week%3))
		w.Effort = "easy"
	}
	return w
}

// seedOriginalCalendar fills the fakes with a pre-compression 36-week
// calendar plus Week Zero, the state of the database before the first
// reconfiguration.
func seedOriginalCalendar(t *testing.T, weekRepo *fakeWeekRepo, workoutRepo *fakeWorkoutRepo) {
	t.Helper()
	ctx := context.Background()
	oldStart := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)

	for week := 0; week <= 36; week++ {
		wp := &domain.WeeklyPlan{
			WeekNumber:  week,
			Phase:       domain.PhaseFoundation,
			StartDate:   oldStart.AddDate(0, 0, 7*week),
			EndDate:     oldStart.AddDate(0, 0, 7*week+6),
			Theme:       fmt.Sprintf("original week %d", week),
			TargetMiles: float64(10 + week),
		}
		id, err := weekRepo.Upsert(ctx, wp)
		require.NoError(t, err)

		days := seededDays(week)
		if week == 0 {
			days = []string{"Monday", "Wednesday", "Friday"}
		}
		for dayIdx, day := range domain.DayNames {
			if !contains(days, day) {
				continue
			}
			wo := seedWorkout(week, day, dayIdx)
			wo.WeeklyPlanID = id
			wo.WorkoutDate = wp.StartDate.AddDate(0, 0, dayIdx)
			_, err := workoutRepo.Upsert(ctx, &wo)
			require.NoError(t, err)
		}
	}
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func newTestFixture(t *testing.T) (ReconfigureService, *fakePlanRepo, *fakePhaseRepo, *fakeWeekRepo, *fakeWorkoutRepo, *fakeArchive) {
	t.Helper()
	planRepo := &fakePlanRepo{plan: &domain.TrainingPlan{
		ID:         primitive.NewObjectID(),
		Name:       "Gorge 100k Build",
		TotalWeeks: 36,
		IsActive:   true,
	}}
	phaseRepo := newFakePhaseRepo()
	weekRepo := newFakeWeekRepo()
	workoutRepo := newFakeWorkoutRepo()
	archive := newFakeArchive()
	seedOriginalCalendar(t, weekRepo, workoutRepo)

	svc, err := NewReconfigureService(planRepo, phaseRepo, weekRepo, workoutRepo, archive, "plan-snapshots")
	require.NoError(t, err)
	return svc, planRepo, phaseRepo, weekRepo, workoutRepo, archive
}

// --- Tests ---

func TestReconfigure_UpdatesPlanAndPhases(t *testing.T) {
	svc, planRepo, phaseRepo, _, _, _ := newTestFixture(t)

	result, err := svc.Reconfigure(context.Background(), testRace, testStart)
	require.NoError(t, err)
	assert.Equal(t, 32, result.TotalWeeks)
	assert.Equal(t, 32, result.WeeksWritten)

	assert.Equal(t, testStart, planRepo.plan.StartDate)
	assert.Equal(t, testStart.AddDate(0, 0, 223), planRepo.plan.EndDate)
	assert.Equal(t, testRace, planRepo.plan.RaceDate)
	assert.Equal(t, 32, planRepo.plan.TotalWeeks)
	assert.Equal(t, 1, planRepo.plan.CurrentWeek)

	phases, err := phaseRepo.GetByPlanID(context.Background(), planRepo.plan.ID)
	require.NoError(t, err)
	require.Len(t, phases, 3)
	assert.Equal(t, domain.PhaseFoundation, phases[0].Name)
	assert.Equal(t, 10, phases[0].WeekCount)
	assert.Equal(t, domain.PhaseDurability, phases[1].Name)
	assert.Equal(t, 14, phases[1].WeekCount)
	assert.Equal(t, phases[0].EndDate.AddDate(0, 0, 1), phases[1].StartDate)
	assert.Equal(t, domain.PhaseSpecificity, phases[2].Name)
	assert.Equal(t, 8, phases[2].WeekCount)
	assert.Equal(t, phases[1].EndDate.AddDate(0, 0, 1), phases[2].StartDate)
}

func TestReconfigure_ContentPreservation(t *testing.T) {
	svc, _, _, weekRepo, workoutRepo, _ := newTestFixture(t)

	// Compressed week 7 carries original week 8's content.
	original := workoutRepo.workouts[workoutKey{week: 8, day: "Tuesday"}]
	require.NotNil(t, original)
	require.Equal(t, domain.WorkoutStrength, original.Type)
	wantExercises := append([]domain.StrengthExercise(nil), original.Exercises...)
	wantTitle := original.Title
	wantNotes := original.Notes

	_, err := svc.Reconfigure(context.Background(), testRace, testStart)
	require.NoError(t, err)

	carried := workoutRepo.workouts[workoutKey{week: 7, day: "Tuesday"}]
	require.NotNil(t, carried)
	assert.Equal(t, wantTitle, carried.Title)
	assert.Equal(t, wantNotes, carried.Notes)
	assert.Equal(t, domain.WorkoutStrength, carried.Type)
	assert.Equal(t, wantExercises, carried.Exercises, "strength payload must be copied verbatim")

	// Only dates and parentage are restamped.
	assert.Equal(t, testStart.AddDate(0, 0, 7*6+1), carried.WorkoutDate)
	assert.Equal(t, weekRepo.weeks[7].ID, carried.WeeklyPlanID)
	assert.Equal(t, 8, weekRepo.weeks[7].OriginalWeekNumber)
}

func TestReconfigure_SkipsDaysTheOriginalNeverHad(t *testing.T) {
	svc, _, _, _, workoutRepo, _ := newTestFixture(t)

	_, err := svc.Reconfigure(context.Background(), testRace, testStart)
	require.NoError(t, err)

	// Compressed week 10 carries original week 12, which only authored
	// Monday, Wednesday and Saturday. No synthetic filler for other days.
	got, err := workoutRepo.ListByWeekNumber(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	days := []string{got[0].DayOfWeek, got[1].DayOfWeek, got[2].DayOfWeek}
	assert.Equal(t, []string{"Monday", "Wednesday", "Saturday"}, days)
}

func TestReconfigure_WeekZeroUntouched(t *testing.T) {
	svc, _, _, weekRepo, workoutRepo, _ := newTestFixture(t)

	beforeWeek := *weekRepo.weeks[0]
	beforeWorkouts := map[workoutKey]domain.DailyWorkout{}
	for k, w := range workoutRepo.workouts {
		if k.week == 0 {
			beforeWorkouts[k] = *w
		}
	}
	require.NotEmpty(t, beforeWorkouts)

	_, err := svc.Reconfigure(context.Background(), testRace, testStart)
	require.NoError(t, err)

	assert.Equal(t, beforeWeek, *weekRepo.weeks[0], "week zero row must keep id and fields")
	for k, want := range beforeWorkouts {
		got := workoutRepo.workouts[k]
		require.NotNil(t, got, "week zero workout %s must survive", k.day)
		assert.Equal(t, want, *got)
	}
}

func TestReconfigure_PrunesWeeksBeyondCompressedCalendar(t *testing.T) {
	svc, _, _, weekRepo, workoutRepo, _ := newTestFixture(t)

	_, err := svc.Reconfigure(context.Background(), testRace, testStart)
	require.NoError(t, err)

	for n := range weekRepo.weeks {
		assert.LessOrEqual(t, n, 32)
	}
	for k := range workoutRepo.workouts {
		assert.LessOrEqual(t, k.week, 32)
	}
	// 0 plus 1..32
	assert.Len(t, weekRepo.weeks, 33)
}

func TestReconfigure_Idempotent(t *testing.T) {
	svc, _, _, weekRepo, workoutRepo, _ := newTestFixture(t)
	ctx := context.Background()

	_, err := svc.Reconfigure(ctx, testRace, testStart)
	require.NoError(t, err)

	firstWeeks := map[int]domain.WeeklyPlan{}
	for n, w := range weekRepo.weeks {
		firstWeeks[n] = *w
	}
	firstWorkouts := map[workoutKey]domain.DailyWorkout{}
	for k, w := range workoutRepo.workouts {
		firstWorkouts[k] = *w
	}

	_, err = svc.Reconfigure(ctx, testRace, testStart)
	require.NoError(t, err)

	require.Len(t, weekRepo.weeks, len(firstWeeks))
	for n, want := range firstWeeks {
		assert.Equal(t, want, *weekRepo.weeks[n], "week %d must be stable across runs, ids included", n)
	}
	require.Len(t, workoutRepo.workouts, len(firstWorkouts))
	for k, want := range firstWorkouts {
		assert.Equal(t, want, *workoutRepo.workouts[k], "workout %d/%s must be stable across runs", k.week, k.day)
	}
}

func TestReconfigure_AbortsOnMidRegenerationFailure(t *testing.T) {
	svc, _, _, weekRepo, _, _ := newTestFixture(t)
	weekRepo.failOnWeek = 17

	_, err := svc.Reconfigure(context.Background(), testRace, testStart)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "week 17")

	// Weeks before the failure point were regenerated; the failed week and
	// everything after it keep their pre-run state.
	assert.Equal(t, testStart, weekRepo.weeks[1].StartDate)
	assert.Equal(t, 18, weekRepo.weeks[16].OriginalWeekNumber)
	assert.Zero(t, weekRepo.weeks[17].OriginalWeekNumber)
	assert.Zero(t, weekRepo.weeks[18].OriginalWeekNumber)
	// The pre-compression tail was not pruned.
	assert.NotNil(t, weekRepo.weeks[36])
}

func TestReconfigure_FailedRunConvergesOnRetry(t *testing.T) {
	svc, _, _, weekRepo, workoutRepo, _ := newTestFixture(t)
	ctx := context.Background()

	weekRepo.failOnWeek = 17
	_, err := svc.Reconfigure(ctx, testRace, testStart)
	require.Error(t, err)

	weekRepo.failOnWeek = 0
	result, err := svc.Reconfigure(ctx, testRace, testStart)
	require.NoError(t, err)
	assert.Equal(t, 32, result.WeeksWritten)

	assert.Len(t, weekRepo.weeks, 33)
	for _, desc := range plan.CompressedPlanStructure() {
		w := weekRepo.weeks[desc.WeekNumber]
		require.NotNil(t, w)
		assert.Equal(t, desc.OriginalWeekNumber, w.OriginalWeekNumber)
		assert.Equal(t, testStart.AddDate(0, 0, 7*(desc.WeekNumber-1)), w.StartDate)
	}
	for k := range workoutRepo.workouts {
		assert.LessOrEqual(t, k.week, 32)
	}
}

func TestReconfigure_NoActivePlan(t *testing.T) {
	planRepo := &fakePlanRepo{}
	weekRepo := newFakeWeekRepo()
	workoutRepo := newFakeWorkoutRepo()

	svc, err := NewReconfigureService(planRepo, newFakePhaseRepo(), weekRepo, workoutRepo, nil, "")
	require.NoError(t, err)

	_, err = svc.Reconfigure(context.Background(), testRace, testStart)
	assert.ErrorIs(t, err, ErrNoActivePlan)
}

func TestReconfigure_ArchivesSnapshotBeforeMutation(t *testing.T) {
	svc, _, _, weekRepo, workoutRepo, archive := newTestFixture(t)

	wantWeeks := len(weekRepo.weeks)
	wantWorkouts := len(workoutRepo.workouts)

	result, err := svc.Reconfigure(context.Background(), testRace, testStart)
	require.NoError(t, err)
	require.NotEmpty(t, result.SnapshotKey)
	assert.Contains(t, result.SnapshotKey, "plan-snapshots/")

	data, ok := archive.objects[result.SnapshotKey]
	require.True(t, ok)

	var snap planSnapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Len(t, snap.Weeks, wantWeeks, "snapshot must capture the pre-mutation calendar")
	assert.Len(t, snap.Workouts, wantWorkouts)
}
