package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"rcollier/ultra-tracker/internal/domain"
	"rcollier/ultra-tracker/internal/plan"
	"rcollier/ultra-tracker/internal/repository"
	"rcollier/ultra-tracker/internal/storage"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrNoActivePlan = errors.New("no active training plan found")
)

// ReconfigureResult summarizes a completed reconfiguration for the caller.
type ReconfigureResult struct {
	TotalWeeks      int       `json:"totalWeeks"`
	StartDate       time.Time `json:"startDate"`
	RaceDate        time.Time `json:"raceDate"`
	WeeksWritten    int       `json:"weeksWritten"`
	WorkoutsCarried int       `json:"workoutsCarried"`
	SnapshotKey     string    `json:"snapshotKey,omitempty"`
}

// --- Service Interface ---
type ReconfigureService interface {
	// Reconfigure re-maps the plan onto the compressed 32-week calendar
	// anchored at startDate, targeting raceDate. Authored workout content is
	// carried from each week's original week; user logs are never touched.
	Reconfigure(ctx context.Context, raceDate, startDate time.Time) (*ReconfigureResult, error)
}

// --- Service Implementation ---

// reconfigureService implements the ReconfigureService interface.
type reconfigureService struct {
	planRepo    repository.TrainingPlanRepository
	phaseRepo   repository.TrainingPhaseRepository
	weekRepo    repository.WeeklyPlanRepository
	workoutRepo repository.DailyWorkoutRepository
	archive     storage.SnapshotArchive // optional; nil disables archival
	keyPrefix   string
}

// NewReconfigureService creates a new instance of reconfigureService. It
// validates the compressed plan structure up front so a malformed table is
// caught at startup, not mid-reconfiguration.
func NewReconfigureService(
	planRepo repository.TrainingPlanRepository,
	phaseRepo repository.TrainingPhaseRepository,
	weekRepo repository.WeeklyPlanRepository,
	workoutRepo repository.DailyWorkoutRepository,
	archive storage.SnapshotArchive,
	keyPrefix string,
) (ReconfigureService, error) {
	if err := plan.ValidateStructure(); err != nil {
		return nil, fmt.Errorf("compressed plan structure: %w", err)
	}
	return &reconfigureService{
		planRepo:    planRepo,
		phaseRepo:   phaseRepo,
		weekRepo:    weekRepo,
		workoutRepo: workoutRepo,
		archive:     archive,
		keyPrefix:   keyPrefix,
	}, nil
}

// planSnapshot is the serialized form archived before any mutation.
type planSnapshot struct {
	TakenAt  time.Time             `json:"takenAt"`
	Weeks    []domain.WeeklyPlan   `json:"weeks"`
	Workouts []domain.DailyWorkout `json:"workouts"`
}

func (s *reconfigureService) Reconfigure(ctx context.Context, raceDate, startDate time.Time) (*ReconfigureResult, error) {
	schedule := plan.CalculatePhaseDates(startDate)

	// 1. Snapshot existing weeks and workouts before anything is written, and
	// index the workouts by the week whose authored content they carry.
	weeks, err := s.weekRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot weeks: %w", err)
	}
	workouts, err := s.workoutRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot workouts: %w", err)
	}
	contentByWeek := indexWorkoutsByOriginalWeek(weeks, workouts)

	snapshotKey := s.archiveSnapshot(ctx, weeks, workouts)

	// 2. Update the top-level plan record.
	activePlan, err := s.planRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActivePlan
		}
		return nil, fmt.Errorf("load active plan: %w", err)
	}
	activePlan.StartDate = schedule.PlanStart
	activePlan.EndDate = schedule.PlanEnd
	activePlan.RaceDate = raceDate
	activePlan.TotalWeeks = schedule.TotalWeeks
	activePlan.CurrentWeek = 1
	if err := s.planRepo.Update(ctx, activePlan); err != nil {
		return nil, fmt.Errorf("update plan: %w", err)
	}

	// 3. Update the three phase records, matched by name.
	phases := []domain.TrainingPhase{
		{PlanID: activePlan.ID, Name: domain.PhaseFoundation, StartDate: schedule.Foundation.StartDate, EndDate: schedule.Foundation.EndDate, WeekCount: schedule.Foundation.WeekCount},
		{PlanID: activePlan.ID, Name: domain.PhaseDurability, StartDate: schedule.Durability.StartDate, EndDate: schedule.Durability.EndDate, WeekCount: schedule.Durability.WeekCount},
		{PlanID: activePlan.ID, Name: domain.PhaseSpecificity, StartDate: schedule.Specificity.StartDate, EndDate: schedule.Specificity.EndDate, WeekCount: schedule.Specificity.WeekCount},
	}
	for i := range phases {
		err := s.phaseRepo.UpdateByName(ctx, activePlan.ID, &phases[i])
		if errors.Is(err, repository.ErrNotFound) {
			// First reconfiguration on a fresh database.
			_, err = s.phaseRepo.Create(ctx, &phases[i])
		}
		if err != nil {
			return nil, fmt.Errorf("update phase %s: %w", phases[i].Name, err)
		}
	}

	// 4. Regenerate the 32-week calendar in ascending order. Weeks and
	// workouts are upserted against their stable keys, so a re-run after a
	// partial failure converges instead of duplicating, and workout ids stay
	// valid for historical logs. Week Zero is never written or deleted.
	result := &ReconfigureResult{
		TotalWeeks:  schedule.TotalWeeks,
		StartDate:   startDate,
		RaceDate:    raceDate,
		SnapshotKey: snapshotKey,
	}
	for _, desc := range plan.CompressedPlanStructure() {
		weekDates := plan.WeekDatesFor(startDate, desc.WeekNumber)
		week := domain.WeeklyPlan{
			WeekNumber:         desc.WeekNumber,
			OriginalWeekNumber: desc.OriginalWeekNumber,
			Phase:              desc.Phase,
			StartDate:          weekDates.StartDate,
			EndDate:            weekDates.EndDate,
			Theme:              desc.Theme,
			BlockType:          desc.BlockType,
			TargetMiles:        desc.TargetMiles,
			TargetVert:         desc.TargetVert,
		}
		weekID, err := s.weekRepo.Upsert(ctx, &week)
		if err != nil {
			return nil, fmt.Errorf("write week %d: %w", desc.WeekNumber, err)
		}
		result.WeeksWritten++

		originalDays := contentByWeek[desc.OriginalWeekNumber]
		keepDays := make([]string, 0, len(domain.DayNames))
		for dayIndex, dayName := range domain.DayNames {
			original, ok := originalDays[dayName]
			if !ok {
				// The original week never had this day authored; no synthetic filler.
				continue
			}
			workout := domain.DailyWorkout{
				WeeklyPlanID: weekID,
				WeekNumber:   desc.WeekNumber,
				DayOfWeek:    dayName,
				WorkoutDate:  plan.DayDate(weekDates.StartDate, dayIndex),
			}
			workout.CopyContentFrom(&original)
			if _, err := s.workoutRepo.Upsert(ctx, &workout); err != nil {
				return nil, fmt.Errorf("write week %d %s workout: %w", desc.WeekNumber, dayName, err)
			}
			keepDays = append(keepDays, dayName)
			result.WorkoutsCarried++
		}
		if err := s.workoutRepo.DeleteWeekDaysExcept(ctx, desc.WeekNumber, keepDays); err != nil {
			return nil, fmt.Errorf("prune week %d workouts: %w", desc.WeekNumber, err)
		}
	}

	// 5. Drop rows beyond the compressed calendar (weeks 33-36 of a plan that
	// has not been compressed before).
	if err := s.workoutRepo.DeleteAboveWeek(ctx, plan.TotalWeeks); err != nil {
		return nil, fmt.Errorf("prune workouts above week %d: %w", plan.TotalWeeks, err)
	}
	if err := s.weekRepo.DeleteAboveWeek(ctx, plan.TotalWeeks); err != nil {
		return nil, fmt.Errorf("prune weeks above week %d: %w", plan.TotalWeeks, err)
	}

	log.Printf("Plan reconfigured: %d weeks, start %s, race %s",
		result.TotalWeeks, startDate.Format("2006-01-02"), raceDate.Format("2006-01-02"))
	return result, nil
}

// indexWorkoutsByOriginalWeek groups the snapshot's workouts by the authored
// week whose content their parent week carries, then by day name. Week rows
// written before any compression have no originalWeekNumber; for those the
// stored week number is the original number.
func indexWorkoutsByOriginalWeek(weeks []domain.WeeklyPlan, workouts []domain.DailyWorkout) map[int]map[string]domain.DailyWorkout {
	originalByStored := make(map[int]int, len(weeks))
	for _, w := range weeks {
		if w.WeekNumber == 0 {
			continue // Week Zero content is never carried forward
		}
		original := w.OriginalWeekNumber
		if original == 0 {
			original = w.WeekNumber
		}
		originalByStored[w.WeekNumber] = original
	}

	index := make(map[int]map[string]domain.DailyWorkout)
	for _, wo := range workouts {
		original, ok := originalByStored[wo.WeekNumber]
		if !ok {
			continue
		}
		if index[original] == nil {
			index[original] = make(map[string]domain.DailyWorkout, len(domain.DayNames))
		}
		index[original][wo.DayOfWeek] = wo
	}
	return index
}

// archiveSnapshot serializes the pre-mutation state to the snapshot archive.
// Archival is a safety net, not part of the contract: failure is logged and
// the reconfiguration proceeds.
func (s *reconfigureService) archiveSnapshot(ctx context.Context, weeks []domain.WeeklyPlan, workouts []domain.DailyWorkout) string {
	if s.archive == nil {
		return ""
	}
	snap := planSnapshot{TakenAt: time.Now().UTC(), Weeks: weeks, Workouts: workouts}
	data, err := json.Marshal(snap)
	if err != nil {
		log.Printf("WARN: Failed to serialize plan snapshot: %v", err)
		return ""
	}
	key := fmt.Sprintf("%s/%s-%s.json", s.keyPrefix, snap.TakenAt.Format("20060102T150405Z"), uuid.NewString())
	if err := s.archive.PutSnapshot(ctx, key, data); err != nil {
		log.Printf("WARN: Failed to archive plan snapshot '%s': %v", key, err)
		return ""
	}
	return key
}
