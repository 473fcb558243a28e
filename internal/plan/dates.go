// internal/plan/dates.go
package plan

import "time"

// WeekDates is the inclusive calendar range of one training week.
type WeekDates struct {
	StartDate time.Time
	EndDate   time.Time
}

// PhaseDates is the inclusive calendar range of one phase.
type PhaseDates struct {
	StartDate time.Time
	EndDate   time.Time
	WeekCount int
}

// PhaseSchedule is the full derived calendar for a plan start date.
type PhaseSchedule struct {
	Foundation  PhaseDates
	Durability  PhaseDates
	Specificity PhaseDates
	PlanStart   time.Time
	PlanEnd     time.Time
	TotalWeeks  int
}

// CalculatePhaseDates derives the three phase ranges from a single plan
// start date. Phases run back to back with no gap: Foundation from the
// start, then Durability, then Specificity. A phase of N weeks beginning
// on day D ends on D + 7N - 1, the last calendar day within the phase.
func CalculatePhaseDates(startDate time.Time) PhaseSchedule {
	foundation := phaseFrom(startDate, FoundationWeeks)
	durability := phaseFrom(foundation.EndDate.AddDate(0, 0, 1), DurabilityWeeks)
	specificity := phaseFrom(durability.EndDate.AddDate(0, 0, 1), SpecificityWeeks)
	return PhaseSchedule{
		Foundation:  foundation,
		Durability:  durability,
		Specificity: specificity,
		PlanStart:   startDate,
		PlanEnd:     specificity.EndDate,
		TotalWeeks:  TotalWeeks,
	}
}

func phaseFrom(start time.Time, weeks int) PhaseDates {
	return PhaseDates{
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 7*weeks-1),
		WeekCount: weeks,
	}
}

// WeekDatesFor returns the inclusive range of one week of the compressed
// calendar: start + 7*(n-1) days through the sixth day after that.
func WeekDatesFor(startDate time.Time, weekNumber int) WeekDates {
	weekStart := startDate.AddDate(0, 0, 7*(weekNumber-1))
	return WeekDates{
		StartDate: weekStart,
		EndDate:   weekStart.AddDate(0, 0, 6),
	}
}

// DayDate returns the calendar date of one day within a week, where dayIndex
// is the position in domain.DayNames (Monday=0 .. Sunday=6).
func DayDate(weekStart time.Time, dayIndex int) time.Time {
	return weekStart.AddDate(0, 0, dayIndex)
}
