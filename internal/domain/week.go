// internal/domain/week.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DayNames are the canonical day labels for a training week, Monday first.
// Daily workouts are matched by these labels during reconfiguration, and a
// day's calendar date is the week start plus its index here.
var DayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// WeeklyPlan is one row of the generated calendar. Rows for weeks 1..32 are
// owned by the reconfiguration engine; weekNumber 0 ("Week Zero", the
// pre-training recovery week) is never regenerated.
type WeeklyPlan struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// WeekNumber is the position in the compressed calendar (0 for Week Zero).
	WeekNumber int `bson:"weekNumber" json:"weekNumber"`
	// OriginalWeekNumber is the week of the authored 36-week plan whose
	// content this week carries. Kept on the row so a later reconfiguration
	// can resolve the same authored content again.
	OriginalWeekNumber int       `bson:"originalWeekNumber,omitempty" json:"originalWeekNumber,omitempty"`
	Phase              Phase     `bson:"phase" json:"phase"`
	StartDate          time.Time `bson:"startDate" json:"startDate"`
	EndDate            time.Time `bson:"endDate" json:"endDate"`
	Theme              string    `bson:"theme,omitempty" json:"theme,omitempty"`
	BlockType          string    `bson:"blockType,omitempty" json:"blockType,omitempty"`
	TargetMiles        float64   `bson:"targetMiles" json:"targetMiles"`
	TargetVert         float64   `bson:"targetVert" json:"targetVert"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}

// WorkoutType discriminates the variant payload of a DailyWorkout.
type WorkoutType string

const (
	WorkoutRun      WorkoutType = "run"
	WorkoutStrength WorkoutType = "strength"
	WorkoutRowing   WorkoutType = "rowing"
	WorkoutRest     WorkoutType = "rest"
)

// StrengthExercise is one prescribed exercise within a strength workout.
type StrengthExercise struct {
	Name   string `bson:"name" json:"name"`
	Sets   int    `bson:"sets" json:"sets"`
	Reps   string `bson:"reps" json:"reps"` // "8-10", "5x5", "AMRAP" etc.
	Weight string `bson:"weight,omitempty" json:"weight,omitempty"`
	Notes  string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// DailyWorkout is one day's prescription within a WeeklyPlan. The content
// fields (everything except ID, WeeklyPlanID, WeekNumber and WorkoutDate)
// are authored once and carried across reconfigurations verbatim.
type DailyWorkout struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WeeklyPlanID primitive.ObjectID `bson:"weeklyPlanId" json:"weeklyPlanId"`
	// WeekNumber is denormalized from the parent week; together with
	// DayOfWeek it is the stable key reconfiguration upserts against.
	WeekNumber  int         `bson:"weekNumber" json:"weekNumber"`
	DayOfWeek   string      `bson:"dayOfWeek" json:"dayOfWeek"` // one of DayNames
	WorkoutDate time.Time   `bson:"workoutDate" json:"workoutDate"`
	Type        WorkoutType `bson:"type" json:"type"`
	Title       string      `bson:"title,omitempty" json:"title,omitempty"`
	Description string      `bson:"description,omitempty" json:"description,omitempty"`

	// Run / rowing payload.
	DistanceMiles float64 `bson:"distanceMiles,omitempty" json:"distanceMiles,omitempty"`
	VertFeet      float64 `bson:"vertFeet,omitempty" json:"vertFeet,omitempty"`
	DurationMin   int     `bson:"durationMin,omitempty" json:"durationMin,omitempty"`
	Effort        string  `bson:"effort,omitempty" json:"effort,omitempty"` // "easy", "tempo", "Z2" etc.

	// Strength payload.
	Exercises []StrengthExercise `bson:"exercises,omitempty" json:"exercises,omitempty"`

	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CopyContentFrom copies every authored content field from src onto w,
// leaving identity (ID), parentage (WeeklyPlanID, WeekNumber), DayOfWeek,
// WorkoutDate and timestamps untouched.
func (w *DailyWorkout) CopyContentFrom(src *DailyWorkout) {
	w.Type = src.Type
	w.Title = src.Title
	w.Description = src.Description
	w.DistanceMiles = src.DistanceMiles
	w.VertFeet = src.VertFeet
	w.DurationMin = src.DurationMin
	w.Effort = src.Effort
	w.Exercises = append([]StrengthExercise(nil), src.Exercises...)
	w.Notes = src.Notes
}
