// internal/domain/logs.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseLog is one user-entered set record against a strength workout.
// Logs reference workouts by id and are never touched by reconfiguration;
// workout identity staying stable across reconfigurations is what keeps
// them resolvable.
type ExerciseLog struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutID    primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	ExerciseName string             `bson:"exerciseName" json:"exerciseName"`
	SetNumber    int                `bson:"setNumber" json:"setNumber"`
	Reps         int                `bson:"reps" json:"reps"`
	WeightLbs    float64            `bson:"weightLbs,omitempty" json:"weightLbs,omitempty"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
	LoggedAt     time.Time          `bson:"loggedAt" json:"loggedAt"`
}

// DailyLog is one user-entered day summary (actual mileage/vert against plan).
type DailyLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutID primitive.ObjectID `bson:"workoutId,omitempty" json:"workoutId,omitempty"`
	Date      time.Time          `bson:"date" json:"date"`
	Miles     float64            `bson:"miles,omitempty" json:"miles,omitempty"`
	VertFeet  float64            `bson:"vertFeet,omitempty" json:"vertFeet,omitempty"`
	Feeling   string             `bson:"feeling,omitempty" json:"feeling,omitempty"` // "great", "ok", "rough"
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	LoggedAt  time.Time          `bson:"loggedAt" json:"loggedAt"`
}
