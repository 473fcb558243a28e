// internal/domain/plan.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Phase is one of the three periodization blocks of the training plan.
type Phase string

const (
	PhaseFoundation  Phase = "Foundation"
	PhaseDurability  Phase = "Durability"
	PhaseSpecificity Phase = "Specificity"
)

// TrainingPlan is the single top-level plan record. There is one active plan
// at a time; reconfiguration rewrites its dates in place.
type TrainingPlan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"` // e.g., "UTMB Build 2026"
	StartDate   time.Time          `bson:"startDate" json:"startDate"`
	EndDate     time.Time          `bson:"endDate" json:"endDate"`
	RaceDate    time.Time          `bson:"raceDate" json:"raceDate"`
	TotalWeeks  int                `bson:"totalWeeks" json:"totalWeeks"`
	CurrentWeek int                `bson:"currentWeek" json:"currentWeek"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TrainingPhase is one persisted phase record (three per plan), matched by
// Name during reconfiguration.
type TrainingPhase struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanID    primitive.ObjectID `bson:"planId" json:"planId"`
	Name      Phase              `bson:"name" json:"name"`
	StartDate time.Time          `bson:"startDate" json:"startDate"`
	EndDate   time.Time          `bson:"endDate" json:"endDate"`
	WeekCount int                `bson:"weekCount" json:"weekCount"`
	Focus     string             `bson:"focus,omitempty" json:"focus,omitempty"` // e.g., "Aerobic base + strength"
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
