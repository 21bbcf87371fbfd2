// internal/domain/plan.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanStatus tracks the lifecycle of a workout plan.
type PlanStatus string

const (
	PlanStatusDraft     PlanStatus = "draft"
	PlanStatusActive    PlanStatus = "active"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusArchived  PlanStatus = "archived"
)

// WorkoutType classifies a calendar slot in a plan.
type WorkoutType string

const (
	WorkoutTypeStrength       WorkoutType = "strength"
	WorkoutTypeCardio         WorkoutType = "cardio"
	WorkoutTypeRest           WorkoutType = "rest"
	WorkoutTypeActiveRecovery WorkoutType = "active_recovery"
	WorkoutTypeMixed          WorkoutType = "mixed"
)

// SessionStatus tracks a single session's completion state.
type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusSkipped   SessionStatus = "skipped"
)

// WorkoutPlan is a multi-week training schedule generated for one goal.
// A plan only ever comes into existence through a completed GenerationJob.
type WorkoutPlan struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID             primitive.ObjectID `bson:"userId" json:"userId"`
	GoalID             primitive.ObjectID `bson:"goalId" json:"goalId"`
	Name               string             `bson:"name" json:"name"`
	Description        string             `bson:"description,omitempty" json:"description,omitempty"`
	GoalType           string             `bson:"goalType" json:"goalType"`
	WeeksDuration      int                `bson:"weeksDuration" json:"weeksDuration"`
	WorkoutsPerWeek    int                `bson:"workoutsPerWeek" json:"workoutsPerWeek"`
	AvgWorkoutDuration int                `bson:"avgWorkoutDuration,omitempty" json:"avgWorkoutDuration,omitempty"`
	Status             PlanStatus         `bson:"status" json:"status"`
	StartedAt          *time.Time         `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	CompletedAt        *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
	DeletedAt          *time.Time         `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
}

// IsOpen reports whether the plan still occupies its goal's "one active or
// draft plan" slot.
func (p *WorkoutPlan) IsOpen() bool {
	return p.Status == PlanStatusDraft || p.Status == PlanStatusActive
}

// PlanSession is one calendar slot in a plan: a concrete workout, a rest day
// or an active-recovery day. Exercises are a materialized, progression-adjusted
// copy; there is exactly one session per (weekNumber, dayOfWeek) pair.
type PlanSession struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	PlanID            primitive.ObjectID  `bson:"planId" json:"planId"`
	WeekNumber        int                 `bson:"weekNumber" json:"weekNumber"`
	DayOfWeek         int                 `bson:"dayOfWeek" json:"dayOfWeek"` // 0=Sunday .. 6=Saturday
	DayName           string              `bson:"dayName" json:"dayName"`
	WorkoutName       string              `bson:"workoutName" json:"workoutName"`
	WorkoutType       WorkoutType         `bson:"workoutType" json:"workoutType"`
	Exercises         []Exercise          `bson:"exercises" json:"exercises"`
	EstimatedDuration int                 `bson:"estimatedDuration,omitempty" json:"estimatedDuration,omitempty"`
	IntensityLevel    string              `bson:"intensityLevel,omitempty" json:"intensityLevel,omitempty"`
	MuscleGroups      []string            `bson:"muscleGroups,omitempty" json:"muscleGroups,omitempty"`
	Notes             string              `bson:"notes,omitempty" json:"notes,omitempty"`
	Status            SessionStatus       `bson:"status" json:"status"`
	SessionOrder      int                 `bson:"sessionOrder" json:"sessionOrder"`
	TemplateID        *primitive.ObjectID `bson:"templateId,omitempty" json:"templateId,omitempty"`
	CreatedAt         time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// IsWorkout reports whether the session counts toward training volume.
func (s *PlanSession) IsWorkout() bool {
	return s.WorkoutType != WorkoutTypeRest && s.WorkoutType != WorkoutTypeActiveRecovery
}

// dayNames indexes day-of-week 0..6.
var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// DayName returns the English name for a 0=Sunday..6=Saturday index.
func DayName(dayOfWeek int) string {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return ""
	}
	return dayNames[dayOfWeek]
}
