// Package aiplan integrates an external AI model as an alternative plan
// source. The generation service treats it as a drop-in peer of the
// deterministic engine: same inputs, a full weekly schedule out, and a hard
// error on anything less.
package aiplan

import (
	"context"

	"fitpulse/fitness-tracker/internal/domain"
)

// PlanConfig carries the validated plan parameters into the prompt.
type PlanConfig struct {
	WeeksDuration   int
	WorkoutsPerWeek int
	AvgDuration     int // minutes
}

// Request bundles everything the external source may ground the plan on.
// Profile, LatestMeasurement and WorkoutHistory are optional context.
type Request struct {
	Goal              *domain.Goal
	Config            PlanConfig
	Profile           *domain.Profile
	LatestMeasurement *domain.Measurement
	WorkoutHistory    []domain.Workout
}

// ScheduledWorkout is one generated calendar slot as the model describes it.
// Day uses the 0=Sunday..6=Saturday convention.
type ScheduledWorkout struct {
	Week        int
	Day         int
	DayName     string
	WorkoutType string
	Exercises   []domain.Exercise
	Duration    int // minutes
	Intensity   string
	Notes       string
}

// GeneratedPlan is the parsed, validated model output.
type GeneratedPlan struct {
	WeeklySchedule      []ScheduledWorkout
	Rationale           string
	ProgressionStrategy string
	KeyConsiderations   []string
}

// ExternalPlanSource produces a plan from an external model. Implementations
// must return an error rather than an empty schedule.
type ExternalPlanSource interface {
	GeneratePlan(ctx context.Context, req Request) (*GeneratedPlan, error)
}
