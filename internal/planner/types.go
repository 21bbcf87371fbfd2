// Package planner implements the deterministic workout-plan engine: goal
// analysis, template scoring and selection, schedule assembly, and the
// progressive-overload rules. It has no knowledge of storage, HTTP, or the
// external AI plan source.
package planner

import (
	"time"

	"fitpulse/fitness-tracker/internal/domain"
)

// GoalType classifies what the user is training for.
type GoalType string

const (
	GoalTypeWeightLoss     GoalType = "weight_loss"
	GoalTypeMuscleBuilding GoalType = "muscle_building"
	GoalTypeEndurance      GoalType = "endurance"
	GoalTypeGeneralFitness GoalType = "general_fitness"
)

// Intensity is the user's experience level, derived from workout history.
type Intensity string

const (
	IntensityBeginner     Intensity = "beginner"
	IntensityIntermediate Intensity = "intermediate"
	IntensityAdvanced     Intensity = "advanced"
)

// Level maps the experience level onto the same 1-3 ordinal scale templates
// use for their low/moderate/high rating.
func (i Intensity) Level() int {
	switch i {
	case IntensityBeginner:
		return 1
	case IntensityAdvanced:
		return 3
	default:
		return 2
	}
}

// Recommendations are the per-goal training parameters the analyzer produces.
// WorkoutsPerWeek and RestDaysPerWeek always sum to 7 so the weekly calendar
// has no undefined days.
type Recommendations struct {
	WorkoutsPerWeek       int
	CardioToStrengthRatio float64 // 0 = pure strength, 1 = pure cardio
	AvgDuration           int     // minutes
	RestDaysPerWeek       int
}

// GoalAnalysis is the analyzer's output: a pure value object, immutable once
// produced.
type GoalAnalysis struct {
	GoalType        GoalType
	Intensity       Intensity
	TimeframeDays   int
	Recommendations Recommendations
}

// HistorySummary condenses a user's logged workouts into the numbers the
// analyzer needs. It is derived on every generation request and never cached.
type HistorySummary struct {
	TotalWorkouts      int
	LastWorkoutDate    *time.Time
	AvgWorkoutsPerWeek float64 // trailing 90 days
	ExperienceLevel    Intensity
}

// WeeklySchedule is one generated week: its 7 sessions plus derived totals.
type WeeklySchedule struct {
	WeekNumber            int
	Sessions              []domain.PlanSession
	TotalWorkouts         int
	RestDays              int
	EstimatedWeeklyVolume float64
}
