// internal/planner/progression.go
package planner

import (
	"math"

	"fitpulse/fitness-tracker/internal/domain"
)

// DefaultDeloadFrequency schedules every fourth week as a deload week.
const DefaultDeloadFrequency = 4

// maxSets caps set progression so long plans stay trainable.
const maxSets = 6

// ProgressionStrategy describes how sets/reps/weight evolve week over week
// for one goal type.
type ProgressionStrategy struct {
	WeightIncreasePerWeek float64 // fraction, e.g. 0.025 = +2.5%/week
	RepRangeLow           int
	RepRangeHigh          int
	SetIncreasePerWeek    float64
	RestSeconds           int
}

var progressionStrategies = map[GoalType]ProgressionStrategy{
	GoalTypeMuscleBuilding: {WeightIncreasePerWeek: 0.025, RepRangeLow: 8, RepRangeHigh: 12, SetIncreasePerWeek: 0.5, RestSeconds: 90},
	GoalTypeEndurance:      {WeightIncreasePerWeek: 0, RepRangeLow: 15, RepRangeHigh: 20, SetIncreasePerWeek: 0.5, RestSeconds: 45},
	GoalTypeWeightLoss:     {WeightIncreasePerWeek: 0, RepRangeLow: 12, RepRangeHigh: 15, SetIncreasePerWeek: 0.25, RestSeconds: 30},
	GoalTypeGeneralFitness: {WeightIncreasePerWeek: 0.02, RepRangeLow: 10, RepRangeHigh: 12, SetIncreasePerWeek: 0.25, RestSeconds: 60},
}

// ProgressionStrategyFor returns the fixed progression table entry for a goal
// type. Unknown goal types get the general-fitness strategy.
func ProgressionStrategyFor(goalType GoalType) ProgressionStrategy {
	if s, ok := progressionStrategies[goalType]; ok {
		return s
	}
	return progressionStrategies[GoalTypeGeneralFitness]
}

// ApplyProgressiveOverload returns a copy of the exercises adjusted for the
// given week. Cardio exercises pass through unmodified; strength and
// functional work progresses per the goal's strategy. Week 1 is the baseline.
func ApplyProgressiveOverload(exercises []domain.Exercise, weekNumber int, goalType GoalType) []domain.Exercise {
	strategy := ProgressionStrategyFor(goalType)
	out := domain.CopyExercises(exercises)
	weeksIn := weekNumber - 1
	if weeksIn < 0 {
		weeksIn = 0
	}

	for i := range out {
		if out[i].IsCardio() {
			continue
		}

		sets := out[i].Sets + int(math.Floor(float64(weeksIn)*strategy.SetIncreasePerWeek))
		if sets > maxSets {
			sets = maxSets
		}
		out[i].Sets = sets

		out[i].Reps = clampInt(out[i].Reps, strategy.RepRangeLow, strategy.RepRangeHigh)

		if out[i].Weight > 0 {
			factor := 1 + strategy.WeightIncreasePerWeek*float64(weeksIn)
			out[i].Weight = roundToHalf(out[i].Weight * factor)
		}

		if out[i].RestSeconds == 0 {
			out[i].RestSeconds = strategy.RestSeconds
		}
	}
	return out
}

// IsDeloadWeek reports whether the week is a scheduled deload.
func IsDeloadWeek(weekNumber, frequency int) bool {
	if frequency <= 0 {
		return false
	}
	return weekNumber%frequency == 0
}

// ApplyDeload reduces volume for a recovery week: non-cardio exercises lose
// one set (floor 1) and train at 70% weight. It layers on top of the normal
// progression output for that week.
func ApplyDeload(exercises []domain.Exercise) []domain.Exercise {
	out := domain.CopyExercises(exercises)
	for i := range out {
		if out[i].IsCardio() {
			continue
		}
		if out[i].Sets > 1 {
			out[i].Sets--
		}
		if out[i].Weight > 0 {
			out[i].Weight = roundToHalf(out[i].Weight * 0.7)
		}
	}
	return out
}

// roundToHalf rounds to the nearest 0.5 unit.
func roundToHalf(w float64) float64 {
	return math.Round(w*2) / 2
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
