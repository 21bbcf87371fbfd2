// internal/planner/progression_test.go
package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitpulse/fitness-tracker/internal/domain"
)

func baseExercises() []domain.Exercise {
	return []domain.Exercise{
		{Name: "Squat", Type: domain.ExerciseTypeStrength, Sets: 3, Reps: 10, Weight: 100, MuscleGroup: "legs"},
		{Name: "Run", Type: domain.ExerciseTypeCardio, DurationMinutes: 30},
	}
}

func TestProgressionStrategyFor(t *testing.T) {
	assert.Equal(t, 90, ProgressionStrategyFor(GoalTypeMuscleBuilding).RestSeconds)
	assert.Equal(t, 45, ProgressionStrategyFor(GoalTypeEndurance).RestSeconds)

	// Unknown goal types use the general-fitness strategy.
	assert.Equal(t, ProgressionStrategyFor(GoalTypeGeneralFitness), ProgressionStrategyFor(GoalType("yoga")))
}

func TestApplyProgressiveOverload_Week1Baseline(t *testing.T) {
	out := ApplyProgressiveOverload(baseExercises(), 1, GoalTypeMuscleBuilding)

	require.Len(t, out, 2)
	assert.Equal(t, 3, out[0].Sets)
	assert.Equal(t, 10, out[0].Reps)
	assert.Equal(t, 100.0, out[0].Weight)
	// Missing rest is filled from the strategy.
	assert.Equal(t, 90, out[0].RestSeconds)
}

func TestApplyProgressiveOverload_MuscleBuildingWeightRamp(t *testing.T) {
	// +2.5% per week past the first, rounded to the nearest half unit.
	out := ApplyProgressiveOverload(baseExercises(), 2, GoalTypeMuscleBuilding)
	assert.Equal(t, 102.5, out[0].Weight)

	out = ApplyProgressiveOverload(baseExercises(), 3, GoalTypeMuscleBuilding)
	assert.Equal(t, 105.0, out[0].Weight)
}

func TestApplyProgressiveOverload_WeightMonotonic(t *testing.T) {
	prev := 0.0
	for week := 1; week <= 8; week++ {
		out := ApplyProgressiveOverload(baseExercises(), week, GoalTypeMuscleBuilding)
		assert.GreaterOrEqual(t, out[0].Weight, prev, "week %d", week)
		prev = out[0].Weight
	}
}

func TestApplyProgressiveOverload_SetCap(t *testing.T) {
	// Muscle building adds a set every other week; a long plan hits the cap.
	out := ApplyProgressiveOverload(baseExercises(), 12, GoalTypeMuscleBuilding)
	assert.Equal(t, maxSets, out[0].Sets)
}

func TestApplyProgressiveOverload_RepsClampedToRange(t *testing.T) {
	low := []domain.Exercise{{Name: "Squat", Type: domain.ExerciseTypeStrength, Sets: 3, Reps: 5, Weight: 100}}
	out := ApplyProgressiveOverload(low, 1, GoalTypeEndurance)
	assert.Equal(t, 15, out[0].Reps)

	high := []domain.Exercise{{Name: "Squat", Type: domain.ExerciseTypeStrength, Sets: 3, Reps: 30, Weight: 100}}
	out = ApplyProgressiveOverload(high, 1, GoalTypeEndurance)
	assert.Equal(t, 20, out[0].Reps)
}

func TestApplyProgressiveOverload_CardioUntouched(t *testing.T) {
	src := baseExercises()
	out := ApplyProgressiveOverload(src, 6, GoalTypeMuscleBuilding)
	assert.Equal(t, src[1], out[1])
}

func TestApplyProgressiveOverload_DoesNotMutateInput(t *testing.T) {
	src := baseExercises()
	_ = ApplyProgressiveOverload(src, 5, GoalTypeMuscleBuilding)
	assert.Equal(t, baseExercises(), src)
}

func TestIsDeloadWeek(t *testing.T) {
	assert.False(t, IsDeloadWeek(1, DefaultDeloadFrequency))
	assert.False(t, IsDeloadWeek(3, DefaultDeloadFrequency))
	assert.True(t, IsDeloadWeek(4, DefaultDeloadFrequency))
	assert.False(t, IsDeloadWeek(5, DefaultDeloadFrequency))
	assert.True(t, IsDeloadWeek(8, DefaultDeloadFrequency))

	assert.False(t, IsDeloadWeek(4, 0))
	assert.False(t, IsDeloadWeek(4, -1))
}

func TestApplyDeload(t *testing.T) {
	out := ApplyDeload(baseExercises())

	assert.Equal(t, 2, out[0].Sets)
	assert.Equal(t, 70.0, out[0].Weight)
	// Cardio passes through.
	assert.Equal(t, baseExercises()[1], out[1])
}

func TestApplyDeload_SetsFloorAtOne(t *testing.T) {
	src := []domain.Exercise{{Name: "Squat", Type: domain.ExerciseTypeStrength, Sets: 1, Reps: 10, Weight: 40}}
	out := ApplyDeload(src)
	assert.Equal(t, 1, out[0].Sets)
}

func TestApplyDeload_NeverIncreases(t *testing.T) {
	for _, goalType := range []GoalType{GoalTypeMuscleBuilding, GoalTypeWeightLoss, GoalTypeEndurance, GoalTypeGeneralFitness} {
		for week := 1; week <= 12; week++ {
			progressed := ApplyProgressiveOverload(baseExercises(), week, goalType)
			deloaded := ApplyDeload(progressed)
			assert.LessOrEqual(t, deloaded[0].Sets, progressed[0].Sets)
			assert.LessOrEqual(t, deloaded[0].Weight, progressed[0].Weight)
		}
	}
}

func TestRoundToHalf(t *testing.T) {
	assert.Equal(t, 102.5, roundToHalf(102.4))
	assert.Equal(t, 102.5, roundToHalf(102.6))
	assert.Equal(t, 103.0, roundToHalf(102.8))
	assert.Equal(t, 0.0, roundToHalf(0.1))
}
