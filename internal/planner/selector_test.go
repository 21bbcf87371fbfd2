// internal/planner/selector_test.go
package planner

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitpulse/fitness-tracker/internal/domain"
)

func strengthTemplate(name string) domain.WorkoutTemplate {
	return domain.WorkoutTemplate{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Intensity: domain.TemplateIntensityModerate,
		Exercises: []domain.Exercise{
			{Name: "Squat", Type: domain.ExerciseTypeStrength, Sets: 4, Reps: 8, Weight: 80, MuscleGroup: "legs"},
			{Name: "Bench Press", Type: domain.ExerciseTypeStrength, Sets: 4, Reps: 8, Weight: 60, MuscleGroup: "chest"},
		},
	}
}

func cardioTemplate(name string) domain.WorkoutTemplate {
	return domain.WorkoutTemplate{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Intensity: domain.TemplateIntensityModerate,
		Exercises: []domain.Exercise{
			{Name: "Run", Type: domain.ExerciseTypeCardio, DurationMinutes: 30},
			{Name: "Row", Type: domain.ExerciseTypeCardio, DurationMinutes: 15},
		},
	}
}

func strengthAnalysis() GoalAnalysis {
	return GoalAnalysis{
		GoalType:  GoalTypeMuscleBuilding,
		Intensity: IntensityIntermediate,
		Recommendations: Recommendations{
			WorkoutsPerWeek:       4,
			CardioToStrengthRatio: 0.2,
			AvgDuration:           60,
			RestDaysPerWeek:       3,
		},
	}
}

func TestScoreTemplate_TypeMatch(t *testing.T) {
	wc := NewWeekContext()
	analysis := strengthAnalysis()

	strength := strengthTemplate("Push Day")
	cardio := cardioTemplate("HIIT")

	sStrength := scoreTemplate(&strength, analysis, wc, 1)
	sCardio := scoreTemplate(&cardio, analysis, wc, 1)
	assert.Greater(t, sStrength, sCardio)
}

func TestScoreTemplate_RepetitionPenalty(t *testing.T) {
	wc := NewWeekContext()
	analysis := strengthAnalysis()
	tpl := strengthTemplate("Push Day")

	before := scoreTemplate(&tpl, analysis, wc, 1)
	wc.MarkTemplateUsed(tpl.ID.Hex())
	after := scoreTemplate(&tpl, analysis, wc, 3)

	assert.InDelta(t, repetitionPenalty, after-before, 1e-9)
}

func TestScoreTemplate_MuscleRecency(t *testing.T) {
	analysis := strengthAnalysis()
	tpl := strengthTemplate("Push Day")

	fresh := NewWeekContext()
	freshScore := scoreTemplate(&tpl, analysis, fresh, 3)

	yesterday := NewWeekContext()
	yesterday.MarkMusclesWorked([]string{"legs", "chest"}, 2)
	yesterdayScore := scoreTemplate(&tpl, analysis, yesterday, 3)

	sameDay := NewWeekContext()
	sameDay.MarkMusclesWorked([]string{"legs", "chest"}, 3)
	sameDayScore := scoreTemplate(&tpl, analysis, sameDay, 3)

	assert.Greater(t, freshScore, yesterdayScore)
	assert.Greater(t, yesterdayScore, sameDayScore)
}

func TestScoreTemplate_IntensityWindow(t *testing.T) {
	wc := NewWeekContext()
	analysis := strengthAnalysis()
	analysis.Intensity = IntensityBeginner // level 1

	within := strengthTemplate("Easy Day")
	within.Intensity = domain.TemplateIntensityModerate // level 2, within 1

	outside := strengthTemplate("Hard Day")
	outside.Intensity = domain.TemplateIntensityHigh // level 3, outside

	assert.InDelta(t, intensityMatchBonus,
		scoreTemplate(&within, analysis, wc, 1)-scoreTemplate(&outside, analysis, wc, 1), 1e-9)
}

func TestSelectTemplate_Empty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Nil(t, SelectTemplate(nil, strengthAnalysis(), NewWeekContext(), 1, rng))
}

func TestSelectTemplate_SingleCandidate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tpl := strengthTemplate("Only Option")

	got := SelectTemplate([]domain.WorkoutTemplate{tpl}, strengthAnalysis(), NewWeekContext(), 1, rng)
	require.NotNil(t, got)
	assert.Equal(t, tpl.ID, got.ID)
}

func TestSelectTemplate_PicksFromTopThree(t *testing.T) {
	templates := []domain.WorkoutTemplate{
		strengthTemplate("A"),
		strengthTemplate("B"),
		strengthTemplate("C"),
		cardioTemplate("HIIT"), // scores well below the strength trio here
	}
	analysis := strengthAnalysis()

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		got := SelectTemplate(templates, analysis, NewWeekContext(), 1, rng)
		require.NotNil(t, got)
		assert.NotEqual(t, "HIIT", got.Name)
	}
}

func TestSelectTemplate_DeterministicWithSeed(t *testing.T) {
	templates := []domain.WorkoutTemplate{
		strengthTemplate("A"), strengthTemplate("B"), strengthTemplate("C"),
	}
	analysis := strengthAnalysis()

	first := SelectTemplate(templates, analysis, NewWeekContext(), 1, rand.New(rand.NewSource(42)))
	second := SelectTemplate(templates, analysis, NewWeekContext(), 1, rand.New(rand.NewSource(42)))
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)
}

func TestSelectTemplateWithRotation_MuscleBuildingStrengthDays(t *testing.T) {
	templates := []domain.WorkoutTemplate{cardioTemplate("HIIT"), strengthTemplate("Push Day")}
	analysis := strengthAnalysis()
	rng := rand.New(rand.NewSource(3))

	// Monday, Wednesday, Friday keep only strength-dominant templates.
	for _, day := range []int{1, 3, 5} {
		got := SelectTemplateWithRotation(templates, analysis, NewWeekContext(), day, rng)
		require.NotNil(t, got)
		assert.Equal(t, "Push Day", got.Name, "day %d", day)
	}
}

func TestSelectTemplateWithRotation_WeightLossCardioDays(t *testing.T) {
	templates := []domain.WorkoutTemplate{cardioTemplate("HIIT"), strengthTemplate("Push Day")}
	analysis := strengthAnalysis()
	analysis.GoalType = GoalTypeWeightLoss
	analysis.Recommendations.CardioToStrengthRatio = 0.7
	rng := rand.New(rand.NewSource(3))

	for _, day := range []int{2, 4, 6} {
		got := SelectTemplateWithRotation(templates, analysis, NewWeekContext(), day, rng)
		require.NotNil(t, got)
		assert.Equal(t, "HIIT", got.Name, "day %d", day)
	}
}

func TestSelectTemplateWithRotation_FallbackOnEmptyFilter(t *testing.T) {
	// Muscle-building Monday with nothing strength-dominant available: the
	// filter empties and the full pool is used instead.
	templates := []domain.WorkoutTemplate{cardioTemplate("HIIT")}
	analysis := strengthAnalysis()
	rng := rand.New(rand.NewSource(3))

	got := SelectTemplateWithRotation(templates, analysis, NewWeekContext(), 1, rng)
	require.NotNil(t, got)
	assert.Equal(t, "HIIT", got.Name)
}

func TestWeekContext_DaysSinceWorked(t *testing.T) {
	wc := NewWeekContext()
	assert.Equal(t, neverWorkedDays, wc.DaysSinceWorked("legs", 4))

	wc.MarkMusclesWorked([]string{"legs"}, 2)
	assert.Equal(t, 2, wc.DaysSinceWorked("legs", 4))
	assert.Equal(t, 0, wc.DaysSinceWorked("legs", 2))
}
