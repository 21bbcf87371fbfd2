// internal/planner/schedule_test.go
package planner

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitpulse/fitness-tracker/internal/domain"
)

func TestDistributeRestDays_ExactCount(t *testing.T) {
	for restCount := 0; restCount <= 7; restCount++ {
		days := DistributeRestDays(restCount, 7-restCount, nil)
		require.Len(t, days, restCount, "restCount %d", restCount)

		assert.True(t, sort.IntsAreSorted(days))
		seen := make(map[int]bool)
		for _, d := range days {
			assert.GreaterOrEqual(t, d, 0)
			assert.LessOrEqual(t, d, 6)
			assert.False(t, seen[d], "duplicate day %d", d)
			seen[d] = true
		}
	}
}

func TestDistributeRestDays_PriorityOrder(t *testing.T) {
	// With no preference, Sunday goes first, then Wednesday.
	assert.Equal(t, []int{0}, DistributeRestDays(1, 6, nil))
	assert.Equal(t, []int{0, 3}, DistributeRestDays(2, 5, nil))
	assert.Equal(t, []int{0, 3, 5}, DistributeRestDays(3, 4, nil))
}

func TestDistributeRestDays_PreferredFirst(t *testing.T) {
	days := DistributeRestDays(2, 5, []int{6, 1})
	assert.Equal(t, []int{1, 6}, days)

	// Preferred days beyond the count are ignored; duplicates and
	// out-of-range entries are dropped.
	days = DistributeRestDays(2, 5, []int{4, 4, 9, -1, 2, 6})
	assert.Equal(t, []int{2, 4}, days)
}

func TestDistributeRestDays_ClampsOutOfRangeCount(t *testing.T) {
	assert.Empty(t, DistributeRestDays(-3, 7, nil))
	assert.Len(t, DistributeRestDays(12, 0, nil), 7)
}

func testTemplates() []domain.WorkoutTemplate {
	return []domain.WorkoutTemplate{
		strengthTemplate("Push Day"),
		strengthTemplate("Pull Day"),
		strengthTemplate("Leg Day"),
		cardioTemplate("Intervals"),
	}
}

func TestGenerateWeeklySchedule_Shape(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(11)))
	analysis := strengthAnalysis()

	week := g.GenerateWeeklySchedule(1, analysis, testTemplates(), nil)

	require.Len(t, week.Sessions, 7)
	assert.Equal(t, 1, week.WeekNumber)
	for i, s := range week.Sessions {
		assert.Equal(t, i, s.DayOfWeek)
		assert.Equal(t, 1, s.WeekNumber)
		assert.Equal(t, domain.DayName(i), s.DayName)
		assert.Equal(t, domain.SessionStatusScheduled, s.Status)
	}

	assert.Equal(t, analysis.Recommendations.WorkoutsPerWeek, week.TotalWorkouts)
	assert.Greater(t, week.EstimatedWeeklyVolume, 0.0)
}

func TestGenerateWeeklySchedule_WorkoutSessionFields(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(11)))
	week := g.GenerateWeeklySchedule(1, strengthAnalysis(), testTemplates(), nil)

	found := false
	for _, s := range week.Sessions {
		if !s.IsWorkout() {
			continue
		}
		found = true
		require.NotNil(t, s.TemplateID)
		assert.NotEmpty(t, s.WorkoutName)
		assert.NotEmpty(t, s.Exercises)
		assert.NotEmpty(t, s.MuscleGroups)
		assert.Greater(t, s.EstimatedDuration, 0)
		assert.NotEmpty(t, s.IntensityLevel)
	}
	assert.True(t, found)
}

func TestGenerateWeeklySchedule_NoTemplatesDegradesToRest(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(11)))

	week := g.GenerateWeeklySchedule(1, strengthAnalysis(), nil, nil)

	require.Len(t, week.Sessions, 7)
	assert.Zero(t, week.TotalWorkouts)
	for _, s := range week.Sessions {
		assert.False(t, s.IsWorkout())
		assert.Nil(t, s.TemplateID)
	}
}

func TestGenerateWeeklySchedule_PreferredRestDays(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(11)))
	analysis := strengthAnalysis() // 4 workouts, 3 rest days

	week := g.GenerateWeeklySchedule(1, analysis, testTemplates(), []int{1, 4, 6})

	for _, day := range []int{1, 4, 6} {
		assert.False(t, week.Sessions[day].IsWorkout(), "day %d should not be a workout", day)
	}
}

func TestGenerateWeeklySchedule_DeloadReducesVolume(t *testing.T) {
	analysis := strengthAnalysis()
	templates := testTemplates()

	// Week 3 vs week 4 from identically seeded generators: week 4 is the
	// deload, so per-exercise sets never exceed the prior week's.
	week3 := NewGenerator(rand.New(rand.NewSource(5))).GenerateWeeklySchedule(3, analysis, templates, nil)
	week4 := NewGenerator(rand.New(rand.NewSource(5))).GenerateWeeklySchedule(4, analysis, templates, nil)

	volume := func(w WeeklySchedule) float64 { return w.EstimatedWeeklyVolume }
	assert.Less(t, volume(week4), volume(week3))
}

func TestGenerateMultiWeekPlan(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(11)))
	weeks := g.GenerateMultiWeekPlan(4, strengthAnalysis(), testTemplates(), nil)

	require.Len(t, weeks, 4)
	seen := make(map[[2]int]bool)
	for i, week := range weeks {
		assert.Equal(t, i+1, week.WeekNumber)
		require.Len(t, week.Sessions, 7)
		for _, s := range week.Sessions {
			key := [2]int{s.WeekNumber, s.DayOfWeek}
			assert.False(t, seen[key], "duplicate (week %d, day %d)", s.WeekNumber, s.DayOfWeek)
			seen[key] = true
		}
	}
	assert.Len(t, seen, 28)
}

func TestWorkoutTypeFor(t *testing.T) {
	cardio := cardioTemplate("Intervals")
	assert.Equal(t, domain.WorkoutTypeCardio, workoutTypeFor(&cardio))

	strength := strengthTemplate("Push Day")
	assert.Equal(t, domain.WorkoutTypeStrength, workoutTypeFor(&strength))

	mixed := domain.WorkoutTemplate{Exercises: []domain.Exercise{
		{Name: "Run", Type: domain.ExerciseTypeCardio, DurationMinutes: 20},
		{Name: "Squat", Type: domain.ExerciseTypeStrength, Sets: 3, Reps: 10},
	}}
	assert.Equal(t, domain.WorkoutTypeMixed, workoutTypeFor(&mixed))
}
