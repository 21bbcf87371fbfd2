// internal/planner/engine_test.go
package planner

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitpulse/fitness-tracker/internal/domain"
)

func TestEngine_BuildPlan(t *testing.T) {
	engine := NewEngine(fixedNow, rand.New(rand.NewSource(11)))

	goal := &domain.Goal{Title: "Lose weight", Unit: "kg", CurrentValue: 85, TargetValue: 75}
	req := domain.GenerationRequest{WeeksDuration: 4}

	result := engine.BuildPlan(goal, HistorySummary{TotalWorkouts: 3}, testTemplates(), req)

	assert.Equal(t, GoalTypeWeightLoss, result.Analysis.GoalType)
	require.Len(t, result.Weeks, 4)
	for i, week := range result.Weeks {
		assert.Equal(t, i+1, week.WeekNumber)
		assert.Len(t, week.Sessions, 7)
	}
}

func TestEngine_BuildPlan_RequestOverrides(t *testing.T) {
	engine := NewEngine(fixedNow, rand.New(rand.NewSource(11)))

	goal := &domain.Goal{Title: "Lose weight"}
	req := domain.GenerationRequest{
		WeeksDuration:   2,
		WorkoutsPerWeek: 6,
		AvgDuration:     25,
	}

	result := engine.BuildPlan(goal, HistorySummary{}, testTemplates(), req)

	// The request snapshot wins over the analyzer, and the rest-day count is
	// re-derived so the week stays fully assigned.
	assert.Equal(t, 6, result.Analysis.Recommendations.WorkoutsPerWeek)
	assert.Equal(t, 1, result.Analysis.Recommendations.RestDaysPerWeek)
	assert.Equal(t, 25, result.Analysis.Recommendations.AvgDuration)

	require.Len(t, result.Weeks, 2)
	assert.Equal(t, 6, result.Weeks[0].TotalWorkouts)
}

func TestEngine_BuildPlan_ZeroValuesKeepRecommendation(t *testing.T) {
	engine := NewEngine(fixedNow, rand.New(rand.NewSource(11)))

	goal := &domain.Goal{Title: "stay active"}
	result := engine.BuildPlan(goal, HistorySummary{}, testTemplates(), domain.GenerationRequest{WeeksDuration: 1})

	// General fitness base 4/45/3 adjusted for a beginner history.
	assert.Equal(t, 3, result.Analysis.Recommendations.WorkoutsPerWeek)
	assert.Equal(t, 30, result.Analysis.Recommendations.AvgDuration)
	assert.Equal(t, 4, result.Analysis.Recommendations.RestDaysPerWeek)
}

func TestEngine_BuildPlan_AtLeastOneWeek(t *testing.T) {
	engine := NewEngine(fixedNow, rand.New(rand.NewSource(11)))
	result := engine.BuildPlan(&domain.Goal{Title: "stay active"}, HistorySummary{}, testTemplates(), domain.GenerationRequest{})
	assert.Len(t, result.Weeks, 1)
}
