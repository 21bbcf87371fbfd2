// internal/planner/engine.go
package planner

import (
	"math/rand"
	"time"

	"fitpulse/fitness-tracker/internal/domain"
)

// Engine is the deterministic plan generator: analyze the goal, apply any
// request overrides, then assemble the week-by-week schedule. Clock and
// random source are injectable for tests.
type Engine struct {
	analyzer  *Analyzer
	generator *Generator
}

// NewEngine creates an engine with the real clock and a time-seeded random
// source. Pass non-nil arguments to fix either for deterministic output.
func NewEngine(now func() time.Time, rng *rand.Rand) *Engine {
	a := NewAnalyzer()
	if now != nil {
		a.Now = now
	}
	return &Engine{
		analyzer:  a,
		generator: NewGenerator(rng),
	}
}

// PlanResult is the engine's full output for one generation request.
type PlanResult struct {
	Analysis GoalAnalysis
	Weeks    []WeeklySchedule
}

// BuildPlan runs the whole pipeline. The request snapshot's explicit
// parameters win over the analyzer's recommendation: workoutsPerWeek also
// re-derives the rest-day count so the week stays fully assigned.
func (e *Engine) BuildPlan(goal *domain.Goal, history HistorySummary, templates []domain.WorkoutTemplate, req domain.GenerationRequest) PlanResult {
	analysis := e.analyzer.AnalyzeGoal(goal, history)

	if req.WorkoutsPerWeek > 0 {
		wpw := clampInt(req.WorkoutsPerWeek, 1, 7)
		analysis.Recommendations.WorkoutsPerWeek = wpw
		analysis.Recommendations.RestDaysPerWeek = 7 - wpw
	}
	if req.AvgDuration > 0 {
		analysis.Recommendations.AvgDuration = req.AvgDuration
	}

	weeks := req.WeeksDuration
	if weeks < 1 {
		weeks = 1
	}

	return PlanResult{
		Analysis: analysis,
		Weeks:    e.generator.GenerateMultiWeekPlan(weeks, analysis, templates, req.PreferredRestDays),
	}
}
