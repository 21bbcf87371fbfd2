// internal/planner/analyzer.go
package planner

import (
	"math"
	"strings"
	"time"

	"fitpulse/fitness-tracker/internal/domain"
)

// defaultTimeframeDays is assumed when a goal carries no target date.
const defaultTimeframeDays = 90

// Keyword groups for goal classification. Checked in order; the first group
// with a match wins.
var (
	weightLossKeywords = []string{"weight loss", "lose weight", "fat loss"}
	muscleKeywords     = []string{"muscle", "strength", "bulk", "gain"}
	enduranceKeywords  = []string{"endurance", "cardio", "marathon", "running"}
	massUnits          = map[string]bool{"kg": true, "lbs": true}
)

// baseRecommendations is the per-goal-type starting point before the
// experience-level adjustment. Workouts and rest days sum to 7 in every row.
var baseRecommendations = map[GoalType]Recommendations{
	GoalTypeWeightLoss:     {WorkoutsPerWeek: 5, CardioToStrengthRatio: 0.7, AvgDuration: 45, RestDaysPerWeek: 2},
	GoalTypeMuscleBuilding: {WorkoutsPerWeek: 4, CardioToStrengthRatio: 0.2, AvgDuration: 60, RestDaysPerWeek: 3},
	GoalTypeEndurance:      {WorkoutsPerWeek: 5, CardioToStrengthRatio: 0.8, AvgDuration: 50, RestDaysPerWeek: 2},
	GoalTypeGeneralFitness: {WorkoutsPerWeek: 4, CardioToStrengthRatio: 0.5, AvgDuration: 45, RestDaysPerWeek: 3},
}

// Analyzer classifies goals into a recommendation profile. Now is injectable
// so the analysis stays a pure function of (goal, history, now).
type Analyzer struct {
	Now func() time.Time
}

// NewAnalyzer creates an Analyzer using the real clock.
func NewAnalyzer() *Analyzer {
	return &Analyzer{Now: time.Now}
}

// DetermineGoalType classifies a goal from its title and description, falling
// back to a value-direction heuristic for mass-unit goals. It always returns
// a value; unclassifiable goals are general fitness.
func (a *Analyzer) DetermineGoalType(goal *domain.Goal) GoalType {
	text := strings.ToLower(goal.Title + " " + goal.Description)

	for _, kw := range weightLossKeywords {
		if strings.Contains(text, kw) {
			return GoalTypeWeightLoss
		}
	}
	for _, kw := range muscleKeywords {
		if strings.Contains(text, kw) {
			return GoalTypeMuscleBuilding
		}
	}
	for _, kw := range enduranceKeywords {
		if strings.Contains(text, kw) {
			return GoalTypeEndurance
		}
	}

	// Unmatched mass-unit goals: the value direction disambiguates.
	if massUnits[strings.ToLower(goal.Unit)] {
		if goal.TargetValue < goal.CurrentValue {
			return GoalTypeWeightLoss
		}
		return GoalTypeMuscleBuilding
	}

	return GoalTypeGeneralFitness
}

// CalculateIntensity derives the experience level from workout volume.
func CalculateIntensity(totalWorkouts int, avgWorkoutsPerWeek float64) Intensity {
	if totalWorkouts < 10 || avgWorkoutsPerWeek < 2 {
		return IntensityBeginner
	}
	if totalWorkouts < 50 || avgWorkoutsPerWeek < 4 {
		return IntensityIntermediate
	}
	return IntensityAdvanced
}

// AnalyzeGoal composes classification, intensity, and timeframe into the
// recommendation profile the rest of the engine consumes.
func (a *Analyzer) AnalyzeGoal(goal *domain.Goal, history HistorySummary) GoalAnalysis {
	goalType := a.DetermineGoalType(goal)
	intensity := history.ExperienceLevel
	if intensity == "" {
		intensity = CalculateIntensity(history.TotalWorkouts, history.AvgWorkoutsPerWeek)
	}

	rec := baseRecommendations[goalType]
	rec = adjustForIntensity(rec, intensity)

	return GoalAnalysis{
		GoalType:        goalType,
		Intensity:       intensity,
		TimeframeDays:   a.timeframeDays(goal),
		Recommendations: rec,
	}
}

// timeframeDays counts whole days from now until the target date (default 90
// days out), never less than 1.
func (a *Analyzer) timeframeDays(goal *domain.Goal) int {
	now := a.Now()
	target := now.AddDate(0, 0, defaultTimeframeDays)
	if goal.TargetDate != nil {
		target = *goal.TargetDate
	}
	days := int(math.Ceil(target.Sub(now).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// adjustForIntensity scales the base profile: beginners train less and rest
// more, advanced users the inverse. Rest days are re-derived from the workout
// count afterwards so the week stays fully assigned.
func adjustForIntensity(rec Recommendations, intensity Intensity) Recommendations {
	switch intensity {
	case IntensityBeginner:
		rec.WorkoutsPerWeek = maxInt(3, rec.WorkoutsPerWeek-1)
		rec.AvgDuration = maxInt(30, rec.AvgDuration-15)
		rec.RestDaysPerWeek = minInt(4, rec.RestDaysPerWeek+1)
	case IntensityAdvanced:
		rec.WorkoutsPerWeek = minInt(6, rec.WorkoutsPerWeek+1)
		rec.AvgDuration = minInt(75, rec.AvgDuration+15)
		rec.RestDaysPerWeek = maxInt(1, rec.RestDaysPerWeek-1)
	}
	return rec
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
