// internal/planner/history.go
package planner

import (
	"time"

	"fitpulse/fitness-tracker/internal/domain"
)

// historyWindowDays is the trailing window the weekly average is computed over.
const historyWindowDays = 90

// SummarizeHistory condenses logged workouts into the analyzer's input.
// The weekly average only counts workouts inside the trailing 90-day window;
// the total counts everything passed in.
func SummarizeHistory(workouts []domain.Workout, now time.Time) HistorySummary {
	summary := HistorySummary{TotalWorkouts: len(workouts)}

	windowStart := now.AddDate(0, 0, -historyWindowDays)
	recent := 0
	for i := range workouts {
		performed := workouts[i].PerformedAt
		if summary.LastWorkoutDate == nil || performed.After(*summary.LastWorkoutDate) {
			summary.LastWorkoutDate = &workouts[i].PerformedAt
		}
		if !performed.Before(windowStart) {
			recent++
		}
	}

	summary.AvgWorkoutsPerWeek = float64(recent) * 7 / historyWindowDays
	summary.ExperienceLevel = CalculateIntensity(summary.TotalWorkouts, summary.AvgWorkoutsPerWeek)
	return summary
}
