// internal/planner/schedule.go
package planner

import (
	"math/rand"
	"sort"
	"time"

	"fitpulse/fitness-tracker/internal/domain"
)

// Rest day placement when the user states no preference: Sunday first, then
// mid-week spacing, then whatever weekday slots remain.
var (
	restDayPriority = []int{0, 3, 5, 2} // Sunday, Wednesday, Friday, Tuesday
	restDayFill     = []int{1, 2, 4, 5, 6}
)

// Active-recovery odds on a rest day. Advanced users get movement on almost a
// third of their rest days; everyone else mostly rests outright.
const (
	activeRecoveryChanceAdvanced = 0.3
	activeRecoveryChanceDefault  = 0.15
)

// DistributeRestDays picks which days of the week are rest days. When
// preferred days are supplied they are honored first (in the order given);
// remaining slots follow the fixed priority order and then the weekday fill
// list. The result always holds exactly restCount unique day indices in
// [0,6], sorted ascending. workoutCount is the complementary day count,
// accepted for symmetry with the weekly generator's call site; placement
// depends only on restCount.
func DistributeRestDays(restCount, workoutCount int, preferred []int) []int {
	if restCount < 0 {
		restCount = 0
	}
	if restCount > 7 {
		restCount = 7
	}
	if restCount == 0 {
		return []int{}
	}

	taken := make(map[int]bool, restCount)
	days := make([]int, 0, restCount)

	add := func(day int) {
		if len(days) >= restCount || day < 0 || day > 6 || taken[day] {
			return
		}
		taken[day] = true
		days = append(days, day)
	}

	for _, day := range preferred {
		add(day)
	}
	for _, day := range restDayPriority {
		add(day)
	}
	for _, day := range restDayFill {
		add(day)
	}

	sort.Ints(days)
	return days
}

// Generator assembles weekly schedules. The random source is injected so
// tests can fix the seed; a nil source falls back to a time-seeded one.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a schedule generator.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// GenerateWeeklySchedule builds one week's 7 sessions. Rest days come first;
// every remaining day asks the rotation-aware selector for a template and
// materializes a session from it. A day that cannot be filled degrades to a
// rest session instead of failing the week.
func (g *Generator) GenerateWeeklySchedule(weekNumber int, analysis GoalAnalysis, templates []domain.WorkoutTemplate, preferredRestDays []int) WeeklySchedule {
	workoutCount := clampInt(analysis.Recommendations.WorkoutsPerWeek, 0, 7)
	restDays := DistributeRestDays(7-workoutCount, workoutCount, preferredRestDays)
	restSet := make(map[int]bool, len(restDays))
	for _, d := range restDays {
		restSet[d] = true
	}

	wc := NewWeekContext()
	week := WeeklySchedule{WeekNumber: weekNumber}
	deload := IsDeloadWeek(weekNumber, DefaultDeloadFrequency)

	for day := 0; day < 7; day++ {
		if restSet[day] {
			week.Sessions = append(week.Sessions, g.restSession(weekNumber, day, analysis))
			continue
		}

		tpl := SelectTemplateWithRotation(templates, analysis, wc, day, g.rng)
		if tpl == nil {
			// Fail-soft: an unfillable workout day becomes rest rather than
			// aborting the generation.
			week.Sessions = append(week.Sessions, newRestSession(weekNumber, day))
			continue
		}

		exercises := ApplyProgressiveOverload(tpl.Exercises, weekNumber, analysis.GoalType)
		if deload {
			exercises = ApplyDeload(exercises)
		}

		templateID := tpl.ID
		session := domain.PlanSession{
			WeekNumber:        weekNumber,
			DayOfWeek:         day,
			DayName:           domain.DayName(day),
			WorkoutName:       tpl.Name,
			WorkoutType:       workoutTypeFor(tpl),
			Exercises:         exercises,
			EstimatedDuration: tpl.EstimatedDuration(),
			IntensityLevel:    string(tpl.Intensity),
			MuscleGroups:      tpl.MuscleGroups(),
			Status:            domain.SessionStatusScheduled,
			SessionOrder:      day,
			TemplateID:        &templateID,
		}
		week.Sessions = append(week.Sessions, session)

		wc.MarkTemplateUsed(tpl.ID.Hex())
		wc.MarkMusclesWorked(session.MuscleGroups, day)
	}

	for i := range week.Sessions {
		s := &week.Sessions[i]
		switch {
		case s.IsWorkout():
			week.TotalWorkouts++
			week.EstimatedWeeklyVolume += sessionVolume(s)
		case s.WorkoutType == domain.WorkoutTypeRest:
			week.RestDays++
		}
	}
	return week
}

// GenerateMultiWeekPlan runs the weekly generator independently for each week
// 1..weeks. Muscle recency only persists within a week: every new week starts
// each muscle group as unworked.
func (g *Generator) GenerateMultiWeekPlan(weeks int, analysis GoalAnalysis, templates []domain.WorkoutTemplate, preferredRestDays []int) []WeeklySchedule {
	schedules := make([]WeeklySchedule, 0, weeks)
	for week := 1; week <= weeks; week++ {
		schedules = append(schedules, g.GenerateWeeklySchedule(week, analysis, templates, preferredRestDays))
	}
	return schedules
}

// restSession emits a rest day, occasionally upgraded to active recovery.
func (g *Generator) restSession(weekNumber, day int, analysis GoalAnalysis) domain.PlanSession {
	chance := activeRecoveryChanceDefault
	if analysis.Intensity == IntensityAdvanced {
		chance = activeRecoveryChanceAdvanced
	}
	if g.rng.Float64() < chance {
		return domain.PlanSession{
			WeekNumber:   weekNumber,
			DayOfWeek:    day,
			DayName:      domain.DayName(day),
			WorkoutName:  "Active Recovery",
			WorkoutType:  domain.WorkoutTypeActiveRecovery,
			Notes:        "Light movement: walking, stretching, or mobility work.",
			Status:       domain.SessionStatusScheduled,
			SessionOrder: day,
		}
	}
	return newRestSession(weekNumber, day)
}

func newRestSession(weekNumber, day int) domain.PlanSession {
	return domain.PlanSession{
		WeekNumber:   weekNumber,
		DayOfWeek:    day,
		DayName:      domain.DayName(day),
		WorkoutName:  "Rest Day",
		WorkoutType:  domain.WorkoutTypeRest,
		Status:       domain.SessionStatusScheduled,
		SessionOrder: day,
	}
}

// workoutTypeFor classifies a template by its cardio ratio.
func workoutTypeFor(tpl *domain.WorkoutTemplate) domain.WorkoutType {
	switch ratio := tpl.CardioRatio(); {
	case ratio >= 0.6:
		return domain.WorkoutTypeCardio
	case ratio <= 0.4:
		return domain.WorkoutTypeStrength
	default:
		return domain.WorkoutTypeMixed
	}
}

// sessionVolume sums sets x reps x weight over the session's exercises.
func sessionVolume(s *domain.PlanSession) float64 {
	total := 0.0
	for _, ex := range s.Exercises {
		total += float64(ex.Sets) * float64(ex.Reps) * ex.Weight
	}
	return total
}
