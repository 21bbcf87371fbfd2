// internal/planner/selector.go
package planner

import (
	"math"
	"math/rand"
	"sort"

	"fitpulse/fitness-tracker/internal/domain"
)

// Scoring weights for template selection.
const (
	typeMatchWeight      = 40.0
	durationCloseBonus   = 20.0
	durationNearBonus    = 10.0
	durationFarBonus     = 5.0
	repetitionPenalty    = -30.0
	muscleFreshBonus     = 10.0
	muscleRestedBonus    = 5.0
	muscleOverusePenalty = -15.0
	intensityMatchBonus  = 10.0

	// topCandidates is the pool size for the random tie-break.
	topCandidates = 3
)

// neverWorkedDays is the recency assigned to a muscle group the week has not
// touched yet; anything >= 2 scores as fully recovered.
const neverWorkedDays = 7

// WeekContext tracks which templates and muscle groups a single week's build
// has already used. It is owned by exactly one GenerateWeeklySchedule call
// and is never shared across weeks or requests.
type WeekContext struct {
	usedTemplates map[string]bool
	muscleLastDay map[string]int
}

// NewWeekContext creates an empty week-build context.
func NewWeekContext() *WeekContext {
	return &WeekContext{
		usedTemplates: make(map[string]bool),
		muscleLastDay: make(map[string]int),
	}
}

// TemplateUsed reports whether the template id was already picked this week.
func (wc *WeekContext) TemplateUsed(id string) bool {
	return wc.usedTemplates[id]
}

// MarkTemplateUsed records a pick so later days penalize repeats.
func (wc *WeekContext) MarkTemplateUsed(id string) {
	wc.usedTemplates[id] = true
}

// DaysSinceWorked returns how many days ago the muscle group was last worked
// relative to the given day, or neverWorkedDays when it has not been worked
// this week.
func (wc *WeekContext) DaysSinceWorked(group string, day int) int {
	last, ok := wc.muscleLastDay[group]
	if !ok {
		return neverWorkedDays
	}
	return day - last
}

// MarkMusclesWorked records the muscle groups trained on the given day.
func (wc *WeekContext) MarkMusclesWorked(groups []string, day int) {
	for _, g := range groups {
		wc.muscleLastDay[g] = day
	}
}

// scoreTemplate rates how well a template fits the goal profile on the given
// day. Higher is better; the scale is arbitrary but stable.
func scoreTemplate(tpl *domain.WorkoutTemplate, analysis GoalAnalysis, wc *WeekContext, day int) float64 {
	// Type match: distance between the template's cardio ratio and the goal's
	// target ratio.
	score := typeMatchWeight * (1 - math.Abs(tpl.CardioRatio()-analysis.Recommendations.CardioToStrengthRatio))

	// Duration match.
	durationDiff := tpl.EstimatedDuration() - analysis.Recommendations.AvgDuration
	if durationDiff < 0 {
		durationDiff = -durationDiff
	}
	switch {
	case durationDiff <= 15:
		score += durationCloseBonus
	case durationDiff <= 30:
		score += durationNearBonus
	default:
		score += durationFarBonus
	}

	// Repetition penalty.
	if wc.TemplateUsed(tpl.ID.Hex()) {
		score += repetitionPenalty
	}

	// Muscle diversity, averaged over the template's muscle groups.
	if groups := tpl.MuscleGroups(); len(groups) > 0 {
		muscleScore := 0.0
		for _, g := range groups {
			switch days := wc.DaysSinceWorked(g, day); {
			case days >= 2:
				muscleScore += muscleFreshBonus
			case days == 1:
				muscleScore += muscleRestedBonus
			default:
				muscleScore += muscleOverusePenalty
			}
		}
		score += muscleScore / float64(len(groups))
	}

	// Intensity match on the shared 1-3 ordinal scale.
	levelDiff := analysis.Intensity.Level() - tpl.Intensity.Level()
	if levelDiff < 0 {
		levelDiff = -levelDiff
	}
	if levelDiff <= 1 {
		score += intensityMatchBonus
	}

	return score
}

// SelectTemplate scores all candidates and picks uniformly at random among
// the top three, trading a little optimality for plan variety. Returns nil
// only when the candidate list is empty.
func SelectTemplate(templates []domain.WorkoutTemplate, analysis GoalAnalysis, wc *WeekContext, day int, rng *rand.Rand) *domain.WorkoutTemplate {
	if len(templates) == 0 {
		return nil
	}

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, len(templates))
	for i := range templates {
		ranked[i] = scored{idx: i, score: scoreTemplate(&templates[i], analysis, wc, day)}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})

	pool := topCandidates
	if len(ranked) < pool {
		pool = len(ranked)
	}
	pick := ranked[rng.Intn(pool)]
	return &templates[pick.idx]
}

// SelectTemplateWithRotation pre-filters the candidate pool by day-of-week
// heuristics before scoring: muscle-building goals keep Mon/Wed/Fri for
// strength-dominant templates, weight-loss goals keep Tue/Thu/Sat for
// cardio-dominant ones. An empty filtered pool falls back to the full set;
// filtering must never leave a gap in the schedule.
func SelectTemplateWithRotation(templates []domain.WorkoutTemplate, analysis GoalAnalysis, wc *WeekContext, day int, rng *rand.Rand) *domain.WorkoutTemplate {
	filtered := templates

	switch analysis.GoalType {
	case GoalTypeMuscleBuilding:
		if day == 1 || day == 3 || day == 5 {
			filtered = filterByRatio(templates, func(ratio float64) bool { return ratio < 0.5 })
		}
	case GoalTypeWeightLoss:
		if day == 2 || day == 4 || day == 6 {
			filtered = filterByRatio(templates, func(ratio float64) bool { return ratio >= 0.6 })
		}
	}

	if len(filtered) == 0 {
		filtered = templates
	}
	return SelectTemplate(filtered, analysis, wc, day, rng)
}

func filterByRatio(templates []domain.WorkoutTemplate, keep func(float64) bool) []domain.WorkoutTemplate {
	var out []domain.WorkoutTemplate
	for i := range templates {
		if keep(templates[i].CardioRatio()) {
			out = append(out, templates[i])
		}
	}
	return out
}
