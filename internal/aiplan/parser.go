// internal/aiplan/parser.go
package aiplan

import (
	"encoding/json"
	"errors"
	"strings"

	"fitpulse/fitness-tracker/internal/domain"
)

var (
	// ErrNoJSON means no JSON object could be located in the model output.
	ErrNoJSON = errors.New("no json object in model output")
	// ErrEmptySchedule means the model answered but scheduled no sessions.
	ErrEmptySchedule = errors.New("model generated no workout sessions")
)

// Wire shapes for the model's JSON reply. Everything is optional; defaults
// are applied during conversion.
type planPayload struct {
	WeeklySchedule      []workoutPayload `json:"weeklySchedule"`
	Rationale           string           `json:"rationale"`
	ProgressionStrategy string           `json:"progressionStrategy"`
	KeyConsiderations   []string         `json:"keyConsiderations"`
}

type workoutPayload struct {
	Week        int               `json:"week"`
	Day         int               `json:"day"`
	DayName     string            `json:"dayName"`
	WorkoutType string            `json:"workoutType"`
	Exercises   []exercisePayload `json:"exercises"`
	Duration    int               `json:"duration"`
	Intensity   string            `json:"intensity"`
	Notes       string            `json:"notes"`
}

type exercisePayload struct {
	Name        string  `json:"name"`
	Type        string  `json:"exerciseType"`
	Sets        int     `json:"sets"`
	Reps        int     `json:"reps"`
	Weight      float64 `json:"weight"`
	WeightUnit  string  `json:"weightUnit"`
	MuscleGroup string  `json:"muscleGroup"`
	RestSeconds int     `json:"restSeconds"`
	Notes       string  `json:"notes"`
}

// ParseGeneratedPlan extracts the JSON object from free-form model output and
// converts it into a GeneratedPlan. An empty weekly schedule is an error.
func ParseGeneratedPlan(text string) (*GeneratedPlan, error) {
	jsonText, ok := extractJSON(text)
	if !ok {
		return nil, ErrNoJSON
	}

	var payload planPayload
	if err := json.Unmarshal([]byte(jsonText), &payload); err != nil {
		return nil, err
	}
	if len(payload.WeeklySchedule) == 0 {
		return nil, ErrEmptySchedule
	}

	plan := &GeneratedPlan{
		Rationale:           orDefault(payload.Rationale, "AI-generated workout plan."),
		ProgressionStrategy: orDefault(payload.ProgressionStrategy, "Progressive overload."),
		KeyConsiderations:   payload.KeyConsiderations,
	}

	for _, w := range payload.WeeklySchedule {
		sw := ScheduledWorkout{
			Week:        maxOf(w.Week, 1),
			Day:         w.Day,
			DayName:     w.DayName,
			WorkoutType: orDefault(w.WorkoutType, "General"),
			Duration:    w.Duration,
			Intensity:   normalizeIntensity(w.Intensity),
			Notes:       w.Notes,
		}
		if sw.Day < 0 || sw.Day > 6 {
			sw.Day = 1
		}
		if sw.DayName == "" {
			sw.DayName = domain.DayName(sw.Day)
		}
		if sw.Duration <= 0 {
			sw.Duration = 60
		}
		for _, ex := range w.Exercises {
			sw.Exercises = append(sw.Exercises, convertExercise(ex))
		}
		plan.WeeklySchedule = append(plan.WeeklySchedule, sw)
	}
	return plan, nil
}

// convertExercise applies defaults and coerces the exercise type.
func convertExercise(ex exercisePayload) domain.Exercise {
	out := domain.Exercise{
		Name:        orDefault(ex.Name, "Unknown"),
		Sets:        ex.Sets,
		Reps:        ex.Reps,
		Weight:      ex.Weight,
		WeightUnit:  orDefault(ex.WeightUnit, "kg"),
		MuscleGroup: ex.MuscleGroup,
		RestSeconds: ex.RestSeconds,
		Notes:       ex.Notes,
	}
	if out.Sets <= 0 {
		out.Sets = 3
	}
	if out.Reps <= 0 {
		out.Reps = 10
	}
	out.Type, _ = domain.ParseExerciseType(ex.Type)
	return out
}

// normalizeIntensity maps model vocabulary ("medium") onto the template
// intensity scale; anything unrecognized becomes moderate.
func normalizeIntensity(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return string(domain.TemplateIntensityLow)
	case "high":
		return string(domain.TemplateIntensityHigh)
	default:
		return string(domain.TemplateIntensityModerate)
	}
}

// extractJSON pulls a JSON object out of free-form text. It prefers fenced
// code blocks, then falls back to the outermost brace pair.
func extractJSON(text string) (string, bool) {
	text = strings.TrimSpace(text)

	if start := strings.Index(text, "```"); start >= 0 {
		end := strings.LastIndex(text, "```")
		if end > start {
			inner := text[start+3 : end]
			inner = strings.TrimPrefix(inner, "json")
			text = strings.TrimSpace(inner)
		}
	}
	text = strings.Trim(text, "`")
	if strings.HasPrefix(strings.ToLower(text), "json") {
		text = strings.TrimSpace(text[4:])
	}

	open := strings.Index(text, "{")
	close := strings.LastIndex(text, "}")
	if open < 0 || close <= open {
		return "", false
	}
	return text[open : close+1], true
}

func maxOf(a, b int) int {
	if a > b {
		return a
	}
	return b
}
