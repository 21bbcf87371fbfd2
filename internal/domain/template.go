// internal/domain/template.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateIntensity is the template's own difficulty rating on a low/moderate/
// high scale. It is matched against the user's experience level when scoring.
type TemplateIntensity string

const (
	TemplateIntensityLow      TemplateIntensity = "low"
	TemplateIntensityModerate TemplateIntensity = "moderate"
	TemplateIntensityHigh     TemplateIntensity = "high"
)

// Level maps the intensity onto a 1-3 ordinal scale.
func (t TemplateIntensity) Level() int {
	switch t {
	case TemplateIntensityLow:
		return 1
	case TemplateIntensityHigh:
		return 3
	default:
		return 2
	}
}

// WorkoutTemplate is a reusable, named set of exercises usable as a day's
// workout. Templates are catalog data: the plan engine reads them but never
// mutates them.
type WorkoutTemplate struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Intensity   TemplateIntensity  `bson:"intensity" json:"intensity"`
	Exercises   []Exercise         `bson:"exercises" json:"exercises"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CardioRatio is the fraction of exercises that are cardio. Templates without
// exercises default to 0.5 so they score as neutral rather than as pure
// strength.
func (t *WorkoutTemplate) CardioRatio() float64 {
	if len(t.Exercises) == 0 {
		return 0.5
	}
	cardio := 0
	for _, ex := range t.Exercises {
		if ex.IsCardio() {
			cardio++
		}
	}
	return float64(cardio) / float64(len(t.Exercises))
}

// EstimatedDuration sums the per-exercise estimates in minutes.
func (t *WorkoutTemplate) EstimatedDuration() int {
	total := 0
	for _, ex := range t.Exercises {
		total += ex.EstimatedMinutes()
	}
	return total
}

// MuscleGroups returns the distinct non-empty muscle groups the template hits,
// in first-seen order.
func (t *WorkoutTemplate) MuscleGroups() []string {
	seen := make(map[string]bool, len(t.Exercises))
	var groups []string
	for _, ex := range t.Exercises {
		if ex.MuscleGroup == "" || seen[ex.MuscleGroup] {
			continue
		}
		seen[ex.MuscleGroup] = true
		groups = append(groups, ex.MuscleGroup)
	}
	return groups
}
