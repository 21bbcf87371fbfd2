// internal/domain/exercise.go
package domain

import "strings"

// ExerciseType tags an exercise with its training modality. Exercises coming
// from template JSON or from the external plan source are coerced into one of
// these three variants at the boundary; the planner never has to guess at an
// untyped shape.
type ExerciseType string

const (
	ExerciseTypeStrength   ExerciseType = "strength"
	ExerciseTypeCardio     ExerciseType = "cardio"
	ExerciseTypeFunctional ExerciseType = "functional"
)

// ParseExerciseType maps a raw string onto a known ExerciseType.
// The second return value is false when the input did not match.
func ParseExerciseType(s string) (ExerciseType, bool) {
	switch ExerciseType(strings.ToLower(strings.TrimSpace(s))) {
	case ExerciseTypeStrength:
		return ExerciseTypeStrength, true
	case ExerciseTypeCardio:
		return ExerciseTypeCardio, true
	case ExerciseTypeFunctional:
		return ExerciseTypeFunctional, true
	}
	return ExerciseTypeFunctional, false
}

// Exercise is one prescribed movement inside a template or a plan session.
// Sessions store a materialized copy of these, never a reference back to the
// template they came from.
type Exercise struct {
	Name            string       `bson:"name" json:"name"`
	Type            ExerciseType `bson:"exerciseType" json:"exerciseType"`
	Sets            int          `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps            int          `bson:"reps,omitempty" json:"reps,omitempty"`
	Weight          float64      `bson:"weight,omitempty" json:"weight,omitempty"`
	WeightUnit      string       `bson:"weightUnit,omitempty" json:"weightUnit,omitempty"`
	MuscleGroup     string       `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"`
	DurationMinutes int          `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	RestSeconds     int          `bson:"restSeconds,omitempty" json:"restSeconds,omitempty"`
	Notes           string       `bson:"notes,omitempty" json:"notes,omitempty"`
}

// IsCardio reports whether this exercise passes through progression untouched.
func (e Exercise) IsCardio() bool {
	return e.Type == ExerciseTypeCardio
}

// EstimatedMinutes approximates how long the exercise takes. Timed exercises
// use their duration; set-based work is estimated at roughly three minutes per
// set including rest.
func (e Exercise) EstimatedMinutes() int {
	if e.DurationMinutes > 0 {
		return e.DurationMinutes
	}
	if e.Sets > 0 {
		return e.Sets * 3
	}
	return 0
}

// CopyExercises returns a deep-enough copy of the slice. Exercise contains no
// reference types, so a slice copy fully detaches the result from its source.
func CopyExercises(src []Exercise) []Exercise {
	if src == nil {
		return nil
	}
	out := make([]Exercise, len(src))
	copy(out, src)
	return out
}
