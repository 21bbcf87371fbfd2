// internal/domain/goal.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalStatus tracks the lifecycle of a goal.
type GoalStatus string

const (
	GoalStatusActive   GoalStatus = "active"
	GoalStatusAchieved GoalStatus = "achieved"
	GoalStatusArchived GoalStatus = "archived"
)

// GoalDirection is derived from initial vs target value, never stored.
type GoalDirection string

const (
	GoalDirectionIncrease GoalDirection = "increase"
	GoalDirectionDecrease GoalDirection = "decrease"
)

// Goal represents a user's numeric objective, e.g. "Lose 10 kg" or "Bench 100 kg".
// InitialValue, TargetValue and Unit are immutable once a plan has started;
// only CurrentValue moves as the user logs progress.
type Goal struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	InitialValue float64            `bson:"initialValue" json:"initialValue"`
	CurrentValue float64            `bson:"currentValue" json:"currentValue"`
	TargetValue  float64            `bson:"targetValue" json:"targetValue"`
	Unit         string             `bson:"unit" json:"unit"` // e.g. "kg", "lbs", "km", "reps"
	TargetDate   *time.Time         `bson:"targetDate,omitempty" json:"targetDate,omitempty"`
	Achieved     bool               `bson:"achieved" json:"achieved"`
	Status       GoalStatus         `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
	DeletedAt    *time.Time         `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
}

// Direction reports whether the goal moves the value up or down.
func (g *Goal) Direction() GoalDirection {
	if g.TargetValue < g.InitialValue {
		return GoalDirectionDecrease
	}
	return GoalDirectionIncrease
}

// IsAchieved checks whether CurrentValue has crossed TargetValue in the
// goal's direction.
func (g *Goal) IsAchieved() bool {
	if g.Direction() == GoalDirectionDecrease {
		return g.CurrentValue <= g.TargetValue
	}
	return g.CurrentValue >= g.TargetValue
}
