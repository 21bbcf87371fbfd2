package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout is a completed training session the user logged. The stream of
// these records is what the history summary and the AI prompt are built from.
type Workout struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID  `bson:"userId" json:"userId"`
	Name            string              `bson:"name" json:"name"`
	PerformedAt     time.Time           `bson:"performedAt" json:"performedAt"`
	DurationMinutes int                 `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	Exercises       []Exercise          `bson:"exercises,omitempty" json:"exercises,omitempty"`
	PlanSessionID   *primitive.ObjectID `bson:"planSessionId,omitempty" json:"planSessionId,omitempty"` // Set when the workout fulfilled a plan session
	Notes           string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}
