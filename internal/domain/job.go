// internal/domain/job.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JobStatus is the state of a plan-generation job. The machine is strictly
// forward-only: pending -> processing -> completed | failed. A terminal job
// is immutable.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Terminal reports whether no further transitions are allowed.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// CanTransitionTo validates a status transition against the state machine.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	switch s {
	case JobStatusPending:
		return next == JobStatusProcessing
	case JobStatusProcessing:
		return next == JobStatusCompleted || next == JobStatusFailed
	default:
		return false
	}
}

// GenerationRequest is the immutable snapshot of the parameters a generation
// job was created with.
type GenerationRequest struct {
	GoalID            primitive.ObjectID `bson:"goalId" json:"goalId"`
	Name              string             `bson:"name,omitempty" json:"name,omitempty"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	WeeksDuration     int                `bson:"weeksDuration" json:"weeksDuration"`
	WorkoutsPerWeek   int                `bson:"workoutsPerWeek" json:"workoutsPerWeek"`
	AvgDuration       int                `bson:"avgDuration" json:"avgDuration"`
	StartDate         *time.Time         `bson:"startDate,omitempty" json:"startDate,omitempty"`
	PreferredRestDays []int              `bson:"preferredRestDays,omitempty" json:"preferredRestDays,omitempty"`
}

// GenerationJob is the durable record of one asynchronous plan-generation
// attempt and its terminal outcome. The job exclusively owns the lifecycle of
// at most one resulting WorkoutPlan.
type GenerationJob struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID  `bson:"userId" json:"userId"`
	RequestData  GenerationRequest   `bson:"requestData" json:"requestData"`
	Status       JobStatus           `bson:"status" json:"status"`
	PlanID       *primitive.ObjectID `bson:"planId,omitempty" json:"planId,omitempty"`             // Set only on completion
	ErrorMessage string              `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"` // Set only on failure
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}
