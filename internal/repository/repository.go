package repository

import (
	"context"
	"time"

	"fitpulse/fitness-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrConflict     = RepositoryError("conflict") // Uniqueness constraint violated
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// GoalRepository defines the interface for interacting with goal data.
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Goal, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Goal, error)
	Update(ctx context.Context, goal *domain.Goal) error
	UpdateProgress(ctx context.Context, id, userID primitive.ObjectID, currentValue float64, achieved bool) error
	SoftDelete(ctx context.Context, id, userID primitive.ObjectID) error
}

// TemplateRepository defines the interface for interacting with the workout
// template catalog.
type TemplateRepository interface {
	Create(ctx context.Context, tpl *domain.WorkoutTemplate) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutTemplate, error)
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}

// WorkoutRepository defines the interface for interacting with logged workouts.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	GetByUserSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]domain.Workout, error)
}

// MeasurementRepository defines the interface for body measurements.
type MeasurementRepository interface {
	Create(ctx context.Context, m *domain.Measurement) (primitive.ObjectID, error)
	GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Measurement, error)
}

// ProfileRepository defines the interface for the per-user profile document.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
	Upsert(ctx context.Context, profile *domain.Profile) error
}

// PlanRepository defines the interface for workout plans and their sessions.
// Plans and sessions are written together: a plan without its sessions is
// never observable.
type PlanRepository interface {
	CreateWithSessions(ctx context.Context, plan *domain.WorkoutPlan, sessions []domain.PlanSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.WorkoutPlan, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	// GetOpenByGoalID returns the active or draft plan tied to a goal, if any.
	GetOpenByGoalID(ctx context.Context, goalID primitive.ObjectID) (*domain.WorkoutPlan, error)
	GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutPlan, error)
	// GetOpenByUserID returns the user's active plan, or their most recent
	// draft when no plan is active.
	GetOpenByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutPlan, error)
	UpdateStatus(ctx context.Context, id, userID primitive.ObjectID, status domain.PlanStatus) (*domain.WorkoutPlan, error)
	SoftDelete(ctx context.Context, id, userID primitive.ObjectID) error
	GetSessions(ctx context.Context, planID primitive.ObjectID) ([]domain.PlanSession, error)
	GetSessionsForWeek(ctx context.Context, planID primitive.ObjectID, weekNumber int) ([]domain.PlanSession, error)
}

// JobRepository defines the interface for generation job records. The Mark*
// methods perform guarded updates: they only match a row still in the
// expected predecessor state, which is what makes the state machine
// forward-only at the storage layer.
type JobRepository interface {
	Create(ctx context.Context, job *domain.GenerationJob) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.GenerationJob, error)
	// MarkProcessing transitions pending -> processing. Returns ErrNotFound
	// when the job is not pending, making repeat executions a no-op.
	MarkProcessing(ctx context.Context, id primitive.ObjectID) (*domain.GenerationJob, error)
	// MarkCompleted transitions processing -> completed and records the plan id.
	MarkCompleted(ctx context.Context, id, planID primitive.ObjectID) error
	// MarkFailed transitions processing -> failed and records the error
	// message. Returns ErrNotFound when the job is not processing.
	MarkFailed(ctx context.Context, id primitive.ObjectID, errorMessage string) error
}
