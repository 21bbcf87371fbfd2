package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitpulse/fitness-tracker/internal/domain"
	"fitpulse/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrWorkoutInvalid = errors.New("invalid workout")

// defaultWorkoutHistoryDays bounds the default listing window.
const defaultWorkoutHistoryDays = 90

// LogWorkoutInput carries a completed training session to record.
type LogWorkoutInput struct {
	Name            string
	PerformedAt     time.Time
	DurationMinutes int
	Exercises       []domain.Exercise
	PlanSessionID   *primitive.ObjectID
	Notes           string
}

// WorkoutService records and lists completed workouts. The logged stream is
// what the history summary and the AI prompt are built from.
type WorkoutService interface {
	Log(ctx context.Context, userID primitive.ObjectID, input LogWorkoutInput) (*domain.Workout, error)
	ListRecent(ctx context.Context, userID primitive.ObjectID, days int) ([]domain.Workout, error)
}

type workoutService struct {
	workoutRepo repository.WorkoutRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository) WorkoutService {
	return &workoutService{workoutRepo: workoutRepo}
}

func (s *workoutService) Log(ctx context.Context, userID primitive.ObjectID, input LogWorkoutInput) (*domain.Workout, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrWorkoutInvalid)
	}
	if input.PerformedAt.IsZero() {
		input.PerformedAt = time.Now()
	}
	if input.PerformedAt.After(time.Now().Add(time.Minute)) {
		return nil, fmt.Errorf("%w: performedAt cannot be in the future", ErrWorkoutInvalid)
	}

	exercises := domain.CopyExercises(input.Exercises)
	for i := range exercises {
		exercises[i].Type, _ = domain.ParseExerciseType(string(exercises[i].Type))
	}

	workout := &domain.Workout{
		UserID:          userID,
		Name:            input.Name,
		PerformedAt:     input.PerformedAt,
		DurationMinutes: input.DurationMinutes,
		Exercises:       exercises,
		PlanSessionID:   input.PlanSessionID,
		Notes:           input.Notes,
	}

	id, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = id
	return workout, nil
}

func (s *workoutService) ListRecent(ctx context.Context, userID primitive.ObjectID, days int) ([]domain.Workout, error) {
	if days <= 0 {
		days = defaultWorkoutHistoryDays
	}
	since := time.Now().AddDate(0, 0, -days)
	return s.workoutRepo.GetByUserSince(ctx, userID, since)
}
