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

var (
	ErrGoalNotFound = errors.New("goal not found")
	ErrGoalInvalid  = errors.New("invalid goal")
)

// CreateGoalInput carries the fields a user sets when creating a goal.
// InitialValue doubles as the starting CurrentValue.
type CreateGoalInput struct {
	Title        string
	Description  string
	InitialValue float64
	TargetValue  float64
	Unit         string
	TargetDate   *time.Time
}

// UpdateGoalInput carries the mutable goal fields. Nil pointers leave the
// field unchanged. InitialValue, TargetValue and Unit are deliberately absent:
// they are fixed once the goal exists so derived direction stays stable.
type UpdateGoalInput struct {
	Title       *string
	Description *string
	TargetDate  *time.Time
	Status      *domain.GoalStatus
}

// GoalService manages a user's goals. All operations are scoped to the owner;
// another user's goal behaves exactly like a missing one.
type GoalService interface {
	Create(ctx context.Context, userID primitive.ObjectID, input CreateGoalInput) (*domain.Goal, error)
	List(ctx context.Context, userID primitive.ObjectID) ([]domain.Goal, error)
	Get(ctx context.Context, userID, goalID primitive.ObjectID) (*domain.Goal, error)
	Update(ctx context.Context, userID, goalID primitive.ObjectID, input UpdateGoalInput) (*domain.Goal, error)
	UpdateProgress(ctx context.Context, userID, goalID primitive.ObjectID, currentValue float64) (*domain.Goal, error)
	Delete(ctx context.Context, userID, goalID primitive.ObjectID) error
}

type goalService struct {
	goalRepo repository.GoalRepository
}

// NewGoalService creates a new instance of goalService.
func NewGoalService(goalRepo repository.GoalRepository) GoalService {
	return &goalService{goalRepo: goalRepo}
}

func (s *goalService) Create(ctx context.Context, userID primitive.ObjectID, input CreateGoalInput) (*domain.Goal, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrGoalInvalid)
	}
	if input.Unit == "" {
		return nil, fmt.Errorf("%w: unit is required", ErrGoalInvalid)
	}
	if input.InitialValue == input.TargetValue {
		return nil, fmt.Errorf("%w: target must differ from the initial value", ErrGoalInvalid)
	}

	goal := &domain.Goal{
		UserID:       userID,
		Title:        input.Title,
		Description:  input.Description,
		InitialValue: input.InitialValue,
		CurrentValue: input.InitialValue,
		TargetValue:  input.TargetValue,
		Unit:         input.Unit,
		TargetDate:   input.TargetDate,
		Status:       domain.GoalStatusActive,
	}

	id, err := s.goalRepo.Create(ctx, goal)
	if err != nil {
		return nil, err
	}
	goal.ID = id
	return goal, nil
}

func (s *goalService) List(ctx context.Context, userID primitive.ObjectID) ([]domain.Goal, error) {
	return s.goalRepo.GetByUserID(ctx, userID)
}

func (s *goalService) Get(ctx context.Context, userID, goalID primitive.ObjectID) (*domain.Goal, error) {
	return s.ownedGoal(ctx, userID, goalID)
}

func (s *goalService) Update(ctx context.Context, userID, goalID primitive.ObjectID, input UpdateGoalInput) (*domain.Goal, error) {
	goal, err := s.ownedGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrGoalInvalid)
		}
		goal.Title = *input.Title
	}
	if input.Description != nil {
		goal.Description = *input.Description
	}
	if input.TargetDate != nil {
		goal.TargetDate = input.TargetDate
	}
	if input.Status != nil {
		goal.Status = *input.Status
	}

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// UpdateProgress moves CurrentValue and re-derives the achieved flag. Reaching
// the target also flips the goal status; backing off the target reopens it.
func (s *goalService) UpdateProgress(ctx context.Context, userID, goalID primitive.ObjectID, currentValue float64) (*domain.Goal, error) {
	goal, err := s.ownedGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	goal.CurrentValue = currentValue
	goal.Achieved = goal.IsAchieved()
	if goal.Achieved {
		goal.Status = domain.GoalStatusAchieved
	} else if goal.Status == domain.GoalStatusAchieved {
		goal.Status = domain.GoalStatusActive
	}

	if err := s.goalRepo.UpdateProgress(ctx, goalID, userID, goal.CurrentValue, goal.Achieved); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *goalService) Delete(ctx context.Context, userID, goalID primitive.ObjectID) error {
	if _, err := s.ownedGoal(ctx, userID, goalID); err != nil {
		return err
	}
	return s.goalRepo.SoftDelete(ctx, goalID, userID)
}

// ownedGoal fetches the goal and hides other users' goals behind not-found.
func (s *goalService) ownedGoal(ctx context.Context, userID, goalID primitive.ObjectID) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	if goal.UserID != userID {
		return nil, ErrGoalNotFound
	}
	return goal, nil
}
