package service

import (
	"context"
	"errors"
	"time"

	"fitpulse/fitness-tracker/internal/domain"
	"fitpulse/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrPlanNotFound          = errors.New("workout plan not found")
	ErrActivePlanExists      = errors.New("another plan is already active")
	ErrInvalidPlanTransition = errors.New("plan status does not allow this transition")
	ErrPlanNotStarted        = errors.New("plan has not been started")
)

// PlanWithSessions is a plan and its full materialized calendar.
type PlanWithSessions struct {
	Plan     *domain.WorkoutPlan
	Sessions []domain.PlanSession
}

// PlanService manages the lifecycle of generated workout plans. Plans only
// come into existence through the generation service; this service covers
// everything after that.
type PlanService interface {
	List(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	Get(ctx context.Context, userID, planID primitive.ObjectID) (*PlanWithSessions, error)
	// Activate moves a draft plan to active. At most one plan per user may be
	// active at a time.
	Activate(ctx context.Context, userID, planID primitive.ObjectID) (*domain.WorkoutPlan, error)
	Complete(ctx context.Context, userID, planID primitive.ObjectID) (*domain.WorkoutPlan, error)
	Archive(ctx context.Context, userID, planID primitive.ObjectID) (*domain.WorkoutPlan, error)
	Delete(ctx context.Context, userID, planID primitive.ObjectID) error
	// CurrentWeek returns the active plan's sessions for the calendar week the
	// user is currently in, derived from the activation timestamp.
	CurrentWeek(ctx context.Context, userID primitive.ObjectID) (weekNumber int, sessions []domain.PlanSession, err error)
}

type planService struct {
	planRepo repository.PlanRepository
	now      func() time.Time
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.PlanRepository) PlanService {
	return &planService{planRepo: planRepo, now: time.Now}
}

func (s *planService) List(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	return s.planRepo.GetByUserID(ctx, userID)
}

func (s *planService) Get(ctx context.Context, userID, planID primitive.ObjectID) (*PlanWithSessions, error) {
	plan, err := s.ownedPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.planRepo.GetSessions(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	return &PlanWithSessions{Plan: plan, Sessions: sessions}, nil
}

func (s *planService) Activate(ctx context.Context, userID, planID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	plan, err := s.ownedPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	if plan.Status != domain.PlanStatusDraft {
		return nil, ErrInvalidPlanTransition
	}

	active, err := s.planRepo.GetActiveByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if active != nil && active.ID != planID {
		return nil, ErrActivePlanExists
	}

	return s.planRepo.UpdateStatus(ctx, planID, userID, domain.PlanStatusActive)
}

func (s *planService) Complete(ctx context.Context, userID, planID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	plan, err := s.ownedPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	if plan.Status != domain.PlanStatusActive {
		return nil, ErrInvalidPlanTransition
	}
	return s.planRepo.UpdateStatus(ctx, planID, userID, domain.PlanStatusCompleted)
}

func (s *planService) Archive(ctx context.Context, userID, planID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	plan, err := s.ownedPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	if plan.Status == domain.PlanStatusArchived {
		return nil, ErrInvalidPlanTransition
	}
	return s.planRepo.UpdateStatus(ctx, planID, userID, domain.PlanStatusArchived)
}

func (s *planService) Delete(ctx context.Context, userID, planID primitive.ObjectID) error {
	if _, err := s.ownedPlan(ctx, userID, planID); err != nil {
		return err
	}
	return s.planRepo.SoftDelete(ctx, planID, userID)
}

func (s *planService) CurrentWeek(ctx context.Context, userID primitive.ObjectID) (int, []domain.PlanSession, error) {
	plan, err := s.planRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, nil, ErrPlanNotFound
		}
		return 0, nil, err
	}
	if plan.StartedAt == nil {
		return 0, nil, ErrPlanNotStarted
	}

	week := int(s.now().Sub(*plan.StartedAt).Hours()/(24*7)) + 1
	if week < 1 {
		week = 1
	}
	if week > plan.WeeksDuration {
		week = plan.WeeksDuration
	}

	sessions, err := s.planRepo.GetSessionsForWeek(ctx, plan.ID, week)
	if err != nil {
		return 0, nil, err
	}
	return week, sessions, nil
}

func (s *planService) ownedPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}
