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
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileInvalid  = errors.New("invalid profile")
)

// UpsertProfileInput carries the user's static fitness context.
type UpsertProfileInput struct {
	DateOfBirth       *time.Time
	Gender            string
	HeightCm          float64
	FitnessLevel      string
	MedicalConditions string
	Injuries          string
}

// ProfileService manages the one-per-user profile document.
type ProfileService interface {
	Get(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
	Upsert(ctx context.Context, userID primitive.ObjectID, input UpsertProfileInput) (*domain.Profile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) Get(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) Upsert(ctx context.Context, userID primitive.ObjectID, input UpsertProfileInput) (*domain.Profile, error) {
	if input.HeightCm < 0 {
		return nil, fmt.Errorf("%w: height cannot be negative", ErrProfileInvalid)
	}
	if input.DateOfBirth != nil && input.DateOfBirth.After(time.Now()) {
		return nil, fmt.Errorf("%w: date of birth cannot be in the future", ErrProfileInvalid)
	}

	profile := &domain.Profile{
		UserID:            userID,
		DateOfBirth:       input.DateOfBirth,
		Gender:            input.Gender,
		HeightCm:          input.HeightCm,
		FitnessLevel:      input.FitnessLevel,
		MedicalConditions: input.MedicalConditions,
		Injuries:          input.Injuries,
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}
