package service

import (
	"context"
	"errors"
	"fmt"

	"fitpulse/fitness-tracker/internal/domain"
	"fitpulse/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrTemplateNotFound = errors.New("workout template not found")
	ErrTemplateInvalid  = errors.New("invalid workout template")
)

// CreateTemplateInput carries the fields for a new workout template.
type CreateTemplateInput struct {
	Name        string
	Description string
	Intensity   string
	Exercises   []domain.Exercise
}

// TemplateService manages the user-owned workout template catalog the
// schedule generator selects from.
type TemplateService interface {
	Create(ctx context.Context, userID primitive.ObjectID, input CreateTemplateInput) (*domain.WorkoutTemplate, error)
	List(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutTemplate, error)
	Get(ctx context.Context, userID, templateID primitive.ObjectID) (*domain.WorkoutTemplate, error)
	Delete(ctx context.Context, userID, templateID primitive.ObjectID) error
}

type templateService struct {
	templateRepo repository.TemplateRepository
}

// NewTemplateService creates a new instance of templateService.
func NewTemplateService(templateRepo repository.TemplateRepository) TemplateService {
	return &templateService{templateRepo: templateRepo}
}

func (s *templateService) Create(ctx context.Context, userID primitive.ObjectID, input CreateTemplateInput) (*domain.WorkoutTemplate, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrTemplateInvalid)
	}
	if len(input.Exercises) == 0 {
		return nil, fmt.Errorf("%w: at least one exercise is required", ErrTemplateInvalid)
	}

	intensity, err := parseTemplateIntensity(input.Intensity)
	if err != nil {
		return nil, err
	}

	exercises := make([]domain.Exercise, len(input.Exercises))
	for i, ex := range input.Exercises {
		if ex.Name == "" {
			return nil, fmt.Errorf("%w: exercise %d has no name", ErrTemplateInvalid, i+1)
		}
		exercises[i] = ex
		// Raw exercise types come from client JSON; coerce unknowns.
		exercises[i].Type, _ = domain.ParseExerciseType(string(ex.Type))
	}

	tpl := &domain.WorkoutTemplate{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Intensity:   intensity,
		Exercises:   exercises,
	}

	id, err := s.templateRepo.Create(ctx, tpl)
	if err != nil {
		return nil, err
	}
	tpl.ID = id
	return tpl, nil
}

func (s *templateService) List(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutTemplate, error) {
	return s.templateRepo.GetByUserID(ctx, userID)
}

func (s *templateService) Get(ctx context.Context, userID, templateID primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	tpl, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if tpl.UserID != userID {
		return nil, ErrTemplateNotFound
	}
	return tpl, nil
}

func (s *templateService) Delete(ctx context.Context, userID, templateID primitive.ObjectID) error {
	err := s.templateRepo.Delete(ctx, templateID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTemplateNotFound
	}
	return err
}

func parseTemplateIntensity(s string) (domain.TemplateIntensity, error) {
	switch domain.TemplateIntensity(s) {
	case domain.TemplateIntensityLow, domain.TemplateIntensityModerate, domain.TemplateIntensityHigh:
		return domain.TemplateIntensity(s), nil
	case "":
		return domain.TemplateIntensityModerate, nil
	}
	return "", fmt.Errorf("%w: intensity must be low, moderate or high", ErrTemplateInvalid)
}
