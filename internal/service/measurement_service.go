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
	ErrMeasurementInvalid = errors.New("invalid measurement")
	ErrNoMeasurements     = errors.New("no measurements recorded")
)

// RecordMeasurementInput carries one body-measurement entry.
type RecordMeasurementInput struct {
	Weight            float64
	BodyFatPercentage *float64
	MuscleMass        *float64
	MeasuredAt        time.Time
}

// MeasurementService records body measurements; the latest entry feeds the
// external plan source's context.
type MeasurementService interface {
	Record(ctx context.Context, userID primitive.ObjectID, input RecordMeasurementInput) (*domain.Measurement, error)
	Latest(ctx context.Context, userID primitive.ObjectID) (*domain.Measurement, error)
}

type measurementService struct {
	measurementRepo repository.MeasurementRepository
}

// NewMeasurementService creates a new instance of measurementService.
func NewMeasurementService(measurementRepo repository.MeasurementRepository) MeasurementService {
	return &measurementService{measurementRepo: measurementRepo}
}

func (s *measurementService) Record(ctx context.Context, userID primitive.ObjectID, input RecordMeasurementInput) (*domain.Measurement, error) {
	if input.Weight <= 0 {
		return nil, fmt.Errorf("%w: weight must be positive", ErrMeasurementInvalid)
	}
	if input.BodyFatPercentage != nil && (*input.BodyFatPercentage < 0 || *input.BodyFatPercentage > 100) {
		return nil, fmt.Errorf("%w: body fat percentage must be between 0 and 100", ErrMeasurementInvalid)
	}
	if input.MeasuredAt.IsZero() {
		input.MeasuredAt = time.Now()
	}

	m := &domain.Measurement{
		UserID:            userID,
		Weight:            input.Weight,
		BodyFatPercentage: input.BodyFatPercentage,
		MuscleMass:        input.MuscleMass,
		MeasuredAt:        input.MeasuredAt,
	}

	id, err := s.measurementRepo.Create(ctx, m)
	if err != nil {
		return nil, err
	}
	m.ID = id
	return m, nil
}

func (s *measurementService) Latest(ctx context.Context, userID primitive.ObjectID) (*domain.Measurement, error) {
	m, err := s.measurementRepo.GetLatestByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoMeasurements
		}
		return nil, err
	}
	return m, nil
}
