package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"fitpulse/fitness-tracker/internal/aiplan"
	"fitpulse/fitness-tracker/internal/domain"
	"fitpulse/fitness-tracker/internal/planner"
	"fitpulse/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	ErrGenerationInvalid = errors.New("invalid generation request")
	ErrJobNotFound       = errors.New("generation job not found")
)

// Request parameter bounds. Zero workoutsPerWeek / avgDuration means "let the
// analyzer decide".
const (
	minPlanWeeks       = 1
	maxPlanWeeks       = 12
	maxWorkoutsPerWeek = 7
	minSessionMinutes  = 15
	maxSessionMinutes  = 180
)

// DefaultGenerationTimeout bounds one background generation run.
const DefaultGenerationTimeout = 5 * time.Minute

// terminalWriteTimeout bounds the job's terminal status write; it must not
// inherit the run's possibly-expired context.
const terminalWriteTimeout = 10 * time.Second

const genericFailureMessage = "plan generation failed, please try again"

// PlanConflictError reports that the goal already has an open plan. It
// carries the existing plan id so the client can resolve the conflict.
type PlanConflictError struct {
	ExistingPlanID primitive.ObjectID
}

func (e *PlanConflictError) Error() string {
	return "an active or draft plan already exists for this goal"
}

// GenerationService owns the asynchronous plan-generation job lifecycle:
// validate, record a pending job, run generation in the background, and land
// the job in exactly one terminal state.
type GenerationService interface {
	RequestGeneration(ctx context.Context, userID primitive.ObjectID, req domain.GenerationRequest) (*domain.GenerationJob, error)
	GetJob(ctx context.Context, userID, jobID primitive.ObjectID) (*domain.GenerationJob, error)
}

type generationService struct {
	goalRepo        repository.GoalRepository
	planRepo        repository.PlanRepository
	jobRepo         repository.JobRepository
	templateRepo    repository.TemplateRepository
	workoutRepo     repository.WorkoutRepository
	measurementRepo repository.MeasurementRepository
	profileRepo     repository.ProfileRepository

	engine   *planner.Engine
	aiSource aiplan.ExternalPlanSource // nil disables the AI path
	timeout  time.Duration
	logger   *zap.Logger
}

// NewGenerationService creates the generation service. aiSource may be nil,
// in which case every job uses the deterministic engine. timeout <= 0 falls
// back to DefaultGenerationTimeout.
func NewGenerationService(
	goalRepo repository.GoalRepository,
	planRepo repository.PlanRepository,
	jobRepo repository.JobRepository,
	templateRepo repository.TemplateRepository,
	workoutRepo repository.WorkoutRepository,
	measurementRepo repository.MeasurementRepository,
	profileRepo repository.ProfileRepository,
	aiSource aiplan.ExternalPlanSource,
	timeout time.Duration,
	logger *zap.Logger,
) GenerationService {
	if timeout <= 0 {
		timeout = DefaultGenerationTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &generationService{
		goalRepo:        goalRepo,
		planRepo:        planRepo,
		jobRepo:         jobRepo,
		templateRepo:    templateRepo,
		workoutRepo:     workoutRepo,
		measurementRepo: measurementRepo,
		profileRepo:     profileRepo,
		engine:          planner.NewEngine(nil, nil),
		aiSource:        aiSource,
		timeout:         timeout,
		logger:          logger,
	}
}

// RequestGeneration validates the request, rejects goals that already have an
// open plan, records a pending job and launches the background run. It
// returns immediately; the job id is the client's polling handle.
func (s *generationService) RequestGeneration(ctx context.Context, userID primitive.ObjectID, req domain.GenerationRequest) (*domain.GenerationJob, error) {
	if err := validateGenerationRequest(req); err != nil {
		return nil, err
	}

	goal, err := s.goalRepo.GetByID(ctx, req.GoalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	if goal.UserID != userID {
		return nil, ErrGoalNotFound
	}

	// Synchronous conflict check. The partial unique index on open plans
	// backstops the race between two concurrent requests.
	if existing, err := s.planRepo.GetOpenByGoalID(ctx, req.GoalID); err == nil {
		return nil, &PlanConflictError{ExistingPlanID: existing.ID}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	job := &domain.GenerationJob{
		UserID:      userID,
		RequestData: req,
		Status:      domain.JobStatusPending,
	}
	jobID, err := s.jobRepo.Create(ctx, job)
	if err != nil {
		return nil, err
	}
	job.ID = jobID

	go s.run(jobID)

	return job, nil
}

// GetJob returns the job for polling. Another user's job reads as missing.
func (s *generationService) GetJob(ctx context.Context, userID, jobID primitive.ObjectID) (*domain.GenerationJob, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	if job.UserID != userID {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// run executes one generation job to a terminal state. It is detached from
// the request: the deadline comes from configuration, not the caller.
func (s *generationService) run(jobID primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("generation job panicked",
				zap.String("jobId", jobID.Hex()),
				zap.Any("panic", r))
			s.failJob(jobID, genericFailureMessage)
		}
	}()

	// Guarded transition: only a pending job proceeds. A repeat run of an
	// already-claimed or terminal job is a no-op.
	job, err := s.jobRepo.MarkProcessing(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Info("generation job not pending, skipping",
				zap.String("jobId", jobID.Hex()))
			return
		}
		s.logger.Error("failed to claim generation job",
			zap.String("jobId", jobID.Hex()), zap.Error(err))
		return
	}

	goal, err := s.goalRepo.GetByID(ctx, job.RequestData.GoalID)
	if err != nil {
		s.failJob(jobID, "goal no longer exists")
		return
	}

	since := time.Now().AddDate(0, 0, -defaultWorkoutHistoryDays)
	workouts, err := s.workoutRepo.GetByUserSince(ctx, job.UserID, since)
	if err != nil {
		s.logger.Warn("could not load workout history, proceeding without",
			zap.String("jobId", jobID.Hex()), zap.Error(err))
		workouts = nil
	}
	history := planner.SummarizeHistory(workouts, time.Now())

	templates, err := s.templateRepo.GetByUserID(ctx, job.UserID)
	if err != nil {
		s.failJob(jobID, "could not load workout templates")
		return
	}

	plan, sessions, err := s.buildPlan(ctx, job, goal, history, workouts, templates)
	if err != nil {
		s.logger.Error("generation job failed to build plan",
			zap.String("jobId", jobID.Hex()), zap.Error(err))
		s.failJob(jobID, err.Error())
		return
	}

	planID, err := s.planRepo.CreateWithSessions(ctx, plan, sessions)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			s.failJob(jobID, "an active or draft plan already exists for this goal")
			return
		}
		s.logger.Error("failed to persist generated plan",
			zap.String("jobId", jobID.Hex()), zap.Error(err))
		s.failJob(jobID, genericFailureMessage)
		return
	}

	if err := s.completeJob(jobID, planID); err != nil {
		s.logger.Error("failed to mark generation job completed",
			zap.String("jobId", jobID.Hex()),
			zap.String("planId", planID.Hex()),
			zap.Error(err))
		s.failJob(jobID, genericFailureMessage)
		return
	}

	s.logger.Info("generation job completed",
		zap.String("jobId", jobID.Hex()),
		zap.String("planId", planID.Hex()),
		zap.Int("sessions", len(sessions)))
}

// buildPlan produces the plan document and its full calendar. With an AI
// source configured its output is authoritative: a call error, an unparsable
// reply or an empty schedule fails the build, and the job records the
// upstream error instead of silently substituting the engine's plan.
func (s *generationService) buildPlan(
	ctx context.Context,
	job *domain.GenerationJob,
	goal *domain.Goal,
	history planner.HistorySummary,
	workouts []domain.Workout,
	templates []domain.WorkoutTemplate,
) (*domain.WorkoutPlan, []domain.PlanSession, error) {
	result := s.engine.BuildPlan(goal, history, templates, job.RequestData)
	rec := result.Analysis.Recommendations
	weeks := len(result.Weeks)

	plan := &domain.WorkoutPlan{
		UserID:             job.UserID,
		GoalID:             goal.ID,
		Name:               planName(job.RequestData, goal),
		Description:        job.RequestData.Description,
		GoalType:           string(result.Analysis.GoalType),
		WeeksDuration:      weeks,
		WorkoutsPerWeek:    rec.WorkoutsPerWeek,
		AvgWorkoutDuration: rec.AvgDuration,
		Status:             domain.PlanStatusDraft,
	}

	if s.aiSource != nil {
		generated, err := s.aiSource.GeneratePlan(ctx, aiplan.Request{
			Goal: goal,
			Config: aiplan.PlanConfig{
				WeeksDuration:   weeks,
				WorkoutsPerWeek: rec.WorkoutsPerWeek,
				AvgDuration:     rec.AvgDuration,
			},
			Profile:           s.optionalProfile(ctx, job.UserID),
			LatestMeasurement: s.optionalMeasurement(ctx, job.UserID),
			WorkoutHistory:    workouts,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("AI plan generation failed: %w", err)
		}
		if generated.Rationale != "" {
			plan.Description = generated.Rationale
		}
		return plan, normalizeExternalSchedule(generated, weeks), nil
	}

	var sessions []domain.PlanSession
	for _, week := range result.Weeks {
		sessions = append(sessions, week.Sessions...)
	}
	return plan, sessions, nil
}

func (s *generationService) optionalProfile(ctx context.Context, userID primitive.ObjectID) *domain.Profile {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil
	}
	return profile
}

func (s *generationService) optionalMeasurement(ctx context.Context, userID primitive.ObjectID) *domain.Measurement {
	m, err := s.measurementRepo.GetLatestByUserID(ctx, userID)
	if err != nil {
		return nil
	}
	return m
}

// completeJob records completion on its own short deadline, mirroring
// failJob: the run's context may already be spent by the plan write.
func (s *generationService) completeJob(jobID, planID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), terminalWriteTimeout)
	defer cancel()
	return s.jobRepo.MarkCompleted(ctx, jobID, planID)
}

// failJob records a failure on its own short deadline so a timed-out run can
// still land the job in the failed state.
func (s *generationService) failJob(jobID primitive.ObjectID, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), terminalWriteTimeout)
	defer cancel()

	if err := s.jobRepo.MarkFailed(ctx, jobID, message); err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("failed to mark generation job failed",
			zap.String("jobId", jobID.Hex()), zap.Error(err))
	}
}

func validateGenerationRequest(req domain.GenerationRequest) error {
	if req.GoalID.IsZero() {
		return fmt.Errorf("%w: goalId is required", ErrGenerationInvalid)
	}
	if req.WeeksDuration < minPlanWeeks || req.WeeksDuration > maxPlanWeeks {
		return fmt.Errorf("%w: weeksDuration must be between %d and %d", ErrGenerationInvalid, minPlanWeeks, maxPlanWeeks)
	}
	if req.WorkoutsPerWeek != 0 && (req.WorkoutsPerWeek < 1 || req.WorkoutsPerWeek > maxWorkoutsPerWeek) {
		return fmt.Errorf("%w: workoutsPerWeek must be between 1 and %d", ErrGenerationInvalid, maxWorkoutsPerWeek)
	}
	if req.AvgDuration != 0 && (req.AvgDuration < minSessionMinutes || req.AvgDuration > maxSessionMinutes) {
		return fmt.Errorf("%w: avgDuration must be between %d and %d minutes", ErrGenerationInvalid, minSessionMinutes, maxSessionMinutes)
	}
	for _, day := range req.PreferredRestDays {
		if day < 0 || day > 6 {
			return fmt.Errorf("%w: preferred rest days must be between 0 and 6", ErrGenerationInvalid)
		}
	}
	return nil
}

func planName(req domain.GenerationRequest, goal *domain.Goal) string {
	if req.Name != "" {
		return req.Name
	}
	return fmt.Sprintf("Workout Plan for %s", goal.Title)
}

// normalizeExternalSchedule maps the AI's sparse workout list onto the full
// weeks x 7 calendar. Unlisted days become rest sessions; out-of-range
// entries are dropped; duplicate (week, day) entries keep the first.
func normalizeExternalSchedule(generated *aiplan.GeneratedPlan, weeks int) []domain.PlanSession {
	type slot struct{ week, day int }
	bySlot := make(map[slot]aiplan.ScheduledWorkout)
	for _, w := range generated.WeeklySchedule {
		if w.Week < 1 || w.Week > weeks || w.Day < 0 || w.Day > 6 {
			continue
		}
		key := slot{w.Week, w.Day}
		if _, taken := bySlot[key]; taken {
			continue
		}
		bySlot[key] = w
	}

	sessions := make([]domain.PlanSession, 0, weeks*7)
	for week := 1; week <= weeks; week++ {
		for day := 0; day < 7; day++ {
			w, ok := bySlot[slot{week, day}]
			if !ok {
				sessions = append(sessions, domain.PlanSession{
					WeekNumber:   week,
					DayOfWeek:    day,
					DayName:      domain.DayName(day),
					WorkoutName:  "Rest Day",
					WorkoutType:  domain.WorkoutTypeRest,
					Status:       domain.SessionStatusScheduled,
					SessionOrder: day,
				})
				continue
			}
			sessions = append(sessions, domain.PlanSession{
				WeekNumber:        week,
				DayOfWeek:         day,
				DayName:           domain.DayName(day),
				WorkoutName:       w.WorkoutType,
				WorkoutType:       classifyExternalWorkout(w.Exercises),
				Exercises:         w.Exercises,
				EstimatedDuration: w.Duration,
				IntensityLevel:    w.Intensity,
				MuscleGroups:      distinctMuscleGroups(w.Exercises),
				Notes:             w.Notes,
				Status:            domain.SessionStatusScheduled,
				SessionOrder:      day,
			})
		}
	}
	return sessions
}

// classifyExternalWorkout applies the same cardio-ratio thresholds the
// deterministic engine uses to templates.
func classifyExternalWorkout(exercises []domain.Exercise) domain.WorkoutType {
	if len(exercises) == 0 {
		return domain.WorkoutTypeMixed
	}
	cardio := 0
	for _, ex := range exercises {
		if ex.IsCardio() {
			cardio++
		}
	}
	ratio := float64(cardio) / float64(len(exercises))
	switch {
	case ratio >= 0.6:
		return domain.WorkoutTypeCardio
	case ratio <= 0.4:
		return domain.WorkoutTypeStrength
	default:
		return domain.WorkoutTypeMixed
	}
}

func distinctMuscleGroups(exercises []domain.Exercise) []string {
	seen := make(map[string]bool, len(exercises))
	var groups []string
	for _, ex := range exercises {
		if ex.MuscleGroup == "" || seen[ex.MuscleGroup] {
			continue
		}
		seen[ex.MuscleGroup] = true
		groups = append(groups, ex.MuscleGroup)
	}
	sort.Strings(groups)
	return groups
}
