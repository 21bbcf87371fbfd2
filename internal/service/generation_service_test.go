package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitpulse/fitness-tracker/internal/aiplan"
	"fitpulse/fitness-tracker/internal/domain"
	"fitpulse/fitness-tracker/internal/repository"
)

// --- In-memory repository fakes ---

type fakeGoalRepo struct {
	mu    sync.Mutex
	goals map[primitive.ObjectID]*domain.Goal
}

func newFakeGoalRepo() *fakeGoalRepo {
	return &fakeGoalRepo{goals: make(map[primitive.ObjectID]*domain.Goal)}
}

func (r *fakeGoalRepo) Create(_ context.Context, goal *domain.Goal) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	g := *goal
	g.ID = id
	r.goals[id] = &g
	return id, nil
}

func (r *fakeGoalRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.goals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *g
	return &out, nil
}

func (r *fakeGoalRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Goal
	for _, g := range r.goals {
		if g.UserID == userID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *fakeGoalRepo) Update(_ context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g := *goal
	r.goals[goal.ID] = &g
	return nil
}

func (r *fakeGoalRepo) UpdateProgress(_ context.Context, id, _ primitive.ObjectID, currentValue float64, achieved bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.goals[id]
	if !ok {
		return repository.ErrNotFound
	}
	g.CurrentValue = currentValue
	g.Achieved = achieved
	return nil
}

func (r *fakeGoalRepo) SoftDelete(_ context.Context, id, _ primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.goals, id)
	return nil
}

type fakePlanRepo struct {
	mu        sync.Mutex
	plans     map[primitive.ObjectID]*domain.WorkoutPlan
	sessions  map[primitive.ObjectID][]domain.PlanSession
	createErr error
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{
		plans:    make(map[primitive.ObjectID]*domain.WorkoutPlan),
		sessions: make(map[primitive.ObjectID][]domain.PlanSession),
	}
}

func (r *fakePlanRepo) CreateWithSessions(_ context.Context, plan *domain.WorkoutPlan, sessions []domain.PlanSession) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return primitive.NilObjectID, r.createErr
	}
	for _, existing := range r.plans {
		if existing.GoalID == plan.GoalID && existing.IsOpen() {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	id := primitive.NewObjectID()
	p := *plan
	p.ID = id
	r.plans[id] = &p
	r.sessions[id] = append([]domain.PlanSession(nil), sessions...)
	return id, nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id, userID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[id]
	if !ok || p.UserID != userID {
		return nil, repository.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (r *fakePlanRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.WorkoutPlan
	for _, p := range r.plans {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePlanRepo) GetOpenByGoalID(_ context.Context, goalID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if p.GoalID == goalID && p.IsOpen() {
			out := *p
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakePlanRepo) GetActiveByUserID(_ context.Context, userID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if p.UserID == userID && p.Status == domain.PlanStatusActive {
			out := *p
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakePlanRepo) GetOpenByUserID(_ context.Context, userID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if p.UserID == userID && p.IsOpen() {
			out := *p
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakePlanRepo) UpdateStatus(_ context.Context, id, userID primitive.ObjectID, status domain.PlanStatus) (*domain.WorkoutPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[id]
	if !ok || p.UserID != userID {
		return nil, repository.ErrNotFound
	}
	p.Status = status
	now := time.Now().UTC()
	switch status {
	case domain.PlanStatusActive:
		p.StartedAt = &now
	case domain.PlanStatusCompleted:
		p.CompletedAt = &now
	}
	out := *p
	return &out, nil
}

func (r *fakePlanRepo) SoftDelete(_ context.Context, id, _ primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.plans, id)
	return nil
}

func (r *fakePlanRepo) GetSessions(_ context.Context, planID primitive.ObjectID) ([]domain.PlanSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.PlanSession(nil), r.sessions[planID]...), nil
}

func (r *fakePlanRepo) GetSessionsForWeek(_ context.Context, planID primitive.ObjectID, weekNumber int) ([]domain.PlanSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.PlanSession
	for _, s := range r.sessions[planID] {
		if s.WeekNumber == weekNumber {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakePlanRepo) planCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.plans)
}

// fakeJobRepo mirrors the guarded transitions the mongo implementation
// performs, so state-machine behavior is exercised for real.
type fakeJobRepo struct {
	mu          sync.Mutex
	jobs        map[primitive.ObjectID]*domain.GenerationJob
	completeErr error
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[primitive.ObjectID]*domain.GenerationJob)}
}

func (r *fakeJobRepo) Create(_ context.Context, job *domain.GenerationJob) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	j := *job
	j.ID = id
	j.Status = domain.JobStatusPending
	r.jobs[id] = &j
	return id, nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.GenerationJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *j
	return &out, nil
}

func (r *fakeJobRepo) MarkProcessing(_ context.Context, id primitive.ObjectID) (*domain.GenerationJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok || j.Status != domain.JobStatusPending {
		return nil, repository.ErrNotFound
	}
	j.Status = domain.JobStatusProcessing
	out := *j
	return &out, nil
}

func (r *fakeJobRepo) MarkCompleted(_ context.Context, id, planID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.completeErr != nil {
		return r.completeErr
	}
	j, ok := r.jobs[id]
	if !ok || j.Status != domain.JobStatusProcessing {
		return repository.ErrNotFound
	}
	j.Status = domain.JobStatusCompleted
	j.PlanID = &planID
	return nil
}

func (r *fakeJobRepo) MarkFailed(_ context.Context, id primitive.ObjectID, errorMessage string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok || j.Status != domain.JobStatusProcessing {
		return repository.ErrNotFound
	}
	j.Status = domain.JobStatusFailed
	j.ErrorMessage = errorMessage
	return nil
}

func (r *fakeJobRepo) jobCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.jobs)
}

type fakeTemplateRepo struct {
	templates []domain.WorkoutTemplate
}

func (r *fakeTemplateRepo) Create(_ context.Context, tpl *domain.WorkoutTemplate) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	t := *tpl
	t.ID = id
	r.templates = append(r.templates, t)
	return id, nil
}

func (r *fakeTemplateRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	for i := range r.templates {
		if r.templates[i].ID == id {
			out := r.templates[i]
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeTemplateRepo) GetByUserID(_ context.Context, _ primitive.ObjectID) ([]domain.WorkoutTemplate, error) {
	return append([]domain.WorkoutTemplate(nil), r.templates...), nil
}

func (r *fakeTemplateRepo) Delete(_ context.Context, _, _ primitive.ObjectID) error {
	return repository.ErrNotFound
}

type fakeWorkoutRepo struct {
	workouts []domain.Workout
}

func (r *fakeWorkoutRepo) Create(_ context.Context, w *domain.Workout) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	out := *w
	out.ID = id
	r.workouts = append(r.workouts, out)
	return id, nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	for i := range r.workouts {
		if r.workouts[i].ID == id {
			out := r.workouts[i]
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeWorkoutRepo) GetByUserSince(_ context.Context, userID primitive.ObjectID, since time.Time) ([]domain.Workout, error) {
	var out []domain.Workout
	for _, w := range r.workouts {
		if w.UserID == userID && !w.PerformedAt.Before(since) {
			out = append(out, w)
		}
	}
	return out, nil
}

type fakeMeasurementRepo struct{}

func (fakeMeasurementRepo) Create(_ context.Context, _ *domain.Measurement) (primitive.ObjectID, error) {
	return primitive.NewObjectID(), nil
}

func (fakeMeasurementRepo) GetLatestByUserID(_ context.Context, _ primitive.ObjectID) (*domain.Measurement, error) {
	return nil, repository.ErrNotFound
}

type fakeProfileRepo struct{}

func (fakeProfileRepo) GetByUserID(_ context.Context, _ primitive.ObjectID) (*domain.Profile, error) {
	return nil, repository.ErrNotFound
}

func (fakeProfileRepo) Upsert(_ context.Context, _ *domain.Profile) error { return nil }

// fakeAISource returns a canned plan or error.
type fakeAISource struct {
	plan *aiplan.GeneratedPlan
	err  error
}

func (f *fakeAISource) GeneratePlan(_ context.Context, _ aiplan.Request) (*aiplan.GeneratedPlan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.plan, nil
}

// --- Test setup ---

type generationFixture struct {
	svc      GenerationService
	goalRepo *fakeGoalRepo
	planRepo *fakePlanRepo
	jobRepo  *fakeJobRepo
	userID   primitive.ObjectID
	goalID   primitive.ObjectID
}

func newGenerationFixture(t *testing.T, aiSource aiplan.ExternalPlanSource) *generationFixture {
	t.Helper()

	goalRepo := newFakeGoalRepo()
	planRepo := newFakePlanRepo()
	jobRepo := newFakeJobRepo()
	templateRepo := &fakeTemplateRepo{templates: []domain.WorkoutTemplate{
		{ID: primitive.NewObjectID(), Name: "Full Body A", Intensity: domain.TemplateIntensityModerate, Exercises: []domain.Exercise{
			{Name: "Squat", Type: domain.ExerciseTypeStrength, Sets: 3, Reps: 10, Weight: 60, MuscleGroup: "legs"},
		}},
		{ID: primitive.NewObjectID(), Name: "Intervals", Intensity: domain.TemplateIntensityModerate, Exercises: []domain.Exercise{
			{Name: "Run", Type: domain.ExerciseTypeCardio, DurationMinutes: 30},
		}},
	}}

	userID := primitive.NewObjectID()
	goalID, err := goalRepo.Create(context.Background(), &domain.Goal{
		UserID:       userID,
		Title:        "Lose weight",
		Unit:         "kg",
		InitialValue: 90,
		CurrentValue: 85,
		TargetValue:  78,
		Status:       domain.GoalStatusActive,
	})
	require.NoError(t, err)

	svc := NewGenerationService(
		goalRepo, planRepo, jobRepo, templateRepo,
		&fakeWorkoutRepo{}, fakeMeasurementRepo{}, fakeProfileRepo{},
		aiSource, time.Minute, nil,
	)

	return &generationFixture{
		svc:      svc,
		goalRepo: goalRepo,
		planRepo: planRepo,
		jobRepo:  jobRepo,
		userID:   userID,
		goalID:   goalID,
	}
}

func (f *generationFixture) waitForTerminal(t *testing.T, jobID primitive.ObjectID) *domain.GenerationJob {
	t.Helper()
	var job *domain.GenerationJob
	require.Eventually(t, func() bool {
		j, err := f.jobRepo.GetByID(context.Background(), jobID)
		if err != nil {
			return false
		}
		job = j
		return j.Status.Terminal()
	}, 5*time.Second, 10*time.Millisecond)
	return job
}

// --- Tests ---

func TestRequestGeneration_Validation(t *testing.T) {
	f := newGenerationFixture(t, nil)
	ctx := context.Background()

	cases := []struct {
		name string
		req  domain.GenerationRequest
	}{
		{"missing goal", domain.GenerationRequest{WeeksDuration: 4}},
		{"zero weeks", domain.GenerationRequest{GoalID: f.goalID}},
		{"too many weeks", domain.GenerationRequest{GoalID: f.goalID, WeeksDuration: 13}},
		{"too many workouts", domain.GenerationRequest{GoalID: f.goalID, WeeksDuration: 4, WorkoutsPerWeek: 8}},
		{"duration too short", domain.GenerationRequest{GoalID: f.goalID, WeeksDuration: 4, AvgDuration: 10}},
		{"duration too long", domain.GenerationRequest{GoalID: f.goalID, WeeksDuration: 4, AvgDuration: 200}},
		{"bad rest day", domain.GenerationRequest{GoalID: f.goalID, WeeksDuration: 4, PreferredRestDays: []int{7}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.RequestGeneration(ctx, f.userID, tc.req)
			assert.ErrorIs(t, err, ErrGenerationInvalid)
		})
	}

	// Invalid requests never leave a job behind.
	assert.Zero(t, f.jobRepo.jobCount())
}

func TestRequestGeneration_GoalOwnership(t *testing.T) {
	f := newGenerationFixture(t, nil)
	ctx := context.Background()

	otherUser := primitive.NewObjectID()
	_, err := f.svc.RequestGeneration(ctx, otherUser, domain.GenerationRequest{GoalID: f.goalID, WeeksDuration: 4})
	assert.ErrorIs(t, err, ErrGoalNotFound)

	_, err = f.svc.RequestGeneration(ctx, f.userID, domain.GenerationRequest{GoalID: primitive.NewObjectID(), WeeksDuration: 4})
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestRequestGeneration_ConflictOnOpenPlan(t *testing.T) {
	f := newGenerationFixture(t, nil)
	ctx := context.Background()

	existingID, err := f.planRepo.CreateWithSessions(ctx, &domain.WorkoutPlan{
		UserID: f.userID,
		GoalID: f.goalID,
		Name:   "Existing",
		Status: domain.PlanStatusActive,
	}, nil)
	require.NoError(t, err)

	_, err = f.svc.RequestGeneration(ctx, f.userID, domain.GenerationRequest{GoalID: f.goalID, WeeksDuration: 4})

	var conflict *PlanConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, existingID, conflict.ExistingPlanID)
	// A conflicting request never records a job.
	assert.Zero(t, f.jobRepo.jobCount())
}

func TestGeneration_Lifecycle(t *testing.T) {
	f := newGenerationFixture(t, nil)
	ctx := context.Background()

	job, err := f.svc.RequestGeneration(ctx, f.userID, domain.GenerationRequest{
		GoalID:        f.goalID,
		WeeksDuration: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusPending, job.Status)

	done := f.waitForTerminal(t, job.ID)
	require.Equal(t, domain.JobStatusCompleted, done.Status)
	require.NotNil(t, done.PlanID)
	assert.Empty(t, done.ErrorMessage)

	plan, err := f.planRepo.GetByID(ctx, *done.PlanID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanStatusDraft, plan.Status)
	assert.Equal(t, "weight_loss", plan.GoalType)
	assert.Equal(t, 4, plan.WeeksDuration)

	sessions, err := f.planRepo.GetSessions(ctx, plan.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 4*7)
}

func TestGeneration_RequestOverridesFlowIntoPlan(t *testing.T) {
	f := newGenerationFixture(t, nil)
	ctx := context.Background()

	job, err := f.svc.RequestGeneration(ctx, f.userID, domain.GenerationRequest{
		GoalID:          f.goalID,
		Name:            "Cut v2",
		WeeksDuration:   2,
		WorkoutsPerWeek: 3,
		AvgDuration:     40,
	})
	require.NoError(t, err)

	done := f.waitForTerminal(t, job.ID)
	require.Equal(t, domain.JobStatusCompleted, done.Status)

	plan, err := f.planRepo.GetByID(ctx, *done.PlanID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, "Cut v2", plan.Name)
	assert.Equal(t, 2, plan.WeeksDuration)
	assert.Equal(t, 3, plan.WorkoutsPerWeek)
	assert.Equal(t, 40, plan.AvgWorkoutDuration)
}

func TestGeneration_PersistFailureMarksJobFailed(t *testing.T) {
	f := newGenerationFixture(t, nil)
	f.planRepo.createErr = repository.ErrConflict
	ctx := context.Background()

	job, err := f.svc.RequestGeneration(ctx, f.userID, domain.GenerationRequest{GoalID: f.goalID, WeeksDuration: 4})
	require.NoError(t, err)

	done := f.waitForTerminal(t, job.ID)
	assert.Equal(t, domain.JobStatusFailed, done.Status)
	assert.Nil(t, done.PlanID)
	assert.NotEmpty(t, done.ErrorMessage)
	assert.Zero(t, f.planRepo.planCount())
}

func TestGeneration_RerunTerminalJobIsNoOp(t *testing.T) {
	f := newGenerationFixture(t, nil)
	ctx := context.Background()

	job, err := f.svc.RequestGeneration(ctx, f.userID, domain.GenerationRequest{GoalID: f.goalID, WeeksDuration: 4})
	require.NoError(t, err)
	done := f.waitForTerminal(t, job.ID)
	require.Equal(t, domain.JobStatusCompleted, done.Status)

	// Re-executing a terminal job changes nothing and creates no second plan.
	f.svc.(*generationService).run(job.ID)

	after, err := f.jobRepo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCompleted, after.Status)
	assert.Equal(t, done.PlanID, after.PlanID)
	assert.Equal(t, 1, f.planRepo.planCount())
}

func TestGeneration_AISourceSchedule(t *testing.T) {
	ai := &fakeAISource{plan: &aiplan.GeneratedPlan{
		Rationale: "Focused cut.",
		WeeklySchedule: []aiplan.ScheduledWorkout{
			{Week: 1, Day: 1, WorkoutType: "Upper Body", Intensity: "moderate", Duration: 45, Exercises: []domain.Exercise{
				{Name: "Bench Press", Type: domain.ExerciseTypeStrength, Sets: 3, Reps: 10, Weight: 60, MuscleGroup: "chest"},
			}},
			{Week: 2, Day: 4, WorkoutType: "Cardio", Intensity: "high", Duration: 30, Exercises: []domain.Exercise{
				{Name: "Run", Type: domain.ExerciseTypeCardio, DurationMinutes: 30},
			}},
			{Week: 9, Day: 1, WorkoutType: "Out of range", Exercises: nil},
		},
	}}
	f := newGenerationFixture(t, ai)
	ctx := context.Background()

	job, err := f.svc.RequestGeneration(ctx, f.userID, domain.GenerationRequest{GoalID: f.goalID, WeeksDuration: 2})
	require.NoError(t, err)

	done := f.waitForTerminal(t, job.ID)
	require.Equal(t, domain.JobStatusCompleted, done.Status)

	plan, err := f.planRepo.GetByID(ctx, *done.PlanID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, "Focused cut.", plan.Description)

	sessions, err := f.planRepo.GetSessions(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 2*7)

	workouts := 0
	for _, s := range sessions {
		if s.IsWorkout() {
			workouts++
			continue
		}
		assert.Equal(t, domain.WorkoutTypeRest, s.WorkoutType)
	}
	// The out-of-range week 9 entry was dropped; only the two real workouts
	// survive, everything else is rest.
	assert.Equal(t, 2, workouts)
}

func TestGeneration_AISourceErrorFailsJob(t *testing.T) {
	f := newGenerationFixture(t, &fakeAISource{err: errors.New("model unavailable")})
	ctx := context.Background()

	job, err := f.svc.RequestGeneration(ctx, f.userID, domain.GenerationRequest{GoalID: f.goalID, WeeksDuration: 3})
	require.NoError(t, err)

	// An upstream AI error is a job failure with the upstream message; the
	// deterministic engine is never substituted behind the client's back.
	done := f.waitForTerminal(t, job.ID)
	require.Equal(t, domain.JobStatusFailed, done.Status)
	assert.Nil(t, done.PlanID)
	assert.Contains(t, done.ErrorMessage, "model unavailable")
	assert.Zero(t, f.planRepo.planCount())
}

func TestGeneration_CompletedWriteFailureMarksJobFailed(t *testing.T) {
	f := newGenerationFixture(t, nil)
	f.jobRepo.completeErr = errors.New("write timeout")
	ctx := context.Background()

	job, err := f.svc.RequestGeneration(ctx, f.userID, domain.GenerationRequest{GoalID: f.goalID, WeeksDuration: 4})
	require.NoError(t, err)

	// Even when the completed write itself fails, the job must still reach a
	// terminal state rather than sitting in processing forever.
	done := f.waitForTerminal(t, job.ID)
	assert.Equal(t, domain.JobStatusFailed, done.Status)
	assert.Nil(t, done.PlanID)
	assert.NotEmpty(t, done.ErrorMessage)
}

func TestGetJob_Scoping(t *testing.T) {
	f := newGenerationFixture(t, nil)
	ctx := context.Background()

	job, err := f.svc.RequestGeneration(ctx, f.userID, domain.GenerationRequest{GoalID: f.goalID, WeeksDuration: 4})
	require.NoError(t, err)

	got, err := f.svc.GetJob(ctx, f.userID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, got.ID)

	_, err = f.svc.GetJob(ctx, primitive.NewObjectID(), job.ID)
	assert.ErrorIs(t, err, ErrJobNotFound)

	_, err = f.svc.GetJob(ctx, f.userID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrJobNotFound)
}
