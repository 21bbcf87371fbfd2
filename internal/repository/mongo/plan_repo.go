// internal/repository/mongo/plan_repo.go
package mongo

import (
	"context"
	"errors"
	"time"

	"fitpulse/fitness-tracker/internal/domain"
	"fitpulse/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	planCollectionName    = "workout_plans"
	sessionCollectionName = "workout_plan_sessions"
)

// mongoPlanRepository implements repository.PlanRepository
type mongoPlanRepository struct {
	plans    *mongo.Collection
	sessions *mongo.Collection
}

// NewMongoPlanRepository creates a new WorkoutPlan repository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		plans:    db.Collection(planCollectionName),
		sessions: db.Collection(sessionCollectionName),
	}
}

// openStatusFilter matches plans still occupying their goal's single
// active-or-draft slot.
func openStatusFilter() bson.M {
	return bson.M{"$in": bson.A{domain.PlanStatusDraft, domain.PlanStatusActive}}
}

// CreateWithSessions inserts the plan and all of its sessions as one logical
// unit. If the session insert fails the plan document is removed again, so a
// plan without its calendar is never observable. A duplicate-key error maps to
// ErrConflict: the partial unique index on (goalId, open status) is the
// transactional guard behind the "one open plan per goal" invariant.
func (r *mongoPlanRepository) CreateWithSessions(ctx context.Context, plan *domain.WorkoutPlan, sessions []domain.PlanSession) (primitive.ObjectID, error) {
	if plan.UserID == primitive.NilObjectID || plan.GoalID == primitive.NilObjectID || plan.Name == "" {
		return primitive.NilObjectID, errors.New("plan requires userId, goalId, and name")
	}
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	if plan.Status == "" {
		plan.Status = domain.PlanStatusDraft
	}

	if _, err := r.plans.InsertOne(ctx, plan); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}

	if len(sessions) > 0 {
		docs := make([]interface{}, len(sessions))
		for i := range sessions {
			sessions[i].ID = primitive.NewObjectID()
			sessions[i].PlanID = plan.ID
			sessions[i].CreatedAt = now
			sessions[i].UpdatedAt = now
			if sessions[i].Status == "" {
				sessions[i].Status = domain.SessionStatusScheduled
			}
			docs[i] = sessions[i]
		}
		if _, err := r.sessions.InsertMany(ctx, docs); err != nil {
			// Roll the plan back so the pair stays atomic from the outside.
			_, _ = r.plans.DeleteOne(ctx, bson.M{"_id": plan.ID})
			return primitive.NilObjectID, err
		}
	}

	return plan.ID, nil
}

// GetByID retrieves a single plan scoped to its owner.
func (r *mongoPlanRepository) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	var plan domain.WorkoutPlan
	filter := bson.M{"_id": id, "userId": userID, "deletedAt": notDeleted()}
	err := r.plans.FindOne(ctx, filter).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetByUserID retrieves all plans for a user, newest first.
func (r *mongoPlanRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	var plans []domain.WorkoutPlan
	filter := bson.M{"userId": userID, "deletedAt": notDeleted()}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.plans.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// GetOpenByGoalID returns the active or draft plan tied to a goal, if any.
// This backs the synchronous pre-flight conflict check.
func (r *mongoPlanRepository) GetOpenByGoalID(ctx context.Context, goalID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	var plan domain.WorkoutPlan
	filter := bson.M{
		"goalId":    goalID,
		"status":    openStatusFilter(),
		"deletedAt": notDeleted(),
	}
	err := r.plans.FindOne(ctx, filter).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetActiveByUserID returns the user's active plan, if any.
func (r *mongoPlanRepository) GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	var plan domain.WorkoutPlan
	filter := bson.M{
		"userId":    userID,
		"status":    domain.PlanStatusActive,
		"deletedAt": notDeleted(),
	}
	err := r.plans.FindOne(ctx, filter).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetOpenByUserID returns the user's active plan, or their most recent draft
// when nothing is active. Backs the current-week endpoint.
func (r *mongoPlanRepository) GetOpenByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	var plan domain.WorkoutPlan
	filter := bson.M{
		"userId":    userID,
		"status":    openStatusFilter(),
		"deletedAt": notDeleted(),
	}
	// Active sorts before draft; ties broken by recency.
	findOptions := options.FindOne().SetSort(bson.D{
		{Key: "status", Value: 1},
		{Key: "createdAt", Value: -1},
	})
	err := r.plans.FindOne(ctx, filter, findOptions).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// UpdateStatus moves the plan to a new lifecycle status and stamps the
// matching timestamp.
func (r *mongoPlanRepository) UpdateStatus(ctx context.Context, id, userID primitive.ObjectID, status domain.PlanStatus) (*domain.WorkoutPlan, error) {
	now := time.Now().UTC()
	set := bson.M{"status": status, "updatedAt": now}
	switch status {
	case domain.PlanStatusActive:
		set["startedAt"] = now
	case domain.PlanStatusCompleted:
		set["completedAt"] = now
	}

	filter := bson.M{"_id": id, "userId": userID, "deletedAt": notDeleted()}
	findOptions := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var plan domain.WorkoutPlan
	err := r.plans.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, findOptions).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrConflict
		}
		return nil, err
	}
	return &plan, nil
}

// SoftDelete archives the plan and stamps deletedAt.
func (r *mongoPlanRepository) SoftDelete(ctx context.Context, id, userID primitive.ObjectID) error {
	filter := bson.M{"_id": id, "userId": userID, "deletedAt": notDeleted()}
	updateDoc := bson.M{
		"$set": bson.M{
			"status":    domain.PlanStatusArchived,
			"deletedAt": time.Now().UTC(),
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.plans.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetSessions retrieves a plan's full calendar ordered by week, then day.
func (r *mongoPlanRepository) GetSessions(ctx context.Context, planID primitive.ObjectID) ([]domain.PlanSession, error) {
	return r.findSessions(ctx, bson.M{"planId": planID})
}

// GetSessionsForWeek retrieves one week of a plan's calendar ordered by day.
func (r *mongoPlanRepository) GetSessionsForWeek(ctx context.Context, planID primitive.ObjectID, weekNumber int) ([]domain.PlanSession, error) {
	return r.findSessions(ctx, bson.M{"planId": planID, "weekNumber": weekNumber})
}

func (r *mongoPlanRepository) findSessions(ctx context.Context, filter bson.M) ([]domain.PlanSession, error) {
	var sessions []domain.PlanSession
	findOptions := options.Find().SetSort(bson.D{
		{Key: "weekNumber", Value: 1},
		{Key: "dayOfWeek", Value: 1},
	})

	cursor, err := r.sessions.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// EnsurePlanIndexes creates necessary indexes. Call during startup.
// The partial unique index on goalId is the storage-level enforcement of the
// "one active/draft plan per goal" invariant: two concurrent generations for
// the same goal cannot both persist an open plan.
func EnsurePlanIndexes(ctx context.Context, plans, sessions *mongo.Collection) {
	planIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "goalId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": bson.A{string(domain.PlanStatusDraft), string(domain.PlanStatusActive)}},
				}),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = plans.Indexes().CreateMany(ctx, planIndexes)

	sessionIndexes := []mongo.IndexModel{
		{
			// One session per calendar slot per plan
			Keys: bson.D{
				{Key: "planId", Value: 1},
				{Key: "weekNumber", Value: 1},
				{Key: "dayOfWeek", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = sessions.Indexes().CreateMany(ctx, sessionIndexes)
}
