// internal/repository/mongo/job_repo.go
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

const jobCollectionName = "plan_generation_jobs"

// mongoJobRepository implements repository.JobRepository
type mongoJobRepository struct {
	collection *mongo.Collection
}

// NewMongoJobRepository creates a new GenerationJob repository.
func NewMongoJobRepository(db *mongo.Database) repository.JobRepository {
	return &mongoJobRepository{
		collection: db.Collection(jobCollectionName),
	}
}

// Create inserts a new job in the pending state.
func (r *mongoJobRepository) Create(ctx context.Context, job *domain.GenerationJob) (primitive.ObjectID, error) {
	if job.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("job requires userId")
	}
	job.ID = primitive.NewObjectID()
	job.Status = domain.JobStatusPending
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, job)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted job ID")
	}
	return insertedID, nil
}

// GetByID retrieves a job record.
func (r *mongoJobRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.GenerationJob, error) {
	var job domain.GenerationJob
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// MarkProcessing claims a pending job for execution. The status filter makes
// this a compare-and-swap: a job that is already processing or terminal does
// not match, so calling this twice can only ever succeed once.
func (r *mongoJobRepository) MarkProcessing(ctx context.Context, id primitive.ObjectID) (*domain.GenerationJob, error) {
	filter := bson.M{"_id": id, "status": domain.JobStatusPending}
	update := bson.M{
		"$set": bson.M{
			"status":    domain.JobStatusProcessing,
			"updatedAt": time.Now().UTC(),
		},
	}
	findOptions := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var job domain.GenerationJob
	err := r.collection.FindOneAndUpdate(ctx, filter, update, findOptions).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// MarkCompleted finalizes a processing job with its plan id.
func (r *mongoJobRepository) MarkCompleted(ctx context.Context, id, planID primitive.ObjectID) error {
	return r.finalize(ctx, id, bson.M{
		"status": domain.JobStatusCompleted,
		"planId": planID,
	})
}

// MarkFailed finalizes a processing job with a human-readable reason.
func (r *mongoJobRepository) MarkFailed(ctx context.Context, id primitive.ObjectID, errorMessage string) error {
	return r.finalize(ctx, id, bson.M{
		"status":       domain.JobStatusFailed,
		"errorMessage": errorMessage,
	})
}

// finalize applies a terminal status, guarded on the job still processing.
// Terminal rows never match, which keeps them immutable.
func (r *mongoJobRepository) finalize(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	set["updatedAt"] = time.Now().UTC()
	filter := bson.M{"_id": id, "status": domain.JobStatusProcessing}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureJobIndexes creates necessary indexes. Call during startup.
func EnsureJobIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
