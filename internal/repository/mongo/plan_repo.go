// internal/repository/mongo/plan_repo.go
package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Pauljlane12/fitivabackend/internal/domain"
	"github.com/Pauljlane12/fitivabackend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const planCollectionName = "plans"

// mongoPlanRepository implements repository.PlanRepository
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new plan archive repository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

// Create archives a generated plan.
func (r *mongoPlanRepository) Create(ctx context.Context, record *domain.PlanRecord) (primitive.ObjectID, error) {
	if record.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("plan record requires userId")
	}
	record.ID = primitive.NewObjectID()
	record.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted plan record ID")
	}
	return insertedID, nil
}

// GetLatestByUser returns the most recently archived plan for a user.
func (r *mongoPlanRepository) GetLatestByUser(ctx context.Context, userID primitive.ObjectID) (*domain.PlanRecord, error) {
	var record domain.PlanRecord
	filter := bson.M{"userId": userID}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// ListByUser returns a user's archived plans, newest first.
func (r *mongoPlanRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.PlanRecord, error) {
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.PlanRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	// Empty slice when the user has no archived plans (not an error).
	return records, nil
}

// EnsurePlanIndexes creates necessary indexes. Call during startup.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Main query pattern: a user's plans, newest first.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
