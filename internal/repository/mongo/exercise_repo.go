package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Pauljlane12/fitivabackend/internal/domain"
	"github.com/Pauljlane12/fitivabackend/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// List retrieves catalog entries matching the filter, ordered by priority
// (highest first) then name for deterministic prompt construction.
func (r *mongoExerciseRepository) List(ctx context.Context, filter repository.ExerciseFilter) ([]domain.Exercise, error) {
	conditions := bson.A{}

	if filter.ExcludeCardio {
		conditions = append(conditions, bson.M{"muscleGroup": bson.M{"$ne": "cardio"}})
	}
	if len(filter.MuscleGroups) > 0 {
		// Match either the muscle group field or an overlapping tag.
		conditions = append(conditions, bson.M{"$or": bson.A{
			bson.M{"muscleGroup": bson.M{"$in": filter.MuscleGroups}},
			bson.M{"tags": bson.M{"$in": filter.MuscleGroups}},
		}})
	}
	if len(filter.Equipment) > 0 {
		conditions = append(conditions, bson.M{"equipment": bson.M{"$in": filter.Equipment}})
	}

	query := bson.M{}
	if len(conditions) > 0 {
		query = bson.M{"$and": conditions}
	}

	findOptions := options.Find().SetSort(bson.D{
		{Key: "priority", Value: 1},
		{Key: "name", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exercises []domain.Exercise
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return exercises, nil
}

// GetByName retrieves a single catalog entry by exact name.
func (r *mongoExerciseRepository) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// Create inserts a new catalog entry.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (string, error) {
	if exercise.Name == "" {
		return "", errors.New("exercise name is required")
	}
	if exercise.ID == "" {
		exercise.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, exercise); err != nil {
		return "", err
	}
	return exercise.ID, nil
}

// Count returns the number of catalog entries.
func (r *mongoExerciseRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// SeedCatalog inserts the given exercises when the collection is empty.
// Called once at startup with the embedded default catalog.
func SeedCatalog(ctx context.Context, repo repository.ExerciseRepository, exercises []domain.Exercise) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	log.Printf("Seeding exercise catalog with %d entries...", len(exercises))
	for i := range exercises {
		if _, err := repo.Create(ctx, &exercises[i]); err != nil {
			return err
		}
	}
	return nil
}

// EnsureExerciseIndexes creates the unique name index used by catalog lookups.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "muscleGroup", Value: 1}, {Key: "priority", Value: 1}},
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		log.Printf("ERROR: Failed to create exercise indexes: %v", err)
	}
}
