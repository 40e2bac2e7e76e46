package repository

import (
	"context"

	"github.com/Pauljlane12/fitivabackend/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ExerciseFilter narrows a catalog listing. Zero value means "everything".
type ExerciseFilter struct {
	// MuscleGroups matches exercises whose muscle group is in the set OR
	// whose tags overlap it.
	MuscleGroups []string
	// Equipment restricts to the given equipment kinds.
	Equipment []string
	// ExcludeCardio drops cardio entries (weighted plan variants never use them).
	ExcludeCardio bool
}

// ExerciseRepository defines the interface for the approved exercise catalog.
// The planner only reads; Create/Count exist for seeding and admin tooling.
type ExerciseRepository interface {
	List(ctx context.Context, filter ExerciseFilter) ([]domain.Exercise, error)
	GetByName(ctx context.Context, name string) (*domain.Exercise, error)
	Create(ctx context.Context, exercise *domain.Exercise) (string, error)
	Count(ctx context.Context) (int64, error)
}

// PlanRepository defines the interface for the archive of generated plans.
type PlanRepository interface {
	Create(ctx context.Context, record *domain.PlanRecord) (primitive.ObjectID, error)
	GetLatestByUser(ctx context.Context, userID primitive.ObjectID) (*domain.PlanRecord, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.PlanRecord, error)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, profile *domain.UserProfile) error
}
