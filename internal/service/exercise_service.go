package service

import (
	"context"
	"errors"

	"github.com/Pauljlane12/fitivabackend/internal/domain"
	"github.com/Pauljlane12/fitivabackend/internal/repository"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
)

// ExerciseService exposes the approved exercise catalog.
type ExerciseService interface {
	ListExercises(ctx context.Context, filter repository.ExerciseFilter) ([]domain.Exercise, error)
	GetExerciseByName(ctx context.Context, name string) (*domain.Exercise, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
	}
}

// ListExercises returns the catalog, optionally narrowed by muscle group and
// equipment. An empty filter returns everything.
func (s *exerciseService) ListExercises(ctx context.Context, filter repository.ExerciseFilter) ([]domain.Exercise, error) {
	exercises, err := s.exerciseRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return exercises, nil
}

// GetExerciseByName looks up a single catalog entry by its exact name.
func (s *exerciseService) GetExerciseByName(ctx context.Context, name string) (*domain.Exercise, error) {
	if name == "" {
		return nil, ErrExerciseNotFound
	}
	exercise, err := s.exerciseRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}
