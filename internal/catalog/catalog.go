// Package catalog ships the default approved-exercise catalog. It seeds the
// database on first boot and backs tests that need a realistic exercise set.
package catalog

import (
	"encoding/json"
	"fmt"

	_ "embed"

	"github.com/Pauljlane12/fitivabackend/internal/domain"
)

//go:embed exercises.json
var exercisesJSON []byte

// Default returns a fresh copy of the embedded catalog.
func Default() ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	if err := json.Unmarshal(exercisesJSON, &exercises); err != nil {
		return nil, fmt.Errorf("decode embedded catalog: %w", err)
	}
	return exercises, nil
}

// MustDefault is Default for tests and startup paths where a broken embedded
// catalog is unrecoverable anyway.
func MustDefault() []domain.Exercise {
	exercises, err := Default()
	if err != nil {
		panic(err)
	}
	return exercises
}
